package flows

import "context"

type CheckMetrics struct {
	CheckSuccess     int
	CheckFailure     int
	CheckUnknownUser int
}

type CheckEvents struct {
	CredentialChecked string
}

type CheckErrors struct {
	EngineNotReady error
	UnknownUser    error
}

type CheckDeps struct {
	FindRecord     func(context.Context, string) (Record, error)
	IsNotFound     func(error) bool
	MapStoreError  func(error) error
	VerifyPassword func(password, verifier string) (bool, error)

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics CheckMetrics
	Events  CheckEvents
	Errors  CheckErrors
}

// RunCheckCredential looks up username and compares password against the
// stored verifier. A missing record yields (false, Errors.UnknownUser); a
// mismatch yields (false, nil). The record is never written.
func RunCheckCredential(ctx context.Context, username, password string, deps CheckDeps) (bool, error) {
	normalizeCheckDeps(&deps)

	if deps.FindRecord == nil || deps.IsNotFound == nil || deps.VerifyPassword == nil {
		return false, deps.Errors.EngineNotReady
	}

	record, err := deps.FindRecord(ctx, username)
	if err != nil {
		if deps.IsNotFound(err) {
			deps.MetricInc(deps.Metrics.CheckUnknownUser)
			deps.EmitAudit(ctx, deps.Events.CredentialChecked, false, username, deps.Errors.UnknownUser, nil)
			return false, deps.Errors.UnknownUser
		}
		mapped := deps.MapStoreError(err)
		deps.EmitAudit(ctx, deps.Events.CredentialChecked, false, username, mapped, nil)
		return false, mapped
	}

	ok, err := deps.VerifyPassword(password, record.Verifier)
	if err != nil {
		deps.MetricInc(deps.Metrics.CheckFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialChecked, false, username, err, nil)
		return false, err
	}

	if !ok {
		deps.MetricInc(deps.Metrics.CheckFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialChecked, false, username, nil, func() map[string]string {
			return map[string]string{
				"reason": "verifier_mismatch",
			}
		})
		return false, nil
	}

	deps.MetricInc(deps.Metrics.CheckSuccess)
	deps.EmitAudit(ctx, deps.Events.CredentialChecked, true, username, nil, nil)
	return true, nil
}

func normalizeCheckDeps(deps *CheckDeps) {
	if deps.MapStoreError == nil {
		deps.MapStoreError = identityError
	}
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
}

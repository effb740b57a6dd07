package flows

import (
	"context"
	"time"

	"github.com/MrEthical07/goCred/policy"
)

type RotateMetrics struct {
	RotateSuccess        int
	RotateInvalidOld     int
	RotatePolicyRejected int
	RotateFailure        int
}

type RotateEvents struct {
	CredentialRotated string
}

type RotateErrors struct {
	EngineNotReady       error
	UnknownUser          error
	OldPasswordIncorrect error
}

type RotateDeps struct {
	ValidatePassword func(string, policy.Policy) policy.Result
	PolicyError      func(policy.Reason) error
	HashPassword     func(string) (string, error)
	Now              func() time.Time

	LockUsername   func(string) func()
	FindRecord     func(context.Context, string) (Record, error)
	IsNotFound     func(error) bool
	ReplaceRecord  func(ctx context.Context, username, expectedVerifier string, next Record) error
	MapStoreError  func(error) error
	VerifyPassword func(password, verifier string) (bool, error)

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics RotateMetrics
	Events  RotateEvents
	Errors  RotateErrors
}

// RunRotateCredential authenticates with the old password, validates the
// new one against pol, and atomically replaces the verifier, timestamp, and
// policy snapshot. Either failure leg leaves the prior record untouched.
// The record ID is stable across rotations.
func RunRotateCredential(ctx context.Context, username, oldPassword, newPassword string, pol policy.Policy, deps RotateDeps) error {
	normalizeRotateDeps(&deps)

	if deps.ValidatePassword == nil || deps.PolicyError == nil || deps.HashPassword == nil ||
		deps.FindRecord == nil || deps.IsNotFound == nil || deps.ReplaceRecord == nil ||
		deps.VerifyPassword == nil {
		return deps.Errors.EngineNotReady
	}

	unlock := deps.LockUsername(username)
	defer unlock()

	record, err := deps.FindRecord(ctx, username)
	if err != nil {
		if deps.IsNotFound(err) {
			deps.MetricInc(deps.Metrics.RotateInvalidOld)
			deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, deps.Errors.UnknownUser, nil)
			return deps.Errors.UnknownUser
		}
		mapped := deps.MapStoreError(err)
		deps.MetricInc(deps.Metrics.RotateFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, mapped, nil)
		return mapped
	}

	ok, err := deps.VerifyPassword(oldPassword, record.Verifier)
	if err != nil {
		deps.MetricInc(deps.Metrics.RotateFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, err, nil)
		return err
	}
	if !ok {
		deps.MetricInc(deps.Metrics.RotateInvalidOld)
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, deps.Errors.OldPasswordIncorrect, nil)
		return deps.Errors.OldPasswordIncorrect
	}

	if err := pol.Check(); err != nil {
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, err, nil)
		return err
	}

	res := deps.ValidatePassword(newPassword, pol)
	if !res.OK {
		deps.MetricInc(deps.Metrics.RotatePolicyRejected)
		policyErr := deps.PolicyError(res.Reason)
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, policyErr, func() map[string]string {
			return map[string]string{
				"reason": res.Reason.String(),
			}
		})
		return policyErr
	}

	verifier, err := deps.HashPassword(newPassword)
	if err != nil {
		deps.MetricInc(deps.Metrics.RotateFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, err, nil)
		return err
	}

	next := record
	next.Verifier = verifier
	next.CreatedAt = deps.Now().UTC()
	next.Policy = pol

	if err := deps.ReplaceRecord(ctx, username, record.Verifier, next); err != nil {
		mapped := deps.MapStoreError(err)
		deps.MetricInc(deps.Metrics.RotateFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialRotated, false, username, mapped, nil)
		return mapped
	}

	deps.MetricInc(deps.Metrics.RotateSuccess)
	deps.EmitAudit(ctx, deps.Events.CredentialRotated, true, username, nil, nil)
	return nil
}

func normalizeRotateDeps(deps *RotateDeps) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.LockUsername == nil {
		deps.LockUsername = noopLock
	}
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

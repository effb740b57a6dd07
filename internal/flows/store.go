package flows

import (
	"context"
	"time"

	"github.com/MrEthical07/goCred/policy"
)

type StoreMetrics struct {
	StoreSuccess        int
	StorePolicyRejected int
	StoreFailure        int
}

type StoreEvents struct {
	CredentialStored string
}

type StoreErrors struct {
	EngineNotReady  error
	InvalidUsername error
}

type StoreDeps struct {
	ValidatePassword func(string, policy.Policy) policy.Result
	PolicyError      func(policy.Reason) error
	HashPassword     func(string) (string, error)
	NewRecordID      func() string
	Now              func() time.Time

	LockUsername  func(string) func()
	UpsertRecord  func(context.Context, Record) error
	MapStoreError func(error) error

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics StoreMetrics
	Events  StoreEvents
	Errors  StoreErrors
}

// RunStoreCredential validates password against pol, hashes it, and upserts
// the record under username. A second store for the same username
// overwrites with a fresh record ID and timestamp.
func RunStoreCredential(ctx context.Context, username, password string, pol policy.Policy, deps StoreDeps) error {
	normalizeStoreDeps(&deps)

	if deps.ValidatePassword == nil || deps.PolicyError == nil ||
		deps.HashPassword == nil || deps.NewRecordID == nil || deps.UpsertRecord == nil {
		return deps.Errors.EngineNotReady
	}
	if username == "" {
		deps.EmitAudit(ctx, deps.Events.CredentialStored, false, "", deps.Errors.InvalidUsername, nil)
		return deps.Errors.InvalidUsername
	}
	if err := pol.Check(); err != nil {
		deps.EmitAudit(ctx, deps.Events.CredentialStored, false, username, err, nil)
		return err
	}

	res := deps.ValidatePassword(password, pol)
	if !res.OK {
		deps.MetricInc(deps.Metrics.StorePolicyRejected)
		err := deps.PolicyError(res.Reason)
		deps.EmitAudit(ctx, deps.Events.CredentialStored, false, username, err, func() map[string]string {
			return map[string]string{
				"reason": res.Reason.String(),
			}
		})
		return err
	}

	verifier, err := deps.HashPassword(password)
	if err != nil {
		deps.MetricInc(deps.Metrics.StoreFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialStored, false, username, err, nil)
		return err
	}

	record := Record{
		ID:        deps.NewRecordID(),
		Username:  username,
		Verifier:  verifier,
		CreatedAt: deps.Now().UTC(),
		Policy:    pol,
	}

	unlock := deps.LockUsername(username)
	defer unlock()

	if err := deps.UpsertRecord(ctx, record); err != nil {
		mapped := deps.MapStoreError(err)
		deps.MetricInc(deps.Metrics.StoreFailure)
		deps.EmitAudit(ctx, deps.Events.CredentialStored, false, username, mapped, nil)
		return mapped
	}

	deps.MetricInc(deps.Metrics.StoreSuccess)
	deps.EmitAudit(ctx, deps.Events.CredentialStored, true, username, nil, func() map[string]string {
		return map[string]string{
			"record_id": record.ID,
		}
	})
	return nil
}

func normalizeStoreDeps(deps *StoreDeps) {
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

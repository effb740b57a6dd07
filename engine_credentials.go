package goCred

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	internalflows "github.com/MrEthical07/goCred/internal/flows"
	"github.com/MrEthical07/goCred/policy"
	"github.com/google/uuid"
)

// StoreCredential describes the storecredential operation and its observable behavior.
//
// StoreCredential may return an error when input validation, dependency calls, or security checks fail.
// StoreCredential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StoreCredential(ctx context.Context, username, password string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	return internalflows.RunStoreCredential(ctx, strings.TrimSpace(username), password, e.policy, e.storeFlowDeps())
}

// CheckCredential describes the checkcredential operation and its observable behavior.
//
// CheckCredential may return an error when input validation, dependency calls, or security checks fail.
// CheckCredential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CheckCredential(ctx context.Context, username, password string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer e.metrics.Observe(MetricCheckLatency, time.Since(start))
	}
	return internalflows.RunCheckCredential(ctx, strings.TrimSpace(username), password, e.checkFlowDeps())
}

// RotateCredential describes the rotatecredential operation and its observable behavior.
//
// RotateCredential may return an error when input validation, dependency calls, or security checks fail.
// RotateCredential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RotateCredential(ctx context.Context, username, oldPassword, newPassword string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	return internalflows.RunRotateCredential(ctx, strings.TrimSpace(username), oldPassword, newPassword, e.policy, e.rotateFlowDeps())
}

// ListCredentials describes the listcredentials operation and its observable behavior.
//
// ListCredentials may return an error when input validation, dependency calls, or security checks fail.
// ListCredentials does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ListCredentials(ctx context.Context) ([]Record, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	flowRecords, err := internalflows.RunListCredentials(ctx, e.listFlowDeps())
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(flowRecords))
	for _, fr := range flowRecords {
		records = append(records, fromFlowRecord(fr))
	}
	return records, nil
}

func (e *Engine) storeFlowDeps() internalflows.StoreDeps {
	deps := internalflows.StoreDeps{
		ValidatePassword: policy.Validate,
		PolicyError:      policyViolation,
		NewRecordID:      uuid.NewString,
		Now:              time.Now,
		LockUsername:     e.locks.Lock,
		MapStoreError:    e.mapStoreError,
		MetricInc: func(id int) {
			e.metricInc(MetricID(id))
		},
		EmitAudit: e.emitAudit,
		Metrics: internalflows.StoreMetrics{
			StoreSuccess:        int(MetricStoreSuccess),
			StorePolicyRejected: int(MetricStorePolicyRejected),
			StoreFailure:        int(MetricStoreFailure),
		},
		Events: internalflows.StoreEvents{
			CredentialStored: auditEventCredentialStored,
		},
		Errors: internalflows.StoreErrors{
			EngineNotReady:  ErrEngineNotReady,
			InvalidUsername: ErrInvalidUsername,
		},
	}

	if e.hasher != nil {
		deps.HashPassword = e.hasher.Hash
	}
	if e.store != nil {
		deps.UpsertRecord = func(ctx context.Context, record internalflows.Record) error {
			return e.store.Upsert(ctx, fromFlowRecord(record))
		}
	}

	return deps
}

func (e *Engine) checkFlowDeps() internalflows.CheckDeps {
	deps := internalflows.CheckDeps{
		IsNotFound:    isRecordNotFound,
		MapStoreError: e.mapStoreError,
		MetricInc: func(id int) {
			e.metricInc(MetricID(id))
		},
		EmitAudit: e.emitAudit,
		Metrics: internalflows.CheckMetrics{
			CheckSuccess:     int(MetricCheckSuccess),
			CheckFailure:     int(MetricCheckFailure),
			CheckUnknownUser: int(MetricCheckUnknownUser),
		},
		Events: internalflows.CheckEvents{
			CredentialChecked: auditEventCredentialChecked,
		},
		Errors: internalflows.CheckErrors{
			EngineNotReady: ErrEngineNotReady,
			UnknownUser:    ErrUnknownUser,
		},
	}

	if e.hasher != nil {
		deps.VerifyPassword = e.hasher.Matches
	}
	if e.store != nil {
		deps.FindRecord = e.findFlowRecord
	}

	return deps
}

func (e *Engine) rotateFlowDeps() internalflows.RotateDeps {
	deps := internalflows.RotateDeps{
		ValidatePassword: policy.Validate,
		PolicyError:      policyViolation,
		Now:              time.Now,
		LockUsername:     e.locks.Lock,
		IsNotFound:       isRecordNotFound,
		MapStoreError:    e.mapStoreError,
		MetricInc: func(id int) {
			e.metricInc(MetricID(id))
		},
		EmitAudit: e.emitAudit,
		Metrics: internalflows.RotateMetrics{
			RotateSuccess:        int(MetricRotateSuccess),
			RotateInvalidOld:     int(MetricRotateInvalidOld),
			RotatePolicyRejected: int(MetricRotatePolicyRejected),
			RotateFailure:        int(MetricRotateFailure),
		},
		Events: internalflows.RotateEvents{
			CredentialRotated: auditEventCredentialRotated,
		},
		Errors: internalflows.RotateErrors{
			EngineNotReady:       ErrEngineNotReady,
			UnknownUser:          ErrUnknownUser,
			OldPasswordIncorrect: ErrOldPasswordIncorrect,
		},
	}

	if e.hasher != nil {
		deps.HashPassword = e.hasher.Hash
		deps.VerifyPassword = e.hasher.Matches
	}
	if e.store != nil {
		deps.FindRecord = e.findFlowRecord
		deps.ReplaceRecord = func(ctx context.Context, username, expectedVerifier string, next internalflows.Record) error {
			return e.store.Replace(ctx, username, expectedVerifier, fromFlowRecord(next))
		}
	}

	return deps
}

func (e *Engine) listFlowDeps() internalflows.ListDeps {
	deps := internalflows.ListDeps{
		MapStoreError: e.mapStoreError,
		MetricInc: func(id int) {
			e.metricInc(MetricID(id))
		},
		Metrics: internalflows.ListMetrics{
			ListSuccess: int(MetricListSuccess),
			ListFailure: int(MetricListFailure),
		},
		Errors: internalflows.ListErrors{
			EngineNotReady: ErrEngineNotReady,
		},
	}

	if e.store != nil {
		deps.ListRecords = func(ctx context.Context) ([]internalflows.Record, error) {
			records, err := e.store.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			flowRecords := make([]internalflows.Record, 0, len(records))
			for _, r := range records {
				flowRecords = append(flowRecords, toFlowRecord(r))
			}
			return flowRecords, nil
		}
	}

	return deps
}

func (e *Engine) findFlowRecord(ctx context.Context, username string) (internalflows.Record, error) {
	record, err := e.store.Find(ctx, username)
	if err != nil {
		return internalflows.Record{}, err
	}
	return toFlowRecord(record), nil
}

func (e *Engine) mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRecordNotFound):
		return ErrUnknownUser
	case errors.Is(err, ErrRotationConflict):
		return ErrOldPasswordIncorrect
	case errors.Is(err, ErrStoreUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func policyViolation(reason policy.Reason) error {
	return &PolicyViolationError{Reason: reason}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

func toFlowRecord(r Record) internalflows.Record {
	return internalflows.Record{
		ID:        r.ID,
		Username:  r.Username,
		Verifier:  r.Verifier,
		CreatedAt: r.CreatedAt,
		Policy:    r.Policy,
	}
}

func fromFlowRecord(r internalflows.Record) Record {
	return Record{
		ID:        r.ID,
		Username:  r.Username,
		Verifier:  r.Verifier,
		CreatedAt: r.CreatedAt,
		Policy:    r.Policy,
	}
}

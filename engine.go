package goCred

import (
	"context"
	"errors"

	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/policy"
)

// Engine defines a public type used by goCred APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	policy    policy.Policy
	generator *policy.Generator
	hasher    *password.Hasher
	store     CredentialStore
	breach    BreachLookup
	locks     internal.KeyedMutex
	audit     *auditDispatcher
	metrics   *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Policy describes the policy operation and its observable behavior.
//
// Policy may return an error when input validation, dependency calls, or security checks fail.
// Policy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Policy() policy.Policy {
	if e == nil {
		return policy.Policy{}
	}
	return e.policy
}

// GeneratePassword describes the generatepassword operation and its observable behavior.
//
// GeneratePassword may return an error when input validation, dependency calls, or security checks fail.
// GeneratePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GeneratePassword(ctx context.Context) (string, error) {
	if e == nil || e.generator == nil {
		return "", ErrEngineNotReady
	}

	candidate, err := e.generator.Generate(e.policy)
	if err != nil {
		e.metricInc(MetricGenerateExhausted)
		e.emitAudit(ctx, auditEventPasswordGenerated, false, "", err, nil)
		return "", err
	}

	e.metricInc(MetricGenerateSuccess)
	e.emitAudit(ctx, auditEventPasswordGenerated, true, "", nil, nil)
	return candidate, nil
}

// GeneratePasswords describes the generatepasswords operation and its observable behavior.
//
// GeneratePasswords may return an error when input validation, dependency calls, or security checks fail.
// GeneratePasswords does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GeneratePasswords(ctx context.Context, count int) ([]string, error) {
	if e == nil || e.generator == nil {
		return nil, ErrEngineNotReady
	}

	passwords, err := e.generator.GenerateMany(count, e.policy)
	if err != nil {
		if errors.Is(err, ErrGenerationExhausted) {
			e.metricInc(MetricGenerateExhausted)
		}
		e.emitAudit(ctx, auditEventPasswordGenerated, false, "", err, nil)
		return nil, err
	}

	for range passwords {
		e.metricInc(MetricGenerateSuccess)
	}
	e.emitAudit(ctx, auditEventPasswordGenerated, true, "", nil, nil)
	return passwords, nil
}

// ValidatePassword describes the validatepassword operation and its observable behavior.
//
// ValidatePassword may return an error when input validation, dependency calls, or security checks fail.
// ValidatePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidatePassword(password string) policy.Result {
	if e == nil {
		return policy.Result{}
	}

	res := policy.Validate(password, e.policy)
	if res.OK {
		e.metricInc(MetricValidateOK)
	} else {
		e.metricInc(MetricValidateRejected)
	}
	return res
}

package goCred

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goCred/breach"
	internalflows "github.com/MrEthical07/goCred/internal/flows"
)

// CheckBreach describes the checkbreach operation and its observable behavior.
//
// CheckBreach may return an error when input validation, dependency calls, or security checks fail.
// CheckBreach does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CheckBreach(ctx context.Context, password string) (breach.Result, error) {
	if e == nil {
		return breach.Result{Status: breach.StatusUnavailable}, ErrEngineNotReady
	}
	if e.breach == nil {
		return breach.Result{Status: breach.StatusUnavailable}, ErrBreachDisabled
	}
	return internalflows.RunCheckBreach(ctx, password, e.breachFlowDeps())
}

func (e *Engine) breachFlowDeps() internalflows.BreachDeps {
	return internalflows.BreachDeps{
		Lookup:         e.breach.Lookup,
		MapLookupError: mapBreachLookupError,
		MetricInc: func(id int) {
			e.metricInc(MetricID(id))
		},
		EmitAudit: e.emitAudit,
		Metrics: internalflows.BreachMetrics{
			BreachFound:       int(MetricBreachFound),
			BreachNotFound:    int(MetricBreachNotFound),
			BreachUnavailable: int(MetricBreachUnavailable),
		},
		Events: internalflows.BreachEvents{
			BreachChecked: auditEventBreachChecked,
		},
		Errors: internalflows.BreachErrors{
			EngineNotReady: ErrEngineNotReady,
		},
	}
}

func mapBreachLookupError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrBreachUnavailable, err)
}

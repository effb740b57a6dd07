package flows

import (
	"context"
	"strconv"

	"github.com/MrEthical07/goCred/breach"
)

type BreachMetrics struct {
	BreachFound       int
	BreachNotFound    int
	BreachUnavailable int
}

type BreachEvents struct {
	BreachChecked string
}

type BreachErrors struct {
	EngineNotReady error
}

type BreachDeps struct {
	Lookup         func(context.Context, string) (breach.Result, error)
	MapLookupError func(error) error

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics BreachMetrics
	Events  BreachEvents
	Errors  BreachErrors
}

// RunCheckBreach delegates password to the breach lookup. It never touches
// the record store or the policy engine, and the candidate password never
// appears in audit metadata — only the structured outcome does.
func RunCheckBreach(ctx context.Context, password string, deps BreachDeps) (breach.Result, error) {
	normalizeBreachDeps(&deps)

	if deps.Lookup == nil {
		return breach.Result{Status: breach.StatusUnavailable}, deps.Errors.EngineNotReady
	}

	result, err := deps.Lookup(ctx, password)
	if err != nil {
		mapped := deps.MapLookupError(err)
		deps.MetricInc(deps.Metrics.BreachUnavailable)
		deps.EmitAudit(ctx, deps.Events.BreachChecked, false, "", mapped, nil)
		return breach.Result{Status: breach.StatusUnavailable}, mapped
	}

	switch result.Status {
	case breach.StatusFound:
		deps.MetricInc(deps.Metrics.BreachFound)
	case breach.StatusNotFound:
		deps.MetricInc(deps.Metrics.BreachNotFound)
	default:
		deps.MetricInc(deps.Metrics.BreachUnavailable)
	}

	deps.EmitAudit(ctx, deps.Events.BreachChecked, true, "", nil, func() map[string]string {
		return map[string]string{
			"status":      result.Status.String(),
			"occurrences": strconv.Itoa(result.Occurrences),
		}
	})
	return result, nil
}

func normalizeBreachDeps(deps *BreachDeps) {
	if deps.MapLookupError == nil {
		deps.MapLookupError = identityError
	}
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
}

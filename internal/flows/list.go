package flows

import (
	"context"
	"sort"
)

type ListMetrics struct {
	ListSuccess int
	ListFailure int
}

type ListErrors struct {
	EngineNotReady error
}

type ListDeps struct {
	ListRecords   func(context.Context) ([]Record, error)
	MapStoreError func(error) error

	MetricInc func(int)

	Metrics ListMetrics
	Errors  ListErrors
}

// RunListCredentials reads every record and returns them sorted by
// username so export listings are deterministic.
func RunListCredentials(ctx context.Context, deps ListDeps) ([]Record, error) {
	normalizeListDeps(&deps)

	if deps.ListRecords == nil {
		return nil, deps.Errors.EngineNotReady
	}

	records, err := deps.ListRecords(ctx)
	if err != nil {
		deps.MetricInc(deps.Metrics.ListFailure)
		return nil, deps.MapStoreError(err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Username < records[j].Username
	})

	deps.MetricInc(deps.Metrics.ListSuccess)
	return records, nil
}

func normalizeListDeps(deps *ListDeps) {
	if deps.MapStoreError == nil {
		deps.MapStoreError = identityError
	}
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
}

package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricEvalsTotal         = "pql.eval.apply.total"
	metricNodesVisitedTotal  = "pql.eval.nodes.visited.total"
	metricEvalDuration       = "pql.eval.apply.duration.seconds"
	metricPathCacheHits      = "pql.opath.cache.hits.total"
	metricPathCacheMisses    = "pql.opath.cache.misses.total"
	metricPathCacheEvictions = "pql.opath.cache.evictions.total"

	attrCache = "cache"
)

// EvalMetrics holds OTel instruments for path-expression evaluation.
type EvalMetrics struct {
	evalsTotal        metric.Int64Counter
	nodesVisitedTotal metric.Int64Counter
	evalDuration      metric.Float64Histogram
	pathCacheHits     metric.Int64Counter
	pathCacheMisses   metric.Int64Counter
	pathCacheEvicts   metric.Int64Counter
}

// EvalStats holds the statistics for a single Apply call, decoupled from
// evaluator internals so it can be passed across package boundaries.
type EvalStats struct {
	Duration         time.Duration
	NodesVisited     int64
	PathCacheHits    int64
	PathCacheMisses  int64
	PathCacheEvicted int64
}

// NewEvalMetrics creates evaluator metric instruments from the given meter.
func NewEvalMetrics(mt metric.Meter) (*EvalMetrics, error) {
	evals, err := mt.Int64Counter(metricEvalsTotal,
		metric.WithDescription("Total Apply evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEvalsTotal, err)
	}

	nodes, err := mt.Int64Counter(metricNodesVisitedTotal,
		metric.WithDescription("Total tree nodes visited during evaluation"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricNodesVisitedTotal, err)
	}

	dur, err := mt.Float64Histogram(metricEvalDuration,
		metric.WithDescription("Apply evaluation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEvalDuration, err)
	}

	hits, err := mt.Int64Counter(metricPathCacheHits,
		metric.WithDescription("Canonical path cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPathCacheHits, err)
	}

	misses, err := mt.Int64Counter(metricPathCacheMisses,
		metric.WithDescription("Canonical path cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPathCacheMisses, err)
	}

	evicts, err := mt.Int64Counter(metricPathCacheEvictions,
		metric.WithDescription("Canonical path cache evictions"),
		metric.WithUnit("{eviction}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPathCacheEvictions, err)
	}

	return &EvalMetrics{
		evalsTotal:        evals,
		nodesVisitedTotal: nodes,
		evalDuration:      dur,
		pathCacheHits:     hits,
		pathCacheMisses:   misses,
		pathCacheEvicts:   evicts,
	}, nil
}

// RecordApply records the statistics for a single completed Apply call.
// Safe to call on a nil receiver (no-op), so evaluators can hold an
// *EvalMetrics field that is nil when metrics are disabled.
func (em *EvalMetrics) RecordApply(ctx context.Context, stats EvalStats) {
	if em == nil {
		return
	}

	em.evalsTotal.Add(ctx, 1)
	em.nodesVisitedTotal.Add(ctx, stats.NodesVisited)
	em.evalDuration.Record(ctx, stats.Duration.Seconds())

	pathAttrs := metric.WithAttributes(attribute.String(attrCache, "opath"))
	em.pathCacheHits.Add(ctx, stats.PathCacheHits, pathAttrs)
	em.pathCacheMisses.Add(ctx, stats.PathCacheMisses, pathAttrs)
	em.pathCacheEvicts.Add(ctx, stats.PathCacheEvicted, pathAttrs)
}

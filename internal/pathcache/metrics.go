package pathcache

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/roach88/kmap/internal/pathcache"

// instruments holds the cache counters.
type instruments struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	invalidations metric.Int64Counter
	evictions     metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)
	var (
		ins instruments
		err error
	)

	ins.hits, err = meter.Int64Counter(
		"kmap_pathcache_hits_total",
		metric.WithDescription("Tether evaluations served from the cache"),
	)
	if err != nil {
		return nil, err
	}

	ins.misses, err = meter.Int64Counter(
		"kmap_pathcache_misses_total",
		metric.WithDescription("Tether evaluations not found in the cache"),
	)
	if err != nil {
		return nil, err
	}

	ins.invalidations, err = meter.Int64Counter(
		"kmap_pathcache_invalidations_total",
		metric.WithDescription("Entries dropped because a visited node changed"),
	)
	if err != nil {
		return nil, err
	}

	ins.evictions, err = meter.Int64Counter(
		"kmap_pathcache_evictions_total",
		metric.WithDescription("Entries dropped to stay within capacity"),
	)
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (ins *instruments) recordHit(ctx context.Context) {
	ins.hits.Add(ctx, 1)
}

func (ins *instruments) recordMiss(ctx context.Context) {
	ins.misses.Add(ctx, 1)
}

func (ins *instruments) recordInvalidations(ctx context.Context, n int) {
	if n > 0 {
		ins.invalidations.Add(ctx, int64(n))
	}
}

func (ins *instruments) recordEviction(ctx context.Context) {
	ins.evictions.Add(ctx, 1)
}

// startFetchSpan creates a span for one cached evaluation.
func startFetchSpan(ctx context.Context, tracer trace.Tracer, tether string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pathcache.Fetch",
		trace.WithAttributes(
			attribute.String("kmap.tether", tether),
		),
	)
}

// setFetchSpanResult sets the result attributes on a fetch span.
func setFetchSpanResult(span trace.Span, results, hits, misses int) {
	span.SetAttributes(
		attribute.Int("kmap.result_count", results),
		attribute.Int("kmap.cache_hits", hits),
		attribute.Int("kmap.cache_misses", misses),
	)
}

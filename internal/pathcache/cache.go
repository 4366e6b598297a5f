package pathcache

import (
	"container/list"
	"context"
	"io"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

// DefaultCapacity is the entry limit used when none is configured.
const DefaultCapacity = 256

// Cache is a capacity-bounded view.Memo.
type Cache struct {
	capacity int

	// entries is sorted by Tether.Compare.
	entries []*entry

	// lru holds *entry values; front is most recently used.
	lru *list.List

	stats  Stats
	logger *slog.Logger
	mp     metric.MeterProvider
	tp     trace.TracerProvider
	ins    *instruments
	tracer trace.Tracer
}

type entry struct {
	key     *view.Tether
	result  view.FetchSet
	visited ir.NodeSet
	elem    *list.Element
}

// Stats counts cache activity since creation or the last Purge.
type Stats struct {
	Hits          int
	Misses        int
	Invalidations int
	Evictions     int
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity sets the entry limit. Values below 1 select DefaultCapacity.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.capacity = n
	}
}

// WithLogger sets the logger. Invalidations log at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMeterProvider sets the meter provider.
//
// Default: otel.GetMeterProvider().
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Cache) {
		c.mp = mp
	}
}

// WithTracerProvider sets the tracer provider.
//
// Default: otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Cache) {
		c.tp = tp
	}
}

// New creates an empty cache.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		capacity: DefaultCapacity,
		lru:      list.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.capacity < 1 {
		c.capacity = DefaultCapacity
	}
	if c.mp == nil {
		c.mp = otel.GetMeterProvider()
	}
	if c.tp == nil {
		c.tp = otel.GetTracerProvider()
	}

	ins, err := newInstruments(c.mp)
	if err != nil {
		return nil, err
	}
	c.ins = ins
	c.tracer = c.tp.Tracer(instrumentationName)
	return c, nil
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns the activity counters.
func (c *Cache) Stats() Stats {
	return c.stats
}

// find returns the index of t in entries, or where it would be inserted.
func (c *Cache) find(t *view.Tether) (int, bool) {
	return slices.BinarySearchFunc(c.entries, t, func(e *entry, t *view.Tether) int {
		return e.key.Compare(t)
	})
}

// Lookup implements view.Memo.
func (c *Cache) Lookup(t *view.Tether) (view.FetchSet, ir.NodeSet, bool) {
	i, ok := c.find(t)
	if !ok {
		c.stats.Misses++
		c.ins.recordMiss(context.Background())
		return view.FetchSet{}, nil, false
	}
	e := c.entries[i]
	c.lru.MoveToFront(e.elem)
	c.stats.Hits++
	c.ins.recordHit(context.Background())
	return e.result, e.visited, true
}

// Store implements view.Memo.
func (c *Cache) Store(t *view.Tether, result view.FetchSet, visited ir.NodeSet) {
	i, ok := c.find(t)
	if ok {
		e := c.entries[i]
		e.result, e.visited = result, visited
		c.lru.MoveToFront(e.elem)
		return
	}
	if len(c.entries) >= c.capacity {
		c.evictOldest()
		i, _ = c.find(t)
	}
	e := &entry{key: t, result: result, visited: visited}
	e.elem = c.lru.PushFront(e)
	c.entries = slices.Insert(c.entries, i, e)
}

func (c *Cache) evictOldest() {
	back := c.lru.Back()
	if back == nil {
		return
	}
	c.remove(back.Value.(*entry))
	c.stats.Evictions++
	c.ins.recordEviction(context.Background())
}

func (c *Cache) remove(e *entry) {
	c.lru.Remove(e.elem)
	if i, ok := c.find(e.key); ok {
		c.entries = slices.Delete(c.entries, i, i+1)
	}
}

// Invalidate drops every entry that visited a touched node. Returns the
// number of entries dropped.
func (c *Cache) Invalidate(touched ir.NodeSet) int {
	if touched.Len() == 0 || len(c.entries) == 0 {
		return 0
	}
	kept := c.entries[:0]
	dropped := 0
	for _, e := range c.entries {
		if e.visited.Intersects(touched) {
			c.lru.Remove(e.elem)
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	clear(c.entries[len(kept):])
	c.entries = kept

	c.stats.Invalidations += dropped
	c.ins.recordInvalidations(context.Background(), dropped)
	if dropped > 0 {
		c.logger.Debug("path cache invalidated", "touched", touched.Len(), "dropped", dropped, "remaining", len(c.entries))
	}
	return dropped
}

// Purge drops every entry and resets the counters.
func (c *Cache) Purge() {
	c.entries = nil
	c.lru.Init()
	c.stats = Stats{}
}

// Notifier reports the nodes each mutation touched.
// *network.Network implements it.
type Notifier interface {
	Subscribe(fn func(touched ir.NodeSet)) (cancel func())
}

// Attach invalidates c whenever n reports a mutation. The returned function
// detaches it.
func (c *Cache) Attach(n Notifier) (detach func()) {
	return n.Subscribe(func(touched ir.NodeSet) {
		c.Invalidate(touched)
	})
}

// Fetch evaluates t against net through the cache inside a trace span.
func (c *Cache) Fetch(ctx context.Context, net view.Reader, t *view.Tether) (view.FetchSet, error) {
	_, span := startFetchSpan(ctx, c.tracer, t.String())
	defer span.End()

	before := c.stats
	fs, err := view.ToFetchSet(view.FetchContext{Net: net, Memo: c}, t)
	setFetchSpanResult(span, fs.Len(), c.stats.Hits-before.Hits, c.stats.Misses-before.Misses)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return view.FetchSet{}, err
	}
	return fs, nil
}

// Vector is Fetch returning ids in result order.
func (c *Cache) Vector(ctx context.Context, net view.Reader, t *view.Tether) ([]ir.NodeID, error) {
	fs, err := c.Fetch(ctx, net, t)
	if err != nil {
		return nil, err
	}
	return fs.IDs(), nil
}

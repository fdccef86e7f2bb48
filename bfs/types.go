// SPDX-License-Identifier: MIT
// Package: bedrock/bfs
//
// types.go - options, sentinel errors and the traversal result.

package bfs

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Sentinel errors for BFS execution.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartOutOfRange is returned when the start vertex is not in [0, VertexCount).
	ErrStartOutOfRange = errors.New("bfs: start vertex out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrPoolNil is returned by Traverse on a Parallel built without a pool.
	ErrPoolNil = errors.New("bfs: worker pool is nil")

	// ErrPoolStopped is returned when the pool rejected a chunk because it was
	// shut down during the traversal.
	ErrPoolStopped = errors.New("bfs: worker pool stopped")

	// ErrChunkPanic is returned when expanding a chunk panicked, typically
	// because the Graph implementation did.
	ErrChunkPanic = errors.New("bfs: chunk expansion panicked")
)

// Graph is the read-only view a traversal needs. Implementations must allow
// concurrent calls and must not change while a traversal runs.
type Graph interface {
	// VertexCount returns n; vertices are 0..n-1.
	VertexCount() int
	// Neighbors returns the out-neighbors of v. Ids outside [0,n) are ignored.
	Neighbors(v int) []int
}

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when the
// traversal runs.
type Option func(*Options)

// Options holds parameters and callbacks for both traversals.
type Options struct {
	// MaxDepth, if > 0, stops expanding beyond this depth.
	// A value of 0 disables the limit.
	MaxDepth int

	// OnLevel is called on the driving goroutine with each level before it is
	// expanded. frontier must not be retained or modified.
	OnLevel func(depth int, frontier []int)

	// Logger receives per-level debug lines.
	Logger *slog.Logger

	// TracerProvider and MeterProvider feed the parallel traversal's telemetry.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	err error
}

// DefaultOptions returns Options with no depth limit, a no-op OnLevel hook,
// slog.Default and the global OpenTelemetry providers.
func DefaultOptions() Options {
	return Options{
		MaxDepth:       0,
		OnLevel:        func(int, []int) {},
		Logger:         slog.Default(),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxDepth limits how far the traversal goes.
//
//	d > 0:  vertices deeper than d are not discovered
//	d == 0: no limit
//	d < 0:  ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnLevel registers a per-level callback.
func WithOnLevel(fn func(depth int, frontier []int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnLevel = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		if tp != nil {
			o.TracerProvider = tp
		}
	}
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		if mp != nil {
			o.MeterProvider = mp
		}
	}
}

// Result holds the outcome of a traversal:
//   - Order: reached vertices, level by level. Within a level the parallel
//     traversal's order depends on scheduling; the sequential one is stable.
//   - Levels: Levels[d] lists the vertices at distance d, in Order's order.
//   - Depth: distance of each vertex from Start, -1 if unreached.
//   - Visited: the reached vertex ids.
type Result struct {
	Start   int
	Order   []int
	Levels  [][]int
	Depth   []int
	Visited *roaring.Bitmap
}

func newResult(start, n int) *Result {
	depth := make([]int, n)
	for i := range depth {
		depth[i] = -1
	}
	return &Result{Start: start, Depth: depth, Visited: roaring.New()}
}

// addLevel appends frontier as level d.
func (r *Result) addLevel(d int, frontier []int) {
	from := len(r.Order)
	r.Order = append(r.Order, frontier...)
	r.Levels = append(r.Levels, r.Order[from:len(r.Order):len(r.Order)])
	for _, v := range frontier {
		r.Depth[v] = d
		r.Visited.Add(uint32(v))
	}
}

// Reached reports whether v was visited.
func (r *Result) Reached(v int) bool {
	return v >= 0 && v < len(r.Depth) && r.Depth[v] >= 0
}

// Count returns the number of visited vertices.
func (r *Result) Count() int { return len(r.Order) }

// PathLength returns the distance from Start to v, or an error if v was not reached.
func (r *Result) PathLength(v int) (int, error) {
	if !r.Reached(v) {
		return 0, fmt.Errorf("bfs: no path to %d", v)
	}
	return r.Depth[v], nil
}

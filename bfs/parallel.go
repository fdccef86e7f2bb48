// SPDX-License-Identifier: MIT
// Package: bedrock/bfs
//
// parallel.go - level-synchronous BFS on a shared worker pool.

package bfs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/bedrock/mutex"
	"github.com/katalvlaran/bedrock/pool"
	"github.com/katalvlaran/bedrock/visited"
	"github.com/katalvlaran/bedrock/waitgroup"
)

// Parallel runs level-synchronous breadth-first traversals on an injected
// worker pool. A Parallel is safe for concurrent use; concurrent traversals
// share the pool's workers.
type Parallel struct {
	pool *pool.Pool
	opts Options
	tel  *telemetry
}

// NewParallel returns a traversal driver that submits its work to p.
// The pool is not owned: shutting it down is the caller's job.
func NewParallel(p *pool.Pool, opts ...Option) *Parallel {
	o := buildOptions(opts)
	return &Parallel{pool: p, opts: o, tel: newTelemetry(o)}
}

// Traverse visits every vertex reachable from start.
//
// Each level's frontier is cut into ceil(len/workers)-sized contiguous chunks,
// one pool task per chunk. A task claims unvisited neighbors with an atomic
// compare-and-swap, collects its discoveries locally, merges them into the
// shared next frontier under one lock acquisition, and signals the level's
// WaitGroup. The driver waits for every chunk before the next level starts.
//
// ctx only carries trace context; a started traversal is not cancellable.
// Returns ErrGraphNil, ErrPoolNil, ErrStartOutOfRange or ErrOptionViolation
// without marking any vertex; ErrPoolStopped if the pool was shut down before
// every chunk of a level ran; ErrChunkPanic if expanding a chunk panicked.
func (p *Parallel) Traverse(ctx context.Context, g Graph, start int) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if p.pool == nil {
		return nil, ErrPoolNil
	}
	if p.opts.err != nil {
		return nil, p.opts.err
	}

	n := g.VertexCount()
	workers := p.pool.Workers()
	began := time.Now()
	ctx, span := p.tel.startTraversal(ctx, start, n, workers)
	defer span.End()

	res, err := p.run(ctx, g, start, n, workers)
	p.tel.finish(ctx, span, began, res, err)
	if err != nil {
		return nil, err
	}

	p.opts.Logger.DebugContext(ctx, "parallel BFS completed",
		slog.Int("start", start),
		slog.Int("visited", res.Count()),
		slog.Int("levels", len(res.Levels)),
		slog.Duration("elapsed", time.Since(began)),
	)
	return res, nil
}

func (p *Parallel) run(ctx context.Context, g Graph, start, n, workers int) (*Result, error) {
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	flags := visited.New(n)
	flags.TryMark(start)
	res := newResult(start, n)
	frontier := []int{start}

	for depth := 0; len(frontier) > 0; depth++ {
		res.addLevel(depth, frontier)
		p.opts.OnLevel(depth, frontier)
		p.tel.recordLevel(ctx, len(frontier))
		if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
			break
		}

		next, err := p.expand(g, frontier, flags, workers)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", depth, err)
		}
		p.opts.Logger.DebugContext(ctx, "BFS level expanded",
			slog.Int("depth", depth),
			slog.Int("level_size", len(frontier)),
			slog.Int("discovered", len(next)),
		)
		frontier = next
	}
	return res, nil
}

// level is the state shared by the chunk tasks of one BFS level. Tasks hold
// a pointer to it, so it stays alive until the last task finishes.
type level struct {
	graph    Graph
	frontier []int
	flags    *visited.Flags
	next     mutex.Mutex[[]int]
	done     *waitgroup.WaitGroup
	dropped  atomic.Int64
	failure  atomic.Pointer[error]
}

// chunk is one task: the half-open range [lo, hi) of the level's frontier.
type chunk struct {
	lv     *level
	lo, hi int
}

// expand runs one level on the pool and returns the next frontier.
func (p *Parallel) expand(g Graph, frontier []int, flags *visited.Flags, workers int) ([]int, error) {
	size := (len(frontier) + workers - 1) / workers
	chunks := (len(frontier) + size - 1) / size

	lv := &level{
		graph:    g,
		frontier: frontier,
		flags:    flags,
		done:     waitgroup.New(chunks),
	}

	for lo := 0; lo < len(frontier); lo += size {
		c := &chunk{lv: lv, lo: lo, hi: min(lo+size, len(frontier))}
		if !p.pool.PushOrDiscard(c.run, c.discard) {
			c.discard()
		}
	}
	lv.done.Wait()

	if n := lv.dropped.Load(); n > 0 {
		return nil, fmt.Errorf("%w: %d of %d chunks never ran", ErrPoolStopped, n, chunks)
	}
	if errp := lv.failure.Load(); errp != nil {
		return nil, *errp
	}

	guard := lv.next.Lock()
	defer guard.Unlock()
	return *guard.Value(), nil
}

// discard releases the barrier slot of a chunk the pool will never run.
func (c *chunk) discard() {
	c.lv.dropped.Add(1)
	_ = c.lv.done.Done()
}

func (c *chunk) run() {
	lv := c.lv
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: frontier[%d:%d]: %v", ErrChunkPanic, c.lo, c.hi, r)
			lv.failure.CompareAndSwap(nil, &err)
		}
		_ = lv.done.Done()
	}()

	var local []int
	for _, u := range lv.frontier[c.lo:c.hi] {
		for _, v := range lv.graph.Neighbors(u) {
			if lv.flags.TryMark(v) {
				local = append(local, v)
			}
		}
	}
	if len(local) == 0 {
		return
	}
	lv.next.With(func(buf *[]int) { *buf = append(*buf, local...) })
}

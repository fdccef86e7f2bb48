// SPDX-License-Identifier: MIT
// Package: bedrock/pool
//
// pool.go - fixed-size worker pool over a BlockingQueue.

// Package pool runs submitted tasks on a fixed set of worker goroutines that
// share one unbounded FIFO queue.
//
// Each worker loops "pop a task, run it" until the queue reports that it has
// stopped. Shutdown stops the queue gracefully (already queued tasks still
// run) and joins every worker; ShutdownNow discards queued tasks instead and
// runs their discard callbacks, if any were given to PushOrDiscard. Tasks
// pushed after either call are dropped and never executed.
//
// A panic inside a task is recovered, logged with its stack and counted; the
// worker that ran it keeps serving the queue.
package pool

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/katalvlaran/bedrock/queue"
	"github.com/katalvlaran/bedrock/waitgroup"
)

// Task is a unit of work executed exactly once by some worker.
type Task func()

// job is a queued task plus the callback run instead of it on ShutdownNow.
type job struct {
	run     Task
	discard func()
}

// Option configures a Pool at construction.
type Option func(*poolConfig)

type poolConfig struct {
	name    string
	logger  *slog.Logger
	metrics *Metrics
}

// WithName sets the pool name used in logs and metric labels. Default "default".
func WithName(name string) Option {
	return func(c *poolConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *poolConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics instruments the pool with m.
func WithMetrics(m *Metrics) Option {
	return func(c *poolConfig) { c.metrics = m }
}

// Pool is a fixed-size set of workers. Create it with New.
type Pool struct {
	name    string
	workers int
	tasks   *queue.BlockingQueue[job]
	joined  *waitgroup.WaitGroup
	logger  *slog.Logger
	metrics *poolMetrics
	stopped atomic.Bool
}

// New starts a pool of workers goroutines. A count below 1 is raised to 1 so
// that submitted work always has an executor.
func New(workers int, opts ...Option) *Pool {
	cfg := poolConfig{name: "default", logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if workers < 1 {
		cfg.logger.Warn("worker count below 1, using a single worker",
			slog.String("pool", cfg.name),
			slog.Int("requested", workers),
		)
		workers = 1
	}

	p := &Pool{
		name:    cfg.name,
		workers: workers,
		tasks:   queue.New[job](),
		joined:  waitgroup.New(workers),
		logger:  cfg.logger.With(slog.String("pool", cfg.name)),
		metrics: cfg.metrics.forPool(cfg.name),
	}
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	p.logger.Debug("pool started", slog.Int("workers", workers))
	return p
}

// Push enqueues task. It returns false, and the task is never executed, when
// the pool has been shut down or task is nil.
func (p *Pool) Push(task Task) bool {
	return p.PushOrDiscard(task, nil)
}

// PushOrDiscard is Push with a callback that ShutdownNow runs, on the caller
// of ShutdownNow, if it discards task before a worker picked it up. Exactly
// one of task and onDiscard runs for an accepted task. When PushOrDiscard
// returns false neither runs.
func (p *Pool) PushOrDiscard(task Task, onDiscard func()) bool {
	if task == nil {
		return false
	}
	if !p.tasks.Push(job{run: task, discard: onDiscard}) {
		p.metrics.onDrop()
		return false
	}
	p.metrics.onSubmit()
	return true
}

// Shutdown stops accepting tasks, lets the queued ones finish, and returns
// once every worker has exited. It is safe to call more than once.
// Calling it from inside a task deadlocks.
func (p *Pool) Shutdown() {
	p.stop(queue.Stopped)
}

// ShutdownNow stops accepting tasks, discards the queued ones, and returns once
// every worker has finished its current task and exited. It also escalates a
// Shutdown that is still draining: the tasks not yet started are discarded.
func (p *Pool) ShutdownNow() {
	p.stop(queue.ForceStopped)
}

func (p *Pool) stop(state queue.State) {
	discarded := p.tasks.Stop(state)
	if len(discarded) > 0 {
		p.metrics.onDiscard(len(discarded))
		p.logger.Debug("queued tasks discarded", slog.Int("count", len(discarded)))
		for _, j := range discarded {
			if j.discard != nil {
				j.discard()
			}
		}
	}
	p.joined.Wait()
	if p.stopped.CompareAndSwap(false, true) {
		p.logger.Debug("pool stopped", slog.String("mode", p.tasks.State().String()))
	}
}

// Workers returns the fixed number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Pending returns the number of queued tasks not yet picked up by a worker.
func (p *Pool) Pending() int { return p.tasks.Len() }

// Running reports how many workers have not exited yet.
func (p *Pool) Running() int { return p.joined.Count() }

func (p *Pool) worker(id int) {
	defer func() { _ = p.joined.Done() }()
	for {
		j, ok := p.tasks.Pop()
		if !ok {
			return
		}
		p.run(id, j.run)
	}
}

func (p *Pool) run(id int, task Task) {
	panicked := false
	p.metrics.onStart()
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			p.logger.Error("panic in pool task",
				slog.Int("worker_id", id),
				slog.Any("panic", r),
				slog.String("stack", string(buf[:n])),
			)
		}
		p.metrics.onFinish(panicked)
	}()
	task()
}

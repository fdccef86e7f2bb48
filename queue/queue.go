// SPDX-License-Identifier: MIT
// Package: bedrock/queue
//
// queue.go - unbounded FIFO with blocking Pop and a one-way lifecycle.

// Package queue provides an unbounded, thread-safe FIFO whose consumers block
// until an item arrives or the queue is stopped.
//
// Lifecycle
//
//	Running ──Stop(Stopped)──────▶ Stopped       (pending items still poppable)
//	   │                              │
//	   │                      Stop(ForceStopped)
//	   │                              ▼
//	   └──────Stop(ForceStopped)─▶ ForceStopped  (pending items discarded)
//
// Transitions only move forward: a stopped queue never runs again, and Push
// always reports false once the queue has left Running. A Stopped queue may
// still be escalated to ForceStopped; every other Stop call is ignored.
package queue

import (
	"sync"

	"github.com/katalvlaran/bedrock/mutex"
)

// State is the lifecycle state of a BlockingQueue. States are ordered and
// Stop only moves forward.
type State uint8

const (
	// Running accepts pushes and serves pops.
	Running State = iota
	// Stopped rejects pushes; Pop drains what is left, then reports empty.
	Stopped
	// ForceStopped rejects pushes; Pop reports empty immediately.
	ForceStopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case ForceStopped:
		return "force-stopped"
	default:
		return "unknown"
	}
}

// contents is everything the queue lock protects.
type contents[T any] struct {
	state State
	items []T
	head  int
}

func (c *contents[T]) size() int { return len(c.items) - c.head }

// BlockingQueue is an unbounded FIFO safe for concurrent producers and consumers.
// Use New to create one.
type BlockingQueue[T any] struct {
	guarded *mutex.Mutex[contents[T]]
	waiter  *sync.Cond
}

// New returns an empty queue in the Running state.
func New[T any]() *BlockingQueue[T] {
	m := mutex.New(contents[T]{state: Running})
	return &BlockingQueue[T]{guarded: m, waiter: m.NewCond()}
}

// Push appends v and wakes one blocked Pop.
// It returns false, discarding v, when the queue is no longer Running.
func (q *BlockingQueue[T]) Push(v T) bool {
	g := q.guarded.Lock()
	defer g.Unlock()

	c := g.Value()
	if c.state != Running {
		return false
	}
	c.items = append(c.items, v)
	q.waiter.Signal()
	return true
}

// Stop moves the queue forward to state and wakes every blocked Pop.
// Running may move to Stopped or ForceStopped, and Stopped may move to
// ForceStopped; any other call is a no-op. A transition to ForceStopped
// returns the discarded items, oldest first.
func (q *BlockingQueue[T]) Stop(state State) (discarded []T) {
	if state != Stopped && state != ForceStopped {
		return nil
	}
	g := q.guarded.Lock()
	defer g.Unlock()

	c := g.Value()
	if c.state >= state {
		return nil
	}
	c.state = state
	if state == ForceStopped && c.size() > 0 {
		discarded = append([]T(nil), c.items[c.head:]...)
		clear(c.items)
		c.items, c.head = nil, 0
	}
	q.waiter.Broadcast()
	return discarded
}

// Pop blocks until an item is available or the queue is stopped.
// It returns the oldest item and true, or the zero T and false when the queue
// is ForceStopped, or Stopped with nothing left to drain.
func (q *BlockingQueue[T]) Pop() (T, bool) {
	g := q.guarded.Lock()
	defer g.Unlock()

	c := g.Value()
	for c.state == Running && c.size() == 0 {
		q.waiter.Wait()
	}

	var zero T
	if c.state == ForceStopped || c.size() == 0 {
		return zero, false
	}

	v := c.items[c.head]
	c.items[c.head] = zero
	c.head++
	if c.head == len(c.items) {
		c.items, c.head = c.items[:0], 0
	} else if c.head > 64 && c.head*2 >= len(c.items) {
		// compact once the consumed prefix dominates the backing array
		n := copy(c.items, c.items[c.head:])
		clear(c.items[n:])
		c.items, c.head = c.items[:n], 0
	}
	return v, true
}

// Len returns the number of items currently queued.
func (q *BlockingQueue[T]) Len() int {
	g := q.guarded.Lock()
	defer g.Unlock()
	return g.Value().size()
}

// State returns the current lifecycle state.
func (q *BlockingQueue[T]) State() State {
	g := q.guarded.Lock()
	defer g.Unlock()
	return g.Value().state
}

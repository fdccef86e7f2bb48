// SPDX-License-Identifier: MIT
// Package: bedrock/waitgroup
//
// waitgroup.go - counting completion barrier.

// Package waitgroup provides a counting barrier: producers register the number
// of expected completions, workers report each completion with Done, and any
// number of goroutines may Wait for the count to reach zero.
//
// Unlike sync.WaitGroup, the initial count is set at construction, Done never
// drives the counter negative (it saturates at zero and reports ErrUnderflow),
// and the current count is observable.
package waitgroup

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/bedrock/mutex"
)

// Sentinel errors for contract violations.
var (
	// ErrUnderflow is returned by Done when the counter is already zero.
	ErrUnderflow = errors.New("waitgroup: Done called more times than registered")

	// ErrNegativeDelta is returned by Add for a negative delta.
	ErrNegativeDelta = errors.New("waitgroup: negative delta")
)

type counter struct {
	count   int
	waiters int
}

// WaitGroup is a counting barrier. The zero value has count zero.
// A WaitGroup must not be copied after first use.
type WaitGroup struct {
	once  sync.Once
	state mutex.Mutex[counter]
	cv    *sync.Cond
}

// New returns a WaitGroup expecting n completions. Negative n is treated as 0.
func New(n int) *WaitGroup {
	wg := &WaitGroup{}
	if n > 0 {
		wg.state.With(func(c *counter) { c.count = n })
	}
	return wg
}

func (wg *WaitGroup) cond() *sync.Cond {
	wg.once.Do(func() { wg.cv = wg.state.NewCond() })
	return wg.cv
}

// Add registers k more expected completions.
func (wg *WaitGroup) Add(k int) error {
	if k < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDelta, k)
	}
	g := wg.state.Lock()
	defer g.Unlock()
	g.Value().count += k
	return nil
}

// Done records one completion. When the count reaches zero every goroutine
// blocked in Wait is released. Calling Done at zero leaves the count at zero
// and returns ErrUnderflow.
func (wg *WaitGroup) Done() error {
	cv := wg.cond()
	g := wg.state.Lock()
	defer g.Unlock()

	c := g.Value()
	if c.count == 0 {
		return ErrUnderflow
	}
	c.count--
	if c.count == 0 && c.waiters > 0 {
		cv.Broadcast()
	}
	return nil
}

// Wait blocks until the count is zero. It returns immediately if it already is.
func (wg *WaitGroup) Wait() {
	cv := wg.cond()
	g := wg.state.Lock()
	defer g.Unlock()

	c := g.Value()
	c.waiters++
	for c.count > 0 {
		cv.Wait()
	}
	c.waiters--
}

// Count returns the number of completions still outstanding.
func (wg *WaitGroup) Count() int {
	g := wg.state.Lock()
	defer g.Unlock()
	return g.Value().count
}

// SPDX-License-Identifier: MIT
// Package: bedrock/mutex
//
// mutex.go - Mutex[T] and its scoped Guard[T].

package mutex

import (
	"errors"
	"sync"
)

// ErrGuardReleased is the panic value raised when a guard is used after Unlock.
var ErrGuardReleased = errors.New("mutex: guard used after unlock")

// Mutex protects a single value of type T.
// The zero value holds the zero T and is ready for use.
// A Mutex must not be copied after first use.
type Mutex[T any] struct {
	mu    sync.Mutex
	value T
}

// New returns a Mutex holding v.
func New[T any](v T) *Mutex[T] {
	return &Mutex[T]{value: v}
}

// Lock blocks until exclusive access is obtained and returns the guard
// granting it. The caller must release the guard with Unlock, normally via defer.
func (m *Mutex[T]) Lock() *Guard[T] {
	m.mu.Lock()
	return &Guard[T]{owner: m}
}

// TryLock acquires the lock only if it is free.
// The second result reports whether a guard was returned.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	if !m.mu.TryLock() {
		return nil, false
	}
	return &Guard[T]{owner: m}, true
}

// With runs fn with exclusive access to the protected value.
// The lock is released when fn returns, including when it panics.
func (m *Mutex[T]) With(fn func(v *T)) {
	g := m.Lock()
	defer g.Unlock()
	fn(g.Value())
}

// NewCond returns a condition variable whose Locker is this mutex's lock.
// Cond.Wait may only be called by the holder of a live guard.
func (m *Mutex[T]) NewCond() *sync.Cond {
	return sync.NewCond(&m.mu)
}

// Guard is an exclusive handle to the value of a locked Mutex.
// It is not safe to share a guard between goroutines.
type Guard[T any] struct {
	owner *Mutex[T]
}

// Value returns a pointer to the protected value.
// The pointer must not be retained after Unlock.
func (g *Guard[T]) Value() *T {
	if g.owner == nil {
		panic(ErrGuardReleased)
	}
	return &g.owner.value
}

// Set replaces the protected value.
func (g *Guard[T]) Set(v T) {
	*g.Value() = v
}

// Unlock releases the lock. Calling it more than once is a no-op.
func (g *Guard[T]) Unlock() {
	if g.owner == nil {
		return
	}
	m := g.owner
	g.owner = nil
	m.mu.Unlock()
}

// Held reports whether the guard still owns the lock.
func (g *Guard[T]) Held() bool {
	return g.owner != nil
}

// SPDX-License-Identifier: MIT
// Package: bedrock/mutex

// Package mutex pairs a value with the lock that protects it.
//
// What
//
//   - Mutex[T] owns a value of type T and a sync.Mutex.
//   - Lock returns a *Guard[T]; the guard is the only handle through which the
//     protected value can be read or written.
//   - With runs a closure while holding the lock and releases it on every exit
//     path, panics included.
//
// Usage
//
//	var buf mutex.Mutex[[]int]
//
//	// closure form: lock released when fn returns or panics
//	buf.With(func(v *[]int) { *v = append(*v, 7) })
//
//	// guard form: pair Lock with a deferred Unlock
//	g := buf.Lock()
//	defer g.Unlock()
//	*g.Value() = append(*g.Value(), 8)
//
// Guarantees
//
//   - No two live guards exist for the same Mutex.
//   - Unlock is idempotent; touching a released guard panics with ErrGuardReleased.
//   - NewCond binds a sync.Cond to the internal lock so a guard holder may wait
//     for a predicate over the protected value.
package mutex

// SPDX-License-Identifier: MIT
// Package: bedrock/visited
//
// visited.go - per-vertex atomic flags padded to one cache line each.

// Package visited provides a set of per-vertex "visited" flags that many
// goroutines may claim concurrently without locks.
//
// Each flag sits between cache-line pads so that workers flipping adjacent
// vertices do not invalidate each other's cache lines (false sharing).
// A flag only ever moves false → true, and for every vertex exactly one
// caller of TryMark observes the transition.
package visited

import (
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sys/cpu"
)

// Flag is a single atomic boolean occupying its own cache line.
type Flag struct {
	_ cpu.CacheLinePad
	v atomic.Bool
	_ cpu.CacheLinePad
}

// TryMark sets the flag if it is clear and reports whether this call set it.
func (f *Flag) TryMark() bool { return f.v.CompareAndSwap(false, true) }

// IsSet reports whether the flag has been marked.
func (f *Flag) IsSet() bool { return f.v.Load() }

// Flags is a fixed-size array of Flag indexed by vertex id.
type Flags struct {
	flags []Flag
}

// New returns n cleared flags. Negative n yields an empty set.
func New(n int) *Flags {
	if n < 0 {
		n = 0
	}
	return &Flags{flags: make([]Flag, n)}
}

// Len returns the number of flags.
func (f *Flags) Len() int { return len(f.flags) }

// TryMark claims vertex v. It returns true for exactly one caller per vertex,
// and false for out-of-range ids.
func (f *Flags) TryMark(v int) bool {
	if v < 0 || v >= len(f.flags) {
		return false
	}
	return f.flags[v].TryMark()
}

// IsSet reports whether vertex v has been claimed.
func (f *Flags) IsSet(v int) bool {
	if v < 0 || v >= len(f.flags) {
		return false
	}
	return f.flags[v].IsSet()
}

// Count returns the number of marked flags. It is O(n) and only meaningful
// once concurrent marking has finished.
func (f *Flags) Count() int {
	n := 0
	for i := range f.flags {
		if f.flags[i].IsSet() {
			n++
		}
	}
	return n
}

// Bitmap returns the marked vertex ids as a compressed bitmap.
func (f *Flags) Bitmap() *roaring.Bitmap {
	bm := roaring.New()
	for i := range f.flags {
		if f.flags[i].IsSet() {
			bm.Add(uint32(i))
		}
	}
	bm.RunOptimize()
	return bm
}

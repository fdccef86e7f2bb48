// SPDX-License-Identifier: MIT
// Package: bedrock/bfs
//
// bfs.go - single-goroutine reference traversal.

package bfs

import "fmt"

// walker encapsulates mutable state of the sequential BFS.
type walker struct {
	graph   Graph
	opts    Options
	seen    []bool
	current []int
	res     *Result
}

// BFS runs a single-goroutine breadth-first search on g from start.
// It is the reference the parallel traversal is checked against and returns
// the same Result shape, with a stable order inside each level.
// Returns ErrGraphNil, ErrStartOutOfRange or ErrOptionViolation for invalid input.
//
// Complexity: O(V + E) time, O(V) memory.
func BFS(g Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := buildOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	n := g.VertexCount()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	w := &walker{
		graph:   g,
		opts:    o,
		seen:    make([]bool, n),
		current: []int{start},
		res:     newResult(start, n),
	}
	w.seen[start] = true
	w.loop()
	return w.res, nil
}

// loop expands one level per iteration until the frontier is empty or the
// depth limit is reached.
func (w *walker) loop() {
	for depth := 0; len(w.current) > 0; depth++ {
		w.res.addLevel(depth, w.current)
		w.opts.OnLevel(depth, w.current)
		if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
			return
		}
		w.current = w.expand(w.current)
	}
}

// expand returns the unseen neighbors of level, in discovery order.
func (w *walker) expand(level []int) []int {
	var next []int
	n := len(w.seen)
	for _, u := range level {
		for _, v := range w.graph.Neighbors(u) {
			if v < 0 || v >= n || w.seen[v] {
				continue
			}
			w.seen[v] = true
			next = append(next, v)
		}
	}
	return next
}

// SPDX-License-Identifier: MIT
// Package: bedrock/graph
//
// graph.go - directed adjacency-list graph over dense integer vertex ids.

// Package graph stores a directed graph over vertices 0..n-1 as an adjacency
// list, plus deterministic generators and an edge-list reader for building one.
//
// Edges are inserted if absent: adding u→v twice keeps a single entry, and
// neighbors keep insertion order. Building is guarded by an RWMutex, so
// goroutines may add edges concurrently; traversals only read and expect the
// graph to stay unchanged while they run.
//
// Errors:
//
//	ErrVertexOutOfRange    - an endpoint is not in [0, VertexCount).
//	ErrNegativeVertexCount - New was asked for fewer than zero vertices.
package graph

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Sentinel errors for graph operations.
var (
	// ErrVertexOutOfRange indicates an endpoint outside [0, VertexCount).
	ErrVertexOutOfRange = errors.New("graph: vertex out of range")

	// ErrNegativeVertexCount indicates New was called with n < 0.
	ErrNegativeVertexCount = errors.New("graph: negative vertex count")
)

// Graph is a directed graph with a fixed number of vertices.
type Graph struct {
	mu    sync.RWMutex
	adj   [][]int
	edges int
}

// New returns a graph with n vertices and no edges.
func New(n int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeVertexCount, n)
	}
	return &Graph{adj: make([][]int, n)}, nil
}

// MustNew is New for sizes known to be valid; it panics on n < 0.
func MustNew(n int) *Graph {
	g, err := New(n)
	if err != nil {
		panic(err)
	}
	return g
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

func (g *Graph) inRange(v int) bool {
	return v >= 0 && v < len(g.adj)
}

// AddEdge inserts src→dst unless it is already present.
// Out-of-range endpoints leave the graph untouched and return ErrVertexOutOfRange.
//
// Complexity: O(deg(src)) for the duplicate check.
func (g *Graph) AddEdge(src, dst int) error {
	if !g.inRange(src) || !g.inRange(dst) {
		return fmt.Errorf("%w: edge %d→%d with %d vertices", ErrVertexOutOfRange, src, dst, len(g.adj))
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if slices.Contains(g.adj[src], dst) {
		return nil
	}
	g.adj[src] = append(g.adj[src], dst)
	g.edges++
	return nil
}

// HasEdge reports whether src→dst exists.
func (g *Graph) HasEdge(src, dst int) bool {
	if !g.inRange(src) || !g.inRange(dst) {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Contains(g.adj[src], dst)
}

// Neighbors returns the out-neighbors of v in insertion order, or nil for an
// out-of-range v. The slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(v int) []int {
	if !g.inRange(v) {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.adj[v][:len(g.adj[v]):len(g.adj[v])]
}

// OutDegree returns the number of out-neighbors of v.
func (g *Graph) OutDegree(v int) int {
	return len(g.Neighbors(v))
}

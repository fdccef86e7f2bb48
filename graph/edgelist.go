// SPDX-License-Identifier: MIT
// Package: bedrock/graph
//
// edgelist.go - plain-text edge-list reader and writer.

package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrParse indicates malformed edge-list input.
var ErrParse = errors.New("graph: malformed edge list")

// ReadEdgeList parses a graph from r.
//
// Format: blank lines and lines starting with '#' are ignored; the first
// remaining line holds the vertex count n; every following line holds one
// directed edge "u v" with 0 ≤ u,v < n. Duplicate edges are collapsed.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	var g *Graph
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if g == nil {
			if len(fields) != 1 {
				return nil, fmt.Errorf("%w: line %d: want vertex count, got %q", ErrParse, line, text)
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
			}
			if g, err = New(n); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrParse, line, err)
			}
			continue
		}

		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"u v\", got %q", ErrParse, line, text)
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		if err := g.AddEdge(u, v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadEdgeList: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: missing vertex count", ErrParse)
	}
	return g, nil
}

// WriteEdgeList writes g in the format read by ReadEdgeList, edges ordered by
// source vertex then insertion order.
func WriteEdgeList(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", g.VertexCount())
	for u := 0; u < g.VertexCount(); u++ {
		for _, v := range g.Neighbors(u) {
			fmt.Fprintf(bw, "%d %d\n", u, v)
		}
	}
	return bw.Flush()
}

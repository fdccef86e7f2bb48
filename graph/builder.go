// SPDX-License-Identifier: MIT
// Package: bedrock/graph
//
// builder.go - deterministic topology generators.
//
// Design contract:
//   - One orchestrator: Build(opts, cons...). Each Constructor owns a disjoint,
//     contiguous block of vertex ids; blocks are laid out in argument order.
//   - Constructors validate parameters and return sentinel errors; never panic.
//   - Determinism: same constructors, order and seed give identical graphs.

package graph

import (
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors for the generators.
var (
	// ErrTooFewVertices indicates a topology was requested below its minimum size.
	ErrTooFewVertices = errors.New("graph: too few vertices")

	// ErrInvalidProbability indicates an edge probability outside [0,1].
	ErrInvalidProbability = errors.New("graph: probability out of range")

	// ErrInvalidDegree indicates an out-degree outside [0, n).
	ErrInvalidDegree = errors.New("graph: out-degree out of range")

	// ErrNilConstructor indicates a nil Constructor was passed to Build.
	ErrNilConstructor = errors.New("graph: nil constructor")
)

// BuilderOption customizes Build.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	rng        *rand.Rand
	undirected bool
}

// WithSeed seeds the RNG used by stochastic constructors.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithUndirected mirrors every generated edge (u→v also adds v→u).
func WithUndirected() BuilderOption {
	return func(c *builderConfig) { c.undirected = true }
}

// Constructor lays out a topology on the block [base, base+Size()) of a graph.
type Constructor struct {
	size  int
	build func(g *Graph, base int, cfg builderConfig) error
}

// Size returns the number of vertices the constructor occupies.
func (c *Constructor) Size() int { return c.size }

// Build allocates a graph with the summed size of cons and applies each
// constructor to its own block. Separate constructors are never connected,
// so Build(nil, Complete(5), Complete(5)) yields two disjoint cliques.
func Build(opts []BuilderOption, cons ...*Constructor) (*Graph, error) {
	cfg := builderConfig{rng: rand.New(rand.NewSource(1))}
	for _, opt := range opts {
		opt(&cfg)
	}

	total := 0
	for i, c := range cons {
		if c == nil {
			return nil, fmt.Errorf("Build: index %d: %w", i, ErrNilConstructor)
		}
		total += c.size
	}
	g := MustNew(total)

	base := 0
	for _, c := range cons {
		if err := c.build(g, base, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		base += c.size
	}
	return g, nil
}

// link adds u→v (and v→u when undirected) with block-relative ids.
func link(g *Graph, base int, cfg builderConfig, u, v int) error {
	if err := g.AddEdge(base+u, base+v); err != nil {
		return err
	}
	if cfg.undirected {
		return g.AddEdge(base+v, base+u)
	}
	return nil
}

func invalid(method string, n, minN int) *Constructor {
	return &Constructor{build: func(*Graph, int, builderConfig) error {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, minN, ErrTooFewVertices)
	}}
}

// Isolated adds n vertices with no edges (n ≥ 1).
func Isolated(n int) *Constructor {
	if n < 1 {
		return invalid("Isolated", n, 1)
	}
	return &Constructor{size: n, build: func(*Graph, int, builderConfig) error { return nil }}
}

// Path adds the chain 0→1→…→n-1 (n ≥ 2).
func Path(n int) *Constructor {
	if n < 2 {
		return invalid("Path", n, 2)
	}
	return &Constructor{size: n, build: func(g *Graph, base int, cfg builderConfig) error {
		for i := 0; i+1 < n; i++ {
			if err := link(g, base, cfg, i, i+1); err != nil {
				return err
			}
		}
		return nil
	}}
}

// Cycle adds the ring 0→1→…→n-1→0 (n ≥ 3).
func Cycle(n int) *Constructor {
	if n < 3 {
		return invalid("Cycle", n, 3)
	}
	return &Constructor{size: n, build: func(g *Graph, base int, cfg builderConfig) error {
		for i := 0; i < n; i++ {
			if err := link(g, base, cfg, i, (i+1)%n); err != nil {
				return err
			}
		}
		return nil
	}}
}

// Star adds a center 0 with edges to leaves 1..n-1 (n ≥ 2).
func Star(n int) *Constructor {
	if n < 2 {
		return invalid("Star", n, 2)
	}
	return &Constructor{size: n, build: func(g *Graph, base int, cfg builderConfig) error {
		for i := 1; i < n; i++ {
			if err := link(g, base, cfg, 0, i); err != nil {
				return err
			}
		}
		return nil
	}}
}

// Complete adds every ordered pair u→v, u≠v (n ≥ 1).
func Complete(n int) *Constructor {
	if n < 1 {
		return invalid("Complete", n, 1)
	}
	return &Constructor{size: n, build: func(g *Graph, base int, _ builderConfig) error {
		for u := 0; u < n; u++ {
			for v := 0; v < n; v++ {
				if u == v {
					continue
				}
				if err := g.AddEdge(base+u, base+v); err != nil {
					return err
				}
			}
		}
		return nil
	}}
}

// Grid adds a rows×cols lattice in row-major order with right and down edges
// (both dimensions ≥ 1).
func Grid(rows, cols int) *Constructor {
	if rows < 1 || cols < 1 {
		return invalid("Grid", min(rows, cols), 1)
	}
	return &Constructor{size: rows * cols, build: func(g *Graph, base int, cfg builderConfig) error {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				id := r*cols + c
				if c+1 < cols {
					if err := link(g, base, cfg, id, id+1); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := link(g, base, cfg, id, id+cols); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}}
}

// RandomSparse includes each ordered pair u→v (u≠v) independently with
// probability p, trying pairs in (u asc, v asc) order (n ≥ 1, 0 ≤ p ≤ 1).
func RandomSparse(n int, p float64) *Constructor {
	if n < 1 {
		return invalid("RandomSparse", n, 1)
	}
	if p < 0 || p > 1 {
		return &Constructor{build: func(*Graph, int, builderConfig) error {
			return fmt.Errorf("RandomSparse: p=%.6f not in [0,1]: %w", p, ErrInvalidProbability)
		}}
	}
	return &Constructor{size: n, build: func(g *Graph, base int, cfg builderConfig) error {
		for u := 0; u < n; u++ {
			for v := 0; v < n; v++ {
				if u == v {
					continue
				}
				if cfg.rng.Float64() < p {
					if err := link(g, base, cfg, u, v); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}}
}

// RandomOutDegree gives every vertex d out-edges to uniformly drawn distinct
// targets (n ≥ 2, 0 ≤ d < n). It scales to large n where RandomSparse's
// quadratic pair scan does not.
func RandomOutDegree(n, d int) *Constructor {
	if n < 2 {
		return invalid("RandomOutDegree", n, 2)
	}
	if d < 0 || d >= n {
		return &Constructor{build: func(*Graph, int, builderConfig) error {
			return fmt.Errorf("RandomOutDegree: d=%d not in [0,%d): %w", d, n, ErrInvalidDegree)
		}}
	}
	return &Constructor{size: n, build: func(g *Graph, base int, cfg builderConfig) error {
		for u := 0; u < n; u++ {
			// mirrored edges from earlier vertices count towards d
			for g.OutDegree(base+u) < d {
				v := cfg.rng.Intn(n)
				if v == u || g.HasEdge(base+u, base+v) {
					continue
				}
				if err := link(g, base, cfg, u, v); err != nil {
					return err
				}
			}
		}
		return nil
	}}
}

// SPDX-License-Identifier: MIT
// Package: bedrock/cmd/bedrock
//
// bench.go - sequential vs parallel timing on a generated graph.

package main

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bedrock/bfs"
	"github.com/katalvlaran/bedrock/graph"
)

type benchFlags struct {
	vertices int
	degree   int
	seed     int64
	start    int
	sessions int
}

func newBenchCmd(a *app) *cobra.Command {
	f := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time sequential and parallel BFS on a random graph",
		Long: `bench generates a directed graph in which every vertex has --degree
random out-edges, runs the sequential reference traversal once, then runs
--sessions parallel traversals concurrently on one shared pool and checks
that every parallel result matches the reference depths.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, a, f)
		},
	}
	cmd.Flags().IntVar(&f.vertices, "vertices", 100_000, "number of vertices")
	cmd.Flags().IntVar(&f.degree, "degree", 4, "out-edges per vertex")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "generator seed")
	cmd.Flags().IntVar(&f.start, "start", 0, "start vertex")
	cmd.Flags().IntVar(&f.sessions, "sessions", 1, "concurrent parallel traversals")
	return cmd
}

func runBench(cmd *cobra.Command, a *app, f *benchFlags) error {
	if f.sessions < 1 {
		return fmt.Errorf("bench: --sessions must be >= 1, got %d", f.sessions)
	}
	out := cmd.OutOrStdout()

	began := time.Now()
	g, err := graph.Build([]graph.BuilderOption{graph.WithSeed(f.seed)}, graph.RandomOutDegree(f.vertices, f.degree))
	if err != nil {
		return err
	}
	a.logger.Debug("graph generated",
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()),
		slog.Duration("elapsed", time.Since(began)),
	)

	began = time.Now()
	want, err := bfs.BFS(g, f.start)
	if err != nil {
		return err
	}
	seqElapsed := time.Since(began)
	fmt.Fprintf(out, "graph: %d vertices, %d edges\n", g.VertexCount(), g.EdgeCount())
	fmt.Fprintf(out, "sequential: visited=%d levels=%d elapsed=%s\n", want.Count(), len(want.Levels), seqElapsed)

	p, stop := a.startPool()
	defer stop()
	par := bfs.NewParallel(p, bfs.WithLogger(a.logger))

	eg, ctx := errgroup.WithContext(cmd.Context())
	elapsed := make([]time.Duration, f.sessions)
	began = time.Now()
	for i := range f.sessions {
		eg.Go(func() error {
			t0 := time.Now()
			got, err := par.Traverse(ctx, g, f.start)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			elapsed[i] = time.Since(t0)
			if !slices.Equal(want.Depth, got.Depth) {
				return fmt.Errorf("session %d: depths differ from the sequential traversal", i)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	wall := time.Since(began)

	mean := wall
	if f.sessions > 1 {
		var sum time.Duration
		for _, d := range elapsed {
			sum += d
		}
		mean = sum / time.Duration(f.sessions)
	}
	fmt.Fprintf(out, "parallel: workers=%d sessions=%d wall=%s mean=%s\n", p.Workers(), f.sessions, wall, mean)
	if mean > 0 {
		fmt.Fprintf(out, "speedup: %.2fx\n", float64(seqElapsed)/float64(mean))
	}
	return nil
}

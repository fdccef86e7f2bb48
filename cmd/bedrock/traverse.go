// SPDX-License-Identifier: MIT
// Package: bedrock/cmd/bedrock
//
// traverse.go - BFS over an edge-list file.

package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bedrock/bfs"
	"github.com/katalvlaran/bedrock/graph"
)

type traverseFlags struct {
	start      int
	maxDepth   int
	sequential bool
	levels     bool
}

func newTraverseCmd(a *app) *cobra.Command {
	f := &traverseFlags{}
	cmd := &cobra.Command{
		Use:   "traverse <edge-list|->",
		Short: "Run BFS over a graph read from an edge-list file",
		Long: `traverse reads a graph in edge-list format (a vertex count line, then
one "src dst" pair per line, # for comments; "-" reads stdin) and prints
the size of every BFS level from --start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraverse(cmd, a, f, args[0])
		},
	}
	cmd.Flags().IntVar(&f.start, "start", 0, "start vertex")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "stop after this depth (0 = unlimited)")
	cmd.Flags().BoolVar(&f.sequential, "sequential", false, "use the single-goroutine traversal")
	cmd.Flags().BoolVar(&f.levels, "print-levels", false, "print the vertices of every level")
	return cmd
}

func runTraverse(cmd *cobra.Command, a *app, f *traverseFlags, path string) error {
	g, err := readGraph(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	opts := []bfs.Option{bfs.WithMaxDepth(f.maxDepth), bfs.WithLogger(a.logger)}
	var res *bfs.Result
	if f.sequential {
		res, err = bfs.BFS(g, f.start, opts...)
	} else {
		p, stop := a.startPool()
		defer stop()
		res, err = bfs.NewParallel(p, opts...).Traverse(cmd.Context(), g, f.start)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for d, lv := range res.Levels {
		if f.levels {
			fmt.Fprintf(out, "depth %d: %v\n", d, slices.Sorted(slices.Values(lv)))
			continue
		}
		fmt.Fprintf(out, "depth %d: %d vertices\n", d, len(lv))
	}
	fmt.Fprintf(out, "visited %d of %d vertices\n", res.Count(), g.VertexCount())
	return nil
}

func readGraph(stdin io.Reader, path string) (*graph.Graph, error) {
	if path == "-" {
		return graph.ReadEdgeList(stdin)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return graph.ReadEdgeList(fh)
}

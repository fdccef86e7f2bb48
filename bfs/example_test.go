package bfs_test

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/bedrock/bfs"
	"github.com/katalvlaran/bedrock/graph"
	"github.com/katalvlaran/bedrock/pool"
)

// ExampleBFS demonstrates layering on a 3×3 grid with right and down edges.
func ExampleBFS() {
	g, _ := graph.Build(nil, graph.Grid(3, 3))

	res, err := bfs.BFS(g, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for d, lv := range res.Levels {
		fmt.Println(d, lv)
	}
	// Output:
	// 0 [0]
	// 1 [1 3]
	// 2 [2 4 6]
	// 3 [5 7]
	// 4 [8]
}

// ExampleParallel_Traverse runs the parallel traversal on a shared pool.
// Order within a level depends on scheduling, so levels are sorted here.
func ExampleParallel_Traverse() {
	p := pool.New(4)
	defer p.Shutdown()

	g, _ := graph.Build([]graph.BuilderOption{graph.WithUndirected()},
		graph.Star(6), graph.Path(3))

	res, err := bfs.NewParallel(p).Traverse(context.Background(), g, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for d, lv := range res.Levels {
		fmt.Println(d, slices.Sorted(slices.Values(lv)))
	}
	fmt.Println("reached:", res.Count(), "path block reached:", res.Reached(6))
	// Output:
	// 0 [0]
	// 1 [1 2 3 4 5]
	// reached: 6 path block reached: false
}

// ExampleWithMaxDepth stops after the first hop.
func ExampleWithMaxDepth() {
	g, _ := graph.Build(nil, graph.Path(5))

	res, _ := bfs.BFS(g, 0, bfs.WithMaxDepth(1))
	fmt.Println(res.Order, res.Depth)
	// Output:
	// [0 1] [0 1 -1 -1 -1]
}

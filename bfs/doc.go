// Package bfs provides breadth-first search over integer-indexed graphs,
// sequentially and level-synchronously on a shared worker pool.
//
// What
//
//   - Explore every vertex reachable from a start vertex in non-decreasing
//     distance (edge count).
//   - Returns a Result containing:
//
//	    Order    reached vertices, level by level
//	    Levels   the frontier of each depth
//	    Depth    distance of every vertex, -1 if unreached
//	    Visited  the reached set as a roaring bitmap
//
//   - Honors MaxDepth (d>0) or explicit "no limit" (d==0).
//   - Calls an optional OnLevel hook with each frontier before it is expanded.
//
// Parallel traversal
//
//	Parallel processes one level at a time. The frontier is split into
//	ceil(len/workers) contiguous chunks, each submitted to the pool as one
//	task. A chunk claims a neighbor by compare-and-swapping its visited flag,
//	so every vertex enters exactly one next frontier exactly once. Each chunk
//	merges its local discoveries into the shared next frontier under a single
//	lock acquisition and then signals the level barrier; the driver waits for
//	all chunks before swapping frontiers. Level membership is therefore exact,
//	while the order inside a level depends on scheduling.
//
// Errors
//
//	Invalid input (nil graph, start outside [0,n), negative MaxDepth) is
//	reported with a sentinel error before any vertex is marked. A pool that
//	is shut down mid-traversal yields ErrPoolStopped instead of a hang, and a
//	panicking Graph yields ErrChunkPanic.
//
// Complexity (V = |Vertices|, E = |Edges|, P = workers)
//
//   - Time:   O(V + E) total work, O((V + E) / P + L) span for L levels
//   - Memory: O(V) for flags, frontiers and the result
//
// Usage
//
//	p := pool.New(runtime.NumCPU())
//	defer p.Shutdown()
//
//	res, err := bfs.NewParallel(p, bfs.WithMaxDepth(3)).Traverse(ctx, g, 0)
//	if err != nil {
//	    // ErrGraphNil, ErrStartOutOfRange, ErrOptionViolation,
//	    // ErrPoolNil, ErrPoolStopped or ErrChunkPanic
//	}
//	fmt.Println(res.Count(), res.Depth[7])
//
// See the package examples for runnable snippets.
package bfs

// Package bedrock is a small concurrency toolkit and the level-synchronous
// parallel breadth-first search built on top of it.
//
// What is in the box?
//
//	Leaves first, each package only depends on the ones above it:
//		• mutex     : a value paired with its lock; access only through a Guard
//		• queue     : unbounded blocking FIFO with Running/Stopped/ForceStopped
//		• waitgroup : counting barrier with checked Add/Done
//		• pool      : fixed worker pool over one queue, Prometheus-instrumented
//		• visited   : cache-line padded atomic flags for race-free marking
//		• graph     : integer-indexed adjacency lists, generators, edge lists
//		• bfs       : sequential reference BFS and the pooled parallel BFS
//		• config    : YAML + environment configuration for the command
//
// How a level runs
//
//	frontier ──split──▶ chunk₀ … chunkₖ ──pool──▶ CAS visited flags
//	                                              │
//	next ◀──merge under mutex── local buffers ◀───┘
//	      ◀──waitgroup.Wait: all chunks done, swap frontiers
//
// The bedrock command (cmd/bedrock) benchmarks the parallel traversal against
// the sequential one on generated graphs and runs BFS over edge-list files.
//
//	go install github.com/katalvlaran/bedrock/cmd/bedrock@latest
package bedrock

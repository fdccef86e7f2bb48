// SPDX-License-Identifier: MIT
// Package: bedrock/cmd/bedrock
//
// main.go - entry point of the bedrock command.

// Command bedrock benchmarks and runs breadth-first traversals on the
// bedrock worker pool.
//
//	bedrock bench --vertices 1000000 --degree 4 --sessions 4
//	bedrock traverse graph.txt --start 0 --max-depth 3
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

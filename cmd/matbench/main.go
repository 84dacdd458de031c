// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

// matbench benchmarks and exercises the fork-join matrix multiplication
// engine.
//
// Usage:
//
//	matbench run --sizes 500,1000 --threads 1,2,4,8
//	matbench run --config sweep.yaml --format yaml
//	matbench multiply --m 1024 --k 512 --n 768 --threads 8 --transposed
//	matbench tune --size 1000 --thresholds 32,64,128 --block-sizes 16,32,64
//	matbench layouts --sizes 500,1000 --block-sizes 16,32,64
//	matbench cpuinfo
//
// Every run flag can also come from the config file or from a MATBENCH_
// environment variable, e.g. MATBENCH_THREADS=1,2,4 or MATBENCH_BLOCK_SIZE=64.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

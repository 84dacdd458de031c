// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

// Package matmul multiplies dense float64 matrices in parallel using a
// recursive fork-join partition of the output rows.
//
// The root task covers rows [0, A.Rows()). A task larger than the split
// threshold halves its range at the floor midpoint and joins both halves;
// smaller tasks run a cache-blocked kernel over their rows. Leaf row ranges
// are disjoint, so C is written without locks.
//
// Example usage:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	c, err := matmul.Multiply(a, b, 0) // 0 threads: use GOMAXPROCS
//
//	// Same product with B transposed up front so both operands are
//	// read along rows in the inner loop.
//	c, err = matmul.TransposeAndMultiply(a, b, 8)
//
// Callers that multiply repeatedly should keep one Engine so the worker
// pool is reused:
//
//	eng := matmul.NewEngine(runtime.NumCPU())
//	defer eng.Close()
//	c, err := eng.Multiply(a, b)
//
// The split threshold and block size come from ParamsForSize unless
// overridden with WithParams.
package matmul

// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix provides the dense float64 container used by the matmul
// engine.
//
// Dense stores its elements in a single row-major slice (offset = i*cols + j),
// so a whole row is contiguous and can be handed to a kernel without copying.
// The package also carries the slow but obviously correct reference
// multiplications (MultiplyNaive, MultiplyBLAS) that the parallel engine is
// tested and benchmarked against.
//
// Example usage:
//
//	a, _ := matrix.New(512, 256)
//	a.FillRandom(rand.New(rand.NewPCG(1, 2)))
//	bT := b.Transpose()            // K x N -> N x K, tiled
//	want, _ := a.MultiplyNaive(b)  // O(n^3) oracle
package matrix

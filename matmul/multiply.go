// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "github.com/Wan2729/ConcurretAssignment/matrix"

// Multiply computes C = A * B on a pool of threads workers created for this
// call and closed before it returns. If threads <= 0, uses GOMAXPROCS.
//
//   - A is M x K
//   - B is K x N (or N x K with WithTransposedB)
//   - C is M x N, freshly allocated
//
// Requires A.Cols() == B.Rows() (A.Cols() == B.Cols() when transposed),
// else the error wraps matrix.ErrDimensionMismatch and no task is run.
func Multiply(a, b *matrix.Dense, threads int, opts ...Option) (*matrix.Dense, error) {
	e := NewEngine(threads)
	defer e.Close()
	return e.Multiply(a, b, opts...)
}

// TransposeAndMultiply computes C = A * B with B in standard K x N layout,
// transposing it first so the kernel reads both operands row-wise.
func TransposeAndMultiply(a, b *matrix.Dense, threads int, opts ...Option) (*matrix.Dense, error) {
	e := NewEngine(threads)
	defer e.Close()
	return e.TransposeAndMultiply(a, b, opts...)
}

// MultiplyStrips computes C = A * B by cutting the rows of C into fixed
// strips of RowsPerStrip and spreading them with ParallelFor. It exists to
// compare the static strategy with the adaptive task tree.
func MultiplyStrips(a, b *matrix.Dense, threads int, opts ...Option) (*matrix.Dense, error) {
	e := NewEngine(threads)
	defer e.Close()
	return e.MultiplyStrips(a, b, opts...)
}

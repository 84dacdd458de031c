// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// CheckMulCompatible returns nil when a×b is defined (a.Cols() == b.Rows()).
// It reports ErrNilMatrix for nil operands and ErrDimensionMismatch otherwise.
func CheckMulCompatible(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.cols != b.rows {
		return fmt.Errorf("%dx%d * %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	return nil
}

// MultiplyNaive computes m×other with the textbook i-j-k triple loop.
//
// It is the correctness oracle and the sequential baseline for speedup
// figures, not a hot path. The sum for each output cell is accumulated in
// k order starting from zero.
func (m *Dense) MultiplyNaive(other *Dense) (*Dense, error) {
	if err := CheckMulCompatible(m, other); err != nil {
		return nil, fmt.Errorf("MultiplyNaive: %w", err)
	}
	rows, inner, cols := m.rows, m.cols, other.cols
	out := &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	a, b, c := m.data, other.data, out.data
	for i := range rows {
		aRow := a[i*inner : i*inner+inner]
		cRow := c[i*cols : i*cols+cols]
		for j := range cols {
			var sum float64
			for k, av := range aRow {
				sum += av * b[k*cols+j]
			}
			cRow[j] = sum
		}
	}
	return out, nil
}

// MultiplyBLAS computes m×other with gonum's blas64 Gemm.
// It serves as a second, independently implemented oracle and as the
// "library" baseline in benchmarks.
func (m *Dense) MultiplyBLAS(other *Dense) (*Dense, error) {
	if err := CheckMulCompatible(m, other); err != nil {
		return nil, fmt.Errorf("MultiplyBLAS: %w", err)
	}
	out := &Dense{rows: m.rows, cols: other.cols, data: make([]float64, m.rows*other.cols)}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, m.general(), other.general(), 0, out.general())
	return out, nil
}

// general views m as a blas64.General without copying.
func (m *Dense) general() blas64.General {
	return blas64.General{Rows: m.rows, Cols: m.cols, Stride: m.cols, Data: m.data}
}

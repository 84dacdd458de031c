// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"github.com/Wan2729/ConcurretAssignment/workerpool"
)

// Transpose tuning parameters.
const (
	// TransposeTile is the edge of the square tiles the transpose walks.
	// 32x32 float64 = 8KB per tile, so source and destination tiles fit in L1
	// together and the column-major writes stay inside a few cache lines.
	TransposeTile = 32

	// MinTransposeParallelOps is the minimum element count before
	// TransposeParallel spreads the work over the pool.
	MinTransposeParallelOps = 64 * 64

	// TransposeRowsPerStrip defines how many source rows one parallel unit handles.
	TransposeRowsPerStrip = 64
)

// Transpose returns a new cols×rows matrix with element (j, i) = m(i, j).
func (m *Dense) Transpose() *Dense {
	out := &Dense{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	transposeStrided(m.data, 0, m.rows, m.cols, m.rows, out.data)
	return out
}

// TransposeParallel computes the same result as Transpose, dividing the
// source rows into strips that run on pool. Small matrices are transposed
// on the calling goroutine.
func (m *Dense) TransposeParallel(pool *workerpool.Pool) (*Dense, error) {
	if pool == nil || len(m.data) < MinTransposeParallelOps {
		return m.Transpose(), nil
	}
	out := &Dense{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	numStrips := (m.rows + TransposeRowsPerStrip - 1) / TransposeRowsPerStrip
	err := pool.ParallelFor(numStrips, func(start, end int) {
		for strip := start; strip < end; strip++ {
			rowStart := strip * TransposeRowsPerStrip
			rowEnd := min(rowStart+TransposeRowsPerStrip, m.rows)
			// Strips write disjoint destination columns.
			transposeStrided(m.data, rowStart, rowEnd, m.cols, m.rows, out.data)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transposeStrided transposes source rows [rowStart, rowEnd) of a row-major
// matrix with k columns into dst, whose row stride is dstM.
//
// Source: src[i*k + j]. Dest: dst[j*dstM + i].
func transposeStrided(src []float64, rowStart, rowEnd, k, dstM int, dst []float64) {
	for i0 := rowStart; i0 < rowEnd; i0 += TransposeTile {
		iEnd := min(i0+TransposeTile, rowEnd)
		for j0 := 0; j0 < k; j0 += TransposeTile {
			jEnd := min(j0+TransposeTile, k)
			for i := i0; i < iEnd; i++ {
				srcRow := src[i*k : i*k+k]
				for j := j0; j < jEnd; j++ {
					dst[j*dstM+i] = srcRow[j]
				}
			}
		}
	}
}

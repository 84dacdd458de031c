// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/Wan2729/ConcurretAssignment/matrix"
)

// RowsPerStrip defines how many rows of C one strip covers in
// MultiplyStrips. Tuned for good load balancing while keeping strips large
// enough for cache efficiency.
const RowsPerStrip = 64

// MultiplyStrips is the static row-strip variant of Multiply.
//
// The strip count is fixed up front and ParallelFor hands each worker a
// contiguous run of strips; there is no threshold-driven splitting.
// Params.Threshold is ignored; BlockSize and the layout options apply.
// Each strip is reported to observers as a leaf.
func (e *Engine) MultiplyStrips(a, b *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	o := e.opts.apply(opts)
	rows, cols, err := outputShape(a, b, o.transposed)
	if err != nil {
		return nil, fmt.Errorf("matmul.MultiplyStrips: %w", err)
	}
	c, err := matrix.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("matmul.MultiplyStrips: %w", err)
	}

	params := o.resolve(rows)
	obs := o.observer()
	numStrips := (rows + RowsPerStrip - 1) / RowsPerStrip
	err = e.pool.ParallelFor(numStrips, func(start, end int) {
		for strip := start; strip < end; strip++ {
			rowStart := strip * RowsPerStrip
			rowEnd := min(rowStart+RowsPerStrip, rows)
			obs.OnLeaf(rowStart, rowEnd)
			runKernel(a, b, c, rowStart, rowEnd, params.BlockSize, o.transposed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMultiplyFailed, err)
	}
	return c, nil
}

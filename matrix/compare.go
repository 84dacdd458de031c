// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"math"
)

func checkSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.rows != b.rows || a.cols != b.cols {
		return fmt.Errorf("%dx%d vs %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	return nil
}

// AllClose reports whether |a(i,j) - b(i,j)| <= atol + rtol*|b(i,j)| for every cell.
//
// Parallel and blocked products sum in a different order than the naive
// loop, so results are compared with a tolerance, never bitwise.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if err := checkSameShape(a, b); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}
	for i, av := range a.data {
		bv := b.data[i]
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}
	return true, nil
}

// MaxAbsDiff returns the largest element-wise |a - b|.
func MaxAbsDiff(a, b *Dense) (float64, error) {
	if err := checkSameShape(a, b); err != nil {
		return 0, fmt.Errorf("MaxAbsDiff: %w", err)
	}
	var worst float64
	for i, av := range a.data {
		worst = max(worst, math.Abs(av-b.data[i]))
	}
	return worst, nil
}

// MaxRelDiff returns the largest element-wise |a - b| / max(|b|, 1).
// The floor of 1 keeps cells that should be zero from dominating.
func MaxRelDiff(a, b *Dense) (float64, error) {
	if err := checkSameShape(a, b); err != nil {
		return 0, fmt.Errorf("MaxRelDiff: %w", err)
	}
	var worst float64
	for i, av := range a.data {
		bv := b.data[i]
		worst = max(worst, math.Abs(av-bv)/max(math.Abs(bv), 1))
	}
	return worst, nil
}

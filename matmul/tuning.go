// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "fmt"

// Size breakpoints of the tuning policy, in rows of A.
const (
	smallSize  = 500
	mediumSize = 2000

	smallBlockLimit = 1000
)

// Params holds the partitioning and blocking parameters for one multiply.
//
// They are derived once from the root dimension and passed unchanged to
// every task, so a leaf deep in the tree behaves exactly like the root.
type Params struct {
	// Threshold is the largest row range a task processes without splitting.
	Threshold int
	// BlockSize is the edge of the i/j/k blocks of the kernel.
	BlockSize int
}

// ParamsForSize returns the tuned parameters for an n-row product.
//
//	n <= 500:          Threshold 64
//	500 < n <= 2000:   Threshold 128
//	n > 2000:          Threshold 256
//
//	n <= 1000:         BlockSize 32
//	n > 1000:          BlockSize 64
func ParamsForSize(n int) Params {
	var p Params
	switch {
	case n <= smallSize:
		p.Threshold = 64
	case n <= mediumSize:
		p.Threshold = 128
	default:
		p.Threshold = 256
	}
	if n <= smallBlockLimit {
		p.BlockSize = 32
	} else {
		p.BlockSize = 64
	}
	return p
}

// Sanitize replaces a non-positive Threshold or BlockSize with the value
// ParamsForSize(n) would pick. Valid fields are kept as given.
func (p Params) Sanitize(n int) Params {
	def := ParamsForSize(n)
	if p.Threshold <= 0 {
		p.Threshold = def.Threshold
	}
	if p.BlockSize <= 0 {
		p.BlockSize = def.BlockSize
	}
	return p
}

func (p Params) String() string {
	return fmt.Sprintf("threshold=%d block=%d", p.Threshold, p.BlockSize)
}

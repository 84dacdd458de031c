// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "github.com/Wan2729/ConcurretAssignment/matrix"

// blockedKernel accumulates rows [r0, r1) of C = A * B, B in standard K x N
// layout.
//
// Loops run over i0/j0/k0 blocks of blockSize. For every (i, j) of a block
// a local sum over the block's k range is added into C, so C must be zero
// before the first k block reaches it.
func blockedKernel(a, b, c *matrix.Dense, r0, r1, blockSize int) {
	k, n := a.Cols(), c.Cols()
	ad, bd, cd := a.Data(), b.Data(), c.Data()

	for i0 := r0; i0 < r1; i0 += blockSize {
		iEnd := min(i0+blockSize, r1)
		for j0 := 0; j0 < n; j0 += blockSize {
			jEnd := min(j0+blockSize, n)
			for k0 := 0; k0 < k; k0 += blockSize {
				kEnd := min(k0+blockSize, k)
				for i := i0; i < iEnd; i++ {
					aRow := ad[i*k+k0 : i*k+kEnd]
					cRow := cd[i*n : i*n+n]
					for j := j0; j < jEnd; j++ {
						var sum float64
						bIdx := k0*n + j
						for _, av := range aRow {
							sum += av * bd[bIdx]
							bIdx += n
						}
						cRow[j] += sum
					}
				}
			}
		}
	}
}

// blockedKernelTransposed is blockedKernel for B stored transposed (N x K),
// so the inner loop walks a row of A and a row of B, both contiguous.
func blockedKernelTransposed(a, bT, c *matrix.Dense, r0, r1, blockSize int) {
	k, n := a.Cols(), c.Cols()
	ad, bd, cd := a.Data(), bT.Data(), c.Data()

	for i0 := r0; i0 < r1; i0 += blockSize {
		iEnd := min(i0+blockSize, r1)
		for j0 := 0; j0 < n; j0 += blockSize {
			jEnd := min(j0+blockSize, n)
			for k0 := 0; k0 < k; k0 += blockSize {
				kEnd := min(k0+blockSize, k)
				for i := i0; i < iEnd; i++ {
					aRow := ad[i*k+k0 : i*k+kEnd]
					cRow := cd[i*n : i*n+n]
					for j := j0; j < jEnd; j++ {
						bRow := bd[j*k+k0 : j*k+kEnd]
						bRow = bRow[:len(aRow)]
						var sum float64
						for p, av := range aRow {
							sum += av * bRow[p]
						}
						cRow[j] += sum
					}
				}
			}
		}
	}
}

// runKernel dispatches to the layout-specific kernel.
func runKernel(a, b, c *matrix.Dense, r0, r1, blockSize int, transposed bool) {
	if transposed {
		blockedKernelTransposed(a, b, c, r0, r1, blockSize)
		return
	}
	blockedKernel(a, b, c, r0, r1, blockSize)
}

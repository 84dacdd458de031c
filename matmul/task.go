// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"github.com/Wan2729/ConcurretAssignment/matrix"
	"github.com/Wan2729/ConcurretAssignment/workerpool"
)

// task is the shared, read-only part of every node in the task tree. A
// node is just a row range passed to compute.
type task struct {
	a, b, c    *matrix.Dense
	params     Params
	transposed bool
	observer   Observer
}

// compute processes rows [start, end). Ranges no larger than the threshold
// run the kernel; larger ones split at the floor midpoint and return only
// after both halves are done.
func (t *task) compute(s *workerpool.Scope, start, end int) {
	if end-start <= t.params.Threshold {
		t.observer.OnLeaf(start, end)
		runKernel(t.a, t.b, t.c, start, end, t.params.BlockSize, t.transposed)
		return
	}
	mid := start + (end-start)/2
	t.observer.OnSplit(start, mid, end)
	s.Join(
		func(s *workerpool.Scope) { t.compute(s, start, mid) },
		func(s *workerpool.Scope) { t.compute(s, mid, end) },
	)
}

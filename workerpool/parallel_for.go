// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

// ParallelFor executes fn over [0, n) in contiguous chunks using the pool.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
// The range is halved recursively with Join until a piece is no larger than
// ceil(n / NumWorkers()), so every worker can get one chunk.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		return p.Invoke(func(*Scope) { fn(0, n) })
	}
	chunkSize := (n + workers - 1) / workers

	var split func(s *Scope, start, end int)
	split = func(s *Scope, start, end int) {
		if end-start <= chunkSize {
			fn(start, end)
			return
		}
		mid := (start + end) / 2
		s.Join(
			func(s *Scope) { split(s, start, mid) },
			func(s *Scope) { split(s, mid, end) },
		)
	}
	return p.Invoke(func(s *Scope) { split(s, 0, n) })
}

// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/Wan2729/ConcurretAssignment/matrix"
	"github.com/Wan2729/ConcurretAssignment/workerpool"
)

// Engine multiplies matrices on a worker pool it owns. It is safe for
// concurrent use; concurrent multiplies share the pool's workers.
type Engine struct {
	pool *workerpool.Pool
	opts options
}

// NewEngine creates an Engine with a pool of threads workers.
// If threads <= 0, uses GOMAXPROCS. opts become the defaults of every
// multiply on this Engine; per-call options are applied after them.
func NewEngine(threads int, opts ...Option) *Engine {
	return &Engine{
		pool: workerpool.New(threads),
		opts: options{}.apply(opts),
	}
}

// Workers returns the size of the Engine's pool.
func (e *Engine) Workers() int { return e.pool.NumWorkers() }

// Stats returns the pool's cumulative scheduling counters.
// Forked is the number of subtasks taken by a worker other than their parent.
func (e *Engine) Stats() workerpool.Stats { return e.pool.Stats() }

// Close waits for in-flight multiplies and releases the pool. A closed
// Engine still works, running every multiply on the caller's goroutine.
func (e *Engine) Close() { e.pool.Close() }

// Multiply computes A * B, or A * B^T with WithTransposedB.
//
// Operands are checked before anything is scheduled; a mismatch returns an
// error wrapping matrix.ErrDimensionMismatch. If any task fails the error
// wraps ErrMultiplyFailed and no result is returned.
func (e *Engine) Multiply(a, b *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	o := e.opts.apply(opts)
	rows, cols, err := outputShape(a, b, o.transposed)
	if err != nil {
		return nil, fmt.Errorf("matmul.Multiply: %w", err)
	}

	c, err := matrix.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("matmul.Multiply: %w", err)
	}
	t := &task{
		a:          a,
		b:          b,
		c:          c,
		params:     o.resolve(rows),
		transposed: o.transposed,
		observer:   o.observer(),
	}
	if err := e.pool.Invoke(func(s *workerpool.Scope) { t.compute(s, 0, rows) }); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMultiplyFailed, err)
	}
	return c, nil
}

// TransposeAndMultiply computes A * B by first transposing B (K x N) into
// N x K on the pool and then running the transposed-layout kernel.
func (e *Engine) TransposeAndMultiply(a, b *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.CheckMulCompatible(a, b); err != nil {
		return nil, fmt.Errorf("matmul.TransposeAndMultiply: %w", err)
	}
	bT, err := b.TransposeParallel(e.pool)
	if err != nil {
		return nil, fmt.Errorf("%w: transpose: %w", ErrMultiplyFailed, err)
	}
	return e.Multiply(a, bT, append(opts[:len(opts):len(opts)], WithTransposedB())...)
}

// outputShape validates the operands and returns the shape of the product.
func outputShape(a, b *matrix.Dense, transposed bool) (rows, cols int, err error) {
	if a == nil || b == nil {
		return 0, 0, matrix.ErrNilMatrix
	}
	if !transposed {
		if err := matrix.CheckMulCompatible(a, b); err != nil {
			return 0, 0, err
		}
		return a.Rows(), b.Cols(), nil
	}
	if a.Cols() != b.Cols() {
		return 0, 0, fmt.Errorf("%dx%d * (%dx%d)^T: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), matrix.ErrDimensionMismatch)
	}
	return a.Rows(), b.Rows(), nil
}

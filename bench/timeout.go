// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"fmt"
	"time"
)

// WithTimeout runs fn and returns its result, or an error wrapping
// ErrAborted if ctx is done or d elapses first. d <= 0 means no deadline
// beyond ctx.
//
// The engine has no cancellation, so an aborted fn keeps running in the
// background and its result is dropped.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func() (T, error)) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrAborted, context.Cause(ctx))
	}
}

// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"fmt"
)

// ErrTaskPanicked is returned by Invoke and ParallelFor when any task in the
// tree panicked. The panic value and stack are attached to the error text.
var ErrTaskPanicked = errors.New("workerpool: task panicked")

// PanicError carries the first recovered panic of an invocation.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v\n%s", ErrTaskPanicked, e.Value, e.Stack)
}

// Unwrap lets errors.Is(err, ErrTaskPanicked) match.
func (e *PanicError) Unwrap() error { return ErrTaskPanicked }

// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "errors"

// Every message is prefixed with "matrix: " so the sentinels stay greppable.
// Callers add context with fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	// ErrInvalidDimensions is returned when a requested shape has rows <= 0 or cols <= 0.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrBadShape is returned for ragged or empty row input.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operands, e.g. a.Cols() != b.Rows()
	// for a product or different shapes for a comparison.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense was used as an operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

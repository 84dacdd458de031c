// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package bench

import "errors"

var (
	// ErrAborted is returned when a run did not finish before its timeout or
	// its context was cancelled. The product of that run is discarded.
	ErrAborted = errors.New("bench: run aborted")

	// ErrVerification is returned when a product differs from the reference
	// beyond the configured tolerance.
	ErrVerification = errors.New("bench: result does not match reference")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("bench: invalid config")
)

// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "errors"

// ErrMultiplyFailed reports that a task in the multiplication tree failed.
// The returned error also wraps the underlying cause (typically
// workerpool.ErrTaskPanicked). No part of C is usable after this error.
var ErrMultiplyFailed = errors.New("matmul: multiply failed")

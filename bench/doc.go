// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

// Package bench measures the matmul engine: it sweeps matrix sizes and
// worker counts, derives speedup and efficiency against the single-worker
// run, verifies every product against a reference, and sweeps the split
// threshold and block size for tuning.
//
// Results are returned as a Report that can be printed as a table or YAML;
// nothing is written to disk.
package bench

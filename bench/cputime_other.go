// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

//go:build !unix

package bench

import "time"

const cpuTimeSupported = false

func processCPUTime() time.Duration { return 0 }

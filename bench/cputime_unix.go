// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

//go:build unix

package bench

import (
	"time"

	"golang.org/x/sys/unix"
)

const cpuTimeSupported = true

// processCPUTime returns the user plus system time consumed by this process.
func processCPUTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

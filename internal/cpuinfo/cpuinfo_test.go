// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package cpuinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	info := Detect()

	assert.Equal(t, runtime.GOOS, info.GOOS)
	assert.Equal(t, runtime.GOARCH, info.GOARCH)
	assert.Equal(t, runtime.NumCPU(), info.NumCPU)
	assert.Equal(t, runtime.GOMAXPROCS(0), info.GOMAXPROCS)
	assert.Positive(t, info.CacheLineSize)
	assert.NotEqual(t, "unknown", info.Level)
	assert.GreaterOrEqual(t, info.Float64Lanes(), 1)

	switch runtime.GOARCH {
	case "amd64":
		assert.NotEmpty(t, info.Features)
		assert.NotEqual(t, LevelScalar.String(), info.Level, "SSE2 is the amd64 baseline")
	case "arm64":
		assert.NotEmpty(t, info.Features)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		level Level
		name  string
		width int
	}{
		{LevelScalar, "scalar", 8},
		{LevelSSE2, "sse2", 16},
		{LevelAVX2, "avx2", 32},
		{LevelAVX512, "avx512", 64},
		{LevelNEON, "neon", 16},
		{LevelSVE, "sve", 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.level.String())
		assert.Equal(t, tt.width, tt.level.Width(), tt.name)
	}
	assert.Equal(t, "unknown", Level(99).String())
}

func TestDetectLevelUnknownArch(t *testing.T) {
	assert.Equal(t, LevelScalar, detectLevel("riscv64"))
	assert.Nil(t, features("wasm"))
}

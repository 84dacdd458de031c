// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo reports the processor facts that matter for sizing a
// multiply: how many CPUs the runtime may use, the cache line size and the
// widest vector unit x/sys/cpu detects.
package cpuinfo

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Level is the widest SIMD instruction set the CPU advertises.
type Level int

const (
	LevelScalar Level = iota
	LevelSSE2
	LevelAVX2
	LevelAVX512
	LevelNEON
	LevelSVE
)

func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	case LevelSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// Width returns the register width of the level in bytes.
// SVE is reported at its 128-bit minimum.
func (l Level) Width() int {
	switch l {
	case LevelAVX2:
		return 32
	case LevelAVX512:
		return 64
	case LevelScalar:
		return 8
	default:
		return 16
	}
}

// Feature is one named CPU capability flag.
type Feature struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// Info describes the host.
type Info struct {
	GOOS          string    `yaml:"goos"`
	GOARCH        string    `yaml:"goarch"`
	NumCPU        int       `yaml:"num_cpu"`
	GOMAXPROCS    int       `yaml:"gomaxprocs"`
	CacheLineSize int       `yaml:"cache_line_size"`
	Level         string    `yaml:"simd_level"`
	VectorWidth   int       `yaml:"vector_width"`
	Features      []Feature `yaml:"features,omitempty"`
}

// Float64Lanes is the number of float64 values per vector register.
func (i Info) Float64Lanes() int {
	return max(i.VectorWidth/8, 1)
}

// Detect gathers Info for the running process.
func Detect() Info {
	level := detectLevel(runtime.GOARCH)
	return Info{
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		CacheLineSize: CacheLineSize(),
		Level:         level.String(),
		VectorWidth:   level.Width(),
		Features:      features(runtime.GOARCH),
	}
}

// CacheLineSize returns the cache line size x/sys/cpu pads to on this
// architecture.
func CacheLineSize() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}

func detectLevel(goarch string) Level {
	switch goarch {
	case "amd64":
		switch {
		case cpu.X86.HasAVX512F:
			return LevelAVX512
		case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
			return LevelAVX2
		case cpu.X86.HasSSE2:
			return LevelSSE2
		}
	case "arm64":
		if cpu.ARM64.HasSVE {
			return LevelSVE
		}
		// ASIMD is the arm64 baseline.
		return LevelNEON
	}
	return LevelScalar
}

func features(goarch string) []Feature {
	switch goarch {
	case "amd64":
		return []Feature{
			{"SSE2", cpu.X86.HasSSE2},
			{"SSE41", cpu.X86.HasSSE41},
			{"SSE42", cpu.X86.HasSSE42},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"FMA", cpu.X86.HasFMA},
			{"AVX512F", cpu.X86.HasAVX512F},
			{"AVX512BW", cpu.X86.HasAVX512BW},
			{"AVX512VL", cpu.X86.HasAVX512VL},
		}
	case "arm64":
		return []Feature{
			{"ASIMD", cpu.ARM64.HasASIMD},
			{"FP", cpu.ARM64.HasFP},
			{"ASIMDHP", cpu.ARM64.HasASIMDHP},
			{"SVE", cpu.ARM64.HasSVE},
			{"SVE2", cpu.ARM64.HasSVE2},
			{"ATOMICS", cpu.ARM64.HasATOMICS},
		}
	}
	return nil
}

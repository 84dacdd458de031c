// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/Wan2729/ConcurretAssignment/matmul"
)

// Strategy selects which parallel multiply a run measures.
type Strategy string

const (
	// StrategyForkJoin is the recursive task tree (matmul.Engine.Multiply).
	StrategyForkJoin Strategy = "forkjoin"
	// StrategyStrips is the static row-strip split (matmul.Engine.MultiplyStrips).
	StrategyStrips Strategy = "strips"
)

// Reference selects the oracle products are verified against.
type Reference string

const (
	ReferenceNaive Reference = "naive"
	ReferenceBLAS  Reference = "blas"
	ReferenceNone  Reference = "none"
)

// Config describes a benchmark sweep.
type Config struct {
	Sizes      []int         `mapstructure:"sizes" yaml:"sizes"`
	Threads    []int         `mapstructure:"threads" yaml:"threads"`
	Seed       uint64        `mapstructure:"seed" yaml:"seed"`
	Warmup     int           `mapstructure:"warmup" yaml:"warmup"`
	Repeats    int           `mapstructure:"repeats" yaml:"repeats"`
	Strategy   Strategy      `mapstructure:"strategy" yaml:"strategy"`
	Transposed bool          `mapstructure:"transposed" yaml:"transposed"`
	Reference  Reference     `mapstructure:"reference" yaml:"reference"`
	Tolerance  float64       `mapstructure:"tolerance" yaml:"tolerance"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Threshold and BlockSize override the tuning policy when positive.
	Threshold int `mapstructure:"threshold" yaml:"threshold"`
	BlockSize int `mapstructure:"block_size" yaml:"block_size"`

	// TraceTasks logs every split and leaf at debug level.
	TraceTasks bool `mapstructure:"trace_tasks" yaml:"trace_tasks"`
}

// DefaultConfig returns the sweep used when nothing is configured:
// sizes 500, 1000, 2000 on 1, 2, 4 and GOMAXPROCS workers.
func DefaultConfig() Config {
	return Config{
		Sizes:     []int{500, 1000, 2000},
		Threads:   []int{1, 2, 4, runtime.GOMAXPROCS(0)},
		Seed:      42,
		Warmup:    1,
		Repeats:   3,
		Strategy:  StrategyForkJoin,
		Reference: ReferenceBLAS,
		Tolerance: 1e-9,
	}
}

// Params returns the tuning override, zero fields meaning "use the policy".
func (c Config) Params() matmul.Params {
	return matmul.Params{Threshold: c.Threshold, BlockSize: c.BlockSize}
}

// Normalize returns a copy with thread counts resolved (<= 0 becomes
// GOMAXPROCS), deduplicated and sorted, sizes deduplicated in order, and
// empty enums set to their defaults.
func (c Config) Normalize() Config {
	procs := runtime.GOMAXPROCS(0)
	threads := lo.Map(c.Threads, func(t int, _ int) int {
		if t <= 0 {
			return procs
		}
		return t
	})
	threads = lo.Uniq(threads)
	slices.Sort(threads)
	c.Threads = threads
	c.Sizes = lo.Uniq(c.Sizes)

	if c.Strategy == "" {
		c.Strategy = StrategyForkJoin
	}
	if c.Reference == "" {
		c.Reference = ReferenceBLAS
	}
	if c.Repeats <= 0 {
		c.Repeats = 1
	}
	c.Warmup = max(c.Warmup, 0)
	return c
}

// Validate reports the first problem of a normalized config.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalidConfig)
	}
	if bad, ok := lo.Find(c.Sizes, func(n int) bool { return n <= 0 }); ok {
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, bad)
	}
	if len(c.Threads) == 0 {
		return fmt.Errorf("%w: no thread counts", ErrInvalidConfig)
	}
	if !lo.Contains([]Strategy{StrategyForkJoin, StrategyStrips}, c.Strategy) {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if !lo.Contains([]Reference{ReferenceNaive, ReferenceBLAS, ReferenceNone}, c.Reference) {
		return fmt.Errorf("%w: unknown reference %q", ErrInvalidConfig, c.Reference)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

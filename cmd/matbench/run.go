// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Wan2729/ConcurretAssignment/bench"
)

// runFlags are shared by run, tune and layouts.
var runFlags = []string{
	"threads", "seed", "warmup", "repeats", "strategy", "transposed",
	"reference", "tolerance", "timeout", "trace-tasks",
}

func addRunFlags(cmd *cobra.Command) {
	def := bench.DefaultConfig()
	f := cmd.Flags()
	f.IntSlice("threads", def.Threads, "worker counts (<= 0 means GOMAXPROCS)")
	f.Uint64("seed", def.Seed, "seed for the random inputs")
	f.Int("warmup", def.Warmup, "untimed runs before measuring")
	f.Int("repeats", def.Repeats, "timed runs per configuration")
	f.String("strategy", string(def.Strategy), "forkjoin or strips")
	f.Bool("transposed", false, "transpose B before timing and use the transposed kernel")
	f.String("reference", string(def.Reference), "verification oracle: naive, blas or none")
	f.Float64("tolerance", def.Tolerance, "maximum relative error accepted by verification")
	f.Duration("timeout", 0, "abort a single multiply after this long (0 = never)")
	f.Bool("trace-tasks", false, "log every task split and leaf at debug level")
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep matrix sizes and worker counts",
		PreRun: func(cmd *cobra.Command, _ []string) {
			a.bindFlags(cmd, append(runFlags, "sizes", "threshold", "block-size")...)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.benchConfig()
			if err != nil {
				return err
			}
			r, err := bench.NewRunner(cfg, a.log)
			if err != nil {
				return err
			}
			start := time.Now()
			report, err := r.Run(cmd.Context())
			if err != nil {
				if report != nil && len(report.Results) > 0 {
					_ = a.emit(cmd.OutOrStdout(), report)
				}
				return err
			}
			a.log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("benchmark finished")
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
	addRunFlags(cmd)
	def := bench.DefaultConfig()
	cmd.Flags().IntSlice("sizes", def.Sizes, "square matrix sizes")
	cmd.Flags().Int("threshold", 0, "split threshold override (0 = tuning policy)")
	cmd.Flags().Int("block-size", 0, "kernel block size override (0 = tuning policy)")
	return cmd
}

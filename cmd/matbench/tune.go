// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Wan2729/ConcurretAssignment/bench"
)

func newTuneCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Sweep split thresholds and block sizes at one matrix size",
		PreRun: func(cmd *cobra.Command, _ []string) {
			a.bindFlags(cmd, runFlags...)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.benchConfig()
			if err != nil {
				return err
			}
			size, _ := cmd.Flags().GetInt("size")
			workers, _ := cmd.Flags().GetInt("workers")
			thresholds, _ := cmd.Flags().GetIntSlice("thresholds")
			blockSizes, _ := cmd.Flags().GetIntSlice("block-sizes")
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}
			cfg.Sizes = []int{size}

			r, err := bench.NewRunner(cfg, a.log)
			if err != nil {
				return err
			}
			results, err := r.Tune(cmd.Context(), size, workers, thresholds, blockSizes)
			report := &bench.Report{Config: r.Config(), Tuning: results}
			if err != nil {
				if len(results) > 0 {
					_ = a.emit(cmd.OutOrStdout(), report)
				}
				return err
			}
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
	addRunFlags(cmd)
	f := cmd.Flags()
	f.Int("size", 1000, "square matrix size")
	f.Int("workers", 0, "worker count (0 = GOMAXPROCS)")
	f.IntSlice("thresholds", []int{64, 128, 256, 512}, "split thresholds to try")
	f.IntSlice("block-sizes", []int{16, 32, 64, 128}, "block sizes to try")
	return cmd
}

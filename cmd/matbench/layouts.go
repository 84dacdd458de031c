// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Wan2729/ConcurretAssignment/bench"
)

func newLayoutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Compare the standard and transposed kernels side by side",
		Long: `layouts times the standard kernel and the transposed-B kernel on the
same inputs for every size and block size, and reports the improvement
(standard - transposed) / standard in percent.`,
		PreRun: func(cmd *cobra.Command, _ []string) {
			a.bindFlags(cmd, append(runFlags, "sizes", "threshold")...)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.benchConfig()
			if err != nil {
				return err
			}
			workers, _ := cmd.Flags().GetInt("workers")
			blockSizes, _ := cmd.Flags().GetIntSlice("block-sizes")
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			r, err := bench.NewRunner(cfg, a.log)
			if err != nil {
				return err
			}
			cfg = r.Config()
			results, err := r.CompareLayouts(cmd.Context(), workers, cfg.Sizes, blockSizes)
			report := &bench.Report{Config: cfg, Layouts: results}
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
	def := bench.DefaultConfig()
	f := cmd.Flags()
	f.IntSlice("sizes", def.Sizes, "square matrix sizes")
	f.Int("threshold", 0, "split threshold override (0 = tuning policy)")
	f.Int("workers", 0, "worker count (0 = GOMAXPROCS)")
	f.IntSlice("block-sizes", nil, "block sizes to compare (empty = tuning policy)")
	return cmd
}

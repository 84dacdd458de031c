// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Wan2729/ConcurretAssignment/internal/cpuinfo"
)

func newCPUInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the CPU features relevant to the engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := cpuinfo.Detect()
			out := cmd.OutOrStdout()
			if a.v.GetString("format") == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(info); err != nil {
					return err
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "GOOS:\t%s\n", info.GOOS)
			fmt.Fprintf(tw, "GOARCH:\t%s\n", info.GOARCH)
			fmt.Fprintf(tw, "NumCPU:\t%d\n", info.NumCPU)
			fmt.Fprintf(tw, "GOMAXPROCS:\t%d\n", info.GOMAXPROCS)
			fmt.Fprintf(tw, "Cache line:\t%d bytes\n", info.CacheLineSize)
			fmt.Fprintf(tw, "SIMD level:\t%s (%d bytes, %d float64 lanes)\n", info.Level, info.VectorWidth, info.Float64Lanes())
			for _, feat := range info.Features {
				fmt.Fprintf(tw, "  Has%s:\t%v\n", feat.Name, feat.Enabled)
			}
			return tw.Flush()
		},
	}
}

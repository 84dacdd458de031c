// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/Wan2729/ConcurretAssignment/matmul"
	"github.com/Wan2729/ConcurretAssignment/matrix"
)

func newMultiplyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "Multiply one pair of random matrices and report timing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			m, _ := f.GetInt("m")
			k, _ := f.GetInt("k")
			n, _ := f.GetInt("n")
			threads, _ := f.GetInt("threads")
			seed, _ := f.GetUint64("seed")
			transposed, _ := f.GetBool("transposed")
			strips, _ := f.GetBool("strips")
			verify, _ := f.GetBool("verify")

			x, err := matrix.Random(m, k, seed)
			if err != nil {
				return err
			}
			y, err := matrix.Random(k, n, seed+1)
			if err != nil {
				return err
			}

			counter := &matmul.CountingObserver{}
			eng := matmul.NewEngine(threads, matmul.WithObserver(counter))
			defer eng.Close()

			start := time.Now()
			var c *matrix.Dense
			switch {
			case strips:
				c, err = eng.MultiplyStrips(x, y)
			case transposed:
				c, err = eng.TransposeAndMultiply(x, y)
			default:
				c, err = eng.Multiply(x, y)
			}
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			stats := eng.Stats()
			fields := logrus.Fields{
				"shape":   fmt.Sprintf("%dx%d * %dx%d", m, k, k, n),
				"workers": eng.Workers(),
				"params":  matmul.ParamsForSize(m).String(),
				"elapsed": elapsed,
				"forked":  stats.Forked,
				"tasks":   counter.Counts().Tasks(),
			}
			if verify {
				want, err := x.MultiplyBLAS(y)
				if err != nil {
					return err
				}
				rel, err := matrix.MaxRelDiff(c, want)
				if err != nil {
					return err
				}
				fields["max_rel_err"] = rel
			}
			a.log.WithFields(fields).Info("multiply complete")

			p := message.NewPrinter(a.lang())
			flops := 2 * float64(m) * float64(n) * float64(k)
			p.Fprintf(cmd.OutOrStdout(), "%dx%d result in %v (%.2f GFLOP/s, %d tasks, %d forked)\n",
				c.Rows(), c.Cols(), elapsed.Round(time.Microsecond), flops/elapsed.Seconds()/1e9,
				counter.Counts().Tasks(), stats.Forked)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int("m", 512, "rows of A")
	f.Int("k", 512, "columns of A, rows of B")
	f.Int("n", 512, "columns of B")
	f.Int("threads", 0, "worker count (0 = GOMAXPROCS)")
	f.Uint64("seed", 42, "seed for the random inputs")
	f.Bool("transposed", false, "transpose B first and use the transposed kernel")
	f.Bool("strips", false, "use the static row-strip strategy")
	f.Bool("verify", true, "compare against the gonum BLAS product")
	return cmd
}

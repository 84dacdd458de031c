// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Wan2729/ConcurretAssignment/matrix"
)

// GenerateInputs returns two size×size matrices filled from seed and
// seed+1. The two fills run concurrently.
func GenerateInputs(ctx context.Context, size int, seed uint64) (a, b *matrix.Dense, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = matrix.Random(size, size, seed)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = matrix.Random(size, size, seed+1)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

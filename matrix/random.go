// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "math/rand/v2"

// FillRandom overwrites every element with a uniform sample from [0, 1).
// Pass a seeded generator (e.g. rand.New(rand.NewPCG(s1, s2))) for
// reproducible inputs.
func (m *Dense) FillRandom(rng *rand.Rand) {
	for i := range m.data {
		m.data[i] = rng.Float64()
	}
}

// FillUniform overwrites every element with a uniform sample from [lo, hi).
func (m *Dense) FillUniform(rng *rand.Rand, lo, hi float64) {
	span := hi - lo
	for i := range m.data {
		m.data[i] = lo + rng.Float64()*span
	}
}

// Random returns a rows×cols matrix filled from a PCG generator seeded with seed.
// The same (rows, cols, seed) always yields the same matrix.
func Random(rows, cols int, seed uint64) (*Dense, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	m.FillRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	return m, nil
}

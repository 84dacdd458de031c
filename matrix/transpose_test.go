// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wan2729/ConcurretAssignment/workerpool"
)

// transposeReference is the obvious element-by-element transpose.
func transposeReference(m *Dense) *Dense {
	out, _ := New(m.cols, m.rows)
	for i := range m.rows {
		for j := range m.cols {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

func TestTranspose(t *testing.T) {
	shapes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {3, 5}, {33, 31}, {64, 65}, {100, 3}}
	for _, s := range shapes {
		t.Run(fmt.Sprintf("%dx%d", s[0], s[1]), func(t *testing.T) {
			m, err := Random(s[0], s[1], uint64(s[0]*1000+s[1]))
			require.NoError(t, err)

			got := m.Transpose()
			assert.Equal(t, s[1], got.Rows())
			assert.Equal(t, s[0], got.Cols())
			assert.Equal(t, transposeReference(m).Data(), got.Data())
			assert.Equal(t, m.Data(), got.Transpose().Data(), "double transpose")
		})
	}
}

func TestTransposeParallel(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for _, s := range [][2]int{{2, 3}, {63, 64}, {200, 130}, {257, 33}} {
		t.Run(fmt.Sprintf("%dx%d", s[0], s[1]), func(t *testing.T) {
			m, err := Random(s[0], s[1], 7)
			require.NoError(t, err)

			got, err := m.TransposeParallel(pool)
			require.NoError(t, err)
			assert.Equal(t, m.Transpose().Data(), got.Data())
		})
	}
}

func TestTransposeParallelNilPool(t *testing.T) {
	m, _ := Random(100, 100, 1)
	got, err := m.TransposeParallel(nil)
	require.NoError(t, err)
	assert.Equal(t, m.Transpose().Data(), got.Data())
}

func BenchmarkTranspose(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	for _, size := range []int{256, 1024} {
		m, _ := Random(size, size, 1)
		b.Run(fmt.Sprintf("Serial/%d", size), func(b *testing.B) {
			b.SetBytes(int64(size * size * 8 * 2))
			for b.Loop() {
				m.Transpose()
			}
		})
		b.Run(fmt.Sprintf("Parallel/%d", size), func(b *testing.B) {
			b.SetBytes(int64(size * size * 8 * 2))
			for b.Loop() {
				_, _ = m.TransposeParallel(pool)
			}
		})
	}
}

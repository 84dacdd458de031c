// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
	ctxRow = "Row"
)

// denseErrorf attaches the method name and coordinates to a sentinel.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
//
// The shape is fixed at construction. data always has length rows*cols.
type Dense struct {
	rows, cols int
	data       []float64
}

var _ fmt.Stringer = (*Dense)(nil)

// New creates a rows×cols matrix initialized to zero.
// Returns ErrInvalidDimensions if rows <= 0 or cols <= 0.
func New(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Zeros is New under the name used by the test helpers: a rows×cols zero matrix.
func Zeros(rows, cols int) (*Dense, error) {
	return New(rows, cols)
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// NewFromRows copies a [][]float64 into a new Dense.
// All rows must be non-empty and have the same length, else ErrBadShape.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("NewFromRows: %w", ErrBadShape)
	}
	cols := len(rows[0])
	m, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("NewFromRows: row %d has %d columns, want %d: %w", i, len(r), cols, ErrBadShape)
		}
		copy(m.data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// NewFromData wraps data (not copied) as a rows×cols matrix.
// len(data) must equal rows*cols.
func NewFromData(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewFromData(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewFromData(%d,%d): len(data)=%d: %w", rows, cols, len(data), ErrBadShape)
	}
	return &Dense{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// Shape returns (Rows(), Cols()).
func (m *Dense) Shape() (rows, cols int) { return m.rows, m.cols }

func (m *Dense) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// At returns the element at (row, col), or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	if !m.inBounds(row, col) {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	return m.data[row*m.cols+col], nil
}

// Set stores v at (row, col), or returns ErrOutOfRange.
func (m *Dense) Set(row, col int, v float64) error {
	if !m.inBounds(row, col) {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	m.data[row*m.cols+col] = v
	return nil
}

// Row returns row i as a slice aliasing the backing buffer.
// Writes through the slice are visible in m. Panics if i is out of range:
// this is the unchecked hot-path accessor and a bad index is a programming error.
func (m *Dense) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(denseErrorf(ctxRow, i, 0, ErrOutOfRange))
	}
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// Data returns the row-major backing slice (len == Rows()*Cols()).
// The slice aliases m; kernels use it to avoid per-element bounds checks.
func (m *Dense) Data() []float64 { return m.data }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{rows: m.rows, cols: m.cols, data: cp}
}

// ToRows copies the matrix into a freshly allocated [][]float64.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := range m.rows {
		sb.WriteByte('[')
		for j := range m.cols {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

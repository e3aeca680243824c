package tensor

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major rows×cols array of float64.
//
// Matrices are immutable by convention: every operation in this package
// allocates and returns a new Matrix and never writes to its arguments.
// This is what makes `w = w.Sub(grad)` safe while the old value of w is
// still referenced elsewhere in the same iteration.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("NewMatrix: invalid shape (%d×%d)", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Full returns a rows×cols matrix with every entry set to v.
func Full(rows, cols int, v float64) *Matrix {
	m := NewMatrix(rows, cols)
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

// FromSlice builds a rows×cols matrix from row-major data. The slice is copied.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	if err := (Shape{rows, cols}).Validate(); err != nil {
		return nil, fmt.Errorf("FromSlice: %w", err)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("FromSlice: %d values for shape (%d×%d): %w",
			len(data), rows, cols, ErrDimensionMismatch)
	}
	m := NewMatrix(rows, cols)
	copy(m.data, data)
	return m, nil
}

// FromRows builds a matrix from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d columns, want %d: %w",
				i, len(r), cols, ErrDimensionMismatch)
		}
		copy(m.data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// MustFromRows is FromRows that panics on ragged input. Intended for literals.
func MustFromRows(rows [][]float64) *Matrix {
	return must(FromRows(rows))
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Shape returns {rows, cols}.
func (m *Matrix) Shape() Shape { return Shape{m.rows, m.cols} }

// At returns the entry at (i, j).
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("At: index (%d, %d) out of range for %v", i, j, m.Shape()))
	}
	return m.data[i*m.cols+j]
}

// Data returns the underlying row-major storage.
// WARNING: the slice aliases the matrix; callers must not modify it.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// ToRows returns a copy of the matrix as a slice of rows.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Col returns column j as a new Vector.
func (m *Matrix) Col(j int) *Vector {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("Col: column %d out of range for %v", j, m.Shape()))
	}
	v := NewVector(m.rows)
	for i := 0; i < m.rows; i++ {
		v.data[i] = m.data[i*m.cols+j]
	}
	return v
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := NewMatrix(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Equal reports whether m and o have the same shape and identical entries.
func (m *Matrix) Equal(o *Matrix) bool {
	return m.ApproxEqual(o, 0)
}

// ApproxEqual reports whether m and o have the same shape and every pair of
// entries differs by at most tol.
func (m *Matrix) ApproxEqual(o *Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// Apply returns a new matrix with f applied to every entry.
func (m *Matrix) Apply(f func(float64) float64) *Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// ApplyRows returns a new matrix whose row i is produced by f(dst, src),
// where src is row i of m and dst is the zeroed destination row.
func (m *Matrix) ApplyRows(f func(dst, src []float64)) *Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		lo, hi := i*m.cols, (i+1)*m.cols
		f(out.data[lo:hi], m.data[lo:hi])
	}
	return out
}

// Gather returns the rows of m at the given indices, in order.
// Indices may repeat.
func (m *Matrix) Gather(indices []int) *Matrix {
	out := NewMatrix(len(indices), m.cols)
	for i, r := range indices {
		if r < 0 || r >= m.rows {
			panic(fmt.Sprintf("Gather: row %d out of range for %v", r, m.Shape()))
		}
		copy(out.data[i*m.cols:(i+1)*m.cols], m.data[r*m.cols:(r+1)*m.cols])
	}
	return out
}

// SliceRows returns rows [start, end).
func (m *Matrix) SliceRows(start, end int) *Matrix {
	if start < 0 || end > m.rows || start > end {
		panic(fmt.Sprintf("SliceRows: [%d, %d) out of range for %v", start, end, m.Shape()))
	}
	out := NewMatrix(end-start, m.cols)
	copy(out.data, m.data[start*m.cols:end*m.cols])
	return out
}

// SelectCols returns the listed columns of m, in order.
func (m *Matrix) SelectCols(cols ...int) *Matrix {
	out := NewMatrix(m.rows, len(cols))
	for k, j := range cols {
		if j < 0 || j >= m.cols {
			panic(fmt.Sprintf("SelectCols: column %d out of range for %v", j, m.Shape()))
		}
		for i := 0; i < m.rows; i++ {
			out.data[i*len(cols)+k] = m.data[i*m.cols+j]
		}
	}
	return out
}

// AddBiasCol returns a new matrix with a leading column of 1.0.
func (m *Matrix) AddBiasCol() *Matrix {
	out := NewMatrix(m.rows, m.cols+1)
	for i := 0; i < m.rows; i++ {
		out.data[i*out.cols] = 1.0
		copy(out.data[i*out.cols+1:(i+1)*out.cols], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// RemoveBias drops the first row of a weight matrix. The bias row is not
// connected to any earlier activation, so no error may flow back through it.
func (m *Matrix) RemoveBias() *Matrix {
	if m.rows == 0 {
		panic(fmt.Sprintf("RemoveBias: matrix %v has no bias row", m.Shape()))
	}
	return m.SliceRows(1, m.rows)
}

// String renders small matrices for debugging.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix%v%v", m.Shape(), m.ToRows())
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/descent/internal/tensor"
)

// Matrix is a dense row-major matrix. Operations never modify their operands.
type Matrix = tensor.Matrix

// Vector is a dense 1-D array.
type Vector = tensor.Vector

// Shape represents the dimensions of a matrix or vector.
// Example: Shape{2, 3} is a 2×3 matrix.
type Shape = tensor.Shape

// DimensionError describes an operation applied to incompatible shapes.
type DimensionError = tensor.DimensionError

// ErrDimensionMismatch is wrapped by every shape error.
var ErrDimensionMismatch = tensor.ErrDimensionMismatch

// Construction

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix { return tensor.NewMatrix(rows, cols) }

// Full returns a rows×cols matrix with every entry set to v.
func Full(rows, cols int, v float64) *Matrix { return tensor.Full(rows, cols, v) }

// FromSlice builds a matrix from row-major data.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	return tensor.FromSlice(rows, cols, data)
}

// FromRows builds a matrix from equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) { return tensor.FromRows(rows) }

// MustFromRows is FromRows that panics on ragged input.
func MustFromRows(rows [][]float64) *Matrix { return tensor.MustFromRows(rows) }

// NewVector returns a zero-filled vector of length n.
func NewVector(n int) *Vector { return tensor.NewVector(n) }

// VectorFrom copies values into a new vector.
func VectorFrom(values []float64) *Vector { return tensor.VectorFrom(values) }

// Operations

// Dot computes the matrix product (m×k)·(k×n).
func Dot(a, b *Matrix) (*Matrix, error) { return tensor.Dot(a, b) }

// DotVec computes (m×k)·(k).
func DotVec(a *Matrix, v *Vector) (*Vector, error) { return tensor.DotVec(a, v) }

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) { return tensor.Add(a, b) }

// Sub returns a - b.
func Sub(a, b *Matrix) (*Matrix, error) { return tensor.Sub(a, b) }

// Mul returns the elementwise product.
func Mul(a, b *Matrix) (*Matrix, error) { return tensor.Mul(a, b) }

// Div returns the elementwise quotient.
func Div(a, b *Matrix) (*Matrix, error) { return tensor.Div(a, b) }

// Transpose returns a new cols×rows matrix.
func Transpose(m *Matrix) *Matrix { return tensor.Transpose(m) }

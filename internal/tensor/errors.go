package tensor

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned (wrapped in a *DimensionError) whenever the
// operands of a kernel operation have incompatible shapes.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionError describes a shape-incompatible operation.
type DimensionError struct {
	Op string
	A  Shape
	B  Shape
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %v: %v vs %v", e.Op, ErrDimensionMismatch, e.A, e.B)
}

// Unwrap lets errors.Is match ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func mismatch(op string, a, b Shape) error {
	return &DimensionError{Op: op, A: a.Clone(), B: b.Clone()}
}

// must panics with err if it is non-nil. The method forms of the kernel use it
// so that model code reads like the math; callers at the run boundary recover
// *DimensionError and turn it back into an error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// SameShape returns a *DimensionError for op when a and b differ.
func SameShape(op string, a, b Shape) error {
	if !a.Equal(b) {
		return mismatch(op, a, b)
	}
	return nil
}

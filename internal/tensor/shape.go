package tensor

import "fmt"

// Shape represents the dimensions of a matrix ({rows, cols}) or vector ({n}).
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions >= 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as "(rows×cols)".
func (s Shape) String() string {
	switch len(s) {
	case 1:
		return fmt.Sprintf("(%d)", s[0])
	case 2:
		return fmt.Sprintf("(%d×%d)", s[0], s[1])
	default:
		return fmt.Sprint([]int(s))
	}
}

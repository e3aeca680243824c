package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is the 1-D analogue of Matrix, used for single-output targets,
// predictions and weights. Like Matrix it is immutable by convention.
type Vector struct {
	data []float64
}

// NewVector returns a zero-filled vector of length n.
func NewVector(n int) *Vector {
	if n < 0 {
		panic(fmt.Sprintf("NewVector: invalid length %d", n))
	}
	return &Vector{data: make([]float64, n)}
}

// VectorFrom copies values into a new Vector.
func VectorFrom(values []float64) *Vector {
	v := NewVector(len(values))
	copy(v.data, values)
	return v
}

// FullVector returns a vector of length n with every entry set to x.
func FullVector(n int, x float64) *Vector {
	v := NewVector(n)
	for i := range v.data {
		v.data[i] = x
	}
	return v
}

// Len returns the number of entries.
func (v *Vector) Len() int { return len(v.data) }

// Shape returns {n}.
func (v *Vector) Shape() Shape { return Shape{len(v.data)} }

// At returns entry i.
func (v *Vector) At(i int) float64 { return v.data[i] }

// Data returns the underlying storage.
// WARNING: the slice aliases the vector; callers must not modify it.
func (v *Vector) Data() []float64 { return v.data }

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector { return VectorFrom(v.data) }

// Equal reports whether v and o have identical entries.
func (v *Vector) Equal(o *Vector) bool { return v.ApproxEqual(o, 0) }

// ApproxEqual reports whether every pair of entries differs by at most tol.
func (v *Vector) ApproxEqual(o *Vector, tol float64) bool {
	if len(v.data) != len(o.data) {
		return false
	}
	for i, x := range v.data {
		if math.Abs(x-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// Apply returns a new vector with f applied to every entry.
func (v *Vector) Apply(f func(float64) float64) *Vector {
	out := NewVector(len(v.data))
	for i, x := range v.data {
		out.data[i] = f(x)
	}
	return out
}

// Gather returns the entries at the given indices, in order.
func (v *Vector) Gather(indices []int) *Vector {
	out := NewVector(len(indices))
	for i, j := range indices {
		out.data[i] = v.data[j]
	}
	return out
}

// Slice returns entries [start, end).
func (v *Vector) Slice(start, end int) *Vector {
	return VectorFrom(v.data[start:end])
}

// Sum returns the sum of all entries.
func (v *Vector) Sum() float64 { return floats.Sum(v.data) }

// Mean returns the arithmetic mean. The mean of an empty vector is NaN.
func (v *Vector) Mean() float64 {
	return v.Sum() / float64(len(v.data))
}

// AsColumn returns v as an n×1 matrix.
func (v *Vector) AsColumn() *Matrix {
	m := NewMatrix(len(v.data), 1)
	copy(m.data, v.data)
	return m
}

// Add returns v + o. Panics with *DimensionError on length mismatch.
func (v *Vector) Add(o *Vector) *Vector { return must(AddVec(v, o)) }

// Sub returns v - o. Panics with *DimensionError on length mismatch.
func (v *Vector) Sub(o *Vector) *Vector { return must(SubVec(v, o)) }

// Mul returns the elementwise product. Panics with *DimensionError on length mismatch.
func (v *Vector) Mul(o *Vector) *Vector { return must(MulVec(v, o)) }

// Div returns the elementwise quotient. Panics with *DimensionError on length mismatch.
func (v *Vector) Div(o *Vector) *Vector { return must(DivVec(v, o)) }

// AddScalar returns v + s.
func (v *Vector) AddScalar(s float64) *Vector {
	return v.Apply(func(x float64) float64 { return x + s })
}

// Scale returns v * s.
func (v *Vector) Scale(s float64) *Vector {
	return v.Apply(func(x float64) float64 { return x * s })
}

// DivScalar returns v / s.
func (v *Vector) DivScalar(s float64) *Vector {
	return v.Apply(func(x float64) float64 { return x / s })
}

// Pow raises every entry to p.
func (v *Vector) Pow(p float64) *Vector {
	return v.Apply(func(x float64) float64 { return math.Pow(x, p) })
}

// AddVec returns a + b.
func AddVec(a, b *Vector) (*Vector, error) {
	return zipVec("Add", a, b, func(x, y float64) float64 { return x + y })
}

// SubVec returns a - b.
func SubVec(a, b *Vector) (*Vector, error) {
	return zipVec("Sub", a, b, func(x, y float64) float64 { return x - y })
}

// MulVec returns the elementwise product a ⊙ b.
func MulVec(a, b *Vector) (*Vector, error) {
	return zipVec("Mul", a, b, func(x, y float64) float64 { return x * y })
}

// DivVec returns the elementwise quotient a / b.
func DivVec(a, b *Vector) (*Vector, error) {
	return zipVec("Div", a, b, func(x, y float64) float64 { return x / y })
}

func zipVec(op string, a, b *Vector, f func(x, y float64) float64) (*Vector, error) {
	if len(a.data) != len(b.data) {
		return nil, mismatch(op, a.Shape(), b.Shape())
	}
	out := NewVector(len(a.data))
	for i, x := range a.data {
		out.data[i] = f(x, b.data[i])
	}
	return out, nil
}

// String renders the vector for debugging.
func (v *Vector) String() string {
	return fmt.Sprintf("Vector%v%v", v.Shape(), v.data)
}

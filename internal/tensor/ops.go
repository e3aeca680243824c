package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/descent/internal/parallel"
)

// dotParallelThreshold is the m*k*n work size above which Dot splits the
// output rows across goroutines.
const dotParallelThreshold = 1 << 16

// parallelConfig is read by Dot. It is set once at init and only replaced by
// SetParallelConfig, which is not safe to call concurrently with Dot.
var parallelConfig = parallel.DefaultConfig()

// SetParallelConfig replaces the row-blocking configuration used by Dot and
// returns the previous one.
func SetParallelConfig(cfg parallel.Config) parallel.Config {
	prev := parallelConfig
	parallelConfig = cfg
	return prev
}

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	return zip("Add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
func Sub(a, b *Matrix) (*Matrix, error) {
	return zip("Sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise (Hadamard) product a ⊙ b.
func Mul(a, b *Matrix) (*Matrix, error) {
	return zip("Mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div returns the elementwise quotient a / b.
func Div(a, b *Matrix) (*Matrix, error) {
	return zip("Div", a, b, func(x, y float64) float64 { return x / y })
}

func zip(op string, a, b *Matrix, f func(x, y float64) float64) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, mismatch(op, a.Shape(), b.Shape())
	}
	out := NewMatrix(a.rows, a.cols)
	for i, x := range a.data {
		out.data[i] = f(x, b.data[i])
	}
	return out, nil
}

// Dot computes the matrix product (m×k)·(k×n) → (m×n).
func Dot(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, mismatch("Dot", a.Shape(), b.Shape())
	}
	m, k, n := a.rows, a.cols, b.cols
	out := NewMatrix(m, n)

	cfg := parallelConfig
	if m*k*n < dotParallelThreshold {
		cfg = parallel.Sequential()
	}

	// i-k-j order keeps the inner loop on contiguous rows of b and out.
	// Each output row is owned by exactly one block, so the summation order
	// is the same with or without parallelism.
	parallel.ForBlocks(m, func(start, end int) {
		for i := start; i < end; i++ {
			row := out.data[i*n : (i+1)*n]
			for p := 0; p < k; p++ {
				aip := a.data[i*k+p]
				brow := b.data[p*n : (p+1)*n]
				for j, bpj := range brow {
					row[j] += aip * bpj
				}
			}
		}
	}, cfg)

	return out, nil
}

// DotVec treats a as a linear map: (m×k)·(k) → (m).
func DotVec(a *Matrix, v *Vector) (*Vector, error) {
	if a.cols != len(v.data) {
		return nil, mismatch("DotVec", a.Shape(), v.Shape())
	}
	out := NewVector(a.rows)
	for i := 0; i < a.rows; i++ {
		out.data[i] = floats.Dot(a.data[i*a.cols:(i+1)*a.cols], v.data)
	}
	return out, nil
}

// Transpose returns a new cols×rows matrix. The result never aliases m.
func Transpose(m *Matrix) *Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Add returns m + o. Panics with *DimensionError on shape mismatch.
func (m *Matrix) Add(o *Matrix) *Matrix { return must(Add(m, o)) }

// Sub returns m - o. Panics with *DimensionError on shape mismatch.
func (m *Matrix) Sub(o *Matrix) *Matrix { return must(Sub(m, o)) }

// Mul returns m ⊙ o. Panics with *DimensionError on shape mismatch.
func (m *Matrix) Mul(o *Matrix) *Matrix { return must(Mul(m, o)) }

// Div returns m / o elementwise. Panics with *DimensionError on shape mismatch.
func (m *Matrix) Div(o *Matrix) *Matrix { return must(Div(m, o)) }

// Dot returns m·o. Panics with *DimensionError when inner dimensions differ.
func (m *Matrix) Dot(o *Matrix) *Matrix { return must(Dot(m, o)) }

// DotVec returns m·v. Panics with *DimensionError when m.Cols() != v.Len().
func (m *Matrix) DotVec(v *Vector) *Vector { return must(DotVec(m, v)) }

// T returns the transpose of m.
func (m *Matrix) T() *Matrix { return Transpose(m) }

// AddScalar returns m + s.
func (m *Matrix) AddScalar(s float64) *Matrix {
	return m.Apply(func(x float64) float64 { return x + s })
}

// Scale returns m * s.
func (m *Matrix) Scale(s float64) *Matrix {
	return m.Apply(func(x float64) float64 { return x * s })
}

// DivScalar returns m / s.
func (m *Matrix) DivScalar(s float64) *Matrix {
	return m.Apply(func(x float64) float64 { return x / s })
}

// Pow raises every entry to p.
func (m *Matrix) Pow(p float64) *Matrix {
	return m.Apply(func(x float64) float64 { return math.Pow(x, p) })
}

// Sum returns the sum of all entries.
func (m *Matrix) Sum() float64 { return floats.Sum(m.data) }

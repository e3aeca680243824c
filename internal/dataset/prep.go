package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/descent/internal/tensor"
)

// OneHot encodes integer class labels as rows with a single 1.0.
func OneHot(labels *tensor.Vector, classes int) (*tensor.Matrix, error) {
	out := make([]float64, labels.Len()*classes)
	for i, l := range labels.Data() {
		c := int(l)
		if float64(c) != l || c < 0 || c >= classes {
			return nil, fmt.Errorf("OneHot: label %v at row %d is not a class in [0, %d)", l, i, classes)
		}
		out[i*classes+c] = 1
	}
	return tensor.FromSlice(labels.Len(), classes, out)
}

// Shuffle returns the rows of m in a random order drawn from rng.
func Shuffle(m *tensor.Matrix, rng *rand.Rand) *tensor.Matrix {
	return m.Gather(rng.Perm(m.Rows()))
}

// Split cuts m into rows [0, at) and [at, rows).
func Split(m *tensor.Matrix, at int) (head, tail *tensor.Matrix, err error) {
	if at < 0 || at > m.Rows() {
		return nil, nil, fmt.Errorf("Split: row %d out of range for %v", at, m.Shape())
	}
	return m.SliceRows(0, at), m.SliceRows(at, m.Rows()), nil
}

// Standardize rescales the given columns to zero mean and unit variance.
// Constant columns are only centered.
func Standardize(m *tensor.Matrix, cols ...int) *tensor.Matrix {
	data := append([]float64(nil), m.Data()...)
	n := m.Cols()
	for _, j := range cols {
		mean, std := stat.MeanStdDev(m.Col(j).Data(), nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for i := 0; i < m.Rows(); i++ {
			data[i*n+j] = (data[i*n+j] - mean) / std
		}
	}
	out, err := tensor.FromSlice(m.Rows(), n, data)
	if err != nil {
		panic(err)
	}
	return out
}

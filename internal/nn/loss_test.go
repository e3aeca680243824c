package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/descent/internal/tensor"
)

func TestHalfMSE(t *testing.T) {
	target := tensor.VectorFrom([]float64{2, 4, 6})
	pred := tensor.VectorFrom([]float64{2, 3, 4})

	// ((0)² + (1)² + (2)²) / 3 / 2
	assert.InDelta(t, 5.0/6.0, HalfMSE(target, pred), 1e-12)
}

func TestBinaryCrossEntropy(t *testing.T) {
	target := tensor.VectorFrom([]float64{1, 0})
	pred := tensor.VectorFrom([]float64{0.8, 0.4})

	expected := -(math.Log(0.8) + math.Log(0.6)) / 2
	assert.InDelta(t, expected, BinaryCrossEntropy(target, pred), 1e-12)
}

func TestBinaryCrossEntropy_Saturated(t *testing.T) {
	target := tensor.VectorFrom([]float64{1})
	pred := tensor.VectorFrom([]float64{0})

	assert.True(t, math.IsInf(BinaryCrossEntropy(target, pred), 1))
}

func TestCrossEntropy_PerfectPrediction(t *testing.T) {
	const eps = 1e-12
	target := tensor.MustFromRows([][]float64{{1, 0}, {0, 1}})
	pred := tensor.MustFromRows([][]float64{{1 - eps, eps}, {eps, 1 - eps}})

	assert.InDelta(t, 0.0, CrossEntropy(target, pred), 1e-9)
}

func TestCrossEntropy_Uniform(t *testing.T) {
	target := tensor.MustFromRows([][]float64{{1, 0, 0}, {0, 0, 1}})
	pred := tensor.Full(2, 3, 1.0/3)

	assert.InDelta(t, math.Log(3), CrossEntropy(target, pred), 1e-12)
}

func TestCrossEntropy_DimensionMismatch(t *testing.T) {
	assert.Panics(t, func() {
		CrossEntropy(tensor.NewMatrix(2, 2), tensor.NewMatrix(2, 3))
	})
}

package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeNormal_Shape(t *testing.T) {
	w := HeNormal(rand.New(rand.NewSource(1)), 785, 128)

	assert.Equal(t, 785, w.Rows())
	assert.Equal(t, 128, w.Cols())
}

func TestHeNormal_Variance(t *testing.T) {
	const inDim = 200
	w := HeNormal(rand.New(rand.NewSource(2)), inDim, 500)

	data := w.Data()
	var mean, sq float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for _, v := range data {
		sq += (v - mean) * (v - mean)
	}
	variance := sq / float64(len(data))

	assert.InDelta(t, 0.0, mean, 0.01)
	assert.InDelta(t, 2.0/inDim, variance, 0.1*2.0/inDim)
}

func TestHeNormal_Reproducible(t *testing.T) {
	a := HeNormal(rand.New(rand.NewSource(42)), 3, 4)
	b := HeNormal(rand.New(rand.NewSource(42)), 3, 4)

	assert.True(t, a.Equal(b))
	for _, v := range a.Data() {
		assert.False(t, math.IsNaN(v))
	}
}

func TestOnes(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1, 1}, Ones(2, 2).Data())
	assert.Equal(t, []float64{1, 1, 1}, OnesVector(3).Data())
}

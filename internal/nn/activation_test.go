package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/descent/internal/tensor"
)

func TestSigmoid(t *testing.T) {
	m := tensor.MustFromRows([][]float64{{-2, 0, 2}})
	got := Sigmoid(m)

	expected := []float64{0.1192, 0.5, 0.8808}
	for j, exp := range expected {
		assert.InDelta(t, exp, got.At(0, j), 1e-4)
	}
	assert.InDelta(t, 0.5, SigmoidVec(tensor.VectorFrom([]float64{0})).At(0), 1e-12)
}

func TestSoftmax_RowsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := tensor.NewMatrix(20, 7).Apply(func(float64) float64 { return rng.NormFloat64() * 5 })

	for _, fn := range []func(*tensor.Matrix) *tensor.Matrix{Softmax, SoftmaxStable} {
		p := fn(m)
		for i := 0; i < p.Rows(); i++ {
			var sum float64
			for _, v := range p.Row(i) {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	}
}

func TestSoftmax_PerRow(t *testing.T) {
	m := tensor.MustFromRows([][]float64{{0, 0}, {0, math.Log(3)}})
	p := Softmax(m)

	assert.InDelta(t, 0.5, p.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, p.At(1, 0), 1e-12)
	assert.InDelta(t, 0.75, p.At(1, 1), 1e-12)
}

func TestSoftmax_OverflowIsNotHidden(t *testing.T) {
	m := tensor.MustFromRows([][]float64{{1000, 0}})

	assert.NotPanics(t, func() {
		p := Softmax(m)
		assert.True(t, math.IsNaN(p.At(0, 0)))
	})

	stable := SoftmaxStable(m)
	assert.InDelta(t, 1.0, stable.At(0, 0), 1e-12)
}

func TestReLU(t *testing.T) {
	m := tensor.MustFromRows([][]float64{{-1, 0, 0.5, 3}})
	got := ReLU(m)

	assert.Equal(t, []float64{0, 0, 0.5, 3}, got.Data())
}

func TestStep_MatchesReLUPositivity(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := tensor.NewMatrix(10, 10).Apply(func(float64) float64 {
		if rng.Intn(5) == 0 {
			return 0
		}
		return rng.NormFloat64()
	})

	r, s := ReLU(m).Data(), Step(m).Data()
	for i := range r {
		if r[i] > 0 {
			assert.Equal(t, 1.0, s[i])
		} else {
			assert.Equal(t, 0.0, s[i])
		}
	}
}

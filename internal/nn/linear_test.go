package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/descent/internal/tensor"
)

func TestLinearGrad(t *testing.T) {
	x := tensor.MustFromRows([][]float64{{1, 2}, {1, 4}})
	delta := tensor.MustFromRows([][]float64{{1, 0}, {0, 2}})

	// xᵗ·δ = [[1, 2], [2, 8]] / 2
	got := LinearGrad(x, delta, 2)
	assert.True(t, got.Equal(tensor.MustFromRows([][]float64{{0.5, 1}, {1, 4}})), "got %v", got)
}

func TestLinearGradVec(t *testing.T) {
	x := tensor.MustFromRows([][]float64{{1, 1}, {1, 2}, {1, 3}})
	delta := tensor.VectorFrom([]float64{-1, -1, -1})

	got := LinearGradVec(x, delta, 3)
	assert.Equal(t, []float64{-1, -2}, got.Data())
}

func TestBackpropReLU(t *testing.T) {
	// Next layer: 2 hidden units + bias row -> 1 output.
	w := tensor.MustFromRows([][]float64{{100}, {2}, {3}})
	delta := tensor.MustFromRows([][]float64{{1}, {-1}})
	a := tensor.MustFromRows([][]float64{{0.5, -0.5}, {1, 1}})

	got := BackpropReLU(delta, w, a)

	// Bias weight (100) never contributes; the negative pre-activation is masked.
	expected := tensor.MustFromRows([][]float64{{2, 0}, {-2, -3}})
	assert.True(t, got.Equal(expected), "got %v", got)
}

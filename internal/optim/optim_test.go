package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/tensor"
)

// TestSGD_SimpleUpdate tests a single update step.
func TestSGD_SimpleUpdate(t *testing.T) {
	sgd, err := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	require.NoError(t, err)

	w := tensor.MustFromRows([][]float64{{2.0}})
	grad := tensor.MustFromRows([][]float64{{1.0}})

	got := sgd.Update(w, grad)

	assert.InDelta(t, 1.9, got.At(0, 0), 1e-12)
	assert.Equal(t, 2.0, w.At(0, 0), "update must not modify the old value")
}

func TestSGD_UpdateVec(t *testing.T) {
	sgd, err := optim.NewSGD(optim.SGDConfig{LR: 0.5})
	require.NoError(t, err)

	got := sgd.UpdateVec(tensor.VectorFrom([]float64{1, 1}), tensor.VectorFrom([]float64{2, -2}))
	assert.Equal(t, []float64{0, 2}, got.Data())
}

func TestSGD_Defaults(t *testing.T) {
	sgd, err := optim.NewSGD(optim.SGDConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0.01, sgd.LR())

	_, err = optim.NewSGD(optim.SGDConfig{LR: -1})
	assert.Error(t, err)
}

func TestSGD_ShapeMismatchPanics(t *testing.T) {
	sgd, err := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	require.NoError(t, err)

	assert.Panics(t, func() {
		sgd.Update(tensor.NewMatrix(2, 2), tensor.NewMatrix(2, 3))
	})
}

func TestSGD_ImplementsOptimizer(t *testing.T) {
	var _ optim.Optimizer = &optim.SGD{}
}

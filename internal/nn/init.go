package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/descent/internal/tensor"
)

// HeNormal (He/Kaiming) initialization for weights feeding ReLU units.
//
// Every entry is a standard normal draw scaled by 1/√(inDim/2), i.e. a
// normal distribution with variance 2/inDim.
//
// Parameters:
//   - rng: Source of randomness, owned by the caller
//   - inDim: Number of input rows (including the bias row, if any)
//   - outDim: Number of output columns
//
// Returns a fresh inDim×outDim matrix.
func HeNormal(rng *rand.Rand, inDim, outDim int) *tensor.Matrix {
	scale := math.Sqrt(float64(inDim) / 2)
	w := tensor.NewMatrix(inDim, outDim)
	return w.Apply(func(float64) float64 {
		return rng.NormFloat64() / scale
	})
}

// Ones creates a rows×cols matrix filled with ones.
func Ones(rows, cols int) *tensor.Matrix {
	return tensor.Full(rows, cols, 1)
}

// OnesVector creates a vector of length n filled with ones.
func OnesVector(n int) *tensor.Vector {
	return tensor.FullVector(n, 1)
}

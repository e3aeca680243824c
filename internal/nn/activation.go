package nn

import (
	"math"

	"github.com/born-ml/descent/internal/tensor"
)

// SigmoidScalar computes σ(x) = 1 / (1 + exp(-x)).
func SigmoidScalar(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Sigmoid applies σ elementwise to a matrix.
//
// Sigmoid squashes values to the range (0, 1). Saturation to exactly 0 or 1
// is possible for |x| beyond ~37 and is not guarded against here.
func Sigmoid(m *tensor.Matrix) *tensor.Matrix {
	return m.Apply(SigmoidScalar)
}

// SigmoidVec applies σ elementwise to a vector.
func SigmoidVec(v *tensor.Vector) *tensor.Vector {
	return v.Apply(SigmoidScalar)
}

// Softmax normalizes each row independently: exp(x_ij) / Σ_k exp(x_ik).
//
// No max-subtraction is applied, so very large logits overflow to +Inf and
// produce NaN rows. Use SoftmaxStable when inputs are not known to be bounded.
func Softmax(m *tensor.Matrix) *tensor.Matrix {
	return m.ApplyRows(func(dst, src []float64) {
		var sum float64
		for j, x := range src {
			dst[j] = math.Exp(x)
			sum += dst[j]
		}
		for j := range dst {
			dst[j] /= sum
		}
	})
}

// SoftmaxStable is Softmax with the row maximum subtracted before
// exponentiating. Mathematically identical, but finite for any finite input.
func SoftmaxStable(m *tensor.Matrix) *tensor.Matrix {
	return m.ApplyRows(func(dst, src []float64) {
		if len(src) == 0 {
			return
		}
		maxVal := src[0]
		for _, x := range src[1:] {
			maxVal = math.Max(maxVal, x)
		}
		var sum float64
		for j, x := range src {
			dst[j] = math.Exp(x - maxVal)
			sum += dst[j]
		}
		for j := range dst {
			dst[j] /= sum
		}
	})
}

// ReLU applies f(x) = max(0, x) elementwise.
func ReLU(m *tensor.Matrix) *tensor.Matrix {
	return m.Apply(func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		return x
	})
}

// Step is the derivative of ReLU: 0 where x <= 0, 1 elsewhere.
// The non-differentiable point x = 0 maps to 0, the same boundary ReLU uses.
func Step(m *tensor.Matrix) *tensor.Matrix {
	return m.Apply(func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		return 1
	})
}

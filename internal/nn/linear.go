package nn

import (
	"github.com/born-ml/descent/internal/tensor"
)

// Linear is the affine map shared by every layer: y = x·W, where x already
// carries its bias column and W has shape (in+1)×out.
//
// The functions below are stateless; weights are passed in and gradients are
// returned so that the caller stays the sole owner of the parameters.
func Linear(x, w *tensor.Matrix) *tensor.Matrix {
	return x.Dot(w)
}

// LinearGrad returns the averaged weight gradient xᵗ·δ / n, where x is the
// (bias-augmented) layer input and δ the error at the layer output.
func LinearGrad(x, delta *tensor.Matrix, n int) *tensor.Matrix {
	return x.T().Dot(delta).DivScalar(float64(n))
}

// LinearGradVec is LinearGrad for single-output layers: xᵗ·δ / n.
func LinearGradVec(x *tensor.Matrix, delta *tensor.Vector, n int) *tensor.Vector {
	return x.T().DotVec(delta).DivScalar(float64(n))
}

// BackpropReLU carries the error δ of the next layer back through its
// weights w and through a ReLU whose pre-activation was a:
//
//	δ_hidden = step(a) ⊙ (δ · removeBias(w)ᵗ)
//
// The bias row of w is dropped because the bias input has no upstream unit.
func BackpropReLU(delta, w, a *tensor.Matrix) *tensor.Matrix {
	return Step(a).Mul(delta.Dot(w.RemoveBias().T()))
}

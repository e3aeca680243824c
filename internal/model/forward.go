package model

import (
	"github.com/born-ml/descent/internal/nn"
	"github.com/born-ml/descent/internal/tensor"
)

// Output is the result of a forward pass. Vec holds predictions for
// vector-target kinds, Mat holds class probabilities for the others.
// The cached activations are what Backward needs.
type Output struct {
	Vec *tensor.Vector
	Mat *tensor.Matrix

	inputs []*tensor.Matrix // bias-augmented input of each layer
	pre    []*tensor.Matrix // pre-activation of each hidden layer
}

// Forward runs the model on x (which already carries its bias column).
//
// Panics with *tensor.DimensionError if x or p do not fit the topology;
// callers validate with CheckBatch and CheckParams first.
func (t Topology) Forward(p Params, x *tensor.Matrix) Output {
	switch t.Kind {
	case Linear:
		return Output{Vec: x.DotVec(p.W), inputs: []*tensor.Matrix{x}}
	case BinaryLogistic:
		return Output{Vec: nn.SigmoidVec(x.DotVec(p.W)), inputs: []*tensor.Matrix{x}}
	}

	out := Output{
		inputs: make([]*tensor.Matrix, 0, len(p.Layers)),
		pre:    make([]*tensor.Matrix, 0, len(p.Layers)-1),
	}
	h := x
	last := len(p.Layers) - 1
	for _, w := range p.Layers[:last] {
		out.inputs = append(out.inputs, h)
		a := nn.Linear(h, w)
		out.pre = append(out.pre, a)
		h = nn.ReLU(a).AddBiasCol()
	}
	out.inputs = append(out.inputs, h)
	out.Mat = t.softmax(nn.Linear(h, p.Layers[last]))
	return out
}

func (t Topology) softmax(m *tensor.Matrix) *tensor.Matrix {
	if t.StableSoftmax {
		return nn.SoftmaxStable(m)
	}
	return nn.Softmax(m)
}

// Backward returns the batch-averaged gradient of the loss with respect to
// every parameter, computed from p and the cached forward pass out.
//
// For every kind the output error is simply prediction minus target: the
// sigmoid and softmax derivatives cancel against their cross-entropy losses,
// and the linear model's derivative of half MSE is the residual itself.
func (t Topology) Backward(p Params, b Batch, out Output) Params {
	n := b.Rows()
	if t.Kind.VectorTarget() {
		delta := out.Vec.Sub(b.Y)
		return Params{W: nn.LinearGradVec(out.inputs[0], delta, n)}
	}

	grads := make([]*tensor.Matrix, len(p.Layers))
	last := len(p.Layers) - 1
	delta := out.Mat.Sub(b.T)
	grads[last] = nn.LinearGrad(out.inputs[last], delta, n)
	for l := last - 1; l >= 0; l-- {
		delta = nn.BackpropReLU(delta, p.Layers[l+1], out.pre[l])
		grads[l] = nn.LinearGrad(out.inputs[l], delta, n)
	}
	return Params{Layers: grads}
}

// Loss scores a forward pass against the batch targets.
func (t Topology) Loss(b Batch, out Output) float64 {
	switch t.Kind {
	case Linear:
		return nn.HalfMSE(b.Y, out.Vec)
	case BinaryLogistic:
		return nn.BinaryCrossEntropy(b.Y, out.Vec)
	default:
		return nn.CrossEntropy(b.T, out.Mat)
	}
}

// Accuracy returns the classification accuracy of a forward pass. The second
// result is false for kinds where accuracy is not defined.
func (t Topology) Accuracy(b Batch, out Output) (float64, bool) {
	switch t.Kind {
	case Linear:
		return 0, false
	case BinaryLogistic:
		return nn.BinaryAccuracy(b.Y, out.Vec), true
	default:
		return nn.Accuracy(b.T, out.Mat), true
	}
}

// Evaluate runs a forward pass on b and scores it.
func (t Topology) Evaluate(p Params, b Batch) (loss, acc float64, hasAcc bool) {
	out := t.Forward(p, b.X)
	acc, hasAcc = t.Accuracy(b, out)
	return t.Loss(b, out), acc, hasAcc
}

// Predict returns one value per row of x: the regression output for Linear,
// a 0/1 label for BinaryLogistic and the arg-max class index otherwise.
func (t Topology) Predict(p Params, x *tensor.Matrix) *tensor.Vector {
	out := t.Forward(p, x)
	switch t.Kind {
	case Linear:
		return out.Vec
	case BinaryLogistic:
		return out.Vec.Apply(func(v float64) float64 {
			if v <= 0.5 {
				return 0
			}
			return 1
		})
	}
	labels := make([]float64, out.Mat.Rows())
	for i := range labels {
		labels[i] = float64(nn.ArgMax(out.Mat.Row(i)))
	}
	return tensor.VectorFrom(labels)
}

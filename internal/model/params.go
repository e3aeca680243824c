package model

import (
	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/tensor"
)

// Params is the parameter set of a model. Exactly one field is used:
//   - W for Linear and BinaryLogistic (one weight per input column, bias first)
//   - Layers for MulticlassLogistic (one matrix) and Network (one matrix per
//     hidden layer, then the output layer)
//
// Gradients use the same type and layout.
type Params struct {
	W      *tensor.Vector
	Layers []*tensor.Matrix
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	var out Params
	if p.W != nil {
		out.W = p.W.Clone()
	}
	if p.Layers != nil {
		out.Layers = make([]*tensor.Matrix, len(p.Layers))
		for i, l := range p.Layers {
			out.Layers[i] = l.Clone()
		}
	}
	return out
}

// Step applies one optimizer update to every parameter and returns the new
// set. p and grads are not modified, so all gradients may be computed from
// the same pre-update values.
func (p Params) Step(grads Params, opt optim.Optimizer) Params {
	var out Params
	if p.W != nil {
		out.W = opt.UpdateVec(p.W, grads.W)
	}
	if p.Layers != nil {
		out.Layers = make([]*tensor.Matrix, len(p.Layers))
		for i, l := range p.Layers {
			out.Layers[i] = opt.Update(l, grads.Layers[i])
		}
	}
	return out
}

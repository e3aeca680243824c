// Package optim implements the parameter update rule used by the training loop.
//
// The only optimizer is plain gradient descent:
//
//	θ ← θ − α·g
//
// where g is already averaged over the batch. Updates are pure: a new
// parameter value is returned and the old one is left untouched, so every
// gradient of an iteration can be computed from the same pre-update values.
package optim

import (
	"github.com/born-ml/descent/internal/tensor"
)

// Optimizer produces updated parameter values from gradients.
type Optimizer interface {
	// Update returns the new value of a matrix parameter.
	Update(param, grad *tensor.Matrix) *tensor.Matrix

	// UpdateVec returns the new value of a vector parameter.
	UpdateVec(param, grad *tensor.Vector) *tensor.Vector

	// LR returns the learning rate.
	LR() float64
}

package optim

import (
	"fmt"

	"github.com/born-ml/descent/internal/tensor"
)

// SGD implements vanilla gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Example:
//
//	sgd, err := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	w = sgd.Update(w, grad)
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer. A zero LR selects the default.
func NewSGD(config SGDConfig) (*SGD, error) {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.LR < 0 {
		return nil, fmt.Errorf("NewSGD: learning rate must be positive, got %v", config.LR)
	}
	return &SGD{lr: config.LR}, nil
}

// Update returns param - lr*grad.
// Panics with *tensor.DimensionError when shapes differ.
func (s *SGD) Update(param, grad *tensor.Matrix) *tensor.Matrix {
	return param.Sub(grad.Scale(s.lr))
}

// UpdateVec returns param - lr*grad.
// Panics with *tensor.DimensionError when lengths differ.
func (s *SGD) UpdateVec(param, grad *tensor.Vector) *tensor.Vector {
	return param.Sub(grad.Scale(s.lr))
}

// LR returns the learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

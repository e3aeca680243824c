// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/descent/internal/nn"
	"github.com/born-ml/descent/internal/tensor"
)

// Activations

// Sigmoid applies 1/(1+e^-x) elementwise.
func Sigmoid(m *tensor.Matrix) *tensor.Matrix { return nn.Sigmoid(m) }

// Softmax normalizes each row to a probability distribution.
func Softmax(m *tensor.Matrix) *tensor.Matrix { return nn.Softmax(m) }

// SoftmaxStable is Softmax with the row maximum subtracted first.
func SoftmaxStable(m *tensor.Matrix) *tensor.Matrix { return nn.SoftmaxStable(m) }

// ReLU applies max(0, x) elementwise.
func ReLU(m *tensor.Matrix) *tensor.Matrix { return nn.ReLU(m) }

// Step is the derivative of ReLU: 1 where x > 0, else 0.
func Step(m *tensor.Matrix) *tensor.Matrix { return nn.Step(m) }

// Losses

// HalfMSE returns mean((pred-target)²)/2.
func HalfMSE(target, pred *tensor.Vector) float64 { return nn.HalfMSE(target, pred) }

// BinaryCrossEntropy returns -mean(t·ln(p) + (1-t)·ln(1-p)).
func BinaryCrossEntropy(target, pred *tensor.Vector) float64 {
	return nn.BinaryCrossEntropy(target, pred)
}

// CrossEntropy returns the mean categorical cross-entropy over rows.
func CrossEntropy(target, pred *tensor.Matrix) float64 { return nn.CrossEntropy(target, pred) }

// Metrics

// BinaryAccuracy thresholds predictions at 0.5.
func BinaryAccuracy(target, pred *tensor.Vector) float64 { return nn.BinaryAccuracy(target, pred) }

// Accuracy compares the arg-max column of each row.
func Accuracy(target, pred *tensor.Matrix) float64 { return nn.Accuracy(target, pred) }

// Initializers

// HeNormal draws an inDim×outDim matrix scaled by 1/√(inDim/2).
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	w := nn.HeNormal(rng, 785, 128)
func HeNormal(rng *rand.Rand, inDim, outDim int) *tensor.Matrix {
	return nn.HeNormal(rng, inDim, outDim)
}

// Ones returns a rows×cols matrix of 1.0.
func Ones(rows, cols int) *tensor.Matrix { return nn.Ones(rows, cols) }

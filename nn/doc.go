// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the activations, losses, metrics and initializers
// used by descent's models.
//
// # Overview
//
// This package contains:
//   - Activations: Sigmoid, Softmax, SoftmaxStable, ReLU and its derivative Step
//   - Losses: HalfMSE, BinaryCrossEntropy, CrossEntropy
//   - Metrics: BinaryAccuracy, Accuracy
//   - Initializers: HeNormal, Ones
//
// # Basic Usage
//
//	logits := x.Dot(w)
//	probs := nn.Softmax(logits)
//	loss := nn.CrossEntropy(targets, probs)
//	acc := nn.Accuracy(targets, probs)
//
// Softmax applies no max-shift, so extreme logits overflow to NaN instead of
// failing. Use SoftmaxStable where that matters.
package nn

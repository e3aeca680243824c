// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient-descent update rule.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent, θ ← θ − α·g
//   - Optimizer interface for custom update rules
//
// # Basic Usage
//
//	sgd, err := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	if err != nil {
//	    return err
//	}
//	w = sgd.Update(w, grad)
//
// Updates are pure: the old parameter value is left untouched.
package optim

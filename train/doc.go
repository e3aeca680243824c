// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train trains linear regression, logistic regression and ReLU
// feed-forward networks with plain gradient descent.
//
// # Overview
//
// A Topology describes the model; a Trainer owns its parameters, draws
// mini-batches (networks only) from an injected random source and reports
// progress at a fixed cadence.
//
// # Basic Usage
//
//	top := train.Topology{Kind: train.Network, Inputs: 785, Outputs: 10, Hidden: []int{128}}
//	tr, err := train.New(
//	    train.Config{Iterations: 10000, LearningRate: 0.01, BatchSize: 512},
//	    top,
//	    train.Data{Train: train.Batch{X: x, T: t}, Eval: train.Batch{X: xTest, T: tTest}},
//	    train.WithRand(rand.New(rand.NewSource(1))),
//	    train.WithReporter(train.NewTextReporter(os.Stdout)),
//	)
//	if err != nil {
//	    return err
//	}
//	err = tr.Train(ctx)
//
// Features must already carry the leading bias column (see
// tensor.Matrix.AddBiasCol).
package train

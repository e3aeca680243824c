// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 matrices and vectors that every
// model in descent is built from.
//
// # Overview
//
// The package provides:
//   - Matrix: row-major rows×cols array
//   - Vector: 1-D array for scalar targets and weight vectors
//   - Pure arithmetic: every operation returns a new value
//   - Shape checking through ErrDimensionMismatch
//
// # Basic Usage
//
//	x := tensor.MustFromRows([][]float64{{1, 2}, {3, 4}})
//	w := tensor.Full(2, 1, 0.5)
//
//	y := x.Dot(w)       // (2×1)
//	z := y.Scale(2).T() // (1×2)
//
// # Errors
//
// Package functions such as Dot and Add return a *DimensionError when the
// operand shapes do not fit. The method forms panic with the same error,
// which keeps numerical code readable:
//
//	out, err := tensor.Dot(a, b)
//	if errors.Is(err, tensor.ErrDimensionMismatch) {
//	    ...
//	}
//
// # Parallelism
//
// Large products are split into row blocks across the physical cores. Each
// output row is computed by one goroutine in a fixed order, so results are
// identical to the sequential path.
package tensor

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/descent/tensor"
)

// TestPublicAPI verifies the facade exposes the kernel's behavior.
func TestPublicAPI(t *testing.T) {
	a := tensor.MustFromRows([][]float64{{1, 2}, {3, 4}})
	b := tensor.Full(2, 1, 1)

	got, err := tensor.Dot(a, b)
	if err != nil {
		t.Fatalf("Dot failed: %v", err)
	}
	if !got.Shape().Equal(tensor.Shape{2, 1}) {
		t.Errorf("Shape() = %v, want (2×1)", got.Shape())
	}
	if got.At(0, 0) != 3 || got.At(1, 0) != 7 {
		t.Errorf("Dot = %v, want [[3] [7]]", got)
	}

	_, err = tensor.Dot(a, tensor.NewMatrix(3, 1))
	if !errors.Is(err, tensor.ErrDimensionMismatch) {
		t.Errorf("Dot mismatch error = %v, want ErrDimensionMismatch", err)
	}
	var dimErr *tensor.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Dot mismatch error %T is not a *DimensionError", err)
	}
}

// TestTransposeRoundTrip verifies transpose(transpose(A)) == A.
func TestTransposeRoundTrip(t *testing.T) {
	a := tensor.MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if !tensor.Transpose(tensor.Transpose(a)).Equal(a) {
		t.Error("round trip changed the matrix")
	}
}

package nn

import (
	"math"

	"github.com/born-ml/descent/internal/tensor"
)

// HalfMSE computes mean((p - t)²) / 2, the regression loss whose gradient
// with respect to p is (p - t) / n.
//
// Panics with *tensor.DimensionError when lengths differ.
func HalfMSE(target, pred *tensor.Vector) float64 {
	return pred.Sub(target).Pow(2).Mean() / 2
}

// BinaryCrossEntropy computes -mean(t·ln(p) + (1-t)·ln(1-p)).
//
// Predictions must lie strictly inside (0, 1); a saturated prediction yields
// NaN or +Inf, which is returned as-is.
func BinaryCrossEntropy(target, pred *tensor.Vector) float64 {
	if err := tensor.SameShape("BinaryCrossEntropy", target.Shape(), pred.Shape()); err != nil {
		panic(err)
	}
	t, p := target.Data(), pred.Data()
	var sum float64
	for i := range t {
		sum -= t[i]*math.Log(p[i]) + (1-t[i])*math.Log(1-p[i])
	}
	return sum / float64(len(t))
}

// CrossEntropy computes the categorical loss -mean_rows(Σ_j t_ij·ln(p_ij))
// for one-hot targets.
//
// Every t_ij·ln(p_ij) term is evaluated, so a zero probability anywhere
// (even under a zero target) makes the result NaN.
func CrossEntropy(target, pred *tensor.Matrix) float64 {
	if err := tensor.SameShape("CrossEntropy", target.Shape(), pred.Shape()); err != nil {
		panic(err)
	}
	t, p := target.Data(), pred.Data()
	var ce float64
	for i := range t {
		ce -= t[i] * math.Log(p[i])
	}
	return ce / float64(target.Rows())
}

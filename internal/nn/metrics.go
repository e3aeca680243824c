package nn

import (
	"github.com/born-ml/descent/internal/tensor"
)

// BinaryAccuracy thresholds predictions at 0.5 (p <= 0.5 means class 0) and
// returns the fraction of rows matching the 0/1 target.
func BinaryAccuracy(target, pred *tensor.Vector) float64 {
	if err := tensor.SameShape("BinaryAccuracy", target.Shape(), pred.Shape()); err != nil {
		panic(err)
	}
	t, p := target.Data(), pred.Data()
	var hits float64
	for i := range t {
		if p[i] <= 0.5 {
			if t[i] == 0 {
				hits++
			}
		} else if t[i] == 1 {
			hits++
		}
	}
	return hits / float64(len(t))
}

// Accuracy returns the fraction of rows whose arg-max prediction column holds
// a 1 in the one-hot target.
func Accuracy(target, pred *tensor.Matrix) float64 {
	if err := tensor.SameShape("Accuracy", target.Shape(), pred.Shape()); err != nil {
		panic(err)
	}
	var hits float64
	for i := 0; i < pred.Rows(); i++ {
		if target.At(i, ArgMax(pred.Row(i))) == 1 {
			hits++
		}
	}
	return hits / float64(target.Rows())
}

// ArgMax returns the index of the largest entry. Ties resolve to the first.
func ArgMax(row []float64) int {
	best := 0
	for j := 1; j < len(row); j++ {
		if row[j] > row[best] {
			best = j
		}
	}
	return best
}

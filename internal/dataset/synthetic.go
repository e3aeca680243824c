package dataset

import (
	"math/rand"

	"github.com/born-ml/descent/internal/tensor"
)

// Blobs generates n points per class around well-separated centers in dim
// dimensions. It returns the features and the integer class labels, and is
// used to run the classifiers without downloading anything.
func Blobs(rng *rand.Rand, classes, n, dim int, spread float64) (*tensor.Matrix, *tensor.Vector) {
	centers := make([][]float64, classes)
	for c := range centers {
		centers[c] = make([]float64, dim)
		for j := range centers[c] {
			centers[c][j] = rng.NormFloat64() * 4
		}
	}

	x := make([]float64, 0, classes*n*dim)
	y := make([]float64, 0, classes*n)
	for c := 0; c < classes; c++ {
		for i := 0; i < n; i++ {
			for j := 0; j < dim; j++ {
				x = append(x, centers[c][j]+rng.NormFloat64()*spread)
			}
			y = append(y, float64(c))
		}
	}

	features, err := tensor.FromSlice(classes*n, dim, x)
	if err != nil {
		panic(err)
	}
	return features, tensor.VectorFrom(y)
}

// LinearData generates y = x·coef + intercept + noise for n rows.
func LinearData(rng *rand.Rand, n int, coef []float64, intercept, noise float64) (*tensor.Matrix, *tensor.Vector) {
	x := tensor.NewMatrix(n, len(coef)).Apply(func(float64) float64 { return rng.Float64() * 10 })
	y := x.DotVec(tensor.VectorFrom(coef)).Apply(func(v float64) float64 {
		return v + intercept + rng.NormFloat64()*noise
	})
	return x, y
}

// SyntheticDigits generates perClass 28×28 images for each digit 0-9 with
// raw pixel values in [0, 255]. Digit d is a bright band over rows
// [2d, 2d+8) and columns [5, 23) on a noisy background. The patterns are
// not realistic handwriting; they exercise the MNIST pipeline offline.
func SyntheticDigits(rng *rand.Rand, perClass int) (*tensor.Matrix, *tensor.Vector) {
	const side = 28
	pixels := make([]float64, 0, MNISTClasses*perClass*MNISTPixels)
	labels := make([]float64, 0, MNISTClasses*perClass)

	for d := 0; d < MNISTClasses; d++ {
		for n := 0; n < perClass; n++ {
			for row := 0; row < side; row++ {
				for col := 0; col < side; col++ {
					v := rng.Float64() * 40
					if row >= 2*d && row < 2*d+8 && col >= 5 && col < 23 {
						v = 200 + rng.Float64()*55
					}
					pixels = append(pixels, v)
				}
			}
			labels = append(labels, float64(d))
		}
	}

	images, err := tensor.FromSlice(len(labels), MNISTPixels, pixels)
	if err != nil {
		panic(err)
	}
	return images, tensor.VectorFrom(labels)
}

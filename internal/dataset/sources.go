package dataset

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/born-ml/descent/internal/tensor"
)

// Default download locations.
const (
	BostonURL = "http://lib.stat.cmu.edu/datasets"
	IrisURL   = "https://archive.ics.uci.edu/ml/machine-learning-databases/iris"
	MNISTURL  = "https://storage.googleapis.com/cvdf-datasets/mnist"

	bostonFile = "boston"
	irisFile   = "bezdekIris.data"
)

// Source describes where a dataset is cached and fetched from.
type Source struct {
	Dir     string       // Cache directory.
	BaseURL string       // Download base URL; empty selects the default.
	Client  *http.Client // Nil selects http.DefaultClient.
}

func (s Source) fetch(ctx context.Context, defaultURL, sub, name string) (string, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultURL
	}
	return Fetch(ctx, s.Client, base, filepath.Join(s.Dir, sub), name)
}

// LoadBoston returns the 506×14 Boston housing matrix.
func LoadBoston(ctx context.Context, src Source) (*tensor.Matrix, error) {
	path, err := src.fetch(ctx, BostonURL, "boston", bostonFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseBoston(f)
}

// LoadIris returns the 150×5 Iris matrix (class index in the last column).
func LoadIris(ctx context.Context, src Source) (*tensor.Matrix, error) {
	path, err := src.fetch(ctx, IrisURL, "iris", irisFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseIris(f)
}

// LoadMNIST returns raw pixels (0..255) and labels for the training set or,
// when train is false, the test set.
func LoadMNIST(ctx context.Context, src Source, train bool) (*tensor.Matrix, *tensor.Vector, error) {
	imageFile, labelFile := MNISTTestImages, MNISTTestLabels
	if train {
		imageFile, labelFile = MNISTTrainImages, MNISTTrainLabels
	}

	imagePath, err := src.fetch(ctx, MNISTURL, "mnist", imageFile)
	if err != nil {
		return nil, nil, err
	}
	labelPath, err := src.fetch(ctx, MNISTURL, "mnist", labelFile)
	if err != nil {
		return nil, nil, err
	}

	images, labels, err := ReadMNIST(imagePath, labelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("LoadMNIST: %w", err)
	}
	return images, labels, nil
}

package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/born-ml/descent/internal/config"
	"github.com/born-ml/descent/internal/dataset"
	"github.com/born-ml/descent/internal/model"
	"github.com/born-ml/descent/internal/tensor"
	"github.com/born-ml/descent/internal/train"
)

// Row counts of the reference experiments.
const (
	binaryRows  = 100 // setosa and versicolor only
	binaryTrain = 70
	irisTrain   = 75
	pixelScale  = 255.0

	syntheticTrain = 800 // of 1000 generated digits
)

// experiment is a ready-to-train model and its data.
type experiment struct {
	top  model.Topology
	data train.Data
}

// prepare loads (or synthesizes) the data for cfg's kind and builds the
// matching topology. Every random choice is drawn from rng.
func prepare(ctx context.Context, cfg *config.Config, rng *rand.Rand) (*experiment, error) {
	kind, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	src := dataset.Source{Dir: cfg.DataDir, BaseURL: cfg.BaseURL}

	var exp *experiment
	switch kind {
	case model.Linear:
		exp, err = linearExperiment(ctx, cfg, src, rng)
	case model.BinaryLogistic:
		exp, err = binaryExperiment(ctx, cfg, src, rng)
	case model.MulticlassLogistic:
		exp, err = multiclassExperiment(ctx, cfg, src, rng)
	case model.Network:
		exp, err = networkExperiment(ctx, cfg, src, rng)
	}
	if err != nil {
		return nil, err
	}
	exp.top.Kind = kind
	exp.top.Inputs = exp.data.Train.X.Cols()
	exp.top.StableSoftmax = cfg.StableSoftmax
	return exp, nil
}

// standardize rescales the first n columns of m when the config asks for it.
// It runs before any train/test split so both splits share one scaling.
func standardize(cfg *config.Config, m *tensor.Matrix, n int) *tensor.Matrix {
	if !cfg.Standardize {
		return m
	}
	cols := make([]int, n)
	for i := range cols {
		cols[i] = i
	}
	return dataset.Standardize(m, cols...)
}

// Boston housing: rooms and lower-status share against median value,
// trained and reported on the full set.
func linearExperiment(ctx context.Context, cfg *config.Config, src dataset.Source, rng *rand.Rand) (*experiment, error) {
	var x *tensor.Matrix
	var y *tensor.Vector
	if cfg.Synthetic {
		x, y = dataset.LinearData(rng, 506, []float64{5, -0.5}, 0, 1)
	} else {
		boston, err := dataset.LoadBoston(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("load boston: %w", err)
		}
		x = boston.SelectCols(dataset.BostonRM, dataset.BostonLSTAT)
		y = boston.Col(dataset.BostonMEDV)
	}
	x = standardize(cfg, x, x.Cols())
	return &experiment{data: train.Data{Train: model.Batch{X: x.AddBiasCol(), Y: y}}}, nil
}

// Iris setosa vs versicolor on the two sepal measurements, 70/30 split.
func binaryExperiment(ctx context.Context, cfg *config.Config, src dataset.Source, rng *rand.Rand) (*experiment, error) {
	var table *tensor.Matrix
	if cfg.Synthetic {
		x, y := dataset.Blobs(rng, 2, binaryRows/2, 2, 0.8)
		table = withLabels(x, y)
	} else {
		iris, err := dataset.LoadIris(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("load iris: %w", err)
		}
		table = iris.SliceRows(0, binaryRows).SelectCols(dataset.IrisSepalLength, dataset.IrisSepalWidth, dataset.IrisClass)
	}

	table = standardize(cfg, table, table.Cols()-1)
	trainRows, testRows, err := dataset.Split(dataset.Shuffle(table, rng), binaryTrain)
	if err != nil {
		return nil, err
	}
	return &experiment{data: train.Data{
		Train: vectorBatch(trainRows),
		Eval:  vectorBatch(testRows),
	}}, nil
}

// Iris, all three classes, on sepal and petal length, 75/75 split.
func multiclassExperiment(ctx context.Context, cfg *config.Config, src dataset.Source, rng *rand.Rand) (*experiment, error) {
	var table *tensor.Matrix
	if cfg.Synthetic {
		x, y := dataset.Blobs(rng, dataset.IrisClasses, 50, 2, 0.8)
		table = withLabels(x, y)
	} else {
		iris, err := dataset.LoadIris(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("load iris: %w", err)
		}
		table = iris.SelectCols(dataset.IrisSepalLength, dataset.IrisPetalLength, dataset.IrisClass)
	}

	table = standardize(cfg, table, table.Cols()-1)
	trainRows, testRows, err := dataset.Split(dataset.Shuffle(table, rng), irisTrain)
	if err != nil {
		return nil, err
	}
	trainBatch, err := oneHotBatch(trainRows, dataset.IrisClasses)
	if err != nil {
		return nil, err
	}
	testBatch, err := oneHotBatch(testRows, dataset.IrisClasses)
	if err != nil {
		return nil, err
	}
	return &experiment{
		top:  model.Topology{Outputs: dataset.IrisClasses},
		data: train.Data{Train: trainBatch, Eval: testBatch},
	}, nil
}

// MNIST digits, pixels scaled to [0, 1], evaluated on the test set. The
// pixel scaling replaces standardization.
func networkExperiment(ctx context.Context, cfg *config.Config, src dataset.Source, rng *rand.Rand) (*experiment, error) {
	var trainX, testX *tensor.Matrix
	var trainY, testY *tensor.Vector
	if cfg.Synthetic {
		x, y := dataset.SyntheticDigits(rng, 100)
		head, tail, err := dataset.Split(dataset.Shuffle(withLabels(x, y), rng), syntheticTrain)
		if err != nil {
			return nil, err
		}
		trainX, trainY = splitLabels(head)
		testX, testY = splitLabels(tail)
	} else {
		var err error
		if trainX, trainY, err = dataset.LoadMNIST(ctx, src, true); err != nil {
			return nil, fmt.Errorf("load mnist: %w", err)
		}
		if testX, testY, err = dataset.LoadMNIST(ctx, src, false); err != nil {
			return nil, fmt.Errorf("load mnist: %w", err)
		}
	}
	trainX = trainX.DivScalar(pixelScale)
	testX = testX.DivScalar(pixelScale)

	trainT, err := dataset.OneHot(trainY, dataset.MNISTClasses)
	if err != nil {
		return nil, err
	}
	testT, err := dataset.OneHot(testY, dataset.MNISTClasses)
	if err != nil {
		return nil, err
	}
	return &experiment{
		top: model.Topology{Outputs: dataset.MNISTClasses, Hidden: cfg.Hidden},
		data: train.Data{
			Train: model.Batch{X: trainX.AddBiasCol(), T: trainT},
			Eval:  model.Batch{X: testX.AddBiasCol(), T: testT},
		},
	}, nil
}

// withLabels appends y to x as a last column so rows can be shuffled together.
func withLabels(x *tensor.Matrix, y *tensor.Vector) *tensor.Matrix {
	rows := x.ToRows()
	for i := range rows {
		rows[i] = append(rows[i], y.At(i))
	}
	return tensor.MustFromRows(rows)
}

// splitLabels is the inverse of withLabels.
func splitLabels(table *tensor.Matrix) (*tensor.Matrix, *tensor.Vector) {
	cols := make([]int, table.Cols()-1)
	for i := range cols {
		cols[i] = i
	}
	return table.SelectCols(cols...), table.Col(table.Cols() - 1)
}

func vectorBatch(table *tensor.Matrix) model.Batch {
	x, y := splitLabels(table)
	return model.Batch{X: x.AddBiasCol(), Y: y}
}

func oneHotBatch(table *tensor.Matrix, classes int) (model.Batch, error) {
	x, y := splitLabels(table)
	t, err := dataset.OneHot(y, classes)
	if err != nil {
		return model.Batch{}, err
	}
	return model.Batch{X: x.AddBiasCol(), T: t}, nil
}

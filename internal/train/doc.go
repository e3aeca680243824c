// Package train runs gradient-descent training for a model.Topology.
//
// A Trainer exclusively owns the current parameters, the mini-batch sampler
// and the random source. Each iteration draws a batch (networks only; the
// other kinds train on the full training split), runs the forward and
// backward passes, replaces the parameters with their updated values and,
// at the configured cadence, emits a Progress record to a Reporter.
//
// Example:
//
//	tr, err := train.New(train.Config{Iterations: 1000, LearningRate: 0.01},
//		top, train.Data{Train: trainSet, Eval: testSet},
//		train.WithRand(rand.New(rand.NewSource(1))),
//		train.WithReporter(train.NewTextReporter(os.Stdout)))
//	if err != nil {
//		return err
//	}
//	if err := tr.Train(ctx); err != nil {
//		return err
//	}
package train

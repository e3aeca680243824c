package train

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/descent/internal/dataset"
	"github.com/born-ml/descent/internal/model"
	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/tensor"
)

// Config holds the training hyperparameters.
type Config struct {
	Iterations   int
	LearningRate float64

	// BatchSize is the mini-batch size for networks. Zero trains on the
	// full training split. Ignored by the other kinds.
	BatchSize int

	// ReportEvery is the progress cadence in iterations. Zero selects the
	// kind's default.
	ReportEvery int

	// Seed seeds the random source when WithRand is not given.
	Seed int64
}

// Data is the training split and an optional held-out split.
type Data struct {
	Train model.Batch
	Eval  model.Batch
}

// HasEval reports whether a held-out split is present.
func (d Data) HasEval() bool {
	return d.Eval.X != nil
}

// Trainer runs the training loop for one model. It is not safe for
// concurrent use.
type Trainer struct {
	cfg  Config
	top  model.Topology
	data Data

	opt      optim.Optimizer
	rng      *rand.Rand
	sampler  *dataset.Sampler
	reporter Reporter

	params  *model.Params
	iter    int
	history []Progress
}

// New validates the inputs and prepares a trainer. Parameters are
// initialized here, so two trainers built with equally seeded random sources
// start from the same weights.
func New(cfg Config, top model.Topology, data Data, opts ...Option) (*Trainer, error) {
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("train: iterations must be >= 0, got %d", cfg.Iterations)
	}
	if cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("train: learning rate must be > 0, got %v", cfg.LearningRate)
	}
	if cfg.ReportEvery < 0 {
		return nil, fmt.Errorf("train: report cadence must be >= 0, got %d", cfg.ReportEvery)
	}
	if cfg.ReportEvery == 0 {
		cfg.ReportEvery = top.Kind.DefaultReportEvery()
	}
	if err := top.Validate(); err != nil {
		return nil, err
	}
	if err := top.CheckBatch(data.Train); err != nil {
		return nil, fmt.Errorf("train: training split: %w", err)
	}
	if data.Train.Rows() == 0 {
		return nil, errors.New("train: training split is empty")
	}
	if data.HasEval() {
		if err := top.CheckBatch(data.Eval); err != nil {
			return nil, fmt.Errorf("train: eval split: %w", err)
		}
	}

	opt, err := optim.NewSGD(optim.SGDConfig{LR: cfg.LearningRate})
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	t := &Trainer{
		cfg:      cfg,
		top:      top,
		data:     data,
		opt:      opt,
		reporter: discard{},
	}
	for _, o := range opts {
		o(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	if t.params == nil {
		p, err := top.Init(t.rng)
		if err != nil {
			return nil, err
		}
		t.params = &p
	} else if err := top.CheckParams(*t.params); err != nil {
		return nil, fmt.Errorf("train: initial parameters: %w", err)
	}

	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("train: batch %d: %w", cfg.BatchSize, dataset.ErrInvalidBatch)
	}
	if top.Kind == model.Network && cfg.BatchSize > 0 {
		if cfg.BatchSize > data.Train.Rows() {
			return nil, fmt.Errorf("train: batch %d for %d rows: %w",
				cfg.BatchSize, data.Train.Rows(), dataset.ErrInvalidBatch)
		}
		t.sampler, err = dataset.NewSampler(data.Train.Rows(), t.rng)
		if err != nil {
			return nil, fmt.Errorf("train: %w", err)
		}
	}

	return t, nil
}

// Train runs every remaining iteration. It stops early only when ctx is
// done, in which case the parameters of the last completed iteration are
// kept and ctx.Err() is returned.
//
// A dimension mismatch raised inside the numerical kernel aborts the run and
// is returned as an error wrapping tensor.ErrDimensionMismatch.
func (t *Trainer) Train(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !errors.Is(e, tensor.ErrDimensionMismatch) {
				panic(r)
			}
			err = fmt.Errorf("train: iteration %d: %w", t.iter, e)
		}
	}()

	for t.iter < t.cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.step(); err != nil {
			return err
		}
	}
	return nil
}

// step runs one iteration. The iteration counts as completed once the
// parameters are replaced, even if reporting it fails.
func (t *Trainer) step() error {
	batch, err := t.batch()
	if err != nil {
		return err
	}

	p := *t.params
	out := t.top.Forward(p, batch.X)
	grads := t.top.Backward(p, batch, out)
	next := p.Step(grads, t.opt)
	t.params = &next
	iter := t.iter
	t.iter++

	if iter%t.cfg.ReportEvery != 0 {
		return nil
	}

	var pr Progress
	if t.data.HasEval() {
		pr.Loss, pr.Accuracy, pr.HasAccuracy = t.top.Evaluate(next, t.data.Eval)
	} else {
		pr.Loss = t.top.Loss(batch, out)
		pr.Accuracy, pr.HasAccuracy = t.top.Accuracy(batch, out)
	}
	pr.Iter = iter
	t.history = append(t.history, pr)
	if err := t.reporter.Report(pr); err != nil {
		return fmt.Errorf("train: report: %w", err)
	}
	return nil
}

func (t *Trainer) batch() (model.Batch, error) {
	if t.sampler == nil {
		return t.data.Train, nil
	}
	idx, err := t.sampler.Draw(t.cfg.BatchSize)
	if err != nil {
		return model.Batch{}, fmt.Errorf("train: %w", err)
	}
	return t.data.Train.Gather(idx), nil
}

// Iteration returns the number of completed iterations.
func (t *Trainer) Iteration() int {
	return t.iter
}

// History returns every progress record emitted so far.
func (t *Trainer) History() []Progress {
	out := make([]Progress, len(t.history))
	copy(out, t.history)
	return out
}

// Params returns a copy of the current parameters.
func (t *Trainer) Params() model.Params {
	return t.params.Clone()
}

// Topology returns the model being trained.
func (t *Trainer) Topology() model.Topology {
	return t.top
}

// Evaluate scores the current parameters on b.
func (t *Trainer) Evaluate(b model.Batch) (loss, acc float64, hasAcc bool, err error) {
	if err := t.top.CheckBatch(b); err != nil {
		return 0, 0, false, err
	}
	loss, acc, hasAcc = t.top.Evaluate(*t.params, b)
	return loss, acc, hasAcc, nil
}

package train

import (
	"math/rand"

	"github.com/born-ml/descent/internal/model"
)

// Option configures a Trainer.
type Option func(*Trainer)

// WithRand sets the random source used for initialization and batch
// sampling. Without it the trainer seeds one from Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(t *Trainer) {
		t.rng = rng
	}
}

// WithParams starts training from p instead of freshly initialized
// parameters. p is copied.
func WithParams(p model.Params) Option {
	return func(t *Trainer) {
		c := p.Clone()
		t.params = &c
	}
}

// WithReporter sets where progress records go. By default they are only
// kept in the trainer's history.
func WithReporter(r Reporter) Option {
	return func(t *Trainer) {
		t.reporter = r
	}
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"io"
	"math/rand"

	"github.com/born-ml/descent/internal/model"
	"github.com/born-ml/descent/internal/train"
)

// Models

// Kind selects the model topology.
type Kind = model.Kind

// Supported topologies.
const (
	Linear             Kind = model.Linear
	BinaryLogistic     Kind = model.BinaryLogistic
	MulticlassLogistic Kind = model.MulticlassLogistic
	Network            Kind = model.Network
)

// Topology is a fully specified model shape.
type Topology = model.Topology

// Params holds the weights of a model.
type Params = model.Params

// Batch is a set of bias-augmented features and their targets.
type Batch = model.Batch

// ErrInvalidTopology is returned for topologies that cannot be built.
var ErrInvalidTopology = model.ErrInvalidTopology

// ParseKind parses "linear", "binary", "multiclass" or "network".
func ParseKind(s string) (Kind, error) { return model.ParseKind(s) }

// Training

// Trainer runs the training loop for one model.
type Trainer = train.Trainer

// Config holds the training hyperparameters.
type Config = train.Config

// Data is the training split and an optional held-out split.
type Data = train.Data

// Progress is one report emitted during training.
type Progress = train.Progress

// Reporter receives progress records.
type Reporter = train.Reporter

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc = train.ReporterFunc

// Option configures a Trainer.
type Option = train.Option

// New validates the inputs and prepares a trainer.
func New(cfg Config, top Topology, data Data, opts ...Option) (*Trainer, error) {
	return train.New(cfg, top, data, opts...)
}

// WithRand sets the random source used for initialization and sampling.
func WithRand(rng *rand.Rand) Option { return train.WithRand(rng) }

// WithParams starts training from a copy of p.
func WithParams(p Params) Option { return train.WithParams(p) }

// WithReporter sets where progress records go.
func WithReporter(r Reporter) Option { return train.WithReporter(r) }

// MultiReporter forwards every report to each of reporters in turn.
func MultiReporter(reporters ...Reporter) Reporter { return train.MultiReporter(reporters...) }

// NewTextReporter writes one "iter = ...\tloss = ..." line per report.
func NewTextReporter(w io.Writer) Reporter { return train.NewTextReporter(w) }

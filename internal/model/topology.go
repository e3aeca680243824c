package model

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/descent/internal/nn"
	"github.com/born-ml/descent/internal/tensor"
)

// ErrInvalidTopology is returned by Topology.Validate.
var ErrInvalidTopology = errors.New("invalid topology")

// Topology is a fixed, fully specified model shape.
type Topology struct {
	Kind Kind

	// Inputs is the number of feature columns including the bias column.
	Inputs int

	// Outputs is the number of classes. Ignored for vector-target kinds.
	Outputs int

	// Hidden lists the width of each hidden layer (Network only). The bias
	// unit is added on top of each width.
	Hidden []int

	// StableSoftmax subtracts the row maximum before exponentiating.
	StableSoftmax bool
}

// Validate checks that the topology can be built.
func (t Topology) Validate() error {
	if t.Inputs < 1 {
		return fmt.Errorf("%w: %s needs at least one input column, got %d", ErrInvalidTopology, t.Kind, t.Inputs)
	}
	switch t.Kind {
	case Linear, BinaryLogistic:
		if len(t.Hidden) > 0 {
			return fmt.Errorf("%w: %s has no hidden layers", ErrInvalidTopology, t.Kind)
		}
	case MulticlassLogistic, Network:
		if t.Outputs < 2 {
			return fmt.Errorf("%w: %s needs at least 2 classes, got %d", ErrInvalidTopology, t.Kind, t.Outputs)
		}
		if t.Kind == MulticlassLogistic && len(t.Hidden) > 0 {
			return fmt.Errorf("%w: %s has no hidden layers", ErrInvalidTopology, t.Kind)
		}
		if t.Kind == Network && len(t.Hidden) == 0 {
			return fmt.Errorf("%w: network needs at least one hidden layer", ErrInvalidTopology)
		}
		for i, h := range t.Hidden {
			if h < 1 {
				return fmt.Errorf("%w: hidden layer %d has width %d", ErrInvalidTopology, i, h)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidTopology, t.Kind)
	}
	return nil
}

// layerShapes returns the (rows, cols) of each weight matrix.
func (t Topology) layerShapes() []tensor.Shape {
	shapes := make([]tensor.Shape, 0, len(t.Hidden)+1)
	in := t.Inputs
	for _, h := range t.Hidden {
		shapes = append(shapes, tensor.Shape{in, h})
		in = h + 1
	}
	return append(shapes, tensor.Shape{in, t.Outputs})
}

// Init creates the starting parameters. Linear and logistic models start with
// every weight at 1.0; networks use He-normal draws from rng.
func (t Topology) Init(rng *rand.Rand) (Params, error) {
	if err := t.Validate(); err != nil {
		return Params{}, err
	}
	switch t.Kind {
	case Linear, BinaryLogistic:
		return Params{W: nn.OnesVector(t.Inputs)}, nil
	case MulticlassLogistic:
		return Params{Layers: []*tensor.Matrix{nn.Ones(t.Inputs, t.Outputs)}}, nil
	}

	if rng == nil {
		return Params{}, errors.New("Init: network initialization needs an rng")
	}
	shapes := t.layerShapes()
	layers := make([]*tensor.Matrix, len(shapes))
	for i, s := range shapes {
		layers[i] = nn.HeNormal(rng, s[0], s[1])
	}
	return Params{Layers: layers}, nil
}

// CheckParams verifies that p has the layout and shapes t expects.
func (t Topology) CheckParams(p Params) error {
	if t.Kind.VectorTarget() {
		if p.W == nil || p.Layers != nil {
			return fmt.Errorf("CheckParams: %s expects a weight vector", t.Kind)
		}
		return tensor.SameShape("CheckParams", tensor.Shape{t.Inputs}, p.W.Shape())
	}

	shapes := t.layerShapes()
	if p.W != nil || len(p.Layers) != len(shapes) {
		return fmt.Errorf("CheckParams: %s expects %d weight matrices, got %d", t.Kind, len(shapes), len(p.Layers))
	}
	for i, s := range shapes {
		if err := tensor.SameShape(fmt.Sprintf("CheckParams layer %d", i), s, p.Layers[i].Shape()); err != nil {
			return err
		}
	}
	return nil
}

// Batch is a set of rows to train or evaluate on. X carries the bias column.
// Y holds scalar targets for vector-target kinds; T holds one-hot rows for
// the others.
type Batch struct {
	X *tensor.Matrix
	Y *tensor.Vector
	T *tensor.Matrix
}

// Rows returns the number of rows in the batch.
func (b Batch) Rows() int {
	return b.X.Rows()
}

// Gather returns the rows at the given indices.
func (b Batch) Gather(indices []int) Batch {
	out := Batch{X: b.X.Gather(indices)}
	if b.Y != nil {
		out.Y = b.Y.Gather(indices)
	}
	if b.T != nil {
		out.T = b.T.Gather(indices)
	}
	return out
}

// CheckBatch verifies that b matches the topology.
func (t Topology) CheckBatch(b Batch) error {
	if b.X == nil {
		return errors.New("CheckBatch: features are nil")
	}
	if b.X.Cols() != t.Inputs {
		return tensor.SameShape("CheckBatch features", tensor.Shape{b.X.Rows(), t.Inputs}, b.X.Shape())
	}
	if t.Kind.VectorTarget() {
		if b.Y == nil {
			return fmt.Errorf("CheckBatch: %s needs scalar targets", t.Kind)
		}
		return tensor.SameShape("CheckBatch targets", tensor.Shape{b.X.Rows()}, b.Y.Shape())
	}
	if b.T == nil {
		return fmt.Errorf("CheckBatch: %s needs one-hot targets", t.Kind)
	}
	return tensor.SameShape("CheckBatch targets", tensor.Shape{b.X.Rows(), t.Outputs}, b.T.Shape())
}

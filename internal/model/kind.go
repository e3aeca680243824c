// Package model defines the four trainable topologies (linear regression,
// binary and multiclass logistic regression, ReLU feed-forward network) as a
// single Topology value with pure forward and backward passes.
//
// A Topology holds no weights. Parameters live in a Params value owned by the
// caller, and Backward returns gradients in the same layout, so the caller
// decides when the old parameters are replaced.
package model

import (
	"fmt"
	"strings"
)

// Kind selects the model topology.
type Kind int

// Supported topologies.
const (
	Linear             Kind = iota // ŷ = Xw, half mean squared error
	BinaryLogistic                 // ŷ = σ(Xw), binary cross-entropy
	MulticlassLogistic             // Ŷ = softmax(XW), categorical cross-entropy
	Network                        // ReLU hidden layers + softmax output
)

// String returns the name used in configs and on the command line.
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case BinaryLogistic:
		return "binary"
	case MulticlassLogistic:
		return "multiclass"
	case Network:
		return "network"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "binary":
		return BinaryLogistic, nil
	case "multiclass":
		return MulticlassLogistic, nil
	case "network":
		return Network, nil
	default:
		return 0, fmt.Errorf("unknown model kind %q", s)
	}
}

// VectorTarget reports whether the kind trains on a single scalar per row.
func (k Kind) VectorTarget() bool {
	return k == Linear || k == BinaryLogistic
}

// Classifier reports whether accuracy is meaningful for the kind.
func (k Kind) Classifier() bool {
	return k != Linear
}

// DefaultReportEvery is the progress cadence the kind reports at when the
// caller does not choose one.
func (k Kind) DefaultReportEvery() int {
	switch k {
	case BinaryLogistic, MulticlassLogistic:
		return 10
	default:
		return 100
	}
}

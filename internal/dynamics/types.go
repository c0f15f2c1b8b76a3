package dynamics

import (
	"errors"

	"github.com/san-kum/multibody/internal/multibody"
	"github.com/san-kum/multibody/internal/scalar"
)

// Float-scalar aliases; the rollout side of the engine always runs plain.
type (
	State  = multibody.State[scalar.Float]
	Forces = multibody.Forces[scalar.Float]
	Tree   = multibody.Tree[scalar.Float]
)

// Controller injects generalized forces for one evaluation cycle. It must
// only touch the containers through joint accessors.
type Controller interface {
	Apply(t float64, s *State, f *Forces) error
}

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(t float64, s *State, f *Forces)
}

// Metric accumulates a scalar summary over a rollout.
type Metric interface {
	Name() string
	Observe(t float64, s *State, f *Forces)
	Value() float64
	Reset()
}

// Config holds rollout parameters.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

// Result collects a rollout's trajectory and metric values.
type Result struct {
	Times      []float64
	Positions  [][]float64
	Velocities [][]float64
	Applied    [][]float64
	Metrics    map[string]float64
	StepsTaken int
}

var (
	// ErrUnknownJoint indicates a Jacobian or tracking request for a joint
	// name the tree does not contain.
	ErrUnknownJoint = errors.New("dynamics: unknown joint")

	// ErrInvalidState indicates a rollout produced NaN or Inf.
	ErrInvalidState = errors.New("dynamics: invalid state (NaN or Inf detected)")
)

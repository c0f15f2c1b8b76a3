package multibody

import (
	"math"

	"github.com/san-kum/multibody/internal/scalar"
)

// State is the flat, externally owned store of a mechanism's generalized
// positions and velocities. Joints and mobilizers address it by offset and
// never keep state of their own, so any number of State instances can be
// evaluated against one finalized tree.
//
// A State is not safe for concurrent mutation; give each goroutine its own.
type State[T scalar.Scalar[T]] struct {
	q []T
	v []T
}

// NewState allocates a zeroed state with the given position and velocity
// dimensions. Prefer Tree.NewState, which sizes it for the mechanism.
func NewState[T scalar.Scalar[T]](numQ, numV int) *State[T] {
	return &State[T]{q: make([]T, numQ), v: make([]T, numV)}
}

func (s *State[T]) NumQ() int { return len(s.q) }
func (s *State[T]) NumV() int { return len(s.v) }

func (s *State[T]) Position(i int) T     { return s.q[i] }
func (s *State[T]) SetPosition(i int, x T) { s.q[i] = x }
func (s *State[T]) Velocity(i int) T     { return s.v[i] }
func (s *State[T]) SetVelocity(i int, x T) { s.v[i] = x }

// Clone returns an independent copy of the state.
func (s *State[T]) Clone() *State[T] {
	c := NewState[T](len(s.q), len(s.v))
	copy(c.q, s.q)
	copy(c.v, s.v)
	return c
}

// Positions returns a copy of the position vector's value parts.
func (s *State[T]) Positions() []float64 {
	out := make([]float64, len(s.q))
	for i, x := range s.q {
		out[i] = x.Float()
	}
	return out
}

// Velocities returns a copy of the velocity vector's value parts.
func (s *State[T]) Velocities() []float64 {
	out := make([]float64, len(s.v))
	for i, x := range s.v {
		out[i] = x.Float()
	}
	return out
}

// IsValid reports whether every entry's value part is finite.
func (s *State[T]) IsValid() bool {
	for _, x := range s.q {
		if !isFinite(x.Float()) {
			return false
		}
	}
	for _, x := range s.v {
		if !isFinite(x.Float()) {
			return false
		}
	}
	return true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

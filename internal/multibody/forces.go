package multibody

import "github.com/san-kum/multibody/internal/scalar"

// Forces is the flat generalized-force accumulator for a whole mechanism,
// aligned entry for entry with the velocity indexing of State. Joints add
// into their own offset range; repeated adds within one evaluation cycle
// accumulate.
//
// A Forces instance belongs to a single evaluation cycle and must not be
// shared across goroutines.
type Forces[T scalar.Scalar[T]] struct {
	tau []T
}

// NewForces allocates a zeroed accumulator with the given velocity
// dimension. Prefer Tree.NewForces, which sizes it for the mechanism.
func NewForces[T scalar.Scalar[T]](numV int) *Forces[T] {
	return &Forces[T]{tau: make([]T, numV)}
}

func (f *Forces[T]) Size() int { return len(f.tau) }

// Add accumulates a generalized force into slot i.
func (f *Forces[T]) Add(i int, value T) {
	f.tau[i] = f.tau[i].Add(value)
}

// At reports the accumulated force in slot i.
func (f *Forces[T]) At(i int) T { return f.tau[i] }

// Reset zeroes the accumulator for the next evaluation cycle.
func (f *Forces[T]) Reset() {
	var zero T
	zero = zero.FromFloat(0)
	for i := range f.tau {
		f.tau[i] = zero
	}
}

// Floats returns a copy of the accumulator's value parts.
func (f *Forces[T]) Floats() []float64 {
	out := make([]float64, len(f.tau))
	for i, x := range f.tau {
		out[i] = x.Float()
	}
	return out
}

package dynamics

import "fmt"

// Plant is a diagonal joint-space plant: each generalized velocity evolves
// as an independent second-order system with its own inertia, viscous
// damping and constant bias force. It stands in for the full equations of
// motion, which live outside this layer.
type Plant struct {
	Inertia []float64
	Damping []float64
	Bias    []float64
}

// NewPlant builds a plant with uniform parameters across nv dofs.
func NewPlant(nv int, inertia, damping, bias float64) *Plant {
	p := &Plant{
		Inertia: make([]float64, nv),
		Damping: make([]float64, nv),
		Bias:    make([]float64, nv),
	}
	for i := 0; i < nv; i++ {
		p.Inertia[i] = inertia
		p.Damping[i] = damping
		p.Bias[i] = bias
	}
	return p
}

// Accel computes per-dof accelerations from the accumulated generalized
// forces and the current velocities.
func (p *Plant) Accel(s *State, f *Forces, out []float64) error {
	nv := len(p.Inertia)
	if s.NumV() != nv || f.Size() != nv || len(out) != nv {
		return fmt.Errorf("dynamics: plant sized for %d dofs, got state %d, forces %d, out %d",
			nv, s.NumV(), f.Size(), len(out))
	}
	for i := 0; i < nv; i++ {
		tau := f.At(i).Float() + p.Bias[i] - p.Damping[i]*s.Velocity(i).Float()
		out[i] = tau / p.Inertia[i]
	}
	return nil
}

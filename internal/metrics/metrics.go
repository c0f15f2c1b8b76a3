// Package metrics provides rollout observers that reduce a trajectory to
// scalar summaries.
package metrics

import (
	"math"

	"github.com/san-kum/multibody/internal/dynamics"
)

// KineticEnergy averages the plant's joint-space kinetic energy over the
// rollout: 0.5 * sum_i m_i * v_i^2 per sample.
type KineticEnergy struct {
	inertia []float64
	total   float64
	samples int
}

func NewKineticEnergy(inertia []float64) *KineticEnergy {
	return &KineticEnergy{inertia: inertia}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(t float64, s *dynamics.State, f *dynamics.Forces) {
	if s.NumV() != len(k.inertia) {
		return
	}
	e := 0.0
	for i := 0; i < s.NumV(); i++ {
		v := s.Velocity(i).Float()
		e += 0.5 * k.inertia[i] * v * v
	}
	k.total += e
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// ControlEffort accumulates the absolute generalized forces applied across
// the rollout, a rough cost of actuation.
type ControlEffort struct {
	total   float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(t float64, s *dynamics.State, f *dynamics.Forces) {
	for i := 0; i < f.Size(); i++ {
		c.total += math.Abs(f.At(i).Float())
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.total = 0
	c.samples = 0
}

// PeakRate tracks the largest absolute generalized velocity seen.
type PeakRate struct {
	peak float64
}

func NewPeakRate() *PeakRate { return &PeakRate{} }

func (p *PeakRate) Name() string { return "peak_rate" }

func (p *PeakRate) Observe(t float64, s *dynamics.State, f *dynamics.Forces) {
	for i := 0; i < s.NumV(); i++ {
		if v := math.Abs(s.Velocity(i).Float()); v > p.peak {
			p.peak = v
		}
	}
}

func (p *PeakRate) Value() float64 { return p.peak }

func (p *PeakRate) Reset() { p.peak = 0 }

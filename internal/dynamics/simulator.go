package dynamics

import (
	"context"
	"fmt"

	"github.com/san-kum/multibody/internal/scalar"
)

// Simulator rolls a finalized tree forward under a plant and an optional
// controller. A Simulator is not safe for concurrent use; see Ensemble for
// parallel runs.
type Simulator struct {
	tree       *Tree
	plant      *Plant
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(tree *Tree, plant *Plant, controller Controller) *Simulator {
	return &Simulator{
		tree:       tree,
		plant:      plant,
		controller: controller,
	}
}

func (sim *Simulator) AddMetric(m Metric)     { sim.metrics = append(sim.metrics, m) }
func (sim *Simulator) AddObserver(o Observer) { sim.observers = append(sim.observers, o) }

// Run integrates from init for cfg.Duration with a semi-implicit Euler
// step. The initial state is not mutated; every run gets fresh containers.
func (sim *Simulator) Run(ctx context.Context, init *State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:      make([]float64, 0, steps+1),
		Positions:  make([][]float64, 0, steps+1),
		Velocities: make([][]float64, 0, steps+1),
		Applied:    make([][]float64, 0, steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range sim.metrics {
		m.Reset()
	}

	s := init.Clone()
	f, err := sim.tree.NewForces()
	if err != nil {
		return nil, err
	}
	accel := make([]float64, sim.tree.NumVelocities())

	t := 0.0
	result.Times = append(result.Times, t)
	result.Positions = append(result.Positions, s.Positions())
	result.Velocities = append(result.Velocities, s.Velocities())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f.Reset()
		if sim.controller != nil {
			if err := sim.controller.Apply(t, s, f); err != nil {
				return result, err
			}
		}

		for _, m := range sim.metrics {
			m.Observe(t, s, f)
		}
		for _, obs := range sim.observers {
			obs.OnStep(t, s, f)
		}
		result.Applied = append(result.Applied, f.Floats())

		if err := sim.plant.Accel(s, f, accel); err != nil {
			return result, err
		}
		// Semi-implicit Euler: velocities first, then positions with the
		// updated velocities. Valid here because every joint type in the
		// tree has qdot equal to v.
		for k := 0; k < s.NumV(); k++ {
			v := s.Velocity(k).Float() + cfg.Dt*accel[k]
			s.SetVelocity(k, scalar.Float(v))
		}
		for k := 0; k < s.NumQ(); k++ {
			q := s.Position(k).Float() + cfg.Dt*s.Velocity(k).Float()
			s.SetPosition(k, scalar.Float(q))
		}
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !s.IsValid() {
			return result, fmt.Errorf("%w: at t=%.4f step %d", ErrInvalidState, t, i)
		}

		result.Times = append(result.Times, t)
		result.Positions = append(result.Positions, s.Positions())
		result.Velocities = append(result.Velocities, s.Velocities())
	}

	for _, m := range sim.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dynamics: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("dynamics: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

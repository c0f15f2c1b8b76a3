package dynamics

import (
	"context"
	"sync"
)

// Ensemble runs independent rollouts of the same finalized tree in
// parallel. The tree, plant and controller are shared read-only; every run
// gets its own State and Forces containers, so no coordination is needed
// between goroutines.
type Ensemble struct {
	tree       *Tree
	plant      *Plant
	controller Controller
	runs       int

	// Perturb, if set, adjusts run idx's initial state in place.
	Perturb func(idx int, s *State)

	// ControllerFactory, if set, builds a fresh controller per run. Use it
	// whenever the controller keeps internal state (integrators, filters);
	// the shared controller is only safe when stateless.
	ControllerFactory func(idx int) Controller

	// MetricFactory, if set, builds a fresh metric set per run. Metrics
	// accumulate, so they can never be shared across goroutines.
	MetricFactory func(idx int) []Metric
}

func NewEnsemble(tree *Tree, plant *Plant, controller Controller, runs int) *Ensemble {
	return &Ensemble{tree: tree, plant: plant, controller: controller, runs: runs}
}

func (e *Ensemble) Run(ctx context.Context, init *State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := init.Clone()
			if e.Perturb != nil {
				e.Perturb(idx, s)
			}

			ctrl := e.controller
			if e.ControllerFactory != nil {
				ctrl = e.ControllerFactory(idx)
			}
			sim := New(e.tree, e.plant, ctrl)
			if e.MetricFactory != nil {
				for _, m := range e.MetricFactory(idx) {
					sim.AddMetric(m)
				}
			}
			results[idx], errs[idx] = sim.Run(ctx, s, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

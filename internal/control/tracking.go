package control

import (
	"fmt"

	"github.com/san-kum/multibody/internal/dynamics"
	"github.com/san-kum/multibody/internal/scalar"
)

// Gains holds PID gains and per-dof position targets for one joint. All
// tracked quantities come from configuration; the controller bakes in no
// assumptions about the mechanism.
type Gains struct {
	Kp      float64
	Ki      float64
	Kd      float64
	Targets []float64
}

// Tracking is a per-joint PID position tracker. The derivative term acts
// on the measured rate, so it damps motion rather than differentiating the
// error signal.
type Tracking struct {
	tree     *dynamics.Tree
	joints   []trackedJoint
	prevT    float64
	first    bool
}

type trackedJoint struct {
	name     string
	gains    Gains
	integral []float64
}

// NewTracking validates that every named joint exists in the tree and that
// its target vector matches the joint's degree-of-freedom count.
func NewTracking(tree *dynamics.Tree, gains map[string]Gains) (*Tracking, error) {
	c := &Tracking{tree: tree, first: true}
	for name, g := range gains {
		j, ok := tree.JointByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", dynamics.ErrUnknownJoint, name)
		}
		if len(g.Targets) != j.NumDOFs() {
			return nil, fmt.Errorf("control: joint %q has %d dofs, got %d targets",
				name, j.NumDOFs(), len(g.Targets))
		}
		c.joints = append(c.joints, trackedJoint{
			name:     name,
			gains:    g,
			integral: make([]float64, j.NumDOFs()),
		})
	}
	return c, nil
}

// Apply computes and injects tracking forces for the current cycle.
func (c *Tracking) Apply(t float64, s *dynamics.State, f *dynamics.Forces) error {
	dt := 0.0
	if !c.first && t > c.prevT {
		dt = t - c.prevT
	}
	c.first = false
	c.prevT = t

	for i := range c.joints {
		tj := &c.joints[i]
		j, _ := c.tree.JointByName(tj.name)
		for dof := 0; dof < j.NumDOFs(); dof++ {
			pos, err := j.PositionAt(s, dof)
			if err != nil {
				return err
			}
			rate, err := j.RateAt(s, dof)
			if err != nil {
				return err
			}

			e := tj.gains.Targets[dof] - pos.Float()
			tj.integral[dof] += e * dt

			u := tj.gains.Kp*e + tj.gains.Ki*tj.integral[dof] - tj.gains.Kd*rate.Float()
			if err := j.AddInForceAt(s, dof, scalar.Float(u), f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset clears the integral and timing state between rollouts.
func (c *Tracking) Reset() {
	for i := range c.joints {
		for k := range c.joints[i].integral {
			c.joints[i].integral[k] = 0
		}
	}
	c.prevT = 0
	c.first = true
}

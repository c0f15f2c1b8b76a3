package dynamics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/multibody"
	"github.com/san-kum/multibody/internal/scalar"
)

// Differentiator evaluates kinematic derivatives of a float tree by keeping
// a dual-scalar clone of it. Build one per tree; it is safe for concurrent
// use as long as callers serialize like any other evaluation (each call
// allocates its own dual containers).
type Differentiator struct {
	src  *Tree
	dual *multibody.Tree[scalar.Dual]
}

// NewDifferentiator clones tree to the derivative-carrying scalar and
// finalizes the clone. The tree must already be finalized so the clone's
// coordinate layout matches.
func NewDifferentiator(tree *Tree) (*Differentiator, error) {
	if !tree.Finalized() {
		return nil, multibody.ErrNotFinalized
	}
	clone, err := multibody.CloneTreeToScalar[scalar.Float, scalar.Dual](tree)
	if err != nil {
		return nil, err
	}
	if err := clone.Finalize(); err != nil {
		return nil, err
	}
	return &Differentiator{src: tree, dual: clone}, nil
}

// dualState mirrors s into the dual tree, seeding a unit derivative on
// position coordinate seedQ or velocity coordinate seedV (pass -1 to seed
// neither).
func (d *Differentiator) dualState(s *State, seedQ, seedV int) (*multibody.State[scalar.Dual], error) {
	ds, err := d.dual.NewState()
	if err != nil {
		return nil, err
	}
	if s.NumQ() != ds.NumQ() || s.NumV() != ds.NumV() {
		return nil, fmt.Errorf("%w: state sized (%d,%d), tree expects (%d,%d)",
			multibody.ErrSizeMismatch, s.NumQ(), s.NumV(), ds.NumQ(), ds.NumV())
	}
	for i := 0; i < s.NumQ(); i++ {
		e := 0.0
		if i == seedQ {
			e = 1.0
		}
		ds.SetPosition(i, scalar.NewDual(s.Position(i).Float(), e))
	}
	for i := 0; i < s.NumV(); i++ {
		e := 0.0
		if i == seedV {
			e = 1.0
		}
		ds.SetVelocity(i, scalar.NewDual(s.Velocity(i).Float(), e))
	}
	return ds, nil
}

// PosePartial returns the derivative of jointName's pose with respect to
// generalized position coordinate k, evaluated at s: the entry-wise
// derivative of the rotation and the derivative of the translation.
func (d *Differentiator) PosePartial(s *State, jointName string, k int) ([3][3]float64, r3.Vec, error) {
	var dR [3][3]float64
	j, ok := d.dual.JointByName(jointName)
	if !ok {
		return dR, r3.Vec{}, fmt.Errorf("%w: %q", ErrUnknownJoint, jointName)
	}
	ds, err := d.dualState(s, k, -1)
	if err != nil {
		return dR, r3.Vec{}, err
	}
	x, err := j.Pose(ds)
	if err != nil {
		return dR, r3.Vec{}, err
	}
	for i := 0; i < 3; i++ {
		for c := 0; c < 3; c++ {
			dR[i][c] = x.R[i][c].Deriv()
		}
	}
	dP := r3.Vec{X: x.P.X.Deriv(), Y: x.P.Y.Deriv(), Z: x.P.Z.Deriv()}
	return dR, dP, nil
}

// AngularJacobian returns, for each generalized velocity coordinate, the
// derivative of jointName's angular velocity with respect to that
// coordinate. For a revolute joint the column of its own coordinate is the
// joint axis and every other column is zero.
func (d *Differentiator) AngularJacobian(s *State, jointName string) ([]r3.Vec, error) {
	j, ok := d.dual.JointByName(jointName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJoint, jointName)
	}

	cols := make([]r3.Vec, s.NumV())
	for k := 0; k < s.NumV(); k++ {
		ds, err := d.dualState(s, -1, k)
		if err != nil {
			return nil, err
		}
		tw, err := j.SpatialVelocity(ds)
		if err != nil {
			return nil, err
		}
		cols[k] = r3.Vec{
			X: tw.Angular.X.Deriv(),
			Y: tw.Angular.Y.Deriv(),
			Z: tw.Angular.Z.Deriv(),
		}
	}
	return cols, nil
}

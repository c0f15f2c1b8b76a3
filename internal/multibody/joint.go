package multibody

import (
	"fmt"

	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// Joint is the public, stable-identity connection between a parent frame
// and a child frame. A joint owns its immutable construction data (name,
// frames, axis geometry) from the moment it is created, but delegates all
// numeric work to a mobilizer it is bound to by Tree.Finalize. Every
// state- or force-dependent method fails with ErrUnbound before that.
//
// Concrete joint types add typed sugar (a revolute joint has Angle, a
// prismatic joint has Translation) on top of the per-dof accessors defined
// here.
type Joint[T scalar.Scalar[T]] interface {
	Name() string
	ParentFrame() *Frame
	ChildFrame() *Frame

	// NumDOFs reports the joint's degree-of-freedom count. It is fixed by
	// the kinematic type at construction and never changes.
	NumDOFs() int

	// Bound reports whether Tree.Finalize has bound this joint's mobilizer.
	Bound() bool

	// Spec returns the joint's plain-data description: everything needed to
	// reconstruct an equivalent joint over any scalar type.
	Spec() JointSpec

	// MakeBlueprint produces the deferred mobilizer plan for this joint.
	// It is a pure function of construction data and may be called any
	// number of times; only the Tree.Finalize pass consumes the result.
	MakeBlueprint() *Blueprint[T]

	// PositionAt and friends are the uniform per-dof accessors. They read
	// and write straight through the supplied containers at the joint's
	// assigned offsets.
	PositionAt(s *State[T], dof int) (T, error)
	SetPositionAt(s *State[T], dof int, value T) error
	RateAt(s *State[T], dof int) (T, error)
	SetRateAt(s *State[T], dof int, value T) error

	// AddInForceAt accumulates a generalized force for one dof into the
	// mechanism accumulator. Adds, never overwrites.
	AddInForceAt(s *State[T], dof int, value T, f *Forces[T]) error

	// Pose and SpatialVelocity expose the bound mobilizer's kinematics.
	Pose(s *State[T]) (spatial.Transform[T], error)
	SpatialVelocity(s *State[T]) (spatial.Twist[T], error)

	// bind is the internal binding setter consumed only by Tree.Finalize.
	bind(mobs []Mobilizer[T], totalQ, totalV int) error
}

// jointBase carries the identity, binding state and uniform accessors
// shared by every joint type.
type jointBase[T scalar.Scalar[T]] struct {
	name   string
	parent *Frame
	child  *Frame
	nq, nv int

	mob    Mobilizer[T]
	totalQ int
	totalV int
	bound  bool
}

func (j *jointBase[T]) Name() string        { return j.name }
func (j *jointBase[T]) ParentFrame() *Frame { return j.parent }
func (j *jointBase[T]) ChildFrame() *Frame  { return j.child }
func (j *jointBase[T]) NumDOFs() int        { return j.nv }
func (j *jointBase[T]) Bound() bool         { return j.bound }

func (j *jointBase[T]) bind(mobs []Mobilizer[T], totalQ, totalV int) error {
	if j.bound {
		return fmt.Errorf("%w: joint %q bound twice", ErrFinalized, j.name)
	}
	if len(mobs) != 1 {
		return fmt.Errorf("multibody: joint %q expects exactly one mobilizer, finalize supplied %d", j.name, len(mobs))
	}
	j.mob = mobs[0]
	j.totalQ = totalQ
	j.totalV = totalV
	j.bound = true
	return nil
}

func (j *jointBase[T]) checkState(s *State[T]) error {
	if !j.bound {
		return fmt.Errorf("%w: joint %q", ErrUnbound, j.name)
	}
	if s.NumQ() != j.totalQ || s.NumV() != j.totalV {
		return fmt.Errorf("%w: joint %q expects state sized (%d,%d), got (%d,%d)",
			ErrSizeMismatch, j.name, j.totalQ, j.totalV, s.NumQ(), s.NumV())
	}
	return nil
}

func (j *jointBase[T]) checkForces(f *Forces[T]) error {
	if !j.bound {
		return fmt.Errorf("%w: joint %q", ErrUnbound, j.name)
	}
	if f.Size() != j.totalV {
		return fmt.Errorf("%w: joint %q expects accumulator sized %d, got %d",
			ErrSizeMismatch, j.name, j.totalV, f.Size())
	}
	return nil
}

func (j *jointBase[T]) checkDOF(dof, n int) error {
	if dof < 0 || dof >= n {
		return fmt.Errorf("%w: joint %q dof %d of %d", ErrDOFOutOfRange, j.name, dof, n)
	}
	return nil
}

func (j *jointBase[T]) PositionAt(s *State[T], dof int) (T, error) {
	var zero T
	if err := j.checkState(s); err != nil {
		return zero, err
	}
	if err := j.checkDOF(dof, j.mob.NumQ()); err != nil {
		return zero, err
	}
	return s.Position(j.mob.PositionStart() + dof), nil
}

func (j *jointBase[T]) SetPositionAt(s *State[T], dof int, value T) error {
	if err := j.checkState(s); err != nil {
		return err
	}
	if err := j.checkDOF(dof, j.mob.NumQ()); err != nil {
		return err
	}
	s.SetPosition(j.mob.PositionStart()+dof, value)
	return nil
}

func (j *jointBase[T]) RateAt(s *State[T], dof int) (T, error) {
	var zero T
	if err := j.checkState(s); err != nil {
		return zero, err
	}
	if err := j.checkDOF(dof, j.mob.NumV()); err != nil {
		return zero, err
	}
	return s.Velocity(j.mob.VelocityStart() + dof), nil
}

func (j *jointBase[T]) SetRateAt(s *State[T], dof int, value T) error {
	if err := j.checkState(s); err != nil {
		return err
	}
	if err := j.checkDOF(dof, j.mob.NumV()); err != nil {
		return err
	}
	s.SetVelocity(j.mob.VelocityStart()+dof, value)
	return nil
}

func (j *jointBase[T]) AddInForceAt(s *State[T], dof int, value T, f *Forces[T]) error {
	if err := j.checkState(s); err != nil {
		return err
	}
	if err := j.checkForces(f); err != nil {
		return err
	}
	if err := j.checkDOF(dof, j.mob.NumV()); err != nil {
		return err
	}
	f.Add(j.mob.VelocityStart()+dof, value)
	return nil
}

func (j *jointBase[T]) Pose(s *State[T]) (spatial.Transform[T], error) {
	if err := j.checkState(s); err != nil {
		return spatial.Transform[T]{}, err
	}
	return j.mob.Pose(s), nil
}

func (j *jointBase[T]) SpatialVelocity(s *State[T]) (spatial.Twist[T], error) {
	if err := j.checkState(s); err != nil {
		return spatial.Twist[T]{}, err
	}
	return j.mob.SpatialVelocity(s), nil
}

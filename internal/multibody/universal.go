package multibody

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// UniversalJoint allows rotation about two fixed axes in sequence: first
// about axis1 measured in the parent frame, then about axis2 measured in
// the intermediate frame. Both axes are normalized at construction. It has
// two degrees of freedom, addressed as dof 0 (axis1) and dof 1 (axis2).
type UniversalJoint[T scalar.Scalar[T]] struct {
	jointBase[T]
	axis1 r3.Vec
	axis2 r3.Vec
}

// NewUniversalJoint creates a universal joint named name between the parent
// and child frames. Only the directions of the axes are used; it fails with
// ErrDegenerateAxis if either is numerically zero.
func NewUniversalJoint[T scalar.Scalar[T]](name string, parent, child *Frame, axis1, axis2 r3.Vec) (*UniversalJoint[T], error) {
	if r3.Norm(axis1) <= machineEps {
		return nil, fmt.Errorf("%w: universal joint %q first axis %v", ErrDegenerateAxis, name, axis1)
	}
	if r3.Norm(axis2) <= machineEps {
		return nil, fmt.Errorf("%w: universal joint %q second axis %v", ErrDegenerateAxis, name, axis2)
	}
	return &UniversalJoint[T]{
		jointBase: jointBase[T]{name: name, parent: parent, child: child, nq: 2, nv: 2},
		axis1:     r3.Unit(axis1),
		axis2:     r3.Unit(axis2),
	}, nil
}

// Axis1 returns the first unit rotation axis, fixed in the parent frame.
func (j *UniversalJoint[T]) Axis1() r3.Vec { return j.axis1 }

// Axis2 returns the second unit rotation axis, fixed in the intermediate
// frame reached by the first rotation.
func (j *UniversalJoint[T]) Axis2() r3.Vec { return j.axis2 }

// Angle gets the rotation angle of the given dof (0 or 1) from s.
func (j *UniversalJoint[T]) Angle(s *State[T], dof int) (T, error) {
	return j.PositionAt(s, dof)
}

// SetAngle stores angle for the given dof (0 or 1) in s.
func (j *UniversalJoint[T]) SetAngle(s *State[T], dof int, angle T) error {
	return j.SetPositionAt(s, dof, angle)
}

// AngularRate gets the angular rate of the given dof from s.
func (j *UniversalJoint[T]) AngularRate(s *State[T], dof int) (T, error) {
	return j.RateAt(s, dof)
}

// SetAngularRate stores rate for the given dof in s.
func (j *UniversalJoint[T]) SetAngularRate(s *State[T], dof int, rate T) error {
	return j.SetRateAt(s, dof, rate)
}

// AddInTorque accumulates a torque about the given dof's axis into f.
func (j *UniversalJoint[T]) AddInTorque(s *State[T], dof int, torque T, f *Forces[T]) error {
	return j.AddInForceAt(s, dof, torque, f)
}

func (j *UniversalJoint[T]) Spec() JointSpec {
	return JointSpec{
		Name:   j.name,
		Type:   JointTypeUniversal,
		Parent: j.parent.Name(),
		Child:  j.child.Name(),
		Axis:   j.axis1,
		Axis2:  j.axis2,
	}
}

func (j *UniversalJoint[T]) MakeBlueprint() *Blueprint[T] {
	return &Blueprint[T]{Mobilizers: []Mobilizer[T]{
		&universalMobilizer[T]{
			mobilizerBase: mobilizerBase{inboard: j.parent, outboard: j.child, nq: 2, nv: 2},
			axis1:         j.axis1,
			axis2:         j.axis2,
		},
	}}
}

// universalMobilizer composes two axis rotations. Its angular velocity is
// the first rate about axis1 plus the second rate about axis2 carried
// through the first rotation.
type universalMobilizer[T scalar.Scalar[T]] struct {
	mobilizerBase
	axis1 r3.Vec
	axis2 r3.Vec
}

func (m *universalMobilizer[T]) Pose(s *State[T]) spatial.Transform[T] {
	r1 := spatial.AxisAngle(m.axis1, s.Position(m.qStart))
	r2 := spatial.AxisAngle(m.axis2, s.Position(m.qStart+1))
	return spatial.Transform[T]{
		R: r1.Mul(r2),
		P: spatial.ZeroVec[T](),
	}
}

func (m *universalMobilizer[T]) SpatialVelocity(s *State[T]) spatial.Twist[T] {
	r1 := spatial.AxisAngle(m.axis1, s.Position(m.qStart))
	w1 := spatial.ScaleVec(s.Velocity(m.vStart), m.axis1)
	w2 := r1.MulVec(spatial.ScaleVec(s.Velocity(m.vStart+1), m.axis2))
	return spatial.Twist[T]{
		Angular: w1.Add(w2),
		Linear:  spatial.ZeroVec[T](),
	}
}

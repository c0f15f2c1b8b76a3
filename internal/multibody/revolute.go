package multibody

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// RevoluteJoint allows its two frames to rotate relative to one another
// about a fixed axis, with the angle's sign following the right-hand rule
// about that axis. The axis has the same measures in both frames and is
// normalized at construction.
type RevoluteJoint[T scalar.Scalar[T]] struct {
	jointBase[T]
	axis r3.Vec
}

// NewRevoluteJoint creates a revolute joint named name between the parent
// and child frames. Only the direction of axis is used; it fails with
// ErrDegenerateAxis if axis is numerically zero.
func NewRevoluteJoint[T scalar.Scalar[T]](name string, parent, child *Frame, axis r3.Vec) (*RevoluteJoint[T], error) {
	if r3.Norm(axis) <= machineEps {
		return nil, fmt.Errorf("%w: revolute joint %q axis %v", ErrDegenerateAxis, name, axis)
	}
	return &RevoluteJoint[T]{
		jointBase: jointBase[T]{name: name, parent: parent, child: child, nq: 1, nv: 1},
		axis:      r3.Unit(axis),
	}, nil
}

// machineEps is the float64 machine epsilon; axes shorter than this cannot
// define a direction.
const machineEps = 0x1p-52

// Axis returns the joint's unit axis of revolution.
func (j *RevoluteJoint[T]) Axis() r3.Vec { return j.axis }

// Angle gets the rotation angle in radians from s.
func (j *RevoluteJoint[T]) Angle(s *State[T]) (T, error) {
	return j.PositionAt(s, 0)
}

// SetAngle stores angle as this joint's generalized position in s.
func (j *RevoluteJoint[T]) SetAngle(s *State[T], angle T) error {
	return j.SetPositionAt(s, 0, angle)
}

// AngularRate gets the angle's rate of change in radians per second from s.
func (j *RevoluteJoint[T]) AngularRate(s *State[T]) (T, error) {
	return j.RateAt(s, 0)
}

// SetAngularRate stores rate as this joint's generalized velocity in s.
func (j *RevoluteJoint[T]) SetAngularRate(s *State[T], rate T) error {
	return j.SetRateAt(s, 0, rate)
}

// AddInTorque accumulates a torque about the joint's axis into f. Positive
// torque produces positive angular acceleration by the right-hand rule.
func (j *RevoluteJoint[T]) AddInTorque(s *State[T], torque T, f *Forces[T]) error {
	return j.AddInForceAt(s, 0, torque, f)
}

func (j *RevoluteJoint[T]) Spec() JointSpec {
	return JointSpec{
		Name:   j.name,
		Type:   JointTypeRevolute,
		Parent: j.parent.Name(),
		Child:  j.child.Name(),
		Axis:   j.axis,
	}
}

func (j *RevoluteJoint[T]) MakeBlueprint() *Blueprint[T] {
	return &Blueprint[T]{Mobilizers: []Mobilizer[T]{
		&revoluteMobilizer[T]{
			mobilizerBase: mobilizerBase{inboard: j.parent, outboard: j.child, nq: 1, nv: 1},
			axis:          j.axis,
		},
	}}
}

// revoluteMobilizer maps one angular coordinate to a rotation about a fixed
// unit axis.
type revoluteMobilizer[T scalar.Scalar[T]] struct {
	mobilizerBase
	axis r3.Vec
}

func (m *revoluteMobilizer[T]) Pose(s *State[T]) spatial.Transform[T] {
	angle := s.Position(m.qStart)
	return spatial.Transform[T]{
		R: spatial.AxisAngle(m.axis, angle),
		P: spatial.ZeroVec[T](),
	}
}

func (m *revoluteMobilizer[T]) SpatialVelocity(s *State[T]) spatial.Twist[T] {
	rate := s.Velocity(m.vStart)
	return spatial.Twist[T]{
		Angular: spatial.ScaleVec(rate, m.axis),
		Linear:  spatial.ZeroVec[T](),
	}
}

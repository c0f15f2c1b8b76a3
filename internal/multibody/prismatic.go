package multibody

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// PrismaticJoint allows its two frames to translate relative to one another
// along a fixed axis, with no relative rotation. The axis is normalized at
// construction.
type PrismaticJoint[T scalar.Scalar[T]] struct {
	jointBase[T]
	axis r3.Vec
}

// NewPrismaticJoint creates a prismatic joint named name between the parent
// and child frames. Only the direction of axis is used; it fails with
// ErrDegenerateAxis if axis is numerically zero.
func NewPrismaticJoint[T scalar.Scalar[T]](name string, parent, child *Frame, axis r3.Vec) (*PrismaticJoint[T], error) {
	if r3.Norm(axis) <= machineEps {
		return nil, fmt.Errorf("%w: prismatic joint %q axis %v", ErrDegenerateAxis, name, axis)
	}
	return &PrismaticJoint[T]{
		jointBase: jointBase[T]{name: name, parent: parent, child: child, nq: 1, nv: 1},
		axis:      r3.Unit(axis),
	}, nil
}

// Axis returns the joint's unit axis of translation.
func (j *PrismaticJoint[T]) Axis() r3.Vec { return j.axis }

// Translation gets the displacement along the axis from s.
func (j *PrismaticJoint[T]) Translation(s *State[T]) (T, error) {
	return j.PositionAt(s, 0)
}

// SetTranslation stores d as this joint's generalized position in s.
func (j *PrismaticJoint[T]) SetTranslation(s *State[T], d T) error {
	return j.SetPositionAt(s, 0, d)
}

// TranslationRate gets the displacement's rate of change from s.
func (j *PrismaticJoint[T]) TranslationRate(s *State[T]) (T, error) {
	return j.RateAt(s, 0)
}

// SetTranslationRate stores rate as this joint's generalized velocity in s.
func (j *PrismaticJoint[T]) SetTranslationRate(s *State[T], rate T) error {
	return j.SetRateAt(s, 0, rate)
}

// AddInForce accumulates a force along the joint's axis into f.
func (j *PrismaticJoint[T]) AddInForce(s *State[T], force T, f *Forces[T]) error {
	return j.AddInForceAt(s, 0, force, f)
}

func (j *PrismaticJoint[T]) Spec() JointSpec {
	return JointSpec{
		Name:   j.name,
		Type:   JointTypePrismatic,
		Parent: j.parent.Name(),
		Child:  j.child.Name(),
		Axis:   j.axis,
	}
}

func (j *PrismaticJoint[T]) MakeBlueprint() *Blueprint[T] {
	return &Blueprint[T]{Mobilizers: []Mobilizer[T]{
		&prismaticMobilizer[T]{
			mobilizerBase: mobilizerBase{inboard: j.parent, outboard: j.child, nq: 1, nv: 1},
			axis:          j.axis,
		},
	}}
}

// prismaticMobilizer maps one linear coordinate to a translation along a
// fixed unit axis.
type prismaticMobilizer[T scalar.Scalar[T]] struct {
	mobilizerBase
	axis r3.Vec
}

func (m *prismaticMobilizer[T]) Pose(s *State[T]) spatial.Transform[T] {
	d := s.Position(m.qStart)
	return spatial.Transform[T]{
		R: spatial.IdentityMat[T](),
		P: spatial.ScaleVec(d, m.axis),
	}
}

func (m *prismaticMobilizer[T]) SpatialVelocity(s *State[T]) spatial.Twist[T] {
	rate := s.Velocity(m.vStart)
	return spatial.Twist[T]{
		Angular: spatial.ZeroVec[T](),
		Linear:  spatial.ScaleVec(rate, m.axis),
	}
}

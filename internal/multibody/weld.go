package multibody

import (
	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// WeldJoint rigidly fixes its two frames at a constant relative transform.
// It has zero degrees of freedom: it occupies no state, accepts no forces,
// and its pose never changes. It exists so rigid attachments flow through
// the same declare/finalize lifecycle as every other joint.
type WeldJoint[T scalar.Scalar[T]] struct {
	jointBase[T]
	xFM spatial.StaticTransform
}

// NewWeldJoint creates a weld named name holding child fixed relative to
// parent at the transform xFM.
func NewWeldJoint[T scalar.Scalar[T]](name string, parent, child *Frame, xFM spatial.StaticTransform) *WeldJoint[T] {
	return &WeldJoint[T]{
		jointBase: jointBase[T]{name: name, parent: parent, child: child, nq: 0, nv: 0},
		xFM:       xFM,
	}
}

// FixedPose returns the weld's constant relative transform.
func (j *WeldJoint[T]) FixedPose() spatial.StaticTransform { return j.xFM }

func (j *WeldJoint[T]) Spec() JointSpec {
	axis, angle := spatial.RecoverAxisAngle(spatial.LiftMat[scalar.Float](j.xFM.R))
	return JointSpec{
		Name:   j.name,
		Type:   JointTypeWeld,
		Parent: j.parent.Name(),
		Child:  j.child.Name(),
		Axis:   axis,
		Angle:  angle,
		Offset: j.xFM.P,
	}
}

func (j *WeldJoint[T]) MakeBlueprint() *Blueprint[T] {
	return &Blueprint[T]{Mobilizers: []Mobilizer[T]{
		&weldMobilizer[T]{
			mobilizerBase: mobilizerBase{inboard: j.parent, outboard: j.child},
			xFM:           j.xFM,
		},
	}}
}

// weldMobilizer occupies no coordinates and reports a constant pose.
type weldMobilizer[T scalar.Scalar[T]] struct {
	mobilizerBase
	xFM spatial.StaticTransform
}

func (m *weldMobilizer[T]) Pose(*State[T]) spatial.Transform[T] {
	return spatial.Lift[T](m.xFM)
}

func (m *weldMobilizer[T]) SpatialVelocity(*State[T]) spatial.Twist[T] {
	return spatial.ZeroTwist[T]()
}

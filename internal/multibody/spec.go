package multibody

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// JointType tags a JointSpec with its kinematic variant.
type JointType string

const (
	JointTypeRevolute  JointType = "revolute"
	JointTypePrismatic JointType = "prismatic"
	JointTypeUniversal JointType = "universal"
	JointTypeWeld      JointType = "weld"
)

// JointSpec is a scalar-free, plain-data description of a joint: its name,
// kinematic type, frame names and fixed geometry. It is what survives a
// scalar conversion unchanged, and it is also how configuration files
// declare mechanisms. Field usage by type:
//
//	revolute:  Axis
//	prismatic: Axis
//	universal: Axis, Axis2
//	weld:      Axis+Angle (axis-angle rotation), Offset (translation)
type JointSpec struct {
	Name   string
	Type   JointType
	Parent string
	Child  string
	Axis   r3.Vec
	Axis2  r3.Vec
	Angle  float64
	Offset r3.Vec
}

// NewJointFromSpec constructs an unbound joint over scalar type T from its
// plain-data description, resolving frame names against frames. It fails
// with ErrFrameNotFound if either endpoint is missing and with
// ErrUnknownJointType for an unrecognized type tag.
func NewJointFromSpec[T scalar.Scalar[T]](sp JointSpec, frames FrameResolver) (Joint[T], error) {
	parent, ok := frames.FrameByName(sp.Parent)
	if !ok {
		return nil, fmt.Errorf("%w: joint %q parent frame %q", ErrFrameNotFound, sp.Name, sp.Parent)
	}
	child, ok := frames.FrameByName(sp.Child)
	if !ok {
		return nil, fmt.Errorf("%w: joint %q child frame %q", ErrFrameNotFound, sp.Name, sp.Child)
	}

	switch sp.Type {
	case JointTypeRevolute:
		return NewRevoluteJoint[T](sp.Name, parent, child, sp.Axis)
	case JointTypePrismatic:
		return NewPrismaticJoint[T](sp.Name, parent, child, sp.Axis)
	case JointTypeUniversal:
		return NewUniversalJoint[T](sp.Name, parent, child, sp.Axis, sp.Axis2)
	case JointTypeWeld:
		var xFM spatial.StaticTransform
		if sp.Angle == 0 {
			xFM = spatial.IdentityStatic()
			xFM.P = sp.Offset
		} else {
			// Same eager axis check as the moving joint types; a rotating
			// weld about a junk axis must not silently produce a non-rotation.
			if r3.Norm(sp.Axis) <= machineEps {
				return nil, fmt.Errorf("%w: weld joint %q axis %v", ErrDegenerateAxis, sp.Name, sp.Axis)
			}
			xFM = spatial.StaticFromAxisAngle(r3.Unit(sp.Axis), sp.Angle, sp.Offset)
		}
		return NewWeldJoint[T](sp.Name, parent, child, xFM), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownJointType, sp.Type)
	}
}

// CloneJointToScalar re-instantiates a joint over scalar type To, remapping
// its frame references into the already-cloned target tree's frames by
// name. The clone preserves name, degree-of-freedom count and fixed
// geometry exactly, and starts unbound: it becomes usable only after a
// finalize pass on the target tree. The source joint may be over any scalar
// type, bound or not.
func CloneJointToScalar[To scalar.Scalar[To]](src interface{ Spec() JointSpec }, target FrameResolver) (Joint[To], error) {
	return NewJointFromSpec[To](src.Spec(), target)
}

// CloneTreeToScalar reproduces an entire tree over scalar type To: frames
// first, then every joint in declaration order. The result is not
// finalized; the caller runs its own finalize pass, which reproduces the
// source's coordinate layout because offset assignment is a pure function
// of declaration order.
func CloneTreeToScalar[From scalar.Scalar[From], To scalar.Scalar[To]](src *Tree[From]) (*Tree[To], error) {
	clone := NewTree[To]()
	for _, f := range src.Frames() {
		if _, err := clone.AddFrame(f.Name()); err != nil {
			return nil, err
		}
	}
	for _, j := range src.Joints() {
		cj, err := CloneJointToScalar[To](j, clone)
		if err != nil {
			return nil, err
		}
		if err := clone.AddJoint(cj); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

package spatial

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
)

// Transform is a rigid transform between two frames: rotation R then
// translation P, both expressed in the inboard frame.
type Transform[T scalar.Scalar[T]] struct {
	R Mat3[T]
	P Vec3[T]
}

// IdentityTransform returns the identity rigid transform.
func IdentityTransform[T scalar.Scalar[T]]() Transform[T] {
	return Transform[T]{R: IdentityMat[T](), P: ZeroVec[T]()}
}

// Compose returns this transform followed by o: X_AC = X_AB.Compose(X_BC).
func (x Transform[T]) Compose(o Transform[T]) Transform[T] {
	return Transform[T]{
		R: x.R.Mul(o.R),
		P: x.R.MulVec(o.P).Add(x.P),
	}
}

// Twist is a spatial velocity: angular and linear components, expressed in
// the same frame as the transform that pairs with it.
type Twist[T scalar.Scalar[T]] struct {
	Angular Vec3[T]
	Linear  Vec3[T]
}

// ZeroTwist returns the zero spatial velocity.
func ZeroTwist[T scalar.Scalar[T]]() Twist[T] {
	return Twist[T]{Angular: ZeroVec[T](), Linear: ZeroVec[T]()}
}

// StaticTransform is a fixed rigid transform in plain float64, used for
// geometry that never depends on state (weld offsets). It lifts into any
// scalar type without acquiring a derivative part.
type StaticTransform struct {
	R [3][3]float64
	P r3.Vec
}

// IdentityStatic returns the identity fixed transform.
func IdentityStatic() StaticTransform {
	return StaticTransform{
		R: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
}

// StaticFromAxisAngle builds a fixed transform from an axis-angle rotation
// and a translation.
func StaticFromAxisAngle(axis r3.Vec, angle float64, p r3.Vec) StaticTransform {
	m := AxisAngle(axis, scalar.Float(angle))
	return StaticTransform{R: m.Floats(), P: p}
}

// Lift promotes the fixed transform into the scalar type T.
func Lift[T scalar.Scalar[T]](x StaticTransform) Transform[T] {
	return Transform[T]{R: LiftMat[T](x.R), P: LiftVec[T](x.P)}
}

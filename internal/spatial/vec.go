package spatial

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
)

// Vec3 is a 3-vector over a generic scalar.
type Vec3[T scalar.Scalar[T]] struct {
	X, Y, Z T
}

// ZeroVec returns the zero vector.
func ZeroVec[T scalar.Scalar[T]]() Vec3[T] {
	z := scalar.Zero[T]()
	return Vec3[T]{X: z, Y: z, Z: z}
}

// LiftVec promotes a fixed geometry vector into the scalar type T. The
// result carries no derivative part.
func LiftVec[T scalar.Scalar[T]](v r3.Vec) Vec3[T] {
	return Vec3[T]{
		X: scalar.FromFloat[T](v.X),
		Y: scalar.FromFloat[T](v.Y),
		Z: scalar.FromFloat[T](v.Z),
	}
}

// ScaleVec multiplies a fixed geometry vector by a generic scalar. This is
// the workhorse for axis-aligned quantities: rate times axis, displacement
// times axis.
func ScaleVec[T scalar.Scalar[T]](c T, v r3.Vec) Vec3[T] {
	return Vec3[T]{X: c.Scale(v.X), Y: c.Scale(v.Y), Z: c.Scale(v.Z)}
}

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

func (v Vec3[T]) Scale(c T) Vec3[T] {
	return Vec3[T]{X: v.X.Mul(c), Y: v.Y.Mul(c), Z: v.Z.Mul(c)}
}

func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		Y: v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		Z: v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3[T]) Norm() T {
	return v.Dot(v).Sqrt()
}

// Floats reports the value parts of the components.
func (v Vec3[T]) Floats() r3.Vec {
	return r3.Vec{X: v.X.Float(), Y: v.Y.Float(), Z: v.Z.Float()}
}

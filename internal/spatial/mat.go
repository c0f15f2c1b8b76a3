package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
)

// Mat3 is a 3x3 matrix over a generic scalar, row major. The joint layer
// only ever builds rotations with it.
type Mat3[T scalar.Scalar[T]] [3][3]T

// IdentityMat returns the identity rotation.
func IdentityMat[T scalar.Scalar[T]]() Mat3[T] {
	zero := scalar.Zero[T]()
	one := scalar.One[T]()
	return Mat3[T]{
		{one, zero, zero},
		{zero, one, zero},
		{zero, zero, one},
	}
}

// LiftMat promotes a fixed float64 rotation into the scalar type T.
func LiftMat[T scalar.Scalar[T]](m [3][3]float64) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = scalar.FromFloat[T](m[i][j])
		}
	}
	return out
}

// AxisAngle builds the rotation of angle about a fixed unit axis using the
// Rodrigues formula. The axis is plain geometry; only the angle may carry a
// derivative.
func AxisAngle[T scalar.Scalar[T]](axis r3.Vec, angle T) Mat3[T] {
	c := angle.Cos()
	s := angle.Sin()
	omc := scalar.One[T]().Sub(c)

	x, y, z := axis.X, axis.Y, axis.Z
	return Mat3[T]{
		{
			c.Add(omc.Scale(x * x)),
			omc.Scale(x * y).Sub(s.Scale(z)),
			omc.Scale(x * z).Add(s.Scale(y)),
		},
		{
			omc.Scale(x * y).Add(s.Scale(z)),
			c.Add(omc.Scale(y * y)),
			omc.Scale(y * z).Sub(s.Scale(x)),
		},
		{
			omc.Scale(x * z).Sub(s.Scale(y)),
			omc.Scale(y * z).Add(s.Scale(x)),
			c.Add(omc.Scale(z * z)),
		},
	}
}

func (m Mat3[T]) Mul(o Mat3[T]) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0].Mul(o[0][j]).
				Add(m[i][1].Mul(o[1][j])).
				Add(m[i][2].Mul(o[2][j]))
		}
	}
	return out
}

func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: m[0][0].Mul(v.X).Add(m[0][1].Mul(v.Y)).Add(m[0][2].Mul(v.Z)),
		Y: m[1][0].Mul(v.X).Add(m[1][1].Mul(v.Y)).Add(m[1][2].Mul(v.Z)),
		Z: m[2][0].Mul(v.X).Add(m[2][1].Mul(v.Y)).Add(m[2][2].Mul(v.Z)),
	}
}

func (m Mat3[T]) Transpose() Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Trace returns the sum of the diagonal entries.
func (m Mat3[T]) Trace() T {
	return m[0][0].Add(m[1][1]).Add(m[2][2])
}

// Floats reports the value parts of the entries.
func (m Mat3[T]) Floats() [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j].Float()
		}
	}
	return out
}

// RecoverAxisAngle extracts the axis and angle of a rotation from its value
// parts. The angle is in [0, pi]; for angle 0 the axis is undefined and the
// zero vector is returned.
func RecoverAxisAngle[T scalar.Scalar[T]](m Mat3[T]) (r3.Vec, float64) {
	r := m.Floats()
	cosTheta := (r[0][0] + r[1][1] + r[2][2] - 1) / 2
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	theta := math.Acos(cosTheta)

	if theta < 1e-12 {
		return r3.Vec{}, 0
	}

	s := 2 * math.Sin(theta)
	axis := r3.Vec{
		X: (r[2][1] - r[1][2]) / s,
		Y: (r[0][2] - r[2][0]) / s,
		Z: (r[1][0] - r[0][1]) / s,
	}
	return axis, theta
}

package scalar

// Scalar is the capability set mobilizer math needs from a number type.
// It is self-referential so generic code can stay allocation-free: every
// operation takes and returns the concrete type T.
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T

	// Scale multiplies by a plain constant. Geometry data (axes, link
	// offsets) enters generic expressions through this method, so it never
	// picks up a derivative part.
	Scale(float64) T

	Neg() T
	Abs() T
	Sin() T
	Cos() T
	Sqrt() T

	// FromFloat builds a constant of type T. The receiver is only used to
	// name the type; its value is ignored.
	FromFloat(float64) T

	// Float reports the value part, discarding any derivative.
	Float() float64
}

// FromFloat builds a constant of any scalar type.
func FromFloat[T Scalar[T]](v float64) T {
	var zero T
	return zero.FromFloat(v)
}

// Zero returns the additive identity of T.
func Zero[T Scalar[T]]() T {
	var zero T
	return zero.FromFloat(0)
}

// One returns the multiplicative identity of T.
func One[T Scalar[T]]() T {
	var zero T
	return zero.FromFloat(1)
}

// Package scalar defines the numeric abstraction the kinematics code is
// written against.
//
// Joint and mobilizer math is generic over [Scalar], so the same pose and
// velocity code runs over two representations:
//
//   - [Float]: a plain float64, for ordinary simulation.
//   - [Dual]: a forward-mode dual number, for derivative propagation.
//
// A value's derivative part rides along through every arithmetic and trig
// operation, which is how the engine produces Jacobians from the exact code
// path that produces trajectories.
//
// Fixed geometry (joint axes, weld offsets) is deliberately NOT expressed in
// these types: axes never carry derivatives, so they stay plain float64
// vectors regardless of the state's scalar type.
package scalar

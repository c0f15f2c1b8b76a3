// Package dynamics drives evaluations of a finalized multibody tree.
//
// It is the "external driver" side of the joint layer: it owns the State
// and Forces containers for each run, steps a simple joint-space plant,
// lets a [Controller] inject generalized forces through the joints' public
// entry points, and extracts Jacobians by re-evaluating the same kinematics
// over the derivative-carrying scalar.
//
// The plant is deliberately diagonal (per-dof inertia, damping and bias);
// full equations of motion are outside this layer.
package dynamics

package multibody

import "errors"

// Domain errors for tree assembly and joint evaluation.
var (
	// ErrDegenerateAxis indicates joint geometry that cannot define a
	// direction, such as a zero-length revolute axis.
	ErrDegenerateAxis = errors.New("multibody: degenerate joint axis")

	// ErrUnbound indicates a state- or force-dependent operation on a joint
	// whose tree has not been finalized.
	ErrUnbound = errors.New("multibody: joint not bound to a mobilizer (tree not finalized)")

	// ErrSizeMismatch indicates a state or force container sized for a
	// different mechanism than the one the joint belongs to.
	ErrSizeMismatch = errors.New("multibody: container size does not match mechanism")

	// ErrFrameNotFound indicates a frame lookup by name failed, typically
	// during scalar conversion against a cloned tree.
	ErrFrameNotFound = errors.New("multibody: frame not found")

	// ErrFinalized indicates an attempt to mutate a tree after Finalize.
	ErrFinalized = errors.New("multibody: tree already finalized")

	// ErrNotFinalized indicates an operation that requires a finalized tree.
	ErrNotFinalized = errors.New("multibody: tree not finalized")

	// ErrDuplicateName indicates a frame or joint name collision.
	ErrDuplicateName = errors.New("multibody: duplicate name")

	// ErrUnknownJointType indicates a joint spec with an unrecognized type tag.
	ErrUnknownJointType = errors.New("multibody: unknown joint type")

	// ErrDOFOutOfRange indicates a per-dof accessor index outside the
	// joint's degree-of-freedom count.
	ErrDOFOutOfRange = errors.New("multibody: joint dof index out of range")
)

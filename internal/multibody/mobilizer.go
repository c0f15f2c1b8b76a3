package multibody

import (
	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// Mobilizer is the internal mechanism that maps a joint's generalized
// coordinates to spatial quantities and routes generalized forces into the
// accumulator. One variant exists per joint kinematic type. Mobilizers are
// instantiated exactly once, during Tree.Finalize, from a joint's
// Blueprint, and are immutable afterwards apart from the offset assignment
// done by that same pass.
type Mobilizer[T scalar.Scalar[T]] interface {
	InboardFrame() *Frame
	OutboardFrame() *Frame

	// NumQ and NumV report the number of generalized positions and
	// velocities this mobilizer occupies.
	NumQ() int
	NumV() int

	// PositionStart and VelocityStart report the mobilizer's pre-assigned
	// offsets into the mechanism's State and Forces containers.
	PositionStart() int
	VelocityStart() int

	// Pose returns the relative transform between the mobilizer's frames as
	// a pure function of the current generalized positions.
	Pose(s *State[T]) spatial.Transform[T]

	// SpatialVelocity returns the relative spatial velocity as a pure
	// function of the current generalized velocities.
	SpatialVelocity(s *State[T]) spatial.Twist[T]

	// setOffsets is called once by the finalize pass.
	setOffsets(qStart, vStart int)
}

// mobilizerBase carries the bookkeeping shared by every mobilizer variant.
type mobilizerBase struct {
	inboard  *Frame
	outboard *Frame
	qStart   int
	vStart   int
	nq       int
	nv       int
}

func (m *mobilizerBase) InboardFrame() *Frame  { return m.inboard }
func (m *mobilizerBase) OutboardFrame() *Frame { return m.outboard }
func (m *mobilizerBase) NumQ() int             { return m.nq }
func (m *mobilizerBase) NumV() int             { return m.nv }
func (m *mobilizerBase) PositionStart() int    { return m.qStart }
func (m *mobilizerBase) VelocityStart() int    { return m.vStart }

func (m *mobilizerBase) setOffsets(qStart, vStart int) {
	m.qStart = qStart
	m.vStart = vStart
}

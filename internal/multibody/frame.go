package multibody

// Frame is a named rigid reference attached to a body. Frames are created
// and owned by a Tree; joints hold them by reference only. A Frame is
// immutable after creation.
type Frame struct {
	name string
}

// Name reports the frame's unique name within its tree.
func (f *Frame) Name() string { return f.name }

// FrameResolver looks frames up by name. It is satisfied by Tree and is the
// only view of a tree the scalar-conversion path needs.
type FrameResolver interface {
	FrameByName(name string) (*Frame, bool)
}

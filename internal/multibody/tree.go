package multibody

import (
	"fmt"

	"github.com/san-kum/multibody/internal/scalar"
)

// Tree owns a mechanism's frames, joints and, after Finalize, its
// mobilizers. It has a two-phase lifecycle: an open phase in which frames
// and joints may be declared in any order, and a finalized phase entered
// exactly once by Finalize, after which the topology is frozen and the
// joints' state accessors work.
type Tree[T scalar.Scalar[T]] struct {
	frames     map[string]*Frame
	frameOrder []*Frame

	joints  []Joint[T]
	byName  map[string]Joint[T]

	mobilizers []Mobilizer[T]
	numQ       int
	numV       int
	finalized  bool
}

// NewTree returns an empty, open tree.
func NewTree[T scalar.Scalar[T]]() *Tree[T] {
	return &Tree[T]{
		frames: make(map[string]*Frame),
		byName: make(map[string]Joint[T]),
	}
}

// AddFrame creates a frame with a unique name. Fails once finalized.
func (t *Tree[T]) AddFrame(name string) (*Frame, error) {
	if t.finalized {
		return nil, fmt.Errorf("%w: cannot add frame %q", ErrFinalized, name)
	}
	if _, ok := t.frames[name]; ok {
		return nil, fmt.Errorf("%w: frame %q", ErrDuplicateName, name)
	}
	f := &Frame{name: name}
	t.frames[name] = f
	t.frameOrder = append(t.frameOrder, f)
	return f, nil
}

// FrameByName looks a frame up by name.
func (t *Tree[T]) FrameByName(name string) (*Frame, bool) {
	f, ok := t.frames[name]
	return f, ok
}

// Frames returns the tree's frames in declaration order.
func (t *Tree[T]) Frames() []*Frame {
	out := make([]*Frame, len(t.frameOrder))
	copy(out, t.frameOrder)
	return out
}

// AddJoint registers a joint declared against this tree's frames. Fails
// once finalized or on a name collision.
func (t *Tree[T]) AddJoint(j Joint[T]) error {
	if t.finalized {
		return fmt.Errorf("%w: cannot add joint %q", ErrFinalized, j.Name())
	}
	if _, ok := t.byName[j.Name()]; ok {
		return fmt.Errorf("%w: joint %q", ErrDuplicateName, j.Name())
	}
	t.joints = append(t.joints, j)
	t.byName[j.Name()] = j
	return nil
}

// JointByName looks a joint up by name.
func (t *Tree[T]) JointByName(name string) (Joint[T], bool) {
	j, ok := t.byName[name]
	return j, ok
}

// Joints returns the tree's joints in declaration order.
func (t *Tree[T]) Joints() []Joint[T] {
	out := make([]Joint[T], len(t.joints))
	copy(out, t.joints)
	return out
}

// Finalize freezes the topology: it consumes every joint's blueprint in
// declaration order, assigns each mobilizer a contiguous range of position
// and velocity coordinates, instantiates the tree's mobilizer collection,
// and binds each joint to its mobilizer. Calling it twice is an error.
func (t *Tree[T]) Finalize() error {
	if t.finalized {
		return ErrFinalized
	}

	// First pass: consume blueprints and lay out coordinates.
	perJoint := make([][]Mobilizer[T], len(t.joints))
	for i, j := range t.joints {
		bp := j.MakeBlueprint()
		for _, m := range bp.Mobilizers {
			m.setOffsets(t.numQ, t.numV)
			t.numQ += m.NumQ()
			t.numV += m.NumV()
			t.mobilizers = append(t.mobilizers, m)
		}
		perJoint[i] = bp.Mobilizers
	}

	// Second pass: bind, now that the mechanism totals are known.
	for i, j := range t.joints {
		if err := j.bind(perJoint[i], t.numQ, t.numV); err != nil {
			return err
		}
	}

	t.finalized = true
	return nil
}

// Finalized reports whether Finalize has run.
func (t *Tree[T]) Finalized() bool { return t.finalized }

// NumPositions reports the mechanism's total generalized-position count.
// Valid only after Finalize.
func (t *Tree[T]) NumPositions() int { return t.numQ }

// NumVelocities reports the mechanism's total generalized-velocity count.
// Valid only after Finalize.
func (t *Tree[T]) NumVelocities() int { return t.numV }

// Mobilizers returns the tree's mobilizer collection in coordinate order.
func (t *Tree[T]) Mobilizers() []Mobilizer[T] {
	out := make([]Mobilizer[T], len(t.mobilizers))
	copy(out, t.mobilizers)
	return out
}

// NewState allocates a state container sized exactly for this mechanism.
func (t *Tree[T]) NewState() (*State[T], error) {
	if !t.finalized {
		return nil, fmt.Errorf("%w: state size unknown", ErrNotFinalized)
	}
	return NewState[T](t.numQ, t.numV), nil
}

// NewForces allocates a force accumulator sized exactly for this mechanism.
func (t *Tree[T]) NewForces() (*Forces[T], error) {
	if !t.finalized {
		return nil, fmt.Errorf("%w: accumulator size unknown", ErrNotFinalized)
	}
	return NewForces[T](t.numV), nil
}

package multibody

import "github.com/san-kum/multibody/internal/scalar"

// Blueprint is a joint's deferred construction plan: the ordered list of
// mobilizers that must be instantiated for it once the tree topology is
// frozen. Simple joint types list exactly one mobilizer; composite types
// may list several.
//
// A Blueprint is produced by Joint.MakeBlueprint, consumed by a single
// Tree.Finalize pass, and not retained afterwards. MakeBlueprint is a pure
// function of the joint's construction data, so calling it repeatedly
// yields equivalent plans.
type Blueprint[T scalar.Scalar[T]] struct {
	Mobilizers []Mobilizer[T]
}

// NumDOFs sums the velocity dimensions of the listed mobilizers.
func (b *Blueprint[T]) NumDOFs() int {
	n := 0
	for _, m := range b.Mobilizers {
		n += m.NumV()
	}
	return n
}

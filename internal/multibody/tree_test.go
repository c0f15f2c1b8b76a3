package multibody

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
)

func TestTreeOffsetsAcrossJoints(t *testing.T) {
	tree := NewTree[scalar.Float]()
	names := []string{"w", "a", "b", "c"}
	for _, n := range names {
		if _, err := tree.AddFrame(n); err != nil {
			t.Fatal(err)
		}
	}
	w, _ := tree.FrameByName("w")
	a, _ := tree.FrameByName("a")
	b, _ := tree.FrameByName("b")
	c, _ := tree.FrameByName("c")

	j1, _ := NewRevoluteJoint[scalar.Float]("j1", w, a, r3.Vec{Z: 1})
	j2, _ := NewUniversalJoint[scalar.Float]("j2", a, b, r3.Vec{X: 1}, r3.Vec{Y: 1})
	j3, _ := NewPrismaticJoint[scalar.Float]("j3", b, c, r3.Vec{X: 1})
	for _, j := range []Joint[scalar.Float]{j1, j2, j3} {
		if err := tree.AddJoint(j); err != nil {
			t.Fatal(err)
		}
	}
	if err := tree.Finalize(); err != nil {
		t.Fatal(err)
	}

	if tree.NumPositions() != 4 || tree.NumVelocities() != 4 {
		t.Fatalf("totals: expected (4,4), got (%d,%d)", tree.NumPositions(), tree.NumVelocities())
	}

	mobs := tree.Mobilizers()
	if len(mobs) != 3 {
		t.Fatalf("expected 3 mobilizers, got %d", len(mobs))
	}
	wantStarts := []int{0, 1, 3}
	for i, m := range mobs {
		if m.PositionStart() != wantStarts[i] || m.VelocityStart() != wantStarts[i] {
			t.Errorf("mobilizer %d: expected start %d, got (%d,%d)",
				i, wantStarts[i], m.PositionStart(), m.VelocityStart())
		}
	}

	// Writes land in distinct, contiguous slots.
	s, _ := tree.NewState()
	_ = j1.SetPositionAt(s, 0, scalar.Float(1))
	_ = j2.SetPositionAt(s, 0, scalar.Float(2))
	_ = j2.SetPositionAt(s, 1, scalar.Float(3))
	_ = j3.SetPositionAt(s, 0, scalar.Float(4))
	got := s.Positions()
	for i, want := range []float64{1, 2, 3, 4} {
		if got[i] != want {
			t.Errorf("slot %d: expected %f, got %f", i, want, got[i])
		}
	}
}

func TestTreeDuplicateNames(t *testing.T) {
	tree := NewTree[scalar.Float]()
	if _, err := tree.AddFrame("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.AddFrame("a"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate frame: expected ErrDuplicateName, got %v", err)
	}

	a, _ := tree.FrameByName("a")
	b, _ := tree.AddFrame("b")
	j1, _ := NewRevoluteJoint[scalar.Float]("j", a, b, r3.Vec{Z: 1})
	j2, _ := NewRevoluteJoint[scalar.Float]("j", a, b, r3.Vec{X: 1})
	if err := tree.AddJoint(j1); err != nil {
		t.Fatal(err)
	}
	if err := tree.AddJoint(j2); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate joint: expected ErrDuplicateName, got %v", err)
	}
}

func TestTreeFinalizeOnce(t *testing.T) {
	tree := NewTree[scalar.Float]()
	a, _ := tree.AddFrame("a")
	b, _ := tree.AddFrame("b")
	j, _ := NewRevoluteJoint[scalar.Float]("j", a, b, r3.Vec{Z: 1})
	if err := tree.AddJoint(j); err != nil {
		t.Fatal(err)
	}

	if err := tree.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := tree.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second finalize: expected ErrFinalized, got %v", err)
	}
	if _, err := tree.AddFrame("c"); !errors.Is(err, ErrFinalized) {
		t.Errorf("post-finalize add frame: expected ErrFinalized, got %v", err)
	}
	j2, _ := NewRevoluteJoint[scalar.Float]("j2", a, b, r3.Vec{Z: 1})
	if err := tree.AddJoint(j2); !errors.Is(err, ErrFinalized) {
		t.Errorf("post-finalize add joint: expected ErrFinalized, got %v", err)
	}
}

func TestContainersRequireFinalize(t *testing.T) {
	tree := NewTree[scalar.Float]()
	if _, err := tree.NewState(); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("NewState: expected ErrNotFinalized, got %v", err)
	}
	if _, err := tree.NewForces(); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("NewForces: expected ErrNotFinalized, got %v", err)
	}
}

func TestBlueprintIdempotent(t *testing.T) {
	tree := NewTree[scalar.Float]()
	a, _ := tree.AddFrame("a")
	b, _ := tree.AddFrame("b")
	j, _ := NewRevoluteJoint[scalar.Float]("j", a, b, r3.Vec{Y: 1})

	bp1 := j.MakeBlueprint()
	bp2 := j.MakeBlueprint()
	if len(bp1.Mobilizers) != 1 || len(bp2.Mobilizers) != 1 {
		t.Fatal("expected one mobilizer per blueprint")
	}
	if bp1.NumDOFs() != bp2.NumDOFs() {
		t.Error("blueprints differ in dof count")
	}
	m1 := bp1.Mobilizers[0].(*revoluteMobilizer[scalar.Float])
	m2 := bp2.Mobilizers[0].(*revoluteMobilizer[scalar.Float])
	if m1.axis != m2.axis {
		t.Error("blueprints differ in axis")
	}
	if m1 == m2 {
		t.Error("blueprints must produce fresh mobilizer instances")
	}
}

func TestStateValidation(t *testing.T) {
	s := NewState[scalar.Float](2, 2)
	if !s.IsValid() {
		t.Error("zero state should be valid")
	}
	s.SetPosition(1, scalar.Float(1).Div(scalar.Float(0)))
	if s.IsValid() {
		t.Error("state with Inf should be invalid")
	}
}

func TestForcesReset(t *testing.T) {
	f := NewForces[scalar.Float](3)
	f.Add(1, scalar.Float(2))
	f.Reset()
	for i, v := range f.Floats() {
		if v != 0 {
			t.Errorf("slot %d not cleared: %f", i, v)
		}
	}
}

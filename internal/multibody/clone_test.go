package multibody

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

func buildChain(t *testing.T) *Tree[scalar.Float] {
	t.Helper()
	tree := NewTree[scalar.Float]()
	for _, n := range []string{"pelvis", "thigh", "shank"} {
		if _, err := tree.AddFrame(n); err != nil {
			t.Fatal(err)
		}
	}
	pelvis, _ := tree.FrameByName("pelvis")
	thigh, _ := tree.FrameByName("thigh")
	shank, _ := tree.FrameByName("shank")

	hip, _ := NewRevoluteJoint[scalar.Float]("hip", pelvis, thigh, r3.Vec{Z: 1})
	knee, _ := NewRevoluteJoint[scalar.Float]("knee", thigh, shank, r3.Vec{Y: 1})
	if err := tree.AddJoint(hip); err != nil {
		t.Fatal(err)
	}
	if err := tree.AddJoint(knee); err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestCloneJointPreservesIdentity(t *testing.T) {
	src := buildChain(t)
	if err := src.Finalize(); err != nil {
		t.Fatal(err)
	}
	hip, _ := src.JointByName("hip")

	clone, err := CloneTreeToScalar[scalar.Float, scalar.Dual](src)
	if err != nil {
		t.Fatal(err)
	}

	cj, ok := clone.JointByName("hip")
	if !ok {
		t.Fatal("clone lost joint hip")
	}
	if cj.Name() != hip.Name() {
		t.Errorf("name: expected %q, got %q", hip.Name(), cj.Name())
	}
	if cj.NumDOFs() != hip.NumDOFs() {
		t.Errorf("dof count: expected %d, got %d", hip.NumDOFs(), cj.NumDOFs())
	}

	crev, ok := cj.(*RevoluteJoint[scalar.Dual])
	if !ok {
		t.Fatalf("clone changed kinematic type: %T", cj)
	}
	srcAxis := hip.(*RevoluteJoint[scalar.Float]).Axis()
	if crev.Axis() != srcAxis {
		t.Errorf("axis: expected %+v, got %+v", srcAxis, crev.Axis())
	}

	// Frame references point into the clone tree, matched by name.
	cf, _ := clone.FrameByName("pelvis")
	if crev.ParentFrame() != cf {
		t.Error("clone's parent frame is not the clone tree's frame")
	}
}

func TestCloneStartsUnbound(t *testing.T) {
	src := buildChain(t)
	if err := src.Finalize(); err != nil {
		t.Fatal(err)
	}

	clone, err := CloneTreeToScalar[scalar.Float, scalar.Dual](src)
	if err != nil {
		t.Fatal(err)
	}
	for _, j := range clone.Joints() {
		if j.Bound() {
			t.Errorf("joint %q: clone must start unbound", j.Name())
		}
	}

	// A fresh finalize reproduces the source layout.
	if err := clone.Finalize(); err != nil {
		t.Fatal(err)
	}
	if clone.NumPositions() != src.NumPositions() || clone.NumVelocities() != src.NumVelocities() {
		t.Errorf("clone layout (%d,%d) differs from source (%d,%d)",
			clone.NumPositions(), clone.NumVelocities(), src.NumPositions(), src.NumVelocities())
	}
}

func TestCloneMissingFrame(t *testing.T) {
	src := buildChain(t)
	hip, _ := src.JointByName("hip")

	target := NewTree[scalar.Dual]()
	if _, err := target.AddFrame("pelvis"); err != nil {
		t.Fatal(err)
	}
	// No "thigh" frame in the target.
	_, err := CloneJointToScalar[scalar.Dual](hip, target)
	if !errors.Is(err, ErrFrameNotFound) {
		t.Errorf("expected ErrFrameNotFound, got %v", err)
	}
}

func TestCloneEvaluatesIdentically(t *testing.T) {
	src := buildChain(t)
	if err := src.Finalize(); err != nil {
		t.Fatal(err)
	}
	clone, err := CloneTreeToScalar[scalar.Float, scalar.Dual](src)
	if err != nil {
		t.Fatal(err)
	}
	if err := clone.Finalize(); err != nil {
		t.Fatal(err)
	}

	hipF, _ := src.JointByName("hip")
	hipD, _ := clone.JointByName("hip")

	sf, _ := src.NewState()
	sd, _ := clone.NewState()

	theta := 1.1
	if err := hipF.SetPositionAt(sf, 0, scalar.Float(theta)); err != nil {
		t.Fatal(err)
	}
	if err := hipD.SetPositionAt(sd, 0, scalar.NewDual(theta, 0)); err != nil {
		t.Fatal(err)
	}

	xf, _ := hipF.Pose(sf)
	xd, _ := hipD.Pose(sd)

	rf := xf.R.Floats()
	rd := xd.R.Floats()
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(rf[i][k]-rd[i][k]) > 1e-12 {
				t.Fatalf("pose entry (%d,%d): float %f vs dual %f", i, k, rf[i][k], rd[i][k])
			}
		}
	}
}

func TestCloneDualDerivative(t *testing.T) {
	// Seed the hip angle's derivative and check the pose derivative matches
	// d/dtheta of a rotation about z.
	src := buildChain(t)
	if err := src.Finalize(); err != nil {
		t.Fatal(err)
	}
	clone, err := CloneTreeToScalar[scalar.Float, scalar.Dual](src)
	if err != nil {
		t.Fatal(err)
	}
	if err := clone.Finalize(); err != nil {
		t.Fatal(err)
	}

	hip, _ := clone.JointByName("hip")
	s, _ := clone.NewState()

	theta := 0.6
	if err := hip.SetPositionAt(s, 0, scalar.NewDual(theta, 1)); err != nil {
		t.Fatal(err)
	}

	x, _ := hip.Pose(s)
	// For R(theta) about z: d(R00)/dtheta = -sin(theta).
	got := x.R[0][0].Deriv()
	want := -math.Sin(theta)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("dR00/dtheta: expected %f, got %f", want, got)
	}
}

func TestWeldSpecRoundTrip(t *testing.T) {
	tree := NewTree[scalar.Float]()
	a, _ := tree.AddFrame("a")
	b, _ := tree.AddFrame("b")
	weld := NewWeldJoint[scalar.Float]("fixed", a, b,
		spatial.StaticFromAxisAngle(r3.Vec{X: 1}, 0.3, r3.Vec{Z: 2}))

	clone, err := CloneJointToScalar[scalar.Dual](weld, tree)
	if err != nil {
		t.Fatal(err)
	}
	cw := clone.(*WeldJoint[scalar.Dual])

	srcR := weld.FixedPose().R
	gotR := cw.FixedPose().R
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(srcR[i][k]-gotR[i][k]) > 1e-10 {
				t.Fatalf("rotation entry (%d,%d): expected %f, got %f", i, k, srcR[i][k], gotR[i][k])
			}
		}
	}
	if cw.FixedPose().P != weld.FixedPose().P {
		t.Errorf("offset: expected %+v, got %+v", weld.FixedPose().P, cw.FixedPose().P)
	}
}

func TestWeldSpecAxisValidation(t *testing.T) {
	tree := NewTree[scalar.Float]()
	tree.AddFrame("a")
	tree.AddFrame("b")
	base := JointSpec{Name: "fixed", Type: JointTypeWeld, Parent: "a", Child: "b"}

	// A zero axis with a nonzero angle cannot define a rotation.
	sp := base
	sp.Angle = 0.3
	if _, err := NewJointFromSpec[scalar.Float](sp, tree); !errors.Is(err, ErrDegenerateAxis) {
		t.Errorf("expected ErrDegenerateAxis for zero axis, got %v", err)
	}

	// Zero angle needs no axis at all: pure translation.
	sp = base
	sp.Offset = r3.Vec{Z: 2}
	j, err := NewJointFromSpec[scalar.Float](sp, tree)
	if err != nil {
		t.Fatalf("zero-angle weld: %v", err)
	}
	if p := j.(*WeldJoint[scalar.Float]).FixedPose().P; p != sp.Offset {
		t.Errorf("offset: expected %+v, got %+v", sp.Offset, p)
	}

	// A non-unit axis is normalized, so R stays a rotation: every row of
	// the matrix built from (0,0,2) must have unit norm and match the
	// matrix built from (0,0,1).
	sp = base
	sp.Axis = r3.Vec{Z: 2}
	sp.Angle = 0.3
	j, err = NewJointFromSpec[scalar.Float](sp, tree)
	if err != nil {
		t.Fatal(err)
	}
	gotR := j.(*WeldJoint[scalar.Float]).FixedPose().R
	wantR := spatial.StaticFromAxisAngle(r3.Vec{Z: 1}, 0.3, r3.Vec{}).R
	for i := 0; i < 3; i++ {
		norm2 := gotR[i][0]*gotR[i][0] + gotR[i][1]*gotR[i][1] + gotR[i][2]*gotR[i][2]
		if math.Abs(norm2-1) > 1e-12 {
			t.Errorf("row %d norm^2: expected 1, got %f", i, norm2)
		}
		for k := 0; k < 3; k++ {
			if math.Abs(gotR[i][k]-wantR[i][k]) > 1e-12 {
				t.Errorf("rotation entry (%d,%d): expected %f, got %f", i, k, wantR[i][k], gotR[i][k])
			}
		}
	}
}

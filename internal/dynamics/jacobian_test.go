package dynamics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/multibody"
	"github.com/san-kum/multibody/internal/scalar"
)

func twoJointTree(t *testing.T) *Tree {
	t.Helper()
	tree := multibody.NewTree[scalar.Float]()
	for _, n := range []string{"world", "upper", "lower"} {
		if _, err := tree.AddFrame(n); err != nil {
			t.Fatal(err)
		}
	}
	world, _ := tree.FrameByName("world")
	upper, _ := tree.FrameByName("upper")
	lower, _ := tree.FrameByName("lower")

	hip, _ := multibody.NewRevoluteJoint[scalar.Float]("hip", world, upper, r3.Vec{Z: 1})
	knee, _ := multibody.NewRevoluteJoint[scalar.Float]("knee", upper, lower, r3.Vec{Y: 1})
	if err := tree.AddJoint(hip); err != nil {
		t.Fatal(err)
	}
	if err := tree.AddJoint(knee); err != nil {
		t.Fatal(err)
	}
	if err := tree.Finalize(); err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestPosePartialMatchesFiniteDifference(t *testing.T) {
	tree := twoJointTree(t)
	diff, err := NewDifferentiator(tree)
	if err != nil {
		t.Fatal(err)
	}

	s, _ := tree.NewState()
	theta := 0.4
	s.SetPosition(0, scalar.Float(theta))

	dR, dP, err := diff.PosePartial(s, "hip", 0)
	if err != nil {
		t.Fatal(err)
	}

	// Finite difference on the float tree.
	hip, _ := tree.JointByName("hip")
	h := 1e-7
	sl := s.Clone()
	sl.SetPosition(0, scalar.Float(theta-h))
	sr := s.Clone()
	sr.SetPosition(0, scalar.Float(theta+h))
	xl, _ := hip.Pose(sl)
	xr, _ := hip.Pose(sr)

	rl := xl.R.Floats()
	rr := xr.R.Floats()
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			fd := (rr[i][k] - rl[i][k]) / (2 * h)
			if math.Abs(dR[i][k]-fd) > 1e-6 {
				t.Errorf("entry (%d,%d): dual %f vs finite difference %f", i, k, dR[i][k], fd)
			}
		}
	}
	if r3.Norm(dP) > 1e-12 {
		t.Errorf("revolute translation partial should be zero, got %+v", dP)
	}
}

func TestPosePartialIndependentCoordinate(t *testing.T) {
	tree := twoJointTree(t)
	diff, err := NewDifferentiator(tree)
	if err != nil {
		t.Fatal(err)
	}

	s, _ := tree.NewState()
	s.SetPosition(0, scalar.Float(0.7))
	s.SetPosition(1, scalar.Float(-0.2))

	// The hip's pose does not depend on the knee coordinate.
	dR, _, err := diff.PosePartial(s, "hip", 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if dR[i][k] != 0 {
				t.Fatalf("entry (%d,%d): expected 0, got %f", i, k, dR[i][k])
			}
		}
	}
}

func TestAngularJacobianColumns(t *testing.T) {
	tree := twoJointTree(t)
	diff, err := NewDifferentiator(tree)
	if err != nil {
		t.Fatal(err)
	}

	s, _ := tree.NewState()
	cols, err := diff.AngularJacobian(s, "knee")
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}

	// The knee's own relative angular velocity depends only on its own
	// coordinate, with the joint axis as the column.
	if r3.Norm(cols[0]) > 1e-12 {
		t.Errorf("hip column should be zero for the knee's relative twist, got %+v", cols[0])
	}
	if math.Abs(cols[1].Y-1) > 1e-12 || math.Abs(cols[1].X) > 1e-12 || math.Abs(cols[1].Z) > 1e-12 {
		t.Errorf("knee column should be the joint axis (0,1,0), got %+v", cols[1])
	}
}

func TestDifferentiatorErrors(t *testing.T) {
	tree := multibody.NewTree[scalar.Float]()
	if _, err := NewDifferentiator(tree); !errors.Is(err, multibody.ErrNotFinalized) {
		t.Errorf("expected ErrNotFinalized, got %v", err)
	}

	done := twoJointTree(t)
	diff, _ := NewDifferentiator(done)
	s, _ := done.NewState()
	if _, _, err := diff.PosePartial(s, "ankle", 0); !errors.Is(err, ErrUnknownJoint) {
		t.Errorf("expected ErrUnknownJoint, got %v", err)
	}
}

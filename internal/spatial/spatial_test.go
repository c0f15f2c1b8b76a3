package spatial

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/scalar"
)

const tol = 1e-12

func TestAxisAngleZeroIsIdentity(t *testing.T) {
	m := AxisAngle(r3.Vec{Z: 1}, scalar.Float(0))
	id := IdentityMat[scalar.Float]()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j].Float()-id[i][j].Float()) > tol {
				t.Fatalf("entry (%d,%d): expected %f, got %f", i, j, id[i][j].Float(), m[i][j].Float())
			}
		}
	}
}

func TestAxisAngleRecovery(t *testing.T) {
	axis := r3.Unit(r3.Vec{X: 1, Y: 2, Z: -0.5})
	theta := 0.8

	m := AxisAngle(axis, scalar.Float(theta))
	gotAxis, gotTheta := RecoverAxisAngle(m)

	if math.Abs(gotTheta-theta) > 1e-10 {
		t.Errorf("angle: expected %f, got %f", theta, gotTheta)
	}
	if math.Abs(gotAxis.X-axis.X) > 1e-10 ||
		math.Abs(gotAxis.Y-axis.Y) > 1e-10 ||
		math.Abs(gotAxis.Z-axis.Z) > 1e-10 {
		t.Errorf("axis: expected %+v, got %+v", axis, gotAxis)
	}
}

func TestAxisAngleRotatesVector(t *testing.T) {
	// Rotate x-hat by pi/2 about z: expect y-hat.
	m := AxisAngle(r3.Vec{Z: 1}, scalar.Float(math.Pi/2))
	v := m.MulVec(LiftVec[scalar.Float](r3.Vec{X: 1}))

	got := v.Floats()
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 || math.Abs(got.Z) > 1e-12 {
		t.Errorf("expected (0,1,0), got %+v", got)
	}
}

func TestRotationOrthogonality(t *testing.T) {
	m := AxisAngle(r3.Unit(r3.Vec{X: 0.3, Y: -1, Z: 2}), scalar.Float(1.3))
	p := m.Mul(m.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(p[i][j].Float()-want) > 1e-12 {
				t.Fatalf("R*R^T entry (%d,%d): expected %f, got %f", i, j, want, p[i][j].Float())
			}
		}
	}
}

func TestTransformCompose(t *testing.T) {
	// Two quarter turns about z compose to a half turn.
	quarter := Transform[scalar.Float]{
		R: AxisAngle(r3.Vec{Z: 1}, scalar.Float(math.Pi/2)),
		P: ZeroVec[scalar.Float](),
	}
	half := quarter.Compose(quarter)

	_, theta := RecoverAxisAngle(half.R)
	if math.Abs(theta-math.Pi) > 1e-10 {
		t.Errorf("expected angle pi, got %f", theta)
	}
}

func TestComposeTranslations(t *testing.T) {
	a := Transform[scalar.Float]{
		R: AxisAngle(r3.Vec{Z: 1}, scalar.Float(math.Pi/2)),
		P: LiftVec[scalar.Float](r3.Vec{X: 1}),
	}
	b := IdentityTransform[scalar.Float]()
	b.P = LiftVec[scalar.Float](r3.Vec{X: 1})

	// Rotating b's offset by a quarter turn puts it on y.
	c := a.Compose(b)
	got := c.P.Floats()
	if math.Abs(got.X-1) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("expected (1,1,0), got %+v", got)
	}
}

func TestVecOps(t *testing.T) {
	x := LiftVec[scalar.Float](r3.Vec{X: 1})
	y := LiftVec[scalar.Float](r3.Vec{Y: 1})

	z := x.Cross(y).Floats()
	if math.Abs(z.Z-1) > tol {
		t.Errorf("x cross y: expected z-hat, got %+v", z)
	}
	if d := x.Dot(y).Float(); math.Abs(d) > tol {
		t.Errorf("x dot y: expected 0, got %f", d)
	}
	if n := x.Add(y).Norm().Float(); math.Abs(n-math.Sqrt2) > tol {
		t.Errorf("norm: expected sqrt(2), got %f", n)
	}
}

func TestScaleVec(t *testing.T) {
	v := ScaleVec(scalar.Float(2.5), r3.Vec{Z: 1}).Floats()
	if v.X != 0 || v.Y != 0 || math.Abs(v.Z-2.5) > tol {
		t.Errorf("expected (0,0,2.5), got %+v", v)
	}
}

func TestStaticTransformLift(t *testing.T) {
	x := StaticFromAxisAngle(r3.Vec{Z: 1}, math.Pi/2, r3.Vec{X: 3})
	lifted := Lift[scalar.Dual](x)

	_, theta := RecoverAxisAngle(lifted.R)
	if math.Abs(theta-math.Pi/2) > 1e-10 {
		t.Errorf("expected pi/2, got %f", theta)
	}
	// Fixed geometry must not carry derivatives.
	if lifted.P.X.Deriv() != 0 {
		t.Error("lifted translation acquired a derivative part")
	}
}

func TestAxisAngleDualDerivative(t *testing.T) {
	// d/dtheta of R(theta) about z at theta=0 is the skew of z-hat:
	// entry (1,0) has derivative +1, entry (0,1) has derivative -1.
	theta := scalar.NewDual(0, 1)
	m := AxisAngle(r3.Vec{Z: 1}, theta)

	if d := m[1][0].Deriv(); math.Abs(d-1) > tol {
		t.Errorf("entry (1,0) derivative: expected 1, got %f", d)
	}
	if d := m[0][1].Deriv(); math.Abs(d+1) > tol {
		t.Errorf("entry (0,1) derivative: expected -1, got %f", d)
	}
	if d := m[2][2].Deriv(); math.Abs(d) > tol {
		t.Errorf("entry (2,2) derivative: expected 0, got %f", d)
	}
}

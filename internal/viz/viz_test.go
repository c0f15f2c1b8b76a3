package viz

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/multibody"
	"github.com/san-kum/multibody/internal/scalar"
)

func TestCanvasSetAndLine(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected pixel set at origin")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected clear to reset origin")
	}

	c.DrawLine(0, 0, 19, 19)
	lit := 0
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected line to light cells")
	}

	// Out-of-range coordinates must not panic.
	c.Set(-1, -1)
	c.Set(1000, 1000)
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()
	sw, sh := 160, 96

	x, y, _, ok := cam.Project(r3.Vec{}, sw, sh)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != sw/2 || y != sh/2 {
		t.Errorf("origin should project to center, got (%d,%d)", x, y)
	}

	_, behindY, _, _ := cam.Project(r3.Vec{Y: 1}, sw, sh)
	if behindY >= sh/2 {
		t.Error("+Y should project above center")
	}
}

func TestChainPoints(t *testing.T) {
	tree := multibody.NewTree[scalar.Float]()
	for _, name := range []string{"base", "upper", "lower"} {
		if _, err := tree.AddFrame(name); err != nil {
			t.Fatal(err)
		}
	}
	mustJoint := func(name, parent, child string) {
		t.Helper()
		p, _ := tree.FrameByName(parent)
		c, _ := tree.FrameByName(child)
		j, err := multibody.NewRevoluteJoint[scalar.Float](name, p, c, r3.Vec{Z: 1})
		if err != nil {
			t.Fatal(err)
		}
		if err := tree.AddJoint(j); err != nil {
			t.Fatal(err)
		}
	}
	mustJoint("hip", "base", "upper")
	mustJoint("knee", "upper", "lower")
	if err := tree.Finalize(); err != nil {
		t.Fatal(err)
	}

	s, err := tree.NewState()
	if err != nil {
		t.Fatal(err)
	}

	link := r3.Vec{Y: -1}
	points, err := ChainPoints(tree, s, link)
	if err != nil {
		t.Fatal(err)
	}
	// Origin plus joint and endpoint per joint.
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	// At zero angles the chain hangs straight down.
	end := points[len(points)-1]
	if math.Abs(end.X) > 1e-12 || math.Abs(end.Y+2) > 1e-12 {
		t.Errorf("expected chain end (0,-2,0), got %+v", end)
	}

	// Bend the hip by pi/2: the endpoint swings into +X.
	hip, _ := tree.JointByName("hip")
	if err := hip.SetPositionAt(s, 0, scalar.Float(math.Pi/2)); err != nil {
		t.Fatal(err)
	}
	points, err = ChainPoints(tree, s, link)
	if err != nil {
		t.Fatal(err)
	}
	end = points[len(points)-1]
	if math.Abs(end.X-2) > 1e-12 || math.Abs(end.Y) > 1e-12 {
		t.Errorf("expected chain end (2,0,0), got %+v", end)
	}

	w := ChainWireframe(points)
	c := NewCanvas(40, 12)
	Render(c, w, NewCamera())
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("expected rendered chain to light braille cells")
	}
}

func TestPlotSeries(t *testing.T) {
	out := PlotSeries("q0", []float64{0, 0.5, 1.0, 0.5, 0}, 30, 4)
	if !strings.Contains(out, "q0") {
		t.Error("expected caption in chart output")
	}

	short := PlotSeries("q0", []float64{1}, 30, 4)
	if !strings.Contains(short, "not enough samples") {
		t.Error("expected placeholder for short series")
	}
}

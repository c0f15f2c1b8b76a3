package viz

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/multibody"
	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/spatial"
)

// ChainPoints walks the tree's joints in declaration order as a serial
// chain and returns the world position of every joint and link endpoint.
// Each joint is followed by a fixed link offset expressed in its child
// frame; the offset only sets the drawing scale, not the dynamics.
func ChainPoints(tree *multibody.Tree[scalar.Float], s *multibody.State[scalar.Float], link r3.Vec) ([]r3.Vec, error) {
	x := spatial.IdentityTransform[scalar.Float]()
	linkX := spatial.Transform[scalar.Float]{
		R: spatial.IdentityMat[scalar.Float](),
		P: spatial.LiftVec[scalar.Float](link),
	}

	points := []r3.Vec{{}}
	for _, j := range tree.Joints() {
		pose, err := j.Pose(s)
		if err != nil {
			return nil, err
		}
		x = x.Compose(pose)
		points = append(points, x.P.Floats())
		x = x.Compose(linkX)
		points = append(points, x.P.Floats())
	}
	return points, nil
}

// ChainWireframe builds the drawable edge list for a chain: one segment
// per consecutive point pair and a dot at every joint location.
func ChainWireframe(points []r3.Vec) *Wireframe {
	w := NewWireframe()
	for i := 1; i < len(points); i++ {
		w.AddEdge(points[i-1], points[i])
	}
	// Joints sit at the odd indices; ChainPoints appends pose then link end.
	for i := 1; i < len(points); i += 2 {
		w.AddJoint(points[i])
	}
	return w
}

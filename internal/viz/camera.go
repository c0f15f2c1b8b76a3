package viz

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera projects world-frame points onto the canvas with a simple
// perspective model. Rotation is applied around the world axes before
// projection, so the default view can be orbited with the arrow keys.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 8, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p r3.Vec) r3.Vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to sub-pixel canvas coordinates. Returns
// x, y, depth and whether the point lands on the canvas.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	rot := r3.Scale(c.Zoom, c.rotate(p))
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type edge struct {
	start, end r3.Vec
	dot        bool
}

// Wireframe is an edge list rebuilt every frame from the mechanism's
// current link endpoints.
type Wireframe struct{ edges []edge }

func NewWireframe() *Wireframe             { return &Wireframe{edges: make([]edge, 0, 16)} }
func (w *Wireframe) AddEdge(s, e r3.Vec)   { w.edges = append(w.edges, edge{start: s, end: e}) }
func (w *Wireframe) AddJoint(p r3.Vec)     { w.edges = append(w.edges, edge{start: p, end: p, dot: true}) }
func (w *Wireframe) Clear()                { w.edges = w.edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	dot            bool
}

// Render draws the wireframe to the canvas back-to-front.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.edges))
	for _, e := range w.edges {
		x1, y1, d1, v1 := cam.Project(e.start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.end, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.dot})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		switch {
		case e.dot:
			c.Dot(e.x1, e.y1)
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.Set(e.x1, e.y1)
		default:
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

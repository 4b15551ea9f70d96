package viz

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

// LeafPen marks leaf dots; branch edges use their order as pen.
const LeafPen uint8 = grow.MaxOrder + 1

const cameraNear = 0.1

// Camera orbits a target point. Scenes are scaled by Radius so any tree fills
// the view at zoom 1.
type Camera struct {
	Target           vecmath.Vec3
	Radius           float32
	Distance         float32
	RotX, RotY, RotZ float32
	Zoom             float32
}

func NewCamera() *Camera {
	return &Camera{Radius: 1, Distance: 4, Zoom: 1}
}

func (c *Camera) RotateX(a float32) { c.RotX += a }
func (c *Camera) RotateY(a float32) { c.RotY += a }
func (c *Camera) RotateZ(a float32) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math32.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math32.Max(0.1, c.Zoom/1.2) }

// Frame centers the camera on the wireframe bounds.
func (c *Camera) Frame(w *Wireframe) {
	lo, hi, ok := w.Bounds()
	if !ok {
		c.Target, c.Radius = vecmath.Zero, 1
		return
	}
	c.Target = lo.Add(hi).Scale(0.5)
	c.Radius = math32.Max(hi.Sub(lo).Length()/2, 1e-3)
}

func (c *Camera) RotatePoint(p vecmath.Vec3) vecmath.Vec3 {
	cx, sx := math32.Cos(c.RotX), math32.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math32.Cos(c.RotY), math32.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math32.Cos(c.RotZ), math32.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a world point to dot coordinates on a sw x sh screen.
// It returns the depth (larger is nearer) and whether the dot is on screen.
func (c *Camera) Project(p vecmath.Vec3, sw, sh int) (int, int, float32, bool) {
	rot := c.RotatePoint(p.Sub(c.Target).Scale(1 / c.Radius)).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-cameraNear {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := float32(min(sw, sh)) / 2.8
	sx := int(math32.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math32.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End vecmath.Vec3
	Pen        uint8
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e vecmath.Vec3, pen uint8) {
	w.Edges = append(w.Edges, Edge{s, e, pen})
}

func (w *Wireframe) AddPoint(p vecmath.Vec3, pen uint8) { w.Edges = append(w.Edges, Edge{p, p, pen}) }

// Bounds returns the axis-aligned box of every edge end point.
func (w *Wireframe) Bounds() (lo, hi vecmath.Vec3, ok bool) {
	if len(w.Edges) == 0 {
		return vecmath.Zero, vecmath.Zero, false
	}
	lo, hi = w.Edges[0].Start, w.Edges[0].Start
	for _, e := range w.Edges {
		for _, p := range [2]vecmath.Vec3{e.Start, e.End} {
			lo = vecmath.Vec3{X: math32.Min(lo.X, p.X), Y: math32.Min(lo.Y, p.Y), Z: math32.Min(lo.Z, p.Z)}
			hi = vecmath.Vec3{X: math32.Max(hi.X, p.X), Y: math32.Max(hi.Y, p.Y), Z: math32.Max(hi.Z, p.Z)}
		}
	}
	return lo, hi, true
}

// TreeWireframe draws every segment as an edge penned by its order and every
// leaf as a dot.
func TreeWireframe(chains [][]grow.Branch, leaves []grow.Leaf) *Wireframe {
	w := NewWireframe()
	for _, chain := range chains {
		for _, b := range chain {
			w.AddEdge(b.StartPosition, b.EndPosition, uint8(b.Order))
		}
	}
	for _, l := range leaves {
		w.AddPoint(l.Position, LeafPen)
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float32
	pen            uint8
}

// Render3D draws the wireframe far to near so nearer edges own shared cells.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Pen})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.Pen = e.pen
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
	c.Pen = 0
}

// RenderTree frames and draws a tree onto a fresh canvas.
func RenderTree(chains [][]grow.Branch, leaves []grow.Leaf, w, h int) *Canvas {
	c := NewCanvas(w, h)
	wf := TreeWireframe(chains, leaves)
	cam := NewCamera()
	cam.Frame(wf)
	Render3D(c, wf, cam)
	return c
}

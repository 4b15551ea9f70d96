package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

const (
	DefaultRingVertices = 8
	DefaultCapOffset    = 0.5
)

// RibbonOptions controls tube extrusion.
type RibbonOptions struct {
	// RingVertices is the number of vertices around each segment boundary.
	RingVertices int
	// CapOffset is how far past the last segment the end cap tip sits.
	CapOffset float32
}

func DefaultRibbonOptions() RibbonOptions {
	return RibbonOptions{RingVertices: DefaultRingVertices, CapOffset: DefaultCapOffset}
}

// BuildChain extrudes a chain into a closed-tip tube. For n segments and q
// ring vertices the mesh has (n+1)*q+1 vertices and 2*n*q+q triangles: a ring
// at the chain start, a ring at the end of every segment, quads between
// consecutive rings and a fan from the last ring to a tip beyond the end.
func BuildChain(chain []grow.Branch, opts RibbonOptions) (*Mesh, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	q := opts.RingVertices
	if q < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrRingResolution, q)
	}
	n := len(chain)

	m := &Mesh{
		Vertices:  make([]vecmath.Vec3, 0, (n+1)*q+1),
		Triangles: make([]int, 0, (2*n*q+q)*3),
	}

	first := chain[0]
	appendRing(m, first.StartPosition, first.StartB, first.StartN, first.Thickness, q)

	for i, b := range chain {
		appendRing(m, b.EndPosition, b.EndB, b.EndN, b.Thickness, q)
		last, curr := i*q, (i+1)*q
		for j := 0; j < q; j++ {
			next := (j + 1) % q
			m.addQuad(curr+j, curr+next, last+next, last+j)
		}
	}

	tail := chain[n-1]
	tip := tail.EndPosition.Add(tail.Direction().Scale(opts.CapOffset))
	center := len(m.Vertices)
	m.Vertices = append(m.Vertices, tip)
	lastRing := n * q
	for j := 0; j < q; j++ {
		next := (j + 1) % q
		m.addTri(center, lastRing+next, lastRing+j)
	}

	m.RecalculateNormals()
	return m, nil
}

// appendRing adds q vertices evenly spaced on the circle of diameter
// thickness spanned by n and b around center.
func appendRing(m *Mesh, center, b, n vecmath.Vec3, thickness float32, q int) {
	r := thickness / 2
	for j := 0; j < q; j++ {
		theta := 2 * math32.Pi * float32(j) / float32(q)
		off := n.Scale(math32.Cos(theta)).Add(b.Scale(math32.Sin(theta)))
		m.Vertices = append(m.Vertices, center.Add(off.Scale(r)))
	}
}

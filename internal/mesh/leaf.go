package mesh

import (
	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

// LeafScale is the uniform scale applied to the unit leaf outline.
const LeafScale = 0.5

// leafOutline is the leaf card in local space: tip at +Z, stem at the origin,
// lying in the XZ plane.
var leafOutline = [6]vecmath.Vec3{
	{X: 0, Y: 0, Z: 1},
	{X: -0.2, Y: 0, Z: 0.7},
	{X: 0.2, Y: 0, Z: 0.7},
	{X: -0.3, Y: 0, Z: 0.2},
	{X: 0.3, Y: 0, Z: 0.2},
	{X: -0.05, Y: 0, Z: 0},
}

var leafFace = [4][3]int{{0, 2, 1}, {1, 2, 4}, {1, 4, 3}, {3, 4, 5}}

// BuildLeaf places a leaf card at the leaf position, facing along its
// direction with its up axis toward the leaf normal. The card has a front
// and a back face so it is visible from both sides.
func BuildLeaf(l grow.Leaf) *Mesh {
	basis := vecmath.LookRotation(l.Direction, l.Normal)

	n := len(leafOutline)
	m := &Mesh{
		Vertices:  make([]vecmath.Vec3, 0, 2*n),
		Triangles: make([]int, 0, 2*len(leafFace)*3),
	}
	for side := 0; side < 2; side++ {
		for _, v := range leafOutline {
			m.Vertices = append(m.Vertices, l.Position.Add(basis.Apply(v.Scale(LeafScale))))
		}
	}
	for _, f := range leafFace {
		m.addTri(f[0], f[1], f[2])
	}
	for _, f := range leafFace {
		m.addTri(n+f[0], n+f[2], n+f[1])
	}

	m.RecalculateNormals()
	return m
}

// Package mesh turns grown trees into triangle meshes: one tube per branch
// chain and one small double-sided card per leaf.
package mesh

import (
	"errors"

	"github.com/san-kum/arbor/internal/vecmath"
)

var (
	// ErrEmptyChain indicates a chain with no segments, which has no surface.
	ErrEmptyChain = errors.New("mesh: chain has no segments")

	// ErrRingResolution indicates fewer than three vertices per ring.
	ErrRingResolution = errors.New("mesh: ring resolution must be at least 3")
)

// Mesh is an indexed triangle list. Triangles holds three vertex indices per
// triangle; (b-a) x (c-a) points out of the surface.
type Mesh struct {
	Name      string
	Material  string
	Vertices  []vecmath.Vec3
	Normals   []vecmath.Vec3
	Triangles []int
}

func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

func (m *Mesh) addTri(a, b, c int) {
	m.Triangles = append(m.Triangles, a, b, c)
}

func (m *Mesh) addQuad(a, b, c, d int) {
	m.addTri(a, b, c)
	m.addTri(a, c, d)
}

// RecalculateNormals sets each vertex normal to the normalized sum of the
// area-weighted normals of the triangles that use it.
func (m *Mesh) RecalculateNormals() {
	normals := make([]vecmath.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		va, vb, vc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
		n := vb.Sub(va).Cross(vc.Sub(va))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// Translate offsets every vertex by d.
func (m *Mesh) Translate(d vecmath.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(d)
	}
}

package mesh

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/arbor/internal/grow"
)

// Scene is the set of meshes making up one tree plus the colors they use,
// keyed by material name.
type Scene struct {
	Meshes    []*Mesh
	Materials map[string]colorful.Color
}

func NewScene() *Scene {
	return &Scene{Meshes: make([]*Mesh, 0), Materials: make(map[string]colorful.Color)}
}

// Add appends m using color c as its material.
func (s *Scene) Add(m *Mesh, c colorful.Color) {
	name := "mat_" + c.Hex()[1:]
	s.Materials[name] = c
	m.Material = name
	s.Meshes = append(s.Meshes, m)
}

// Stats returns the total vertex and triangle counts.
func (s *Scene) Stats() (vertices, triangles int) {
	for _, m := range s.Meshes {
		vertices += len(m.Vertices)
		triangles += m.TriangleCount()
	}
	return vertices, triangles
}

// BuildTree meshes every non-empty chain and every leaf. Chains are colored
// by the order of their first segment.
func BuildTree(chains [][]grow.Branch, leaves []grow.Leaf, opts RibbonOptions, pal *Palette) (*Scene, error) {
	s := NewScene()
	for i, chain := range chains {
		if len(chain) == 0 {
			continue
		}
		m, err := BuildChain(chain, opts)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
		m.Name = fmt.Sprintf("branch%d", i)
		s.Add(m, pal.Branch(chain[0].Order))
	}
	for i, l := range leaves {
		m := BuildLeaf(l)
		m.Name = fmt.Sprintf("leaf%d", i)
		s.Add(m, pal.Leaf())
	}
	return s, nil
}

// WriteOBJ writes the scene as Wavefront OBJ with one group per mesh. When
// mtlLib is not empty a mtllib line references it.
func WriteOBJ(w io.Writer, s *Scene, mtlLib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# arbor tree")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}

	base := 1
	for _, m := range s.Meshes {
		fmt.Fprintf(bw, "g %s\n", m.Name)
		if m.Material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", m.Material)
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
		}
		hasNormals := len(m.Normals) == len(m.Vertices)
		if hasNormals {
			for _, n := range m.Normals {
				fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
			}
		}
		for i := 0; i+2 < len(m.Triangles); i += 3 {
			a, b, c := m.Triangles[i]+base, m.Triangles[i+1]+base, m.Triangles[i+2]+base
			if hasNormals {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}
		base += len(m.Vertices)
	}
	return bw.Flush()
}

// WriteMTL writes one diffuse material per scene color, sorted by name.
func WriteMTL(w io.Writer, s *Scene) error {
	names := make([]string, 0, len(s.Materials))
	for name := range s.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	bw := bufio.NewWriter(w)
	for _, name := range names {
		c := s.Materials[name]
		fmt.Fprintf(bw, "newmtl %s\nKd %.4f %.4f %.4f\n\n", name, c.R, c.G, c.B)
	}
	return bw.Flush()
}

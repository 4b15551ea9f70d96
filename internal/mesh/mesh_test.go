package mesh

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

// straightChain grows n unit segments straight up from the origin.
func straightChain(n int, thickness float32) []grow.Branch {
	chain := make([]grow.Branch, n)
	for i := range chain {
		chain[i] = grow.Branch{
			StartPosition: vecmath.Vec3{Y: float32(i)},
			StartB:        vecmath.Forward,
			StartN:        vecmath.Right,
			EndPosition:   vecmath.Vec3{Y: float32(i + 1)},
			EndB:          vecmath.Forward,
			EndN:          vecmath.Right,
			Thickness:     thickness,
			Order:         1,
		}
	}
	return chain
}

func TestBuildChainCounts(t *testing.T) {
	tests := []struct {
		segments, rings int
	}{
		{1, 3},
		{1, 8},
		{4, 8},
		{10, 12},
	}

	for _, tt := range tests {
		m, err := BuildChain(straightChain(tt.segments, 0.8), RibbonOptions{RingVertices: tt.rings, CapOffset: DefaultCapOffset})
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		wantVerts := (tt.segments+1)*tt.rings + 1
		wantTris := 2*tt.segments*tt.rings + tt.rings
		if len(m.Vertices) != wantVerts {
			t.Errorf("n=%d q=%d: expected %d vertices, got %d", tt.segments, tt.rings, wantVerts, len(m.Vertices))
		}
		if m.TriangleCount() != wantTris {
			t.Errorf("n=%d q=%d: expected %d triangles, got %d", tt.segments, tt.rings, wantTris, m.TriangleCount())
		}
		for _, idx := range m.Triangles {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("index %d out of range", idx)
			}
		}
	}
}

func TestBuildChainRingRadius(t *testing.T) {
	chain := straightChain(3, 0.8)
	chain[2].Thickness = 0.4
	m, err := BuildChain(chain, DefaultRibbonOptions())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	q := DefaultRingVertices
	for ring := 0; ring <= len(chain); ring++ {
		// the last ring takes the thinner last segment
		want := float32(0.4)
		if ring == len(chain) {
			want = 0.2
		}
		center := vecmath.Vec3{Y: float32(ring)}
		for j := 0; j < q; j++ {
			r := m.Vertices[ring*q+j].Distance(center)
			if math32.Abs(r-want) > 1e-5 {
				t.Errorf("ring %d vertex %d: expected radius %f, got %f", ring, j, want, r)
			}
		}
	}

	// first vertex of each ring lies along N
	if !m.Vertices[0].ApproxEqual(vecmath.Vec3{X: 0.4}, 1e-5) {
		t.Errorf("expected first vertex on +N, got %v", m.Vertices[0])
	}
}

func TestBuildChainCap(t *testing.T) {
	m, err := BuildChain(straightChain(2, 0.5), RibbonOptions{RingVertices: 6, CapOffset: 0.5})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	tip := m.Vertices[len(m.Vertices)-1]
	if !tip.ApproxEqual(vecmath.Vec3{Y: 2.5}, 1e-5) {
		t.Errorf("expected cap tip at (0, 2.5, 0), got %v", tip)
	}
	if m.Normals[len(m.Normals)-1].Y < 0.99 {
		t.Errorf("expected tip normal up, got %v", m.Normals[len(m.Normals)-1])
	}
}

func TestBuildChainNormalsPointOutward(t *testing.T) {
	m, _ := BuildChain(straightChain(3, 1), DefaultRibbonOptions())
	q := DefaultRingVertices
	for i := q; i < 3*q; i++ {
		v := m.Vertices[i]
		radial := vecmath.Vec3{X: v.X, Z: v.Z}
		if m.Normals[i].Dot(radial) <= 0 {
			t.Errorf("vertex %d: normal %v points inward", i, m.Normals[i])
		}
	}
}

func TestBuildChainErrors(t *testing.T) {
	if _, err := BuildChain(nil, DefaultRibbonOptions()); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("expected ErrEmptyChain, got %v", err)
	}
	if _, err := BuildChain(straightChain(1, 1), RibbonOptions{RingVertices: 2}); !errors.Is(err, ErrRingResolution) {
		t.Errorf("expected ErrRingResolution, got %v", err)
	}
}

func TestBuildLeaf(t *testing.T) {
	l := grow.Leaf{Position: vecmath.Vec3{X: 1, Y: 2, Z: 3}, Direction: vecmath.Right, Normal: vecmath.Up}
	m := BuildLeaf(l)

	if len(m.Vertices) != 12 {
		t.Errorf("expected 12 vertices, got %d", len(m.Vertices))
	}
	if m.TriangleCount() != 8 {
		t.Errorf("expected 8 triangles, got %d", m.TriangleCount())
	}

	// tip sits LeafScale along the leaf direction
	wantTip := l.Position.Add(vecmath.Right.Scale(LeafScale))
	if !m.Vertices[0].ApproxEqual(wantTip, 1e-5) {
		t.Errorf("expected tip at %v, got %v", wantTip, m.Vertices[0])
	}

	// the two faces point opposite ways
	front, back := m.Normals[0], m.Normals[6]
	if front.Dot(back) > -0.99 {
		t.Errorf("expected opposite face normals, got %v and %v", front, back)
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette(TreeClassic, 1)
	if p.Branch(1) != branchColors[TreeClassic][0] {
		t.Error("order 1 should use the first scheme color")
	}
	if p.Branch(9) != branchColors[TreeClassic][2] {
		t.Error("deep orders should use the last scheme color")
	}

	a, b := NewPalette(TreeExplosion, 5), NewPalette(TreeExplosion, 5)
	for i := 0; i < 10; i++ {
		if a.Branch(1) != b.Branch(1) || a.Leaf() != b.Leaf() {
			t.Fatal("palette not deterministic")
		}
	}
}

func TestWriteOBJ(t *testing.T) {
	chains := [][]grow.Branch{straightChain(2, 0.8), {}, straightChain(1, 0.5)}
	leaves := []grow.Leaf{{Direction: vecmath.Forward, Normal: vecmath.Up}}
	scene, err := BuildTree(chains, leaves, DefaultRibbonOptions(), NewPalette(TreeDense, 1))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(scene.Meshes) != 3 {
		t.Fatalf("expected 3 meshes (empty chain skipped), got %d", len(scene.Meshes))
	}

	var obj, mtl bytes.Buffer
	if err := WriteOBJ(&obj, scene, "tree.mtl"); err != nil {
		t.Fatalf("write obj failed: %v", err)
	}
	if err := WriteMTL(&mtl, scene); err != nil {
		t.Fatalf("write mtl failed: %v", err)
	}

	verts, tris := scene.Stats()
	var gotV, gotF, gotG int
	for _, line := range strings.Split(obj.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			gotV++
		case strings.HasPrefix(line, "f "):
			gotF++
		case strings.HasPrefix(line, "g "):
			gotG++
		}
	}
	if gotV != verts || gotF != tris || gotG != 3 {
		t.Errorf("expected %d/%d/3 v/f/g lines, got %d/%d/%d", verts, tris, gotV, gotF, gotG)
	}
	if !strings.Contains(obj.String(), "mtllib tree.mtl") {
		t.Error("missing mtllib line")
	}
	if got := strings.Count(mtl.String(), "newmtl"); got != len(scene.Materials) {
		t.Errorf("expected %d materials, got %d", len(scene.Materials), got)
	}
}

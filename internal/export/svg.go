package export

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/mesh"
	"github.com/san-kum/arbor/internal/vecmath"
)

// SVGOptions controls the side view. Yaw rotates the tree about the vertical
// axis before the orthographic projection onto the XY plane.
type SVGOptions struct {
	Width, Height int
	Yaw           float32 // degrees
	Background    string
	StrokeScale   float32 // pixels per unit of thickness
	LeafRadius    float32
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 600, Height: 800, Background: "#0a0a0a", StrokeScale: 6, LeafRadius: 2.5}
}

type point struct{ x, y float32 }

type projector struct {
	cos, sin float32
}

func (p projector) project(v vecmath.Vec3) point {
	return point{x: v.X*p.cos + v.Z*p.sin, y: v.Y}
}

// TreeToSVG draws every segment as a line whose width follows its thickness,
// colored per chain by the palette, and every leaf as a dot.
func TreeToSVG(chains [][]grow.Branch, leaves []grow.Leaf, pal *mesh.Palette, opts SVGOptions) string {
	yaw := opts.Yaw * vecmath.Deg2Rad
	pr := projector{cos: math32.Cos(yaw), sin: math32.Sin(yaw)}

	pts := make([]point, 0)
	for _, chain := range chains {
		for _, b := range chain {
			pts = append(pts, pr.project(b.StartPosition), pr.project(b.EndPosition))
		}
	}
	for _, l := range leaves {
		pts = append(pts, pr.project(l.Position))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)

	if len(pts) == 0 {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	// Find bounds
	minX, maxX := pts[0].x, pts[0].x
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts {
		minX, maxX = math32.Min(minX, p.x), math32.Max(maxX, p.x)
		minY, maxY = math32.Min(minY, p.y), math32.Max(maxY, p.y)
	}

	// Add padding, keeping the aspect ratio
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	scale := math32.Min(float32(opts.Width)/(rangeX*1.2), float32(opts.Height)/(rangeY*1.2))
	offX := (float32(opts.Width) - rangeX*scale) / 2
	offY := (float32(opts.Height) - rangeY*scale) / 2
	toScreen := func(p point) point {
		return point{x: offX + (p.x-minX)*scale, y: float32(opts.Height) - offY - (p.y-minY)*scale}
	}

	sb.WriteString(`<g stroke-linecap="round" fill="none">` + "\n")
	for i, chain := range chains {
		if len(chain) == 0 {
			continue
		}
		color := pal.Branch(chain[0].Order).Hex()
		fmt.Fprintf(&sb, `<g id="chain%d" stroke="%s">`+"\n", i, color)
		for _, b := range chain {
			s, e := toScreen(pr.project(b.StartPosition)), toScreen(pr.project(b.EndPosition))
			w := math32.Max(0.5, b.Thickness*opts.StrokeScale)
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.2f"/>`+"\n", s.x, s.y, e.x, e.y, w)
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</g>\n")

	if len(leaves) > 0 {
		sb.WriteString(`<g id="leaves">` + "\n")
		for _, l := range leaves {
			p := toScreen(pr.project(l.Position))
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", p.x, p.y, opts.LeafRadius, pal.Leaf().Hex())
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

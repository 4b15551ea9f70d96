package mesh

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/arbor/internal/random"
)

// Tree types with dedicated color schemes. Any other type uses random
// branch colors.
const (
	TreeClassic = iota
	TreeSparse
	TreeDense
	TreeExplosion
)

var branchColors = map[int][]colorful.Color{
	TreeClassic: {
		{R: 0.35, G: 0.2, B: 0},
		{R: 0.4, G: 0.25, B: 0},
		{R: 0.4, G: 0.3, B: 0},
	},
	TreeSparse: {
		{R: 0.3, G: 0.3, B: 0.27},
		{R: 0.3, G: 0.3, B: 0.27},
		{R: 0.45, G: 0.4, B: 0.35},
	},
	TreeDense: {
		{R: 0.2, G: 0.1, B: 0},
		{R: 0.25, G: 0.15, B: 0},
		{R: 0.28, G: 0.18, B: 0},
		{R: 0.3, G: 0.2, B: 0},
	},
}

type weightedColor struct {
	upTo  float32
	color colorful.Color
}

// leafColors is an autumn mix: 10% green, 30% yellow, 40% orange, 20% red.
var leafColors = []weightedColor{
	{0.1, colorful.Color{R: 0.3, G: 0.55, B: 0.2}},
	{0.4, colorful.Color{R: 0.6, G: 0.55, B: 0.1}},
	{0.8, colorful.Color{R: 0.6, G: 0.3, B: 0.1}},
	{1.0, colorful.Color{R: 0.5, G: 0.15, B: 0}},
}

// Palette picks branch and leaf colors. Random picks draw from their own
// stream so coloring never disturbs growth.
type Palette struct {
	treeType int
	rng      *random.Stream
}

func NewPalette(treeType int, seed int64) *Palette {
	return &Palette{treeType: treeType, rng: random.New(seed)}
}

// Branch returns the color of a chain whose first segment has the given
// order. Orders past the end of a scheme use its last color.
func (p *Palette) Branch(order int) colorful.Color {
	scheme, ok := branchColors[p.treeType]
	if !ok {
		return colorful.Color{R: float64(p.rng.Value()), G: float64(p.rng.Value()), B: float64(p.rng.Value())}
	}
	i := order - 1
	if i < 0 {
		i = 0
	}
	if i >= len(scheme) {
		i = len(scheme) - 1
	}
	return scheme[i]
}

func (p *Palette) Leaf() colorful.Color {
	r := p.rng.Value()
	for _, wc := range leafColors {
		if r < wc.upTo {
			return wc.color
		}
	}
	return leafColors[len(leafColors)-1].color
}

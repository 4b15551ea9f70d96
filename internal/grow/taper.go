package grow

import "github.com/san-kum/arbor/internal/vecmath"

const (
	// TaperAmount is how much thinner the tip of a chain is than its base.
	TaperAmount = 0.3

	// MinThickness is the floor a tapered tip never goes below.
	MinThickness = 0.1
)

// processThickness linearly tapers every chain with more than one segment
// from its base thickness down to max(MinThickness, base-TaperAmount).
func (t *Tree) processThickness() {
	for _, chain := range t.chains {
		Taper(chain)
	}
}

// Taper rewrites the thickness of each segment in chain in place. Chains of
// zero or one segment are left unchanged.
func Taper(chain []Branch) {
	n := len(chain)
	if n <= 1 {
		return
	}
	base := chain[0].Thickness
	tip := base - TaperAmount
	if tip < MinThickness {
		tip = MinThickness
	}
	for i := range chain {
		chain[i].Thickness = vecmath.Lerp(base, tip, float32(i)/float32(n-1))
	}
}

package grow

import (
	"fmt"

	"github.com/san-kum/arbor/internal/vecmath"
)

// Branch is one grown segment. Only Thickness changes after growth, when
// the chain is tapered.
type Branch struct {
	StartPosition vecmath.Vec3 `json:"start_position"`
	StartB        vecmath.Vec3 `json:"start_b"`
	StartN        vecmath.Vec3 `json:"start_n"`
	EndPosition   vecmath.Vec3 `json:"end_position"`
	EndB          vecmath.Vec3 `json:"end_b"`
	EndN          vecmath.Vec3 `json:"end_n"`
	Thickness     float32      `json:"thickness"`
	Order         int          `json:"order"`
}

// Direction returns the unit vector from start to end.
func (b Branch) Direction() vecmath.Vec3 {
	return b.EndPosition.Sub(b.StartPosition).Normalize()
}

func (b Branch) Length() float32 {
	return b.EndPosition.Distance(b.StartPosition)
}

func (b Branch) String() string {
	return fmt.Sprintf("start: %v end: %v thickness: %.3f", b.StartPosition, b.EndPosition, b.Thickness)
}

// Leaf is spawned at a bud position. Direction is the leaf's forward axis and
// Normal its up axis.
type Leaf struct {
	Position  vecmath.Vec3 `json:"position"`
	Direction vecmath.Vec3 `json:"direction"`
	Normal    vecmath.Vec3 `json:"normal"`
}

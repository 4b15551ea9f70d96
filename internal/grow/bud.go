package grow

import "github.com/san-kum/arbor/internal/vecmath"

// Bud is a growth cursor. Its frame vectors are normalized on construction
// and by every setter; keeping them mutually orthogonal is the caller's job.
type Bud struct {
	position vecmath.Vec3
	t, b, n  vecmath.Vec3
	chain    int
	order    int
	params   Params
}

func NewBud(position, tangent, binormal, normal vecmath.Vec3, chain, order int, params Params) *Bud {
	return &Bud{
		position: position,
		t:        tangent.Normalize(),
		b:        binormal.Normalize(),
		n:        normal.Normalize(),
		chain:    chain,
		order:    order,
		params:   params,
	}
}

func (b *Bud) Position() vecmath.Vec3 { return b.position }
func (b *Bud) T() vecmath.Vec3        { return b.t }
func (b *Bud) B() vecmath.Vec3        { return b.b }
func (b *Bud) N() vecmath.Vec3        { return b.n }
func (b *Bud) Chain() int             { return b.chain }
func (b *Bud) Order() int             { return b.order }
func (b *Bud) Params() Params         { return b.params }

func (b *Bud) SetPosition(p vecmath.Vec3) { b.position = p }
func (b *Bud) SetT(t vecmath.Vec3)        { b.t = t.Normalize() }
func (b *Bud) SetB(v vecmath.Vec3)        { b.b = v.Normalize() }
func (b *Bud) SetN(n vecmath.Vec3)        { b.n = n.Normalize() }

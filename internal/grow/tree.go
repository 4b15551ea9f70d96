package grow

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/random"
	"github.com/san-kum/arbor/internal/vecmath"
)

const (
	// axisEpsilon is the shortest T x sample cross product accepted as a rotation axis.
	axisEpsilon = 1e-6

	// maxAxisSamples bounds resampling when the tangent itself is degenerate.
	maxAxisSamples = 8

	// maxBranchesPerGrowth bounds the branch rolls after one growth step so
	// a branch chance of 1 cannot loop forever.
	maxBranchesPerGrowth = 32
)

// Config is everything a growth run depends on. Orders[0] holds the trunk
// parameters, Orders[MaxOrder-1] the parameters of every order-4 bud.
type Config struct {
	Seed       int64
	Cycles     int
	InitCycles int
	Orders     [MaxOrder]Params
}

// Tree is the growth simulator. It owns the live buds and the chain list;
// chain ids index into the list returned by StartGrowth.
type Tree struct {
	cfg       Config
	rng       *random.Stream
	chains    [][]Branch
	buds      []*Bud
	leaves    []Leaf
	nextChain int
	segments  int
	cycle     int
	init      bool
	grown     bool
	observers []CycleObserver
}

func New(cfg Config) (*Tree, error) {
	if cfg.Cycles < 0 || cfg.InitCycles < 0 {
		return nil, fmt.Errorf("%w: cycles=%d init_cycles=%d", ErrNegativeCycles, cfg.Cycles, cfg.InitCycles)
	}
	return &Tree{
		cfg:    cfg,
		rng:    random.New(cfg.Seed),
		chains: make([][]Branch, 0),
		buds:   make([]*Bud, 0),
		leaves: make([]Leaf, 0),
		init:   true,
	}, nil
}

func (t *Tree) AddObserver(o CycleObserver) { t.observers = append(t.observers, o) }

func (t *Tree) Config() Config { return t.cfg }

// StartGrowth runs the initial growth, every configured cycle and the taper
// pass, then returns the chains. Later calls return the same chains without
// growing further. The result is shared with the tree and must be treated as
// read-only.
func (t *Tree) StartGrowth() [][]Branch {
	if t.grown {
		return t.chains
	}
	t.initialGrowth()
	for i := 0; i < t.cfg.Cycles; i++ {
		t.step()
	}
	t.processThickness()
	t.grown = true
	return t.chains
}

// Chains returns the chains grown so far.
func (t *Tree) Chains() [][]Branch { return t.chains }

// Leaves returns the leaves in spawn order.
func (t *Tree) Leaves() []Leaf { return t.leaves }

// Buds returns copies of the live buds.
func (t *Tree) Buds() []Bud {
	out := make([]Bud, len(t.buds))
	for i, b := range t.buds {
		out[i] = *b
	}
	return out
}

// Segments returns the total number of grown branch segments.
func (t *Tree) Segments() int { return t.segments }

func (t *Tree) initialGrowth() {
	root := NewBud(vecmath.Zero, vecmath.Up, vecmath.Forward, vecmath.Right, t.newChain(), 1, t.cfg.Orders[0])
	t.buds = append(t.buds, root)

	// one roll decides every init cycle
	roll := t.rng.Value()
	for i := 0; i < t.cfg.InitCycles; i++ {
		if roll < root.params.GrowthChance {
			t.growBud(root)
		}
	}
	t.init = false
	t.notify(0, 0)
}

// step advances every live bud by one cycle. Buds are visited from the end
// of the list so buds born this cycle wait for the next one and removal by
// index stays valid.
func (t *Tree) step() {
	t.cycle++
	born, died := 0, 0

	for i := len(t.buds) - 1; i >= 0; i-- {
		bud := t.buds[i]
		p := bud.params

		if t.rng.Value() < p.LeafChance {
			t.spawnLeaf(bud)
		}

		r := t.rng.Value()
		switch {
		case r < p.GrowthChance:
			t.growBud(bud)
			for n := 0; n < maxBranchesPerGrowth && t.rng.Value() < p.BranchChance; n++ {
				t.createNewBranch(bud)
				born++
			}
		case r < p.GrowthChance+p.DeathChance:
			t.buds = append(t.buds[:i], t.buds[i+1:]...)
			died++
		}
	}

	t.notify(born, died)
}

func (t *Tree) spawnLeaf(bud *Bud) {
	theta := t.rng.Range(0, 360) * vecmath.Deg2Rad
	dir := bud.b.Scale(math32.Cos(theta)).Add(bud.n.Scale(math32.Sin(theta))).Normalize()
	t.leaves = append(t.leaves, Leaf{Position: bud.position, Direction: dir, Normal: bud.t})
}

// growBud extends the bud by one segment along a randomly varied, optionally
// biased direction and re-derives its frame from the previous normal.
func (t *Tree) growBud(bud *Bud) {
	pos, tan, bin, nrm := bud.position, bud.t, bud.b, bud.n
	p := bud.params

	axis := t.sampleAxis(tan)
	angle := t.rng.Range(-p.Variation, p.Variation)
	dir := vecmath.AngleAxis(angle, axis).Rotate(tan).Normalize()

	if !t.init {
		if p.UpBias != 0 {
			dir = dir.Add(vecmath.Up.Scale(p.UpBias)).Normalize()
		} else if p.SideBias != 0 {
			side := vecmath.Vec3{X: dir.X, Z: dir.Z}
			dir = dir.Add(side.Scale(p.SideBias)).Normalize()
		}
	}

	end := pos.Add(dir.Scale(p.Length))
	newB := orthogonalize(nrm.Cross(dir), bin, dir)
	newN := dir.Cross(newB).Normalize()

	bud.SetPosition(end)
	bud.SetT(dir)
	bud.SetB(newB)
	bud.SetN(newN)

	t.chains[bud.chain] = append(t.chains[bud.chain], Branch{
		StartPosition: pos,
		StartB:        bin,
		StartN:        nrm,
		EndPosition:   end,
		EndB:          newB,
		EndN:          newN,
		Thickness:     p.Thickness,
		Order:         bud.order,
	})
	t.segments++
}

// createNewBranch starts a new chain at the parent's position, tilted from
// the parent tangent by the fixed branch angle about a random axis. No
// segment is grown until the child's own turn.
func (t *Tree) createNewBranch(parent *Bud) {
	tan, bin, nrm := parent.t, parent.b, parent.n

	axis := t.sampleAxis(tan)
	dir := vecmath.AngleAxis(parent.params.BranchAngle, axis).Rotate(tan).Normalize()
	newB := orthogonalize(dir.Cross(nrm), bin, dir)
	newN := dir.Cross(newB).Normalize()

	order := parent.order + 1
	if order > MaxOrder {
		order = MaxOrder
	}
	params := t.cfg.Orders[paramsForChild(parent.order)]

	child := NewBud(parent.position, dir, newB, newN, t.newChain(), order, params)
	t.buds = append(t.buds, child)
}

// sampleAxis returns a unit axis perpendicular to tan, redrawing the random
// vector while it is (anti)parallel to tan.
func (t *Tree) sampleAxis(tan vecmath.Vec3) vecmath.Vec3 {
	var axis vecmath.Vec3
	for i := 0; i < maxAxisSamples; i++ {
		axis = tan.Cross(t.rng.OnUnitSphere())
		if axis.Length() > axisEpsilon {
			break
		}
	}
	return axis.Normalize()
}

// orthogonalize normalizes b, falling back to the previous binormal projected
// off dir when b has collapsed because the old normal was parallel to dir.
func orthogonalize(b, prev, dir vecmath.Vec3) vecmath.Vec3 {
	if b.Length() > axisEpsilon {
		return b.Normalize()
	}
	return prev.Sub(dir.Scale(prev.Dot(dir))).Normalize()
}

func (t *Tree) newChain() int {
	id := t.nextChain
	t.nextChain++
	t.chains = append(t.chains, make([]Branch, 0))
	return id
}

func (t *Tree) notify(born, died int) {
	if len(t.observers) == 0 {
		return
	}
	stats := CycleStats{
		Cycle:    t.cycle,
		LiveBuds: len(t.buds),
		Chains:   len(t.chains),
		Segments: t.segments,
		Leaves:   len(t.leaves),
		Born:     born,
		Died:     died,
	}
	for _, o := range t.observers {
		o.OnCycle(stats)
	}
}

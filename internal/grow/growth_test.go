package grow_test

import (
	"context"

	"github.com/chewxy/math32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

const frameEps = 1e-4

var denseOrders = [grow.MaxOrder]grow.Params{
	{GrowthChance: 1.0, DeathChance: 0.0, BranchChance: 0.8, LeafChance: 0.0, Length: 1.5, Thickness: 1.5, Variation: 3, BranchAngle: 45, UpBias: 0.1},
	{GrowthChance: 0.9, DeathChance: 0.1, BranchChance: 0.5, LeafChance: 0.5, Length: 1.0, Thickness: 0.9, Variation: 10, BranchAngle: 30, UpBias: 0.1},
	{GrowthChance: 0.6, DeathChance: 0.2, BranchChance: 0.5, LeafChance: 0.9, Length: 0.8, Thickness: 0.6, Variation: 20, BranchAngle: 60, SideBias: 0.2},
	{GrowthChance: 0.1, DeathChance: 0.1, BranchChance: 0.0, LeafChance: 1.0, Length: 0.5, Thickness: 0.3, Variation: 30, BranchAngle: 0},
}

func denseConfig(seed int64) grow.Config {
	return grow.Config{Seed: seed, Cycles: 8, InitCycles: 3, Orders: denseOrders}
}

func expectOrthonormal(vs ...vecmath.Vec3) {
	for i, a := range vs {
		ExpectWithOffset(1, math32.Abs(a.Length()-1)).To(BeNumerically("<", frameEps))
		for _, b := range vs[i+1:] {
			ExpectWithOffset(1, math32.Abs(a.Dot(b))).To(BeNumerically("<", frameEps))
		}
	}
}

var _ = Describe("Tree", func() {
	var (
		tree   *grow.Tree
		rec    *grow.Recorder
		chains [][]grow.Branch
	)

	BeforeEach(func() {
		var err error
		tree, err = grow.New(denseConfig(42))
		Expect(err).NotTo(HaveOccurred())
		rec = grow.NewRecorder()
		tree.AddObserver(rec)
		chains = tree.StartGrowth()
	})

	It("keeps every bud frame orthonormal", func() {
		for _, b := range tree.Buds() {
			expectOrthonormal(b.T(), b.B(), b.N())
		}
	})

	It("records orthonormal cross-sections on every segment", func() {
		for _, chain := range chains {
			for _, b := range chain {
				expectOrthonormal(b.StartB, b.StartN)
				expectOrthonormal(b.EndB, b.EndN, b.Direction())
			}
		}
	})

	It("links consecutive segments of a chain", func() {
		for _, chain := range chains {
			for i := 1; i < len(chain); i++ {
				Expect(chain[i].StartPosition).To(Equal(chain[i-1].EndPosition))
				// the bud renormalizes its frame, so frames agree to rounding
				Expect(chain[i].StartB.ApproxEqual(chain[i-1].EndB, frameEps)).To(BeTrue())
				Expect(chain[i].StartN.ApproxEqual(chain[i-1].EndN, frameEps)).To(BeTrue())
			}
		}
	})

	It("creates one chain per branching event plus the root", func() {
		Expect(chains).To(HaveLen(1 + rec.TotalBorn()))
		Expect(rec.History).To(HaveLen(denseConfig(42).Cycles + 1))
	})

	It("reports segment and leaf totals that match the output", func() {
		last := rec.History[len(rec.History)-1]
		total := 0
		for _, c := range chains {
			total += len(c)
		}
		Expect(last.Segments).To(Equal(total))
		Expect(last.Leaves).To(Equal(len(tree.Leaves())))
		Expect(last.LiveBuds).To(Equal(len(tree.Buds())))
	})

	It("tapers every multi-segment chain", func() {
		for _, chain := range chains {
			if len(chain) <= 1 {
				continue
			}
			base := chain[0].Thickness
			tip := math32.Max(grow.MinThickness, base-grow.TaperAmount)
			Expect(float64(chain[len(chain)-1].Thickness)).To(BeNumerically("~", tip, 1e-5))
			if base > tip {
				for i := 1; i < len(chain); i++ {
					Expect(chain[i].Thickness).To(BeNumerically("<=", chain[i-1].Thickness))
				}
			}
		}
	})

	It("starts each chain at its order's thickness", func() {
		for _, chain := range chains {
			if len(chain) == 0 {
				continue
			}
			order := chain[0].Order
			Expect(chain[0].Thickness).To(Equal(denseOrders[order-1].Thickness))
		}
	})

	It("spawns leaves with unit directions perpendicular to their normal", func() {
		Expect(tree.Leaves()).NotTo(BeEmpty())
		for _, l := range tree.Leaves() {
			expectOrthonormal(l.Direction, l.Normal)
		}
	})
})

var _ = Describe("Determinism", func() {
	It("reproduces the same tree from the same seed", func() {
		a, _ := grow.New(denseConfig(7))
		b, _ := grow.New(denseConfig(7))
		Expect(b.StartGrowth()).To(Equal(a.StartGrowth()))
		Expect(b.Leaves()).To(Equal(a.Leaves()))
	})

	It("does not depend on observers", func() {
		a, _ := grow.New(denseConfig(3))
		b, _ := grow.New(denseConfig(3))
		b.AddObserver(grow.ObserverFunc(func(grow.CycleStats) {}))
		Expect(b.StartGrowth()).To(Equal(a.StartGrowth()))
	})

	It("differs between seeds", func() {
		a, _ := grow.New(denseConfig(1))
		b, _ := grow.New(denseConfig(2))
		Expect(b.StartGrowth()).NotTo(Equal(a.StartGrowth()))
	})
})

var _ = Describe("Order saturation", func() {
	orders := [grow.MaxOrder]grow.Params{
		{GrowthChance: 1, BranchChance: 0.75, Length: 1, Thickness: 1.0, Variation: 5, BranchAngle: 40},
		{GrowthChance: 1, BranchChance: 0.75, Length: 1, Thickness: 0.7, Variation: 5, BranchAngle: 40},
		{GrowthChance: 1, BranchChance: 0.75, Length: 1, Thickness: 0.5, Variation: 5, BranchAngle: 40},
		{GrowthChance: 1, BranchChance: 0.75, Length: 1, Thickness: 0.123, Variation: 5, BranchAngle: 40},
	}

	It("gives order-4 parameters to every bud at or past order 4", func() {
		found := false
		for seed := int64(1); seed <= 3; seed++ {
			tr, err := grow.New(grow.Config{Seed: seed, Cycles: 5, Orders: orders})
			Expect(err).NotTo(HaveOccurred())
			tr.StartGrowth()
			for _, b := range tr.Buds() {
				Expect(b.Order()).To(BeNumerically("<=", grow.MaxOrder))
				Expect(b.Params()).To(Equal(orders[b.Order()-1]))
				if b.Order() == grow.MaxOrder {
					found = true
				}
			}
		}
		Expect(found).To(BeTrue())
	})
})

var _ = Describe("Forest", func() {
	It("matches growing each seed sequentially", func() {
		base := denseConfig(100)
		base.Cycles = 5
		f := grow.NewForest(base, 4)
		f.SetWorkers(2)
		trees, err := f.Grow(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(trees).To(HaveLen(4))

		for i, tr := range trees {
			cfg := base
			cfg.Seed = base.Seed + int64(i)
			seq, _ := grow.New(cfg)
			Expect(tr.Chains()).To(Equal(seq.StartGrowth()))
			Expect(tr.Config().Seed).To(Equal(cfg.Seed))
		}
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := grow.NewForest(denseConfig(1), 3).Grow(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})

// Package grow implements a stochastic bud/branch tree-growth simulator.
//
// A [Tree] starts from a single root bud and advances it through growth
// cycles. On every cycle each live bud may spawn a [Leaf], then either grows
// one [Branch] segment (possibly spawning child buds that start new chains),
// dies, or rests. Growth parameters are looked up per branch order
// (1 = trunk, saturating at [MaxOrder]).
//
//   - [Bud]: growth cursor with an orthonormal frame
//   - [Branch]: one grown segment between two oriented cross-sections
//   - [Leaf]: decoration spawned at a bud position
//   - [Tree]: the simulator, producing chains of segments plus leaves
//   - [Forest]: batch growth of consecutive seeds on a worker pool
//
// # Example
//
//	tr, err := grow.New(grow.Config{Seed: 42, Cycles: 10, InitCycles: 3, Orders: orders})
//	if err != nil {
//	    return err
//	}
//	chains := tr.StartGrowth()
//	leaves := tr.Leaves()
//
// # Determinism
//
// All randomness comes from one seeded stream per tree, consumed in a fixed
// order: per bud per cycle the leaf roll, the growth/death roll, then any
// branch rolls. The same [Config] always reproduces the same tree.
//
// # Thread Safety
//
// Tree instances are NOT thread-safe. Use [Forest] to grow several trees in
// parallel.
package grow

package grow

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Forest grows a batch of trees that share every setting except the seed:
// tree i uses base.Seed + i.
type Forest struct {
	base    Config
	size    int
	workers int
}

func NewForest(base Config, size int) *Forest {
	return &Forest{base: base, size: size, workers: runtime.GOMAXPROCS(0)}
}

// SetWorkers bounds how many trees grow at once. Values below 1 are ignored.
func (f *Forest) SetWorkers(n int) {
	if n >= 1 {
		f.workers = n
	}
}

// Grow returns the fully grown trees in seed order. Each tree owns its own
// random stream, so the result matches growing the seeds one by one.
func (f *Forest) Grow(ctx context.Context) ([]*Tree, error) {
	trees := make([]*Tree, f.size)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i := 0; i < f.size; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := f.base
			cfg.Seed = f.base.Seed + int64(i)
			tr, err := New(cfg)
			if err != nil {
				return err
			}
			tr.StartGrowth()
			trees[i] = tr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

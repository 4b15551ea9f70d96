package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/metrics"
)

var (
	ErrUnknownParam = errors.New("optim: unknown parameter")
	ErrBadAxis      = errors.New("optim: axis must look like name=from:to:steps")
)

// params maps axis names to the growth parameter they set.
var params = map[string]func(p *grow.Params) *float32{
	"growth":       func(p *grow.Params) *float32 { return &p.GrowthChance },
	"death":        func(p *grow.Params) *float32 { return &p.DeathChance },
	"branch":       func(p *grow.Params) *float32 { return &p.BranchChance },
	"leaf":         func(p *grow.Params) *float32 { return &p.LeafChance },
	"length":       func(p *grow.Params) *float32 { return &p.Length },
	"thickness":    func(p *grow.Params) *float32 { return &p.Thickness },
	"variation":    func(p *grow.Params) *float32 { return &p.Variation },
	"branch_angle": func(p *grow.Params) *float32 { return &p.BranchAngle },
	"up_bias":      func(p *grow.Params) *float32 { return &p.UpBias },
	"side_bias":    func(p *grow.Params) *float32 { return &p.SideBias },
}

// Axis is one searched parameter. The value is applied to every order.
type Axis struct {
	Name   string
	Values []float32
}

// ParseAxis reads "name=from:to:steps" into evenly spaced values, both ends
// included. A single step yields just from.
func ParseAxis(s string) (Axis, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok {
		return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
	}
	if _, ok := params[name]; !ok {
		return Axis{}, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
	}
	from, err1 := strconv.ParseFloat(parts[0], 32)
	to, err2 := strconv.ParseFloat(parts[1], 32)
	steps, err3 := strconv.Atoi(parts[2])
	if err := errors.Join(err1, err2, err3); err != nil || steps < 1 {
		return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
	}

	values := make([]float32, steps)
	for i := range values {
		if steps == 1 {
			values[i] = float32(from)
			break
		}
		values[i] = float32(from + (to-from)*float64(i)/float64(steps-1))
	}
	return Axis{Name: name, Values: values}, nil
}

// Apply sets the named parameter on every order of cfg.
func Apply(cfg *grow.Config, name string, v float32) error {
	field, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	for i := range cfg.Orders {
		*field(&cfg.Orders[i]) = v
	}
	return nil
}

// Scorer rates a grown tree; lower is better.
type Scorer func(chains [][]grow.Branch) float64

// TargetMetric scores a tree by how far the metric lands from target.
func TargetMetric(m metrics.Metric, target float64) Scorer {
	return func(chains [][]grow.Branch) float64 {
		v := metrics.Evaluate(chains, m)[m.Name()]
		return math.Abs(v - target)
	}
}

type Result struct {
	Params    map[string]float32
	Score     float64
	Evaluated int
}

// GridSearch tries every combination of axis values. Each combination grows
// Samples consecutive seeds from the base seed and averages their scores.
type GridSearch struct {
	axes    []Axis
	Samples int
	Workers int
}

func NewGridSearch(axes []Axis) *GridSearch {
	return &GridSearch{axes: axes, Samples: 1}
}

func (g *GridSearch) Search(ctx context.Context, base grow.Config, score Scorer) (Result, error) {
	best := Result{Score: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, base, make(map[string]float32), score, &best)
	return best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	cfg grow.Config,
	current map[string]float32,
	score Scorer,
	best *Result,
) error {
	if depth == len(g.axes) {
		val, err := g.evaluate(ctx, cfg, score)
		if err != nil {
			return err
		}
		best.Evaluated++
		if val < best.Score {
			best.Score = val
			best.Params = make(map[string]float32, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next := cfg
		if err := Apply(&next, axis.Name, val); err != nil {
			return err
		}
		current[axis.Name] = val
		if err := g.searchRecursive(ctx, depth+1, next, current, score, best); err != nil {
			return err
		}
	}
	delete(current, axis.Name)
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, cfg grow.Config, score Scorer) (float64, error) {
	samples := max(1, g.Samples)
	forest := grow.NewForest(cfg, samples)
	if g.Workers > 0 {
		forest.SetWorkers(g.Workers)
	}
	trees, err := forest.Grow(ctx)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, t := range trees {
		total += score(t.Chains())
	}
	return total / float64(samples), nil
}

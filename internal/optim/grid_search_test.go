package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/metrics"
)

func baseConfig() grow.Config {
	p := grow.Params{GrowthChance: 1, Length: 1, Thickness: 0.8}
	return grow.Config{Seed: 1, Cycles: 3, InitCycles: 2, Orders: [grow.MaxOrder]grow.Params{p, p, p, p}}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		values  []float32
		wantErr error
	}{
		{"length=1:2:3", "length", []float32{1, 1.5, 2}, nil},
		{"branch=0.5:0.9:1", "branch", []float32{0.5}, nil},
		{"color=1:2:3", "", nil, ErrUnknownParam},
		{"length=1:2", "", nil, ErrBadAxis},
		{"length", "", nil, ErrBadAxis},
		{"length=1:2:0", "", nil, ErrBadAxis},
		{"length=a:2:3", "", nil, ErrBadAxis},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			axis, err := ParseAxis(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if axis.Name != tt.name || len(axis.Values) != len(tt.values) {
				t.Fatalf("got %+v", axis)
			}
			for i, v := range tt.values {
				if axis.Values[i] != v {
					t.Errorf("value %d: got %f, want %f", i, axis.Values[i], v)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := baseConfig()
	if err := Apply(&cfg, "branch_angle", 45); err != nil {
		t.Fatal(err)
	}
	for i, p := range cfg.Orders {
		if p.BranchAngle != 45 {
			t.Errorf("order %d: expected 45, got %f", i, p.BranchAngle)
		}
	}
	if err := Apply(&cfg, "nope", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestGridSearchFindsTargetHeight(t *testing.T) {
	// With certain growth, no variation and no branching the trunk height is
	// (init cycles + cycles) * length = 5 * length.
	axis, err := ParseAxis("length=0.5:2:4")
	if err != nil {
		t.Fatal(err)
	}
	gs := NewGridSearch([]Axis{axis})
	gs.Samples = 2

	res, err := gs.Search(context.Background(), baseConfig(), TargetMetric(metrics.NewHeight(), 5))
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if res.Evaluated != 4 {
		t.Errorf("expected 4 evaluations, got %d", res.Evaluated)
	}
	if res.Params["length"] != 1 {
		t.Errorf("expected length 1, got %v", res.Params)
	}
	if res.Score > 1e-4 {
		t.Errorf("expected near-zero score, got %f", res.Score)
	}
}

func TestGridSearchCombinations(t *testing.T) {
	a, _ := ParseAxis("length=1:2:2")
	b, _ := ParseAxis("thickness=0.5:1:3")
	calls := 0
	res, err := NewGridSearch([]Axis{a, b}).Search(context.Background(), baseConfig(), func(chains [][]grow.Branch) float64 {
		calls++
		return float64(chains[0][0].Thickness)
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 6 || res.Evaluated != 6 {
		t.Errorf("expected 6 evaluations, got %d calls, %d evaluated", calls, res.Evaluated)
	}
	if res.Params["thickness"] != 0.5 || len(res.Params) != 2 {
		t.Errorf("unexpected best params %v", res.Params)
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	axis, _ := ParseAxis("length=1:2:2")
	_, err := NewGridSearch([]Axis{axis}).Search(ctx, baseConfig(), func([][]grow.Branch) float64 { return 0 })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

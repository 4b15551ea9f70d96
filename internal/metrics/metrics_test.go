package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

func segment(from, to vecmath.Vec3, thickness float32) grow.Branch {
	return grow.Branch{StartPosition: from, EndPosition: to, Thickness: thickness}
}

func TestEvaluate(t *testing.T) {
	chains := [][]grow.Branch{
		{
			segment(vecmath.Zero, vecmath.Vec3{Y: 1}, 0.8),
			segment(vecmath.Vec3{Y: 1}, vecmath.Vec3{Y: 2}, 0.6),
		},
		{},
		{
			segment(vecmath.Vec3{Y: 1}, vecmath.Vec3{X: 3, Y: 5}, 0.4),
		},
	}

	got := Evaluate(chains, Default()...)

	want := map[string]float64{
		"total_length":   2 + 5,
		"height":         5,
		"spread":         3,
		"mean_thickness": 0.6,
	}
	for name, w := range want {
		if math.Abs(got[name]-w) > 1e-5 {
			t.Errorf("%s: expected %f, got %f", name, w, got[name])
		}
	}
}

func TestEvaluateResets(t *testing.T) {
	m := NewTotalLength()
	chains := [][]grow.Branch{{segment(vecmath.Zero, vecmath.Vec3{Y: 2}, 1)}}

	Evaluate(chains, m)
	got := Evaluate(chains, m)
	if math.Abs(got["total_length"]-2) > 1e-6 {
		t.Errorf("expected 2 after re-evaluation, got %f", got["total_length"])
	}
}

func TestMeanThicknessEmpty(t *testing.T) {
	m := NewMeanThickness()
	if m.Value() != 0 {
		t.Error("expected zero for no samples")
	}
}

func TestByName(t *testing.T) {
	for _, m := range Default() {
		got, err := ByName(m.Name())
		if err != nil {
			t.Fatalf("%s: %v", m.Name(), err)
		}
		if got.Name() != m.Name() {
			t.Errorf("expected %s, got %s", m.Name(), got.Name())
		}
	}
	if _, err := ByName("girth"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

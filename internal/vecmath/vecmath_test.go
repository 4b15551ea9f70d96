package vecmath

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, 3, 0}, Up},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math32.Sqrt(2), 1 / math32.Sqrt(2), 0}},
		{"zero", Zero, Zero},
		{"tiny", Vec3{1e-7, 0, 0}, Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCrossHandedness(t *testing.T) {
	if got := Right.Cross(Up); !got.ApproxEqual(Forward, eps) {
		t.Errorf("right x up: expected %v, got %v", Forward, got)
	}
	if got := Up.Cross(Forward); !got.ApproxEqual(Right, eps) {
		t.Errorf("up x forward: expected %v, got %v", Right, got)
	}
}

func TestAngleAxisRotate(t *testing.T) {
	got := AngleAxis(90, Forward).Rotate(Right)
	if !got.ApproxEqual(Up, eps) {
		t.Errorf("expected %v, got %v", Up, got)
	}

	got = AngleAxis(0, Vec3{0.3, 0.2, 0.1}).Rotate(Up)
	if !got.ApproxEqual(Up, eps) {
		t.Errorf("zero angle should not rotate, got %v", got)
	}

	got = AngleAxis(45, Zero).Rotate(Up)
	if !got.ApproxEqual(Up, eps) {
		t.Errorf("zero axis should not rotate, got %v", got)
	}
}

func TestRotatePreservesLength(t *testing.T) {
	v := Vec3{1, 2, 3}
	q := AngleAxis(37, Vec3{-1, 0.5, 2})
	if d := math32.Abs(q.Rotate(v).Length() - v.Length()); d > 1e-4 {
		t.Errorf("length changed by %f", d)
	}
}

func TestLookRotation(t *testing.T) {
	b := LookRotation(Right, Up)
	if !b.Forward.ApproxEqual(Right, eps) {
		t.Errorf("forward: expected %v, got %v", Right, b.Forward)
	}
	if !b.Up.ApproxEqual(Up, eps) {
		t.Errorf("up: expected %v, got %v", Up, b.Up)
	}
	if d := b.Right.Dot(b.Forward); math32.Abs(d) > eps {
		t.Errorf("frame not orthogonal: %f", d)
	}

	// parallel forward and up still yields a usable frame
	b = LookRotation(Up, Up)
	if b.Right.Length() < 0.99 || b.Up.Length() < 0.99 {
		t.Errorf("degenerate frame: %+v", b)
	}
}

func TestLerpClamps(t *testing.T) {
	if got := Lerp(1, 0.5, 2); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := Lerp(1, 0.5, -1); got != 1 {
		t.Errorf("expected 1, got %f", got)
	}
	if got := Lerp(0.8, 0.5, 0.5); math32.Abs(got-0.65) > eps {
		t.Errorf("expected 0.65, got %f", got)
	}
}

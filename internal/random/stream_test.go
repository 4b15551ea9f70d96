package random

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestStreamDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		if va, vb := a.Value(), b.Value(); va != vb {
			t.Fatalf("draw %d: %f != %f", i, va, vb)
		}
	}
	if a.Draws() != 100 {
		t.Errorf("expected 100 draws, got %d", a.Draws())
	}
}

func TestRangeBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.Range(-5, 5)
		if v < -5 || v > 5 {
			t.Fatalf("value %f out of range", v)
		}
	}
}

func TestOnUnitSphere(t *testing.T) {
	s := New(3)
	for i := 0; i < 500; i++ {
		v := s.OnUnitSphere()
		if d := math32.Abs(v.Length() - 1); d > 1e-4 {
			t.Fatalf("sample %d has length %f", i, v.Length())
		}
	}
	if s.Draws() != 1000 {
		t.Errorf("expected two draws per sample, got %d", s.Draws())
	}
}

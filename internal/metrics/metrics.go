// Package metrics measures the shape of grown trees. Each Metric observes
// branch segments one at a time and reports a single value.
package metrics

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/grow"
)

type Metric interface {
	Name() string
	Observe(b grow.Branch)
	Value() float64
	Reset()
}

// Default returns the metrics reported for every run.
func Default() []Metric {
	return []Metric{
		NewTotalLength(),
		NewHeight(),
		NewSpread(),
		NewMeanThickness(),
	}
}

var ErrUnknownMetric = errors.New("metrics: unknown metric")

var registry = map[string]func() Metric{
	"total_length":   func() Metric { return NewTotalLength() },
	"height":         func() Metric { return NewHeight() },
	"spread":         func() Metric { return NewSpread() },
	"mean_thickness": func() Metric { return NewMeanThickness() },
}

// ByName returns a fresh metric by its reported name.
func ByName(name string) (Metric, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	return ctor(), nil
}

// Evaluate resets ms, feeds them every segment of every chain and collects
// their values by name.
func Evaluate(chains [][]grow.Branch, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, chain := range chains {
		for _, b := range chain {
			for _, m := range ms {
				m.Observe(b)
			}
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

type TotalLength struct {
	total float64
}

func NewTotalLength() *TotalLength { return &TotalLength{} }

func (l *TotalLength) Name() string          { return "total_length" }
func (l *TotalLength) Observe(b grow.Branch) { l.total += float64(b.Length()) }
func (l *TotalLength) Value() float64        { return l.total }
func (l *TotalLength) Reset()                { l.total = 0 }

// Height is the highest segment end above the ground plane.
type Height struct {
	max float32
}

func NewHeight() *Height { return &Height{} }

func (h *Height) Name() string { return "height" }

func (h *Height) Observe(b grow.Branch) {
	h.max = math32.Max(h.max, math32.Max(b.StartPosition.Y, b.EndPosition.Y))
}

func (h *Height) Value() float64 { return float64(h.max) }
func (h *Height) Reset()         { h.max = 0 }

// Spread is the largest horizontal distance of a segment end from the
// vertical axis through the origin.
type Spread struct {
	max float32
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(b grow.Branch) {
	p := b.EndPosition
	s.max = math32.Max(s.max, math32.Sqrt(p.X*p.X+p.Z*p.Z))
}

func (s *Spread) Value() float64 { return float64(s.max) }
func (s *Spread) Reset()         { s.max = 0 }

type MeanThickness struct {
	sum     float64
	samples int
}

func NewMeanThickness() *MeanThickness { return &MeanThickness{} }

func (m *MeanThickness) Name() string { return "mean_thickness" }

func (m *MeanThickness) Observe(b grow.Branch) {
	m.sum += float64(b.Thickness)
	m.samples++
}

func (m *MeanThickness) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanThickness) Reset() {
	m.sum = 0
	m.samples = 0
}

// Package random provides the seeded pseudo-random stream that drives
// procedural growth. A Stream is owned by exactly one consumer; the sequence
// of values it yields is a pure function of its seed and the order of calls.
package random

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/san-kum/arbor/internal/vecmath"
)

type Stream struct {
	rng   *rand.Rand
	draws int
}

func New(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewSource(seed))}
}

// Value returns a uniform value in [0, 1).
func (s *Stream) Value() float32 {
	s.draws++
	return s.rng.Float32()
}

// Range returns a uniform value between min and max.
func (s *Stream) Range(min, max float32) float32 {
	return min + (max-min)*s.Value()
}

// OnUnitSphere returns a uniformly distributed unit vector. It consumes two
// values: the height, then the azimuth.
func (s *Stream) OnUnitSphere() vecmath.Vec3 {
	z := s.Range(-1, 1)
	phi := s.Range(0, 2*math32.Pi)
	r := math32.Sqrt(math32.Max(0, 1-z*z))
	return vecmath.Vec3{X: r * math32.Cos(phi), Y: r * math32.Sin(phi), Z: z}
}

// Draws reports how many values have been consumed.
func (s *Stream) Draws() int { return s.draws }

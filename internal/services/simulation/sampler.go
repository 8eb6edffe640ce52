package simulation

import (
	"math"
	"math/rand"
)

// NormalSampler produces standard-normal variates via the Box-Muller
// transform. It owns its PRNG so that each branch can sample independently
// without shared state; it is not safe for concurrent use.
type NormalSampler struct {
	rng *rand.Rand
}

// NewNormalSampler creates a sampler seeded from the given source.
func NewNormalSampler(seed int64) *NormalSampler {
	return &NormalSampler{rng: rand.New(rand.NewSource(seed))}
}

// Norm returns one standard-normal draw.
// z = sqrt(-2 ln u1) * cos(2 pi u2), with u1 resampled while zero.
func (s *NormalSampler) Norm() float64 {
	u1 := s.rng.Float64()
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Uniform returns a uniform draw in [min, max).
func (s *NormalSampler) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

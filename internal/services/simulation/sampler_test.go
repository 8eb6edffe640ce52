package simulation

import (
	"math"
	"testing"
)

func TestNormSampleMoments(t *testing.T) {
	s := NewNormalSampler(42)
	const n = 200000

	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		z := s.Norm()
		if math.IsNaN(z) || math.IsInf(z, 0) {
			t.Fatalf("non-finite draw %v at %d", z, i)
		}
		sum += z
		sumSq += z * z
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean) > 0.02 {
		t.Fatalf("mean too far from 0: %v", mean)
	}
	if math.Abs(variance-1) > 0.02 {
		t.Fatalf("variance too far from 1: %v", variance)
	}
}

func TestNormDeterministicPerSeed(t *testing.T) {
	a := NewNormalSampler(7)
	b := NewNormalSampler(7)
	for i := 0; i < 100; i++ {
		if a.Norm() != b.Norm() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestUniformRange(t *testing.T) {
	s := NewNormalSampler(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(0.95, 1.05)
		if v < 0.95 || v >= 1.05 {
			t.Fatalf("uniform draw out of range: %v", v)
		}
	}
}

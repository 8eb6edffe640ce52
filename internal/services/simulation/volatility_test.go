package simulation

import (
	"math"
	"testing"
	"time"

	"ScenarioSim/internal/domain/models"
)

func pricePoints(prices ...float64) []models.PricePoint {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, 0, len(prices))
	for i, p := range prices {
		out = append(out, models.PricePoint{Timestamp: base.Add(time.Duration(i) * time.Minute), Price: p})
	}
	return out
}

func TestEstimateVolatilityTooFewSamples(t *testing.T) {
	if got := EstimateVolatility(nil); got != DefaultVolatility {
		t.Fatalf("expected default volatility, got %v", got)
	}
	if got := EstimateVolatility(pricePoints(100, 101)); got != DefaultVolatility {
		t.Fatalf("expected default volatility for 2 samples, got %v", got)
	}
}

func TestEstimateVolatilityConstantPrices(t *testing.T) {
	// Zero variance clamps up to the minimum.
	got := EstimateVolatility(pricePoints(100, 100, 100, 100))
	if got != MinVolatility {
		t.Fatalf("expected min volatility, got %v", got)
	}
}

func TestEstimateVolatilityWildPricesClamped(t *testing.T) {
	got := EstimateVolatility(pricePoints(100, 300, 50, 400, 20))
	if got != MaxVolatility {
		t.Fatalf("expected max volatility, got %v", got)
	}
}

func TestEstimateVolatilityKnownSample(t *testing.T) {
	samples := pricePoints(100, 102, 101, 103)
	got := EstimateVolatility(samples)

	// Recompute by hand: log returns, sample variance, annualized.
	rets := []float64{
		math.Log(102.0 / 100.0),
		math.Log(101.0 / 102.0),
		math.Log(103.0 / 101.0),
	}
	mean := (rets[0] + rets[1] + rets[2]) / 3
	variance := 0.0
	for _, r := range rets {
		variance += (r - mean) * (r - mean)
	}
	variance /= 2
	want := ClampVolatility(math.Sqrt(variance) * math.Sqrt(365))

	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("volatility mismatch: got %v want %v", got, want)
	}
}

func TestEstimateVolatilitySkipsNonPositive(t *testing.T) {
	// Non-positive prices produce no usable returns, so the default applies.
	got := EstimateVolatility(pricePoints(100, -5, 0))
	if got != DefaultVolatility {
		t.Fatalf("expected default volatility, got %v", got)
	}
}

func TestClampVolatilityBounds(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.01, MinVolatility},
		{0.25, 0.25},
		{1.5, MaxVolatility},
	}
	for _, c := range cases {
		if got := ClampVolatility(c.in); got != c.want {
			t.Fatalf("clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

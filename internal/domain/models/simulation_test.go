package models

import (
	"testing"
	"time"
)

func TestIntervalsCeil(t *testing.T) {
	cases := []struct {
		horizon, interval, want int
	}{
		{60, 20, 3},
		{50, 20, 3},
		{20, 20, 1},
		{19, 20, 1},
		{60, 0, 0},
	}
	for _, c := range cases {
		cfg := SimulationConfig{TimeHorizonMinutes: c.horizon, PredictionIntervalMinutes: c.interval}
		if got := cfg.Intervals(); got != c.want {
			t.Fatalf("intervals(%d, %d) = %d, want %d", c.horizon, c.interval, got, c.want)
		}
	}
}

func TestFinalEVAndAvgVolatility(t *testing.T) {
	b := SimulationBranch{
		Predictions: []StepPrediction{
			{EV: 1, Volatility: 0.2},
			{EV: 5, Volatility: 0.4},
		},
	}
	if got := b.FinalEV(); got != 5 {
		t.Fatalf("final EV: got %v", got)
	}
	if got := b.AvgVolatility(); got != 0.3 {
		t.Fatalf("avg volatility: got %v", got)
	}

	empty := SimulationBranch{}
	if empty.FinalEV() != 0 || empty.AvgVolatility() != 0 {
		t.Fatalf("empty branch must report zeros")
	}
}

func TestFallbackSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	snap := FallbackSnapshot(now)
	if snap.Price != 2000 || snap.TVL != 1_000_000 || snap.Yield != 3.5 || snap.GasPrice != 20 || snap.Volatility != 0.25 {
		t.Fatalf("unexpected fallback values: %+v", snap)
	}
	if !snap.Timestamp.Equal(now) {
		t.Fatalf("timestamp not preserved")
	}
}

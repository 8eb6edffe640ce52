package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"ScenarioSim/internal/domain/models"
)

func TestRunMonteCarloSummary(t *testing.T) {
	sim := NewSimulator(nil, nil, nil, nil, nil)
	sim.SetSeed(2025)

	cfg := models.SimulationConfig{TimeHorizonMinutes: 60, PredictionIntervalMinutes: 20}
	res, err := sim.RunMonteCarlo(context.Background(), cfg, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Iterations != 400 {
		t.Fatalf("expected 400 iterations, got %d", res.Iterations)
	}
	if math.IsNaN(res.MeanEV) || math.IsNaN(res.StdEV) {
		t.Fatalf("summary contains NaN: %+v", res)
	}
	if res.StdEV < 0 {
		t.Fatalf("negative std: %v", res.StdEV)
	}
	if res.SuccessProbability < 0 || res.SuccessProbability > 1 {
		t.Fatalf("success probability out of [0,1]: %v", res.SuccessProbability)
	}
	if res.ConfidenceInterval[0] > res.ConfidenceInterval[1] {
		t.Fatalf("confidence interval inverted: %v", res.ConfidenceInterval)
	}
	if res.ConfidenceInterval[0] > res.MeanEV || res.ConfidenceInterval[1] < res.MeanEV {
		t.Fatalf("mean outside 95%% interval: mean=%v ci=%v", res.MeanEV, res.ConfidenceInterval)
	}
}

func TestRunMonteCarloSingleIteration(t *testing.T) {
	sim := NewSimulator(nil, nil, nil, nil, nil)
	cfg := models.SimulationConfig{TimeHorizonMinutes: 60, PredictionIntervalMinutes: 20}

	res, err := sim.RunMonteCarlo(context.Background(), cfg, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StdEV != 0 {
		t.Fatalf("single sample must have zero std, got %v", res.StdEV)
	}
	if res.ConfidenceInterval[0] != res.ConfidenceInterval[1] {
		t.Fatalf("single sample interval must collapse, got %v", res.ConfidenceInterval)
	}
}

func TestRunMonteCarloRejectsBadIterations(t *testing.T) {
	sim := NewSimulator(nil, nil, nil, nil, nil)
	cfg := models.SimulationConfig{TimeHorizonMinutes: 60, PredictionIntervalMinutes: 20}
	if _, err := sim.RunMonteCarlo(context.Background(), cfg, 0); err == nil {
		t.Fatalf("expected error for zero iterations")
	}
}

func TestRunMonteCarloResolvesSnapshotOnce(t *testing.T) {
	provider := &fakeProvider{
		price:   2000,
		metrics: models.OnChainMetrics{TVL: 1_000_000, APY: 3.5, GasPrice: 20},
	}
	sim := NewSimulator(provider, nil, nil, nil, nil)
	cfg := models.SimulationConfig{TimeHorizonMinutes: 60, PredictionIntervalMinutes: 20}

	if _, err := sim.RunMonteCarlo(context.Background(), cfg, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("snapshot must be resolved once per aggregation, provider calls=%d", provider.calls)
	}
}

func TestSummarizeEVSampleKnownValues(t *testing.T) {
	evs := []float64{1, 2, 3, 4, 5}
	succ := []bool{true, false, true, false, false}

	res, err := summarizeEVSample(evs, succ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MeanEV != 3 {
		t.Fatalf("mean: got %v want 3", res.MeanEV)
	}
	// Sample variance of 1..5 is 2.5.
	if math.Abs(res.StdEV-math.Sqrt(2.5)) > 1e-12 {
		t.Fatalf("std: got %v want %v", res.StdEV, math.Sqrt(2.5))
	}
	if res.SuccessProbability != 0.4 {
		t.Fatalf("success probability: got %v want 0.4", res.SuccessProbability)
	}
	// floor(5*0.025)=0, floor(5*0.975)=4
	if res.ConfidenceInterval != [2]float64{1, 5} {
		t.Fatalf("confidence interval: got %v", res.ConfidenceInterval)
	}
}

func TestSummarizeEVSampleEmpty(t *testing.T) {
	if _, err := summarizeEVSample(nil, nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestMonteCarloFallbackSnapshot(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	sim := NewSimulator(provider, nil, nil, nil, nil)
	cfg := models.SimulationConfig{TimeHorizonMinutes: 60, PredictionIntervalMinutes: 20}

	res, err := sim.RunMonteCarlo(context.Background(), cfg, 20)
	if err != nil {
		t.Fatalf("provider failure must not surface: %v", err)
	}
	if res.Iterations != 20 {
		t.Fatalf("expected 20 iterations, got %d", res.Iterations)
	}
	snap, _ := sim.LastSnapshot()
	if snap.Price != models.FallbackPrice {
		t.Fatalf("expected fallback snapshot, got price %v", snap.Price)
	}
}

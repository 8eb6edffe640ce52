package models

import (
	"math"
	"time"
)

// Outcome classifies a finished branch.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomePending Outcome = "pending"
)

// SimulationConfig parameterizes one simulation run.
type SimulationConfig struct {
	TimeHorizonMinutes        int `json:"time_horizon_minutes"`
	BranchCount               int `json:"branch_count"`
	PredictionIntervalMinutes int `json:"prediction_interval_minutes"`
}

// Intervals returns the number of prediction steps per branch,
// ceil(horizon / interval).
func (c SimulationConfig) Intervals() int {
	if c.PredictionIntervalMinutes < 1 {
		return 0
	}
	return int(math.Ceil(float64(c.TimeHorizonMinutes) / float64(c.PredictionIntervalMinutes)))
}

// StepPrediction is one time step inside a branch. Timestamps are strictly
// increasing within a branch, Price is always positive and peg deviations
// stay within [0, 0.1].
type StepPrediction struct {
	Timestamp     time.Time `json:"timestamp"`
	Price         float64   `json:"price"`
	Volatility    float64   `json:"volatility"`
	TVL           float64   `json:"tvl"`
	Yield         float64   `json:"yield"`
	PegDeviationA float64   `json:"peg_deviation_a"`
	PegDeviationB float64   `json:"peg_deviation_b"`
	EV            float64   `json:"ev"`
}

// SimulationBranch is one simulated future trajectory. It is owned by the
// orchestrator for the duration of one run and never mutated after Outcome
// and EVScore are set.
type SimulationBranch struct {
	ID          string           `json:"id"`
	ParentID    string           `json:"parent_id,omitempty"`
	Predictions []StepPrediction `json:"predictions"`
	Outcome     Outcome          `json:"outcome"`
	EVScore     float64          `json:"ev_score"`
}

// FinalEV returns the EV of the last step, or 0 for an empty branch.
func (b *SimulationBranch) FinalEV() float64 {
	if len(b.Predictions) == 0 {
		return 0
	}
	return b.Predictions[len(b.Predictions)-1].EV
}

// AvgVolatility returns the mean per-step volatility of the branch.
func (b *SimulationBranch) AvgVolatility() float64 {
	if len(b.Predictions) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range b.Predictions {
		sum += p.Volatility
	}
	return sum / float64(len(b.Predictions))
}

// MonteCarloResult summarizes the EV distribution of repeated
// single-branch runs. Derived, read-only, recomputed per call.
type MonteCarloResult struct {
	Iterations         int        `json:"iterations"`
	MeanEV             float64    `json:"mean_ev"`
	StdEV              float64    `json:"std_ev"`
	SuccessProbability float64    `json:"success_probability"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"` // p2.5, p97.5
}

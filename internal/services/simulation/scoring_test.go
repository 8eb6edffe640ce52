package simulation

import (
	"math"
	"testing"

	"ScenarioSim/internal/domain/models"
)

func TestScoreBranchSingleStep(t *testing.T) {
	b := &models.SimulationBranch{
		Predictions: []models.StepPrediction{
			{Price: 2200, Volatility: 0.25, Yield: 3.65, PegDeviationA: 0.01, PegDeviationB: 0.02},
		},
	}
	got := ScoreBranch(b, 2000)

	// return 10%, yield 3.65*1/365=0.01, vol penalty 2, peg penalty 6
	want := 10.0 + 0.01 - 0.25*8 - (0.01+0.02)*200
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("single-step EV: got %v want %v", got, want)
	}
	if b.Predictions[0].EV != got {
		t.Fatalf("step EV not filled in")
	}
	if b.EVScore != got {
		t.Fatalf("branch EVScore not set")
	}
}

func TestScoreBranchDecayWeighting(t *testing.T) {
	b := &models.SimulationBranch{
		Predictions: []models.StepPrediction{
			{Price: 2200}, // EV 10
			{Price: 1800}, // EV -10
		},
	}
	got := ScoreBranch(b, 2000)

	w0, w1 := 1.0, math.Exp(-0.1)
	ev0 := 10.0
	ev1 := -10.0
	want := (ev0*w0 + ev1*w1) / (w0 + w1)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("weighted EV: got %v want %v", got, want)
	}
	// Early steps must dominate: the positive first step outweighs the
	// equal-magnitude negative second one.
	if got <= 0 {
		t.Fatalf("decay weighting should favor the earlier step, got %v", got)
	}
}

func TestScoreBranchEmptyOrBadBase(t *testing.T) {
	empty := &models.SimulationBranch{}
	if got := ScoreBranch(empty, 2000); got != 0 {
		t.Fatalf("empty branch should score 0, got %v", got)
	}
	b := &models.SimulationBranch{Predictions: []models.StepPrediction{{Price: 2100}}}
	if got := ScoreBranch(b, 0); got != 0 {
		t.Fatalf("non-positive base price should score 0, got %v", got)
	}
}

func TestClassifyOutcome(t *testing.T) {
	cases := []struct {
		name   string
		ev     float64
		avgVol float64
		want   models.Outcome
	}{
		{"clear success", 10, 0.3, models.OutcomeSuccess},
		{"high ev but volatile", 10, 0.6, models.OutcomePending},
		{"low ev", -10, 0.3, models.OutcomeFailure},
		{"excess volatility alone fails", 0, 0.75, models.OutcomeFailure},
		{"borderline ev stays pending", 8, 0.3, models.OutcomePending},
		{"borderline failure stays pending", -8, 0.3, models.OutcomePending},
		{"middle ground", 0, 0.3, models.OutcomePending},
	}
	for _, c := range cases {
		if got := ClassifyOutcome(c.ev, c.avgVol); got != c.want {
			t.Fatalf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}

package simulation

import (
	"math"

	"ScenarioSim/internal/domain/models"
)

// Scoring and classification constants. These are fixed model parameters;
// ranking and tie-breaking depend on them.
const (
	decayLambda       = 0.1
	volatilityPenalty = 8
	pegPenalty        = 200

	successEVThreshold  = 8
	failureEVThreshold  = -8
	successVolThreshold = 0.5
	failureVolThreshold = 0.7
)

// ScoreBranch fills in per-step EVs against the branch's base price and
// returns the branch-level EV: an exponential time-decay weighted average
// that favors near-term steps over distant, noisier ones.
func ScoreBranch(branch *models.SimulationBranch, basePrice float64) float64 {
	if len(branch.Predictions) == 0 || basePrice <= 0 {
		return 0
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for i := range branch.Predictions {
		p := &branch.Predictions[i]

		returnPercent := (p.Price - basePrice) / basePrice * 100
		yieldReturn := p.Yield * float64(i+1) / annualizationDays
		volPenalty := p.Volatility * volatilityPenalty
		pegPen := (p.PegDeviationA + p.PegDeviationB) * pegPenalty
		p.EV = returnPercent + yieldReturn - volPenalty - pegPen

		w := math.Exp(-decayLambda * float64(i))
		weightedSum += p.EV * w
		weightTotal += w
	}

	branch.EVScore = weightedSum / weightTotal
	return branch.EVScore
}

// ClassifyOutcome labels a branch from its final-step EV and average
// per-step volatility.
func ClassifyOutcome(finalEV, avgVolatility float64) models.Outcome {
	switch {
	case finalEV > successEVThreshold && avgVolatility < successVolThreshold:
		return models.OutcomeSuccess
	case finalEV < failureEVThreshold || avgVolatility > failureVolThreshold:
		return models.OutcomeFailure
	default:
		return models.OutcomePending
	}
}

package simulation

import (
	"math"
	"time"

	"ScenarioSim/internal/domain/models"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

// BuildBranch constructs one simulated trajectory. Each branch gets its own
// drift and volatility multiplier as a deterministic function of its index
// so that branches diversify:
//
//	drift      = 0.05 + (i/N - 0.5) * 0.2   // roughly [-0.05, +0.15]
//	volFactor  = 0.8 + (i/N) * 0.4          // [0.8, 1.2]
//
// Predictions are returned with EV zeroed; scoring fills them in afterwards
// since per-step EV needs the branch's base price.
func BuildBranch(simulationID string, branchIndex int, cfg models.SimulationConfig, snap models.MarketSnapshot, sampler *NormalSampler) models.SimulationBranch {
	frac := float64(branchIndex) / float64(cfg.BranchCount)
	drift := 0.05 + (frac-0.5)*0.2
	volFactor := 0.8 + frac*0.4

	adjustedVol := ClampVolatility(snap.Volatility * volFactor)
	timeStepDays := float64(cfg.PredictionIntervalMinutes) / minutesPerDay
	interval := time.Duration(cfg.PredictionIntervalMinutes) * time.Minute

	intervals := cfg.Intervals()
	predictions := make([]models.StepPrediction, 0, intervals)

	price := snap.Price
	tvl := snap.TVL
	pegA, pegB := 0.0, 0.0
	ts := snap.Timestamp

	for i := 0; i < intervals; i++ {
		prevPrice := price
		price = NextPrice(price, adjustedVol, drift, timeStepDays, sampler)
		tvl *= math.Pow(price/prevPrice, 0.5) * sampler.Uniform(0.95, 1.05)
		yield := NextYield(snap.Yield, snap.TVL, tvl, adjustedVol)
		pegA = NextPegDeviation(pegA, PegReversionA, sampler)
		pegB = NextPegDeviation(pegB, PegReversionB, sampler)
		ts = ts.Add(interval)

		predictions = append(predictions, models.StepPrediction{
			Timestamp:     ts,
			Price:         price,
			Volatility:    adjustedVol,
			TVL:           tvl,
			Yield:         yield,
			PegDeviationA: pegA,
			PegDeviationB: pegB,
		})
	}

	return models.SimulationBranch{
		ID:          uuid.NewString(),
		ParentID:    simulationID,
		Predictions: predictions,
		Outcome:     models.OutcomePending,
	}
}

package simulation

import (
	"math"

	"ScenarioSim/internal/domain/models"
)

const (
	// DefaultVolatility is the fallback when fewer than 3 samples exist.
	DefaultVolatility = 0.25
	// MinVolatility and MaxVolatility clamp every estimate.
	MinVolatility = 0.05
	MaxVolatility = 1.0

	annualizationDays = 365
)

// EstimateVolatility computes annualized historical volatility from an
// ordered price history using log-return standard deviation. Insufficient
// history degrades to DefaultVolatility rather than failing.
func EstimateVolatility(samples []models.PricePoint) float64 {
	if len(samples) < 3 {
		return DefaultVolatility
	}

	returns := make([]float64, 0, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		prev := samples[i-1].Price
		cur := samples[i].Price
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, math.Log(cur/prev))
	}
	if len(returns) < 2 {
		return DefaultVolatility
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	sigma := math.Sqrt(variance) * math.Sqrt(annualizationDays)
	return ClampVolatility(sigma)
}

// ClampVolatility bounds sigma to [MinVolatility, MaxVolatility].
func ClampVolatility(sigma float64) float64 {
	if sigma < MinVolatility {
		return MinVolatility
	}
	if sigma > MaxVolatility {
		return MaxVolatility
	}
	return sigma
}

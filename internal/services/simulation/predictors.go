package simulation

import "math"

const (
	minYield = 0.1
	maxYield = 50

	// Mean-reversion speeds for the two tracked pegged assets.
	PegReversionA = 0.15
	PegReversionB = 0.30

	maxPegDeviation = 0.1
	pegNoiseBound   = 0.0025
)

// NextYield predicts the next APY from TVL growth and volatility. Yield
// dilutes as deposits grow; volatility adds a risk premium. Clamped to
// [0.1, 50].
func NextYield(baseYield, tvlBase, tvlNow, volatility float64) float64 {
	tvlChangeRatio := 0.0
	if tvlBase > 0 {
		tvlChangeRatio = (tvlNow - tvlBase) / tvlBase
	}
	y := baseYield * (1 - 0.3*tvlChangeRatio + 0.2*volatility)
	if y < minYield {
		return minYield
	}
	if y > maxYield {
		return maxYield
	}
	return y
}

// NextPegDeviation advances a mean-reverting peg-deviation walk with a small
// uniform perturbation, clamped to [0, 0.1].
func NextPegDeviation(current, reversionSpeed float64, sampler *NormalSampler) float64 {
	noise := sampler.Uniform(-pegNoiseBound, pegNoiseBound)
	next := math.Abs(current*(1-reversionSpeed) + noise)
	if next > maxPegDeviation {
		return maxPegDeviation
	}
	return next
}

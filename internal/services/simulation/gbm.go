package simulation

import "math"

// NextPrice advances a price one time step under Geometric Brownian Motion:
//
//	S(t+dt) = S(t) * exp((mu - sigma^2/2)*dt + sigma*sqrt(dt)*z)
//
// drift is annualized, timeStepDays is the step length in days. The
// exponential form keeps the result strictly positive for any draw.
func NextPrice(currentPrice, volatility, drift, timeStepDays float64, sampler *NormalSampler) float64 {
	dt := timeStepDays / annualizationDays
	z := sampler.Norm()
	logReturn := (drift-0.5*volatility*volatility)*dt + volatility*math.Sqrt(dt)*z
	return currentPrice * math.Exp(logReturn)
}

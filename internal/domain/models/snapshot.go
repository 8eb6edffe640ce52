package models

import "time"

// MarketSnapshot is the immutable input to one simulation run.
// Price is always positive; Volatility is annualized and clamped to [0.05, 1.0].
type MarketSnapshot struct {
	Price      float64   `json:"price"`
	TVL        float64   `json:"tvl"`
	Yield      float64   `json:"yield"`
	GasPrice   float64   `json:"gas_price"`
	Volatility float64   `json:"volatility"`
	Timestamp  time.Time `json:"timestamp"`
}

// OnChainMetrics is what the external market-data provider returns.
type OnChainMetrics struct {
	TVL      float64 `json:"tvl"`
	APY      float64 `json:"apy"`
	GasPrice float64 `json:"gas_price"`
}

// PricePoint is one observed price sample for volatility estimation.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// Fallback snapshot constants used when the provider is unreachable.
const (
	FallbackPrice      = 2000
	FallbackTVL        = 1_000_000
	FallbackYield      = 3.5
	FallbackGasPrice   = 20
	FallbackVolatility = 0.25
)

// FallbackSnapshot returns the conservative snapshot substituted on
// provider failure. Failure here is recovered locally, never surfaced.
func FallbackSnapshot(now time.Time) MarketSnapshot {
	return MarketSnapshot{
		Price:      FallbackPrice,
		TVL:        FallbackTVL,
		Yield:      FallbackYield,
		GasPrice:   FallbackGasPrice,
		Volatility: FallbackVolatility,
		Timestamp:  now,
	}
}

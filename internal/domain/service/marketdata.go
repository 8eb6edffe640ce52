package service

import (
	"context"

	"ScenarioSim/internal/domain/models"
)

// MarketDataProvider supplies on-chain metrics and a spot price. Any failure
// is caught by the orchestrator and substituted with the fallback snapshot;
// provider errors are never propagated past the engine boundary.
type MarketDataProvider interface {
	GetOnChainMetrics(ctx context.Context) (models.OnChainMetrics, error)
	GetSpotPrice(ctx context.Context) (float64, error)
}

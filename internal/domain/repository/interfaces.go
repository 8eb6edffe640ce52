package repository

import (
	"context"

	"ScenarioSim/internal/domain/models"
)

// PriceStream delivers live spot prices that feed the rolling
// price-history buffer used for volatility estimation.
type PriceStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan models.PricePoint, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// ResultStore persists completed simulation runs. Persistence lives outside
// the engine; failures are logged and never affect the run result.
type ResultStore interface {
	Init(ctx context.Context) error
	StoreBranches(ctx context.Context, simulationID string, branches []models.SimulationBranch) error
	StoreMonteCarlo(ctx context.Context, simulationID string, res models.MonteCarloResult) error
	Health(ctx context.Context) error
	Close() error
}

// ResultPublisher emits completed simulation results to downstream consumers.
type ResultPublisher interface {
	PublishBranches(ctx context.Context, simulationID string, branches []models.SimulationBranch) error
	PublishMonteCarlo(ctx context.Context, simulationID string, res models.MonteCarloResult) error
	Close() error
}

// SnapshotCache memoizes provider snapshots between runs.
type SnapshotCache interface {
	Get(ctx context.Context) (models.MarketSnapshot, bool)
	Set(ctx context.Context, snap models.MarketSnapshot) error
}

type Metrics interface {
	RecordSimulation(mode string)
	RecordError(kind string)
	RecordBestEV(ev float64)
	RecordLatency(op string, seconds float64)
}

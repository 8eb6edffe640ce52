package usecase

import (
	"context"
	"time"

	"ScenarioSim/internal/domain/models"
	"ScenarioSim/internal/domain/repository"
	applogger "ScenarioSim/pkg/logger"
)

// ResultRecorder fans completed simulation results out to the persistence
// and messaging sinks. Recording is best-effort: failures are logged and
// counted, never returned to the caller, so a simulation request always
// responds regardless of sink health.
type ResultRecorder struct {
	store   repository.ResultStore
	pub     repository.ResultPublisher
	metrics repository.Metrics
	logger  *applogger.Logger
	timeout time.Duration
}

func NewResultRecorder(store repository.ResultStore, pub repository.ResultPublisher, metrics repository.Metrics, logger *applogger.Logger, timeout time.Duration) *ResultRecorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ResultRecorder{store: store, pub: pub, metrics: metrics, logger: logger, timeout: timeout}
}

// RecordBranches persists and publishes a finished run asynchronously.
func (r *ResultRecorder) RecordBranches(simulationID string, branches []models.SimulationBranch) {
	if r == nil || (r.store == nil && r.pub == nil) {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if r.store != nil {
			if err := r.store.StoreBranches(ctx, simulationID, branches); err != nil {
				r.reportSinkError("store branches", err)
			}
		}
		if r.pub != nil {
			if err := r.pub.PublishBranches(ctx, simulationID, branches); err != nil {
				r.reportSinkError("publish branches", err)
			}
		}
	}()
}

// RecordMonteCarlo persists and publishes a Monte Carlo summary asynchronously.
func (r *ResultRecorder) RecordMonteCarlo(simulationID string, res models.MonteCarloResult) {
	if r == nil || (r.store == nil && r.pub == nil) {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if r.store != nil {
			if err := r.store.StoreMonteCarlo(ctx, simulationID, res); err != nil {
				r.reportSinkError("store monte carlo", err)
			}
		}
		if r.pub != nil {
			if err := r.pub.PublishMonteCarlo(ctx, simulationID, res); err != nil {
				r.reportSinkError("publish monte carlo", err)
			}
		}
	}()
}

func (r *ResultRecorder) reportSinkError(op string, err error) {
	if r.logger != nil {
		r.logger.Warn("result sink error", applogger.String("op", op), applogger.Error(err))
	}
	if r.metrics != nil {
		r.metrics.RecordError("result_sink")
	}
}

//go:build wireinject
// +build wireinject

package di

import (
	"ScenarioSim/pkg/config"
	"ScenarioSim/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Engine inputs
		ProvidePriceHistory,
		ProvideSnapshotCache,
		ProvideMarketDataProvider,
		ProvidePriceCollector,

		// Result sinks
		ProvideResultStore,
		ProvideResultPublisher,

		// Use cases
		ProvideSimulator,
		ProvideResultRecorder,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

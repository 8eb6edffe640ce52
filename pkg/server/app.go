package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ScenarioSim/internal/domain/repository"
	"ScenarioSim/internal/usecase"
	"ScenarioSim/pkg/config"
	xhttp "ScenarioSim/pkg/http"
	applogger "ScenarioSim/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	collector  *usecase.PriceCollector
	store      repository.ResultStore
	publisher  repository.ResultPublisher
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.PriceCollector,
	store repository.ResultStore,
	publisher repository.ResultPublisher,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		store:     store,
		publisher: publisher,
		handler:   handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.store != nil {
		if err := a.store.Init(ctx); err != nil {
			a.logger.Error("result store init error", applogger.Error(err))
			return err
		}
		a.logger.Info("result store ready")
	}

	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			a.logger.Warn("price feed start error", applogger.Error(err))
		} else {
			a.logger.Info("price feed collector started",
				applogger.Strings("symbols", a.cfg.MarketData.Feed.Symbols))
		}
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server listening", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			a.logger.Warn("price feed stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("result store close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}

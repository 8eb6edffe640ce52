package di

import (
	"fmt"

	"ScenarioSim/internal/domain/repository"
	domsvc "ScenarioSim/internal/domain/service"
	"ScenarioSim/internal/handler/api"
	internalrepo "ScenarioSim/internal/repository"
	"ScenarioSim/internal/service/cache"
	"ScenarioSim/internal/services/marketdata"
	"ScenarioSim/internal/services/simulation"
	"ScenarioSim/internal/usecase"
	pkgch "ScenarioSim/pkg/clickhouse"
	"ScenarioSim/pkg/config"
	xhttp "ScenarioSim/pkg/http"
	pkgkafka "ScenarioSim/pkg/kafka"
	applogger "ScenarioSim/pkg/logger"
	"ScenarioSim/pkg/metrics"
	"ScenarioSim/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePriceHistory creates the rolling price-history buffer.
func ProvidePriceHistory(cfg *config.Config) *simulation.PriceHistory {
	return simulation.NewPriceHistory(cfg.Simulation.VolatilityWindow)
}

// ProvideSnapshotCache creates a Redis-backed cache when Redis is enabled,
// otherwise an in-process TTL cache.
func ProvideSnapshotCache(cfg *config.Config) repository.SnapshotCache {
	if cfg.Redis.Enabled {
		return cache.NewRedisSnapshotCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.MarketData.SnapshotTTL)
	}
	return cache.NewMemorySnapshotCache(cfg.MarketData.SnapshotTTL)
}

// ProvideMarketDataProvider creates the HTTP market data provider, or nil
// when no base URL is configured. The engine then runs on fallbacks.
func ProvideMarketDataProvider(cfg *config.Config) domsvc.MarketDataProvider {
	if cfg.MarketData.BaseURL == "" {
		return nil
	}
	return marketdata.NewProvider(
		cfg.MarketData.BaseURL,
		cfg.MarketData.SpotPath,
		cfg.MarketData.MetricsPath,
		cfg.MarketData.Timeout,
	)
}

// ProvidePriceCollector creates the live feed collector, or nil when the
// feed is disabled.
func ProvidePriceCollector(
	cfg *config.Config,
	history *simulation.PriceHistory,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.PriceCollector {
	if !cfg.MarketData.Feed.Enabled {
		return nil
	}
	stream := marketdata.NewStream(
		cfg.MarketData.Feed.APIKey,
		cfg.MarketData.Feed.WebSocketURL,
		cfg.MarketData.Feed.Symbols,
		cfg.MarketData.Feed.ReconnectDelay,
		cfg.MarketData.Feed.PingInterval,
		logger,
	)
	return usecase.NewPriceCollector(stream, history, m)
}

// ProvideResultStore creates a ClickHouse result store, or nil when disabled.
func ProvideResultStore(cfg *config.Config) (repository.ResultStore, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return internalrepo.NewCHResultStore(client), nil
}

// ProvideResultPublisher creates a Kafka result publisher, or nil when disabled.
func ProvideResultPublisher(cfg *config.Config) (repository.ResultPublisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideSimulator creates the simulation orchestrator.
func ProvideSimulator(
	provider domsvc.MarketDataProvider,
	snapCache repository.SnapshotCache,
	history *simulation.PriceHistory,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.Simulator {
	return usecase.NewSimulator(provider, snapCache, history, m, logger)
}

// ProvideResultRecorder creates the async result sink.
func ProvideResultRecorder(
	store repository.ResultStore,
	pub repository.ResultPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.ResultRecorder {
	return usecase.NewResultRecorder(store, pub, m, logger, cfg.Simulation.SinkTimeout)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
	logger *applogger.Logger,
	sim *usecase.Simulator,
	recorder *usecase.ResultRecorder,
) xhttp.Handler {
	return api.NewSimulationEchoHandler(logger, sim, recorder)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.PriceCollector,
	store repository.ResultStore,
	pub repository.ResultPublisher,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, logger, collector, store, pub, handler)
}

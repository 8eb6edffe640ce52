package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Simulation struct {
		TimeHorizonMinutes        int           `yaml:"time_horizon_minutes"`
		BranchCount               int           `yaml:"branch_count"`
		PredictionIntervalMinutes int           `yaml:"prediction_interval_minutes"`
		VolatilityWindow          int           `yaml:"volatility_window"`
		MonteCarloIterations      int           `yaml:"monte_carlo_iterations"`
		SinkTimeout               time.Duration `yaml:"sink_timeout"`
	} `yaml:"simulation"`
	MarketData struct {
		BaseURL      string        `yaml:"base_url"`
		SpotPath     string        `yaml:"spot_path"`
		MetricsPath  string        `yaml:"metrics_path"`
		Timeout      time.Duration `yaml:"timeout"`
		SnapshotTTL  time.Duration `yaml:"snapshot_ttl"`
		Feed        struct {
			Enabled        bool          `yaml:"enabled"`
			WebSocketURL   string        `yaml:"websocket_url"`
			APIKey         string        `yaml:"api_key"`
			Symbols        []string      `yaml:"symbols"`
			ReconnectDelay time.Duration `yaml:"reconnect_delay"`
			PingInterval   time.Duration `yaml:"ping_interval"`
		} `yaml:"feed"`
	} `yaml:"market_data"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		BatchSize    int           `yaml:"batch_size"`
		BatchBytes   int           `yaml:"batch_bytes"`
		Linger       time.Duration `yaml:"linger"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled     bool          `yaml:"enabled"`
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKET_DATA_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("FEED_API_KEY"); v != "" {
		c.MarketData.Feed.APIKey = v
	}
	if v := os.Getenv("FEED_SYMBOLS"); v != "" {
		c.MarketData.Feed.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Simulation.TimeHorizonMinutes == 0 {
		c.Simulation.TimeHorizonMinutes = 60
	}
	if c.Simulation.BranchCount == 0 {
		c.Simulation.BranchCount = 5
	}
	if c.Simulation.PredictionIntervalMinutes == 0 {
		c.Simulation.PredictionIntervalMinutes = 20
	}
	if c.Simulation.VolatilityWindow == 0 {
		c.Simulation.VolatilityWindow = 20
	}
	if c.Simulation.MonteCarloIterations == 0 {
		c.Simulation.MonteCarloIterations = 500
	}
	if c.MarketData.SpotPath == "" {
		c.MarketData.SpotPath = "/market/spot"
	}
	if c.MarketData.MetricsPath == "" {
		c.MarketData.MetricsPath = "/onchain/metrics"
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 3 * time.Second
	}
	if c.MarketData.SnapshotTTL == 0 {
		c.MarketData.SnapshotTTL = 30 * time.Second
	}
	if c.MarketData.Feed.ReconnectDelay == 0 {
		c.MarketData.Feed.ReconnectDelay = 2 * time.Second
	}
	if c.MarketData.Feed.PingInterval == 0 {
		c.MarketData.Feed.PingInterval = 15 * time.Second
	}
	if c.Simulation.SinkTimeout == 0 {
		c.Simulation.SinkTimeout = 5 * time.Second
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.ClickHouse.Port == 0 {
		c.ClickHouse.Port = 9000
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Simulation.BranchCount < 1 {
		return fmt.Errorf("simulation.branch_count must be >= 1")
	}
	if c.Simulation.PredictionIntervalMinutes < 1 {
		return fmt.Errorf("simulation.prediction_interval_minutes must be >= 1")
	}
	if c.Simulation.TimeHorizonMinutes < c.Simulation.PredictionIntervalMinutes {
		return fmt.Errorf("simulation.time_horizon_minutes must be >= prediction interval")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers are required when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	if c.MarketData.Feed.Enabled && c.MarketData.Feed.WebSocketURL == "" {
		return fmt.Errorf("market_data.feed.websocket_url is required when the feed is enabled")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.BranchCount != 5 {
		t.Fatalf("default branch count: %d", cfg.Simulation.BranchCount)
	}
	if cfg.Simulation.PredictionIntervalMinutes != 20 {
		t.Fatalf("default interval: %d", cfg.Simulation.PredictionIntervalMinutes)
	}
	if cfg.Simulation.VolatilityWindow != 20 {
		t.Fatalf("default window: %d", cfg.Simulation.VolatilityWindow)
	}
	if cfg.MarketData.SnapshotTTL != 30*time.Second {
		t.Fatalf("default snapshot ttl: %v", cfg.MarketData.SnapshotTTL)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port: %d", cfg.Server.Port)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRejectsEnabledKafkaWithoutBrokers(t *testing.T) {
	path := writeConfig(t, "environment: test\nkafka:\n  enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected kafka validation error")
	}
}

func TestLoadRejectsEnabledClickHouseWithoutHost(t *testing.T) {
	path := writeConfig(t, "environment: test\nclickhouse:\n  enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected clickhouse validation error")
	}
}

func TestLoadRejectsHorizonBelowInterval(t *testing.T) {
	path := writeConfig(t, "environment: test\nsimulation:\n  time_horizon_minutes: 10\n  prediction_interval_minutes: 20\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected horizon validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("MARKET_DATA_URL", "http://md.internal:9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MarketData.BaseURL != "http://md.internal:9000" {
		t.Fatalf("base url override: %q", cfg.MarketData.BaseURL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("broker override: %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Fatalf("redis override: %q", cfg.Redis.Addr)
	}
}

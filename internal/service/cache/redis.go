package cache

import (
	"context"
	"encoding/json"
	"time"

	"ScenarioSim/internal/domain/models"
	"ScenarioSim/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "scenariosim:snapshot"

// RedisSnapshotCache shares the latest market snapshot across instances.
type RedisSnapshotCache struct {
	cli *redis.Client
	ttl time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

var _ repository.SnapshotCache = (*RedisSnapshotCache)(nil)

// NewRedisSnapshotCache creates a Redis-backed snapshot cache.
func NewRedisSnapshotCache(cfg RedisConfig, ttl time.Duration) *RedisSnapshotCache {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return &RedisSnapshotCache{cli: rdb, ttl: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context) (models.MarketSnapshot, bool) {
	b, err := c.cli.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		return models.MarketSnapshot{}, false
	}
	var snap models.MarketSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return models.MarketSnapshot{}, false
	}
	return snap, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, snap models.MarketSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.cli.Set(ctx, snapshotKey, b, c.ttl).Err()
}

// Close closes the underlying Redis client.
func (c *RedisSnapshotCache) Close() error {
	return c.cli.Close()
}

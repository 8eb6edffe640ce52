package cache

import (
	"context"
	"sync"
	"time"

	"ScenarioSim/internal/domain/models"
	"ScenarioSim/internal/domain/repository"
)

// MemorySnapshotCache holds the latest market snapshot in process memory
// with a TTL. An expired entry reads as a miss.
type MemorySnapshotCache struct {
	mu   sync.RWMutex
	snap models.MarketSnapshot
	exp  time.Time
	ttl  time.Duration
}

var _ repository.SnapshotCache = (*MemorySnapshotCache)(nil)

// NewMemorySnapshotCache creates an in-memory snapshot cache.
func NewMemorySnapshotCache(ttl time.Duration) *MemorySnapshotCache {
	return &MemorySnapshotCache{ttl: ttl}
}

func (c *MemorySnapshotCache) Get(ctx context.Context) (models.MarketSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.exp.IsZero() || time.Now().After(c.exp) {
		return models.MarketSnapshot{}, false
	}
	return c.snap, true
}

func (c *MemorySnapshotCache) Set(ctx context.Context, snap models.MarketSnapshot) error {
	c.mu.Lock()
	c.snap = snap
	c.exp = time.Now().Add(c.ttl)
	c.mu.Unlock()
	return nil
}

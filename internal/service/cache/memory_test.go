package cache

import (
	"context"
	"testing"
	"time"

	"ScenarioSim/internal/domain/models"
)

func TestMemorySnapshotCacheRoundTrip(t *testing.T) {
	c := NewMemorySnapshotCache(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx); ok {
		t.Fatalf("empty cache must miss")
	}

	snap := models.MarketSnapshot{Price: 2000, TVL: 1_000_000, Timestamp: time.Now()}
	if err := c.Set(ctx, snap); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(ctx)
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.Price != snap.Price {
		t.Fatalf("price mismatch: %v", got.Price)
	}
}

func TestMemorySnapshotCacheExpires(t *testing.T) {
	c := NewMemorySnapshotCache(10 * time.Millisecond)
	ctx := context.Background()

	if err := c.Set(ctx, models.MarketSnapshot{Price: 2000}); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(ctx); ok {
		t.Fatalf("expired entry must miss")
	}
}

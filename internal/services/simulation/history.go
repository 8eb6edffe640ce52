package simulation

import (
	"sync"
	"time"

	"ScenarioSim/internal/domain/models"
)

// DefaultVolatilityWindow is the rolling window used for volatility
// estimation when none is configured.
const DefaultVolatilityWindow = 20

// PriceHistory is the only cross-call mutable state of the engine: a bounded
// rolling buffer of observed prices feeding the volatility estimator. The
// buffer grows to at most 2x window and is trimmed back to window, evicting
// the oldest samples first. Safe for one writer and many readers.
type PriceHistory struct {
	mu      sync.RWMutex
	window  int
	samples []models.PricePoint
}

// NewPriceHistory creates a history buffer with the given window. A window
// below 2 falls back to DefaultVolatilityWindow.
func NewPriceHistory(window int) *PriceHistory {
	if window < 2 {
		window = DefaultVolatilityWindow
	}
	return &PriceHistory{
		window:  window,
		samples: make([]models.PricePoint, 0, 2*window),
	}
}

// Record appends an observed price. Non-positive prices are ignored.
func (h *PriceHistory) Record(ts time.Time, price float64) {
	if price <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples = append(h.samples, models.PricePoint{Timestamp: ts, Price: price})
	if len(h.samples) > 2*h.window {
		h.samples = h.samples[len(h.samples)-h.window:]
	}
}

// Volatility estimates annualized volatility from the current buffer.
func (h *PriceHistory) Volatility() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return EstimateVolatility(h.samples)
}

// Len returns the current sample count.
func (h *PriceHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

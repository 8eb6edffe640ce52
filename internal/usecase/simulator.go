package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ScenarioSim/internal/domain/models"
	"ScenarioSim/internal/domain/repository"
	domsvc "ScenarioSim/internal/domain/service"
	"ScenarioSim/internal/services/simulation"
	applogger "ScenarioSim/pkg/logger"

	"github.com/google/uuid"
)

// Simulator orchestrates scenario simulation runs: it obtains a market
// snapshot, builds N independent branches concurrently, scores and sorts
// them. All entities are created fresh per run; the only cross-call state
// is the injected price history buffer.
type Simulator struct {
	provider domsvc.MarketDataProvider
	cache    repository.SnapshotCache
	history  *simulation.PriceHistory
	metrics  repository.Metrics
	logger   *applogger.Logger

	seedBase atomic.Int64
	seedSeq  atomic.Int64

	mu       sync.RWMutex
	lastSnap *models.MarketSnapshot
}

// NewSimulator creates a simulation orchestrator. provider, cache, metrics
// and logger may be nil; the engine then runs on overrides and fallbacks.
func NewSimulator(provider domsvc.MarketDataProvider, cache repository.SnapshotCache, history *simulation.PriceHistory, metrics repository.Metrics, logger *applogger.Logger) *Simulator {
	if history == nil {
		history = simulation.NewPriceHistory(simulation.DefaultVolatilityWindow)
	}
	s := &Simulator{
		provider: provider,
		cache:    cache,
		history:  history,
		metrics:  metrics,
		logger:   logger,
	}
	s.seedBase.Store(time.Now().UnixNano())
	return s
}

// SetSeed pins the PRNG seed base so repeated runs draw reproducible
// branch-local random sequences.
func (s *Simulator) SetSeed(seed int64) {
	s.seedBase.Store(seed)
	s.seedSeq.Store(0)
}

func (s *Simulator) nextSeed() int64 {
	return s.seedBase.Load() + s.seedSeq.Add(1)*7919
}

// RunSimulation builds, scores and classifies cfg.BranchCount branches over
// one market snapshot and returns them sorted descending by EV score.
// Snapshot acquisition is the only step that can block; once a snapshot is
// in hand the computation always completes.
func (s *Simulator) RunSimulation(ctx context.Context, cfg models.SimulationConfig, override *models.MarketSnapshot) ([]models.SimulationBranch, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	snap := s.obtainSnapshot(ctx, override)
	simulationID := uuid.NewString()

	branches := make([]models.SimulationBranch, cfg.BranchCount)
	var wg sync.WaitGroup
	for i := 0; i < cfg.BranchCount; i++ {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()
			sampler := simulation.NewNormalSampler(seed)
			b := simulation.BuildBranch(simulationID, idx, cfg, snap, sampler)
			simulation.ScoreBranch(&b, snap.Price)
			b.Outcome = simulation.ClassifyOutcome(b.FinalEV(), b.AvgVolatility())
			branches[idx] = b
		}(i, s.nextSeed())
	}
	wg.Wait()

	sort.SliceStable(branches, func(i, j int) bool {
		return branches[i].EVScore > branches[j].EVScore
	})

	if s.metrics != nil {
		s.metrics.RecordSimulation("single")
		s.metrics.RecordBestEV(branches[0].EVScore)
		s.metrics.RecordLatency("run_simulation", time.Since(start).Seconds())
	}
	if s.logger != nil {
		s.logger.Info("simulation complete",
			applogger.String("simulation_id", simulationID),
			applogger.Int("branches", len(branches)),
			applogger.Float64("best_ev", branches[0].EVScore),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return branches, nil
}

// SelectBestBranch returns the branch with the maximum EV score. Ties break
// to the first encountered in input order.
func (s *Simulator) SelectBestBranch(branches []models.SimulationBranch) (models.SimulationBranch, error) {
	if len(branches) == 0 {
		return models.SimulationBranch{}, fmt.Errorf("select best branch: empty branch list")
	}
	best := branches[0]
	for _, b := range branches[1:] {
		if b.EVScore > best.EVScore {
			best = b
		}
	}
	return best, nil
}

// LastSnapshot returns the snapshot used by the most recent run.
func (s *Simulator) LastSnapshot() (models.MarketSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastSnap == nil {
		return models.MarketSnapshot{}, false
	}
	return *s.lastSnap, true
}

// History exposes the rolling price buffer so a live feed can record into it.
func (s *Simulator) History() *simulation.PriceHistory {
	return s.history
}

// obtainSnapshot resolves the market snapshot for one run. Provider failure
// is recovered locally with the fallback snapshot and never surfaced.
func (s *Simulator) obtainSnapshot(ctx context.Context, override *models.MarketSnapshot) models.MarketSnapshot {
	snap, ok := s.resolveSnapshot(ctx, override)
	if !ok {
		if s.logger != nil {
			s.logger.Warn("market data unavailable, using fallback snapshot")
		}
		if s.metrics != nil {
			s.metrics.RecordError("market_data")
		}
		snap = models.FallbackSnapshot(time.Now())
	}
	snap.Volatility = simulation.ClampVolatility(snap.Volatility)

	s.mu.Lock()
	s.lastSnap = &snap
	s.mu.Unlock()
	return snap
}

func (s *Simulator) resolveSnapshot(ctx context.Context, override *models.MarketSnapshot) (models.MarketSnapshot, bool) {
	if override != nil {
		snap := *override
		if snap.Timestamp.IsZero() {
			snap.Timestamp = time.Now()
		}
		return snap, snap.Price > 0
	}

	if s.cache != nil {
		if snap, ok := s.cache.Get(ctx); ok && snap.Price > 0 {
			return snap, true
		}
	}
	if s.provider == nil {
		return models.MarketSnapshot{}, false
	}

	price, err := s.provider.GetSpotPrice(ctx)
	if err != nil || price <= 0 {
		return models.MarketSnapshot{}, false
	}
	metrics, err := s.provider.GetOnChainMetrics(ctx)
	if err != nil {
		return models.MarketSnapshot{}, false
	}

	now := time.Now()
	s.history.Record(now, price)
	snap := models.MarketSnapshot{
		Price:      price,
		TVL:        metrics.TVL,
		Yield:      metrics.APY,
		GasPrice:   metrics.GasPrice,
		Volatility: s.history.Volatility(),
		Timestamp:  now,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil && s.logger != nil {
			s.logger.Warn("snapshot cache set failed", applogger.Error(err))
		}
	}
	return snap, true
}

func validateConfig(cfg models.SimulationConfig) error {
	if cfg.BranchCount < 1 {
		return fmt.Errorf("simulation config: branch count must be >= 1, got %d", cfg.BranchCount)
	}
	if cfg.PredictionIntervalMinutes < 1 {
		return fmt.Errorf("simulation config: prediction interval must be >= 1 minute, got %d", cfg.PredictionIntervalMinutes)
	}
	if cfg.Intervals() < 1 {
		return fmt.Errorf("simulation config: time horizon %dm yields no prediction steps", cfg.TimeHorizonMinutes)
	}
	return nil
}

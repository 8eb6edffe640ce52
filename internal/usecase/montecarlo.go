package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"ScenarioSim/internal/domain/models"
	"ScenarioSim/internal/services/simulation"
	applogger "ScenarioSim/pkg/logger"
)

// ErrNoSamples is returned when a Monte Carlo aggregation ends up with an
// empty EV sample set; the guard keeps the summary free of NaNs.
var ErrNoSamples = errors.New("monte carlo: no valid samples")

// RunMonteCarlo repeats single-branch simulation runs to build an EV
// probability distribution with a 95% confidence interval. The snapshot is
// resolved once and reused across iterations so the provider is hit at most
// once per aggregation.
func (s *Simulator) RunMonteCarlo(ctx context.Context, cfg models.SimulationConfig, iterations int) (models.MonteCarloResult, error) {
	if iterations < 1 {
		return models.MonteCarloResult{}, fmt.Errorf("monte carlo: iterations must be >= 1, got %d", iterations)
	}
	cfg.BranchCount = 1
	if err := validateConfig(cfg); err != nil {
		return models.MonteCarloResult{}, err
	}

	start := time.Now()
	snap := s.obtainSnapshot(ctx, nil)

	evScores := make([]float64, iterations)
	successes := make([]bool, iterations)

	workers := runtime.GOMAXPROCS(0)
	if workers > iterations {
		workers = iterations
	}
	jobs := make(chan int, iterations)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			sampler := simulation.NewNormalSampler(seed)
			for i := range jobs {
				b := simulation.BuildBranch("", 0, cfg, snap, sampler)
				simulation.ScoreBranch(&b, snap.Price)
				evScores[i] = b.EVScore
				successes[i] = simulation.ClassifyOutcome(b.FinalEV(), b.AvgVolatility()) == models.OutcomeSuccess
			}
		}(s.nextSeed())
	}
	for i := 0; i < iterations; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res, err := summarizeEVSample(evScores, successes)
	if err != nil {
		return models.MonteCarloResult{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordSimulation("monte_carlo")
		s.metrics.RecordLatency("run_monte_carlo", time.Since(start).Seconds())
	}
	if s.logger != nil {
		s.logger.Info("monte carlo complete",
			applogger.Int("iterations", iterations),
			applogger.Float64("mean_ev", res.MeanEV),
			applogger.Float64("success_probability", res.SuccessProbability),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return res, nil
}

// summarizeEVSample aggregates the collected EV sample: arithmetic mean,
// sample standard deviation (n-1) and the values at the 2.5th and 97.5th
// percentiles of the sorted sample.
func summarizeEVSample(evScores []float64, successes []bool) (models.MonteCarloResult, error) {
	n := len(evScores)
	if n == 0 {
		return models.MonteCarloResult{}, ErrNoSamples
	}

	mean := 0.0
	succ := 0
	for i, ev := range evScores {
		mean += ev
		if successes[i] {
			succ++
		}
	}
	mean /= float64(n)

	std := 0.0
	if n > 1 {
		variance := 0.0
		for _, ev := range evScores {
			d := ev - mean
			variance += d * d
		}
		std = math.Sqrt(variance / float64(n-1))
	}

	sorted := make([]float64, n)
	copy(sorted, evScores)
	sort.Float64s(sorted)
	lo := int(math.Floor(float64(n) * 0.025))
	hi := int(math.Floor(float64(n) * 0.975))
	if hi >= n {
		hi = n - 1
	}

	return models.MonteCarloResult{
		Iterations:         n,
		MeanEV:             mean,
		StdEV:              std,
		SuccessProbability: float64(succ) / float64(n),
		ConfidenceInterval: [2]float64{sorted[lo], sorted[hi]},
	}, nil
}

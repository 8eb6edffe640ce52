package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ScenarioSim/internal/domain/models"
	domrepo "ScenarioSim/internal/domain/repository"
	pkgch "ScenarioSim/pkg/clickhouse"
)

// CHResultStore persists simulation results in ClickHouse.
type CHResultStore struct {
	client *pkgch.Client
	db     *sql.DB
}

var _ domrepo.ResultStore = (*CHResultStore)(nil)

// NewCHResultStore creates a ClickHouse-backed result store.
func NewCHResultStore(client *pkgch.Client) *CHResultStore {
	return &CHResultStore{client: client, db: client.DB()}
}

// Init creates result tables if they do not exist.
func (s *CHResultStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS simulation_branches (
			created_at DateTime DEFAULT now(),
			simulation_id String,
			branch_id String,
			outcome LowCardinality(String),
			ev_score Float64,
			steps UInt16
		) ENGINE = MergeTree()
		ORDER BY (simulation_id, branch_id)`,
		`CREATE TABLE IF NOT EXISTS simulation_steps (
			simulation_id String,
			branch_id String,
			ts DateTime,
			price Float64,
			volatility Float64,
			tvl Float64,
			yield Float64,
			peg_deviation_a Float64,
			peg_deviation_b Float64,
			ev Float64
		) ENGINE = MergeTree()
		ORDER BY (simulation_id, branch_id, ts)`,
		`CREATE TABLE IF NOT EXISTS monte_carlo_runs (
			created_at DateTime DEFAULT now(),
			simulation_id String,
			iterations UInt32,
			mean_ev Float64,
			std_ev Float64,
			success_probability Float64,
			ci_low Float64,
			ci_high Float64
		) ENGINE = MergeTree()
		ORDER BY (simulation_id, created_at)`,
	}
	return s.client.InitSchema(ctx, stmts)
}

// StoreBranches writes branch summaries and their steps.
func (s *CHResultStore) StoreBranches(ctx context.Context, simulationID string, branches []models.SimulationBranch) error {
	if len(branches) == 0 {
		return nil
	}

	bvals := make([]string, 0, len(branches))
	bargs := make([]interface{}, 0, len(branches)*5)
	for _, b := range branches {
		bvals = append(bvals, "(?, ?, ?, ?, ?)")
		bargs = append(bargs, simulationID, b.ID, string(b.Outcome), b.EVScore, uint16(len(b.Predictions)))
	}
	q := "INSERT INTO simulation_branches (simulation_id, branch_id, outcome, ev_score, steps) VALUES " + strings.Join(bvals, ",")
	if _, err := s.db.ExecContext(ctx, q, bargs...); err != nil {
		return fmt.Errorf("store branches: %w", err)
	}

	svals := make([]string, 0, len(branches)*8)
	sargs := make([]interface{}, 0, len(branches)*8*10)
	for _, b := range branches {
		for _, p := range b.Predictions {
			svals = append(svals, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			sargs = append(sargs,
				simulationID,
				b.ID,
				p.Timestamp,
				p.Price,
				p.Volatility,
				p.TVL,
				p.Yield,
				p.PegDeviationA,
				p.PegDeviationB,
				p.EV,
			)
		}
	}
	if len(svals) == 0 {
		return nil
	}
	q = "INSERT INTO simulation_steps (simulation_id, branch_id, ts, price, volatility, tvl, yield, peg_deviation_a, peg_deviation_b, ev) VALUES " + strings.Join(svals, ",")
	if _, err := s.db.ExecContext(ctx, q, sargs...); err != nil {
		return fmt.Errorf("store steps: %w", err)
	}
	return nil
}

// StoreMonteCarlo writes one aggregated Monte Carlo run.
func (s *CHResultStore) StoreMonteCarlo(ctx context.Context, simulationID string, res models.MonteCarloResult) error {
	const q = `INSERT INTO monte_carlo_runs
		(created_at, simulation_id, iterations, mean_ev, std_ev, success_probability, ci_low, ci_high)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		time.Now().UTC(),
		simulationID,
		uint32(res.Iterations),
		res.MeanEV,
		res.StdEV,
		res.SuccessProbability,
		res.ConfidenceInterval[0],
		res.ConfidenceInterval[1],
	)
	if err != nil {
		return fmt.Errorf("store monte carlo run: %w", err)
	}
	return nil
}

// Health pings the underlying connection.
func (s *CHResultStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close closes the connection pool.
func (s *CHResultStore) Close() error {
	return s.client.Close()
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ScenarioSim/internal/domain/models"
)

type fakeStore struct {
	mu        sync.Mutex
	branches  int
	mcRuns    int
	failNext  bool
	storeDone chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{storeDone: make(chan struct{}, 8)}
}

func (f *fakeStore) Init(ctx context.Context) error   { return nil }
func (f *fakeStore) Health(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                     { return nil }

func (f *fakeStore) StoreBranches(ctx context.Context, simulationID string, branches []models.SimulationBranch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.storeDone <- struct{}{} }()
	if f.failNext {
		return errors.New("insert failed")
	}
	f.branches += len(branches)
	return nil
}

func (f *fakeStore) StoreMonteCarlo(ctx context.Context, simulationID string, res models.MonteCarloResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.storeDone <- struct{}{} }()
	if f.failNext {
		return errors.New("insert failed")
	}
	f.mcRuns++
	return nil
}

type countingMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func (m *countingMetrics) RecordSimulation(mode string) {}
func (m *countingMetrics) RecordBestEV(ev float64)      {}
func (m *countingMetrics) RecordLatency(op string, seconds float64) {
}
func (m *countingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errors == nil {
		m.errors = make(map[string]int)
	}
	m.errors[kind]++
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("sink was not invoked")
	}
}

func TestRecordBranchesReachesStore(t *testing.T) {
	store := newFakeStore()
	rec := NewResultRecorder(store, nil, nil, nil, time.Second)

	rec.RecordBranches("sim-1", []models.SimulationBranch{{ID: "a"}, {ID: "b"}})
	waitFor(t, store.storeDone)

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.branches != 2 {
		t.Fatalf("expected 2 branches stored, got %d", store.branches)
	}
}

func TestRecordMonteCarloReachesStore(t *testing.T) {
	store := newFakeStore()
	rec := NewResultRecorder(store, nil, nil, nil, time.Second)

	rec.RecordMonteCarlo("sim-1", models.MonteCarloResult{Iterations: 10})
	waitFor(t, store.storeDone)

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.mcRuns != 1 {
		t.Fatalf("expected 1 run stored, got %d", store.mcRuns)
	}
}

func TestRecordSinkFailureCountedNotSurfaced(t *testing.T) {
	store := newFakeStore()
	store.failNext = true
	m := &countingMetrics{}
	rec := NewResultRecorder(store, nil, m, nil, time.Second)

	rec.RecordBranches("sim-1", []models.SimulationBranch{{ID: "a"}})
	waitFor(t, store.storeDone)

	// Error reporting happens just after the store call returns.
	deadline := time.Now().Add(2 * time.Second)
	for {
		m.mu.Lock()
		n := m.errors["result_sink"]
		m.mu.Unlock()
		if n == 1 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("sink error not recorded, got %d", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRecordNoSinksIsNoop(t *testing.T) {
	rec := NewResultRecorder(nil, nil, nil, nil, time.Second)
	// Must not panic or spawn anything.
	rec.RecordBranches("sim-1", nil)
	rec.RecordMonteCarlo("sim-1", models.MonteCarloResult{})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	simulationsTotal *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	bestEV           prometheus.Gauge
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		simulationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scenariosim_simulations_total",
				Help: "Total number of simulation runs by mode",
			},
			[]string{"mode"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scenariosim_errors_total",
				Help: "Total number of recovered errors by type",
			},
			[]string{"type"},
		),
		bestEV: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "scenariosim_best_branch_ev",
				Help: "EV score of the best branch from the latest run",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scenariosim_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSimulation records a completed simulation run.
func (r *Recorder) RecordSimulation(mode string) {
	r.simulationsTotal.WithLabelValues(mode).Inc()
}

// RecordError records a recovered error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordBestEV records the best branch EV of the latest run.
func (r *Recorder) RecordBestEV(ev float64) {
	r.bestEV.Set(ev)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

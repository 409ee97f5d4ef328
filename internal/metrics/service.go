package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MutationsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_mutations_applied_total",
			Help: "The total number of tournament mutations applied to the in-memory view.",
		}, []string{"op"}),
		AdapterWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_adapter_write_failures_total",
			Help: "The total number of durable writes that failed after an optimistic apply.",
		}, []string{"op"}),
		StandingsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_standings_computed_total",
			Help: "The total number of standings computations.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorekeeper_standings_compute_duration_seconds",
			Help:    "The duration of individual standings computations.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scorekeeper_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MutationsApplied,
		s.AdapterWriteFailures,
		s.StandingsComputed,
		s.ComputeDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMutationsApplied(op string) {
	s.MutationsApplied.WithLabelValues(op).Inc()
}

func (s *Service) IncAdapterWriteFailures(op string) {
	s.AdapterWriteFailures.WithLabelValues(op).Inc()
}

func (s *Service) IncStandingsComputed() {
	s.StandingsComputed.Inc()
}

func (s *Service) ObserveComputeDuration(seconds float64) {
	s.ComputeDuration.Observe(seconds)
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}

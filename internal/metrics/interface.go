package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the engine from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMutationsApplied(op string)
	IncAdapterWriteFailures(op string)
	IncStandingsComputed()
	ObserveComputeDuration(seconds float64)
	SetStartupTime(seconds float64)
}

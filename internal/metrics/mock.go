package metrics

import "sync"

// Mock is a no-op Metrics implementation that records calls for tests.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	MutationsAppliedCalls     []string
	AdapterWriteFailuresCalls []string
	StandingsComputedCount    int
	ComputeDurations          []float64
	StartupTimes              []float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncMutationsApplied(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MutationsAppliedCalls = append(m.MutationsAppliedCalls, op)
}

func (m *Mock) IncAdapterWriteFailures(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AdapterWriteFailuresCalls = append(m.AdapterWriteFailuresCalls, op)
}

func (m *Mock) IncStandingsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsComputedCount++
}

func (m *Mock) ObserveComputeDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ComputeDurations = append(m.ComputeDurations, seconds)
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, seconds)
}

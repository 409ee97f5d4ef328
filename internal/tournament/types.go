package tournament

import (
	"sync"

	"github.com/mborch/scorekeeper/internal/metrics"
	"github.com/mborch/scorekeeper/internal/scoring"
)

// Session owns the authoritative in-memory view of one tournament and
// routes every mutation through exactly one Adapter, chosen at
// construction. Mutations are applied to the view optimistically; a failed
// durable write is surfaced but never rolled back.
type Session struct {
	mode    StorageMode
	adapter Adapter
	metrics metrics.Metrics

	mu         sync.Mutex
	teams      []scoring.Team
	matchCount int
}

// NewSession creates a session bound to the given mode and adapter with a
// single unscored match.
func NewSession(mode StorageMode, adapter Adapter, metricsSvc metrics.Metrics) *Session {
	return &Session{
		mode:       mode,
		adapter:    adapter,
		metrics:    metricsSvc,
		matchCount: 1,
	}
}

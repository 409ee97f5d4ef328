package http

import (
	"net/http"

	"github.com/mborch/scorekeeper/internal/config"
	"github.com/mborch/scorekeeper/internal/metrics"
	"github.com/mborch/scorekeeper/internal/tournament"
)

// Server routes the admin HTTP surface to a single tournament session.
type Server struct {
	Session        *tournament.Session
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

package http

import (
	"net/http"

	"github.com/mborch/scorekeeper/internal/config"
	"github.com/mborch/scorekeeper/internal/metrics"
	"github.com/mborch/scorekeeper/internal/tournament"
)

func NewServer(session *tournament.Session, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Session:        session,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an
	// authentication middleware for the admin surface.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/teams", Chain(s.ListTeamsHandler(), paramsMiddleware))
	s.Router.Handle("/teams/add", Chain(s.AddTeamHandler(), paramsMiddleware))
	s.Router.Handle("/teams/remove", Chain(s.RemoveTeamHandler(), paramsMiddleware))
	s.Router.Handle("/score", Chain(s.UpdateScoreHandler(), paramsMiddleware))
	s.Router.Handle("/matches/add", Chain(s.AddMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/remove", Chain(s.RemoveMatchHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearHandler(), paramsMiddleware))
	s.Router.Handle("/reload", Chain(s.ReloadHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

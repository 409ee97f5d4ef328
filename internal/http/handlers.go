package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mborch/scorekeeper/internal/scoring"
	"github.com/mborch/scorekeeper/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"mode":        s.Session.Mode().String(),
			"match_count": s.Session.MatchCount(),
			"teams":       s.Session.Teams(),
		})
	}
}

func (s *Server) AddTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		team, err := s.Session.AddTeam(r.Context(), name)
		if err != nil && !isStaleViewError(err) {
			writeError(w, err)
			return
		}
		if err != nil {
			// The team is in the view but the durable write failed; tell
			// the admin instead of silently dropping their input.
			writeStale(w, err)
			return
		}
		writeJSON(w, team)
	}
}

func (s *Server) RemoveTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("teamID")
		s.mutation(w, s.Session.RemoveTeam(r.Context(), teamID), "team removed")
	}
}

func (s *Server) UpdateScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		field, err := tournament.ParseScoreField(q.Get("field"))
		if err != nil {
			writeError(w, err)
			return
		}
		matchIndex, err := strconv.Atoi(q.Get("match"))
		if err != nil {
			writeError(w, tournament.ErrMatchIndexOutOfRange)
			return
		}
		// Score values come from admin form inputs; parse them leniently
		// except placement, which the session range-checks itself.
		value, err := strconv.Atoi(q.Get("value"))
		if err != nil {
			value = 0
		}

		s.mutation(w, s.Session.UpdateScore(r.Context(), q.Get("teamID"), matchIndex, field, value), "score updated")
	}
}

func (s *Server) AddMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mutation(w, s.Session.AddMatch(r.Context()), "match added")
	}
}

func (s *Server) RemoveMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mutation(w, s.Session.RemoveMatch(r.Context()), "match removed")
	}
}

func (s *Server) ClearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear the tournament")
		s.mutation(w, s.Session.ClearAll(r.Context()), "tournament cleared")
	}
}

func (s *Server) ReloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.Load(r.Context()); err != nil {
			http.Error(w, "Failed to reload tournament", http.StatusBadGateway)
			log.Error("Failed to reload tournament", "error", err)
			return
		}
		writeJSON(w, map[string]any{
			"match_count": s.Session.MatchCount(),
			"teams":       s.Session.Teams(),
		})
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := rulesFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, s.Session.Standings(rules))
	}
}

// rulesFromQuery builds a rule set from either ?preset=name or the manual
// ?kill_points= and ?placement_points=12,9,8 parameters. Manual values are
// coerced, not validated, mirroring the admin form behavior.
func rulesFromQuery(r *http.Request) (scoring.RuleSet, error) {
	q := r.URL.Query()
	if preset := q.Get("preset"); preset != "" {
		return scoring.Preset(preset)
	}

	var placementPoints []int
	if raw := q.Get("placement_points"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			placementPoints = append(placementPoints, scoring.ParsePoints(strings.TrimSpace(part)))
		}
	}
	if len(placementPoints) == 0 && q.Get("kill_points") == "" {
		// No rules supplied at all: default to the freefire table.
		return scoring.Preset("freefire")
	}
	return scoring.NewRuleSet(scoring.ParsePoints(q.Get("kill_points")), placementPoints), nil
}

// mutation writes the canonical response for a session mutation: the
// validation failures map to 400, failed durable writes to 502 with a
// stale-view hint, success to a small JSON ack.
func (s *Server) mutation(w http.ResponseWriter, err error, ok string) {
	if err == nil {
		writeJSON(w, map[string]string{"status": ok})
		return
	}
	if isStaleViewError(err) {
		writeStale(w, err)
		return
	}
	writeError(w, err)
}

func isStaleViewError(err error) bool {
	var writeErr *tournament.WriteError
	var partialErr *tournament.PartialClearError
	return errors.As(err, &writeErr) || errors.As(err, &partialErr)
}

func writeStale(w http.ResponseWriter, err error) {
	log.Error("Durable write failed, view may be stale", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	if encErr := json.NewEncoder(w).Encode(map[string]any{
		"error":      err.Error(),
		"view_stale": true,
		"hint":       "call /reload to resynchronize with the store",
	}); encErr != nil {
		log.Error("Failed to write response", "error", encErr)
	}
}

func writeError(w http.ResponseWriter, err error) {
	log.Error("Mutation rejected", "error", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

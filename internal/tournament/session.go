package tournament

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mborch/scorekeeper/internal/scoring"
)

// Mode returns the storage mode the session was constructed with.
func (s *Session) Mode() StorageMode { return s.mode }

// MatchCount returns the current number of matches.
func (s *Session) MatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchCount
}

// Teams returns a copy of the in-memory view.
func (s *Session) Teams() []scoring.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTeams(s.teams)
}

// Load replaces the in-memory view with the store's state. In local mode
// the adapter treats corrupt or absent data as an empty tournament; in
// remote mode a read failure is blocking and leaves the view untouched,
// because an unreachable shared store cannot be assumed empty.
func (s *Session) Load(ctx context.Context) error {
	teams, matchCount, err := s.adapter.Load(ctx)
	if err != nil {
		log.Error("Failed to load tournament", "mode", s.mode.String(), "error", err)
		return &ReadError{Err: err}
	}
	if matchCount < 1 {
		matchCount = 1
	}
	for i := range teams {
		teams[i].MatchScores = scoring.NormalizeScores(teams[i].MatchScores, matchCount)
	}

	s.mu.Lock()
	s.teams = teams
	s.matchCount = matchCount
	s.mu.Unlock()

	log.Info("Loaded tournament", "mode", s.mode.String(), "teams", len(teams), "matchCount", matchCount)
	return nil
}

// AddTeam creates a team with neutral scores for every match. The id is
// assigned and the team is visible in the view before the durable write is
// dispatched, and it stays there even when that write fails.
func (s *Session) AddTeam(ctx context.Context, name string) (scoring.Team, error) {
	if name == "" {
		return scoring.Team{}, ErrTeamNameRequired
	}

	s.mu.Lock()
	team := scoring.Team{
		ID:          uuid.NewString(),
		Name:        name,
		MatchScores: scoring.NormalizeScores(nil, s.matchCount),
	}
	s.teams = append(s.teams, team)
	s.mu.Unlock()
	s.metrics.IncMutationsApplied("add_team")

	if err := s.adapter.CreateTeam(ctx, team); err != nil {
		s.metrics.IncAdapterWriteFailures("add_team")
		log.Error("Team kept in view but durable write failed", "teamID", team.ID, "error", err)
		return team, &WriteError{Op: "add_team", Err: err}
	}
	log.Info("Added team", "teamID", team.ID, "name", name)
	return team, nil
}

// UpdateScore sets a single leaf value of one team's match score. The field
// is a last-writer-wins leaf, so rapid-fire edits racing on the adapter are
// tolerated.
func (s *Session) UpdateScore(ctx context.Context, teamID string, matchIndex int, field ScoreField, value int) error {
	if _, err := ParseScoreField(string(field)); err != nil {
		return err
	}
	if field == FieldPlacement && (value < 1 || value > scoring.MaxPlacement) {
		return ErrPlacementOutOfRange
	}
	if field == FieldKills && value < 0 {
		// Form input is lenient: a negative kill count means someone
		// fat-fingered the field, not a penalty.
		value = 0
	}

	s.mu.Lock()
	if matchIndex < 0 || matchIndex >= s.matchCount {
		s.mu.Unlock()
		return ErrMatchIndexOutOfRange
	}
	team := s.findTeamLocked(teamID)
	if team == nil {
		s.mu.Unlock()
		return ErrTeamNotFound
	}
	applyScoreField(&team.MatchScores[matchIndex], field, value)
	s.mu.Unlock()
	s.metrics.IncMutationsApplied("update_score")

	if err := s.adapter.UpdateMatchScore(ctx, teamID, matchIndex, field, value); err != nil {
		s.metrics.IncAdapterWriteFailures("update_score")
		log.Error("Score updated in view but durable write failed",
			"teamID", teamID, "match", matchIndex, "field", field, "error", err)
		return &WriteError{Op: "update_score", Err: err}
	}
	return nil
}

// RemoveTeam deletes a team from the view and the store.
func (s *Session) RemoveTeam(ctx context.Context, teamID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.teams {
		if s.teams[i].ID == teamID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return ErrTeamNotFound
	}
	s.teams = append(s.teams[:idx], s.teams[idx+1:]...)
	s.mu.Unlock()
	s.metrics.IncMutationsApplied("remove_team")

	if err := s.adapter.DeleteTeam(ctx, teamID); err != nil {
		s.metrics.IncAdapterWriteFailures("remove_team")
		log.Error("Team removed from view but durable delete failed", "teamID", teamID, "error", err)
		return &WriteError{Op: "remove_team", Err: err}
	}
	log.Info("Removed team", "teamID", teamID)
	return nil
}

// AddMatch grows the match count by one and pads every team with a neutral
// score.
func (s *Session) AddMatch(ctx context.Context) error {
	s.mu.Lock()
	s.matchCount++
	newCount := s.matchCount
	for i := range s.teams {
		s.teams[i].MatchScores = scoring.NormalizeScores(s.teams[i].MatchScores, newCount)
	}
	s.mu.Unlock()
	s.metrics.IncMutationsApplied("add_match")

	return s.setMatchCount(ctx, "add_match", newCount)
}

// RemoveMatch shrinks the match count by one, dropping the last match's
// scores for every team. A tournament always keeps at least one match.
func (s *Session) RemoveMatch(ctx context.Context) error {
	s.mu.Lock()
	if s.matchCount <= 1 {
		s.mu.Unlock()
		return ErrMinMatchCount
	}
	s.matchCount--
	newCount := s.matchCount
	for i := range s.teams {
		s.teams[i].MatchScores = scoring.NormalizeScores(s.teams[i].MatchScores, newCount)
	}
	s.mu.Unlock()
	s.metrics.IncMutationsApplied("remove_match")

	return s.setMatchCount(ctx, "remove_match", newCount)
}

func (s *Session) setMatchCount(ctx context.Context, op string, matchCount int) error {
	if err := s.adapter.SetMatchCount(ctx, matchCount); err != nil {
		s.metrics.IncAdapterWriteFailures(op)
		log.Error("Match count changed in view but durable write failed",
			"matchCount", matchCount, "error", err)
		return &WriteError{Op: op, Err: err}
	}
	log.Info("Match count changed", "matchCount", matchCount)
	return nil
}

// ClearAll empties the view and asks the adapter to delete every team. The
// remote adapter clears best-effort: a *PartialClearError means some teams
// survived in the store and the caller should Load to resynchronize. Any
// other adapter failure means the whole clear may not have landed, which is
// the same stale-view situation every other mutation reports as a
// *WriteError.
func (s *Session) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.teams = nil
	s.mu.Unlock()
	s.metrics.IncMutationsApplied("clear_all")

	if err := s.adapter.ClearAll(ctx); err != nil {
		s.metrics.IncAdapterWriteFailures("clear_all")
		log.Error("View cleared but durable clear failed", "error", err)
		var partial *PartialClearError
		if errors.As(err, &partial) {
			return err
		}
		return &WriteError{Op: "clear_all", Err: err}
	}
	log.Info("Tournament cleared")
	return nil
}

// Standings derives the ranked view of the current teams under the given
// rules. It never mutates session state.
func (s *Session) Standings(rules scoring.RuleSet) []scoring.ComputedStanding {
	start := time.Now()
	teams := s.Teams()
	standings := scoring.Compute(rules, teams)
	s.metrics.IncStandingsComputed()
	s.metrics.ObserveComputeDuration(time.Since(start).Seconds())
	return standings
}

// findTeamLocked returns a pointer into the view; the caller holds s.mu.
func (s *Session) findTeamLocked(teamID string) *scoring.Team {
	for i := range s.teams {
		if s.teams[i].ID == teamID {
			return &s.teams[i]
		}
	}
	return nil
}

func applyScoreField(score *scoring.MatchScore, field ScoreField, value int) {
	switch field {
	case FieldKills:
		score.Kills = value
	case FieldPlacement:
		score.Placement = value
	case FieldBonus:
		score.Bonus = value
	}
}

func copyTeams(teams []scoring.Team) []scoring.Team {
	out := make([]scoring.Team, len(teams))
	for i, team := range teams {
		scores := make([]scoring.MatchScore, len(team.MatchScores))
		copy(scores, team.MatchScores)
		team.MatchScores = scores
		out[i] = team
	}
	return out
}

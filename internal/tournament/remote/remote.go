// Package remote persists a tournament in the shared Turso database that
// every admin client writes to. There is no session-to-session
// coordination: single fields race under last-writer-wins, and ClearAll is
// a best-effort batch of independent deletes.
package remote

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mborch/scorekeeper/internal/scoring"
	"github.com/mborch/scorekeeper/internal/tournament"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTimeout bounds each network round-trip. A timeout surfaces as an
// ordinary write failure, never as a retry.
const DefaultTimeout = 10 * time.Second

type adapter struct {
	db           *sql.DB
	tournamentID string
	timeout      time.Duration
}

var _ tournament.Adapter = (*adapter)(nil)

// New creates a remote adapter bound to one shared tournament. A timeout of
// 0 selects DefaultTimeout.
func New(db *sql.DB, tournamentID string, timeout time.Duration) tournament.Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &adapter{db: db, tournamentID: tournamentID, timeout: timeout}
}

func (a *adapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

func (a *adapter) CreateTeam(ctx context.Context, team scoring.Team) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	matchCount := len(team.MatchScores)
	if matchCount < 1 {
		matchCount = 1
	}
	if err := a.ensureTournament(ctx, matchCount); err != nil {
		return err
	}

	blob, err := msgpack.Marshal(team.MatchScores)
	if err != nil {
		return fmt.Errorf("encode match scores: %w", err)
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO teams (id, tournament_id, name, match_scores, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, team.ID, a.tournamentID, team.Name, blob, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// UpdateMatchScore rewrites the team's whole score array. The array is one
// stored field, so concurrent editors of the same team race under
// last-writer-wins at the array level, matching the shared-store semantics.
func (a *adapter) UpdateMatchScore(ctx context.Context, teamID string, matchIndex int, field tournament.ScoreField, value int) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	var blob []byte
	err := a.db.QueryRowContext(ctx,
		"SELECT match_scores FROM teams WHERE id = ? AND tournament_id = ?",
		teamID, a.tournamentID,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return tournament.ErrTeamNotFound
	}
	if err != nil {
		return fmt.Errorf("read team %s: %w", teamID, err)
	}

	scores := decodeScores(blob, teamID)
	if matchIndex < 0 {
		return tournament.ErrMatchIndexOutOfRange
	}
	if matchIndex >= len(scores) {
		// Another admin may have grown the match count; pad up to the
		// index instead of rejecting the edit.
		scores = scoring.NormalizeScores(scores, matchIndex+1)
	}
	switch field {
	case tournament.FieldKills:
		scores[matchIndex].Kills = value
	case tournament.FieldPlacement:
		scores[matchIndex].Placement = value
	case tournament.FieldBonus:
		scores[matchIndex].Bonus = value
	default:
		return tournament.ErrInvalidScoreField
	}

	blob, err = msgpack.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode match scores: %w", err)
	}
	_, err = a.db.ExecContext(ctx,
		"UPDATE teams SET match_scores = ? WHERE id = ? AND tournament_id = ?",
		blob, teamID, a.tournamentID,
	)
	if err != nil {
		return fmt.Errorf("update team %s: %w", teamID, err)
	}
	return nil
}

func (a *adapter) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	_, err := a.db.ExecContext(ctx,
		"DELETE FROM teams WHERE id = ? AND tournament_id = ?",
		teamID, a.tournamentID,
	)
	if err != nil {
		return fmt.Errorf("delete team %s: %w", teamID, err)
	}
	return nil
}

// SetMatchCount updates the single shared match_count field. Concurrent
// writers clobber each other last-writer-wins; there is no compare-and-swap.
// Team score arrays are not touched here; Load pads them back into shape.
func (a *adapter) SetMatchCount(ctx context.Context, matchCount int) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, match_count) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET match_count = excluded.match_count
	`, a.tournamentID, matchCount)
	if err != nil {
		return fmt.Errorf("set match count: %w", err)
	}
	return nil
}

func (a *adapter) Load(ctx context.Context) ([]scoring.Team, int, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	matchCount := 1
	err := a.db.QueryRowContext(ctx,
		"SELECT match_count FROM tournaments WHERE id = ?", a.tournamentID,
	).Scan(&matchCount)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, fmt.Errorf("load tournament %s: %w", a.tournamentID, err)
	}

	// created_at keeps the admins' insertion order stable across loads,
	// which is what the standings tie-break keys on.
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, match_scores FROM teams
		WHERE tournament_id = ? ORDER BY created_at, id
	`, a.tournamentID)
	if err != nil {
		return nil, 0, fmt.Errorf("load teams for %s: %w", a.tournamentID, err)
	}
	defer rows.Close()

	var teams []scoring.Team
	for rows.Next() {
		var team scoring.Team
		var blob []byte
		if err := rows.Scan(&team.ID, &team.Name, &blob); err != nil {
			return nil, 0, fmt.Errorf("scan team: %w", err)
		}
		team.MatchScores = scoring.NormalizeScores(decodeScores(blob, team.ID), matchCount)
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("load teams for %s: %w", a.tournamentID, err)
	}
	return teams, matchCount, nil
}

// ClearAll deletes every team with independent statements and no
// transaction. A partial failure leaves a mix of deleted and surviving
// teams; the caller re-Loads to observe the true state.
func (a *adapter) ClearAll(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	rows, err := a.db.QueryContext(ctx,
		"SELECT id FROM teams WHERE tournament_id = ?", a.tournamentID)
	if err != nil {
		return fmt.Errorf("list teams for clear: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list teams for clear: %w", err)
	}

	var failed []string
	var firstErr error
	for _, id := range ids {
		if _, err := a.db.ExecContext(ctx,
			"DELETE FROM teams WHERE id = ? AND tournament_id = ?", id, a.tournamentID,
		); err != nil {
			log.Error("Failed to delete team during clear", "teamID", id, "error", err)
			failed = append(failed, id)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) > 0 {
		return &tournament.PartialClearError{FailedIDs: failed, Err: firstErr}
	}
	return nil
}

func (a *adapter) ensureTournament(ctx context.Context, matchCount int) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO tournaments (id, match_count) VALUES (?, ?)",
		a.tournamentID, matchCount,
	)
	if err != nil {
		return fmt.Errorf("ensure tournament %s: %w", a.tournamentID, err)
	}
	return nil
}

// decodeScores tolerates a corrupt blob: the team survives with neutral
// scores rather than poisoning the whole load.
func decodeScores(blob []byte, teamID string) []scoring.MatchScore {
	if len(blob) == 0 {
		return nil
	}
	var scores []scoring.MatchScore
	if err := msgpack.Unmarshal(blob, &scores); err != nil {
		log.Error("Failed to decode match_scores blob", "teamID", teamID, "error", err)
		return nil
	}
	return scores
}

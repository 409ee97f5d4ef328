// Package local persists a tournament in an on-device key-value store. The
// whole tournament lives under one fixed key, so every write replaces the
// record in a single store call and cannot partially fail.
package local

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mborch/scorekeeper/internal/kv"
	"github.com/mborch/scorekeeper/internal/scoring"
	"github.com/mborch/scorekeeper/internal/tournament"
	"github.com/vmihailenco/msgpack/v5"
)

// recordKey is the fixed key the tournament record lives under. Local
// sessions have no tournament identity, so there is exactly one record.
const recordKey = "tournament"

// record is the stored shape: all teams plus the shared match count.
type record struct {
	Teams      []scoring.Team `msgpack:"teams"`
	MatchCount int            `msgpack:"match_count"`
}

type adapter struct {
	store kv.Store
}

var _ tournament.Adapter = (*adapter)(nil)

// New creates a local adapter on top of the given key-value store.
func New(store kv.Store) tournament.Adapter {
	return &adapter{store: store}
}

func (a *adapter) CreateTeam(_ context.Context, team scoring.Team) error {
	rec := a.load()
	rec.Teams = append(rec.Teams, team)
	// The team's score array carries the session's current match count.
	if n := len(team.MatchScores); n > 0 {
		rec.MatchCount = n
	}
	return a.save(rec)
}

func (a *adapter) UpdateMatchScore(_ context.Context, teamID string, matchIndex int, field tournament.ScoreField, value int) error {
	rec := a.load()
	for i := range rec.Teams {
		if rec.Teams[i].ID != teamID {
			continue
		}
		if matchIndex < 0 || matchIndex >= len(rec.Teams[i].MatchScores) {
			return tournament.ErrMatchIndexOutOfRange
		}
		switch field {
		case tournament.FieldKills:
			rec.Teams[i].MatchScores[matchIndex].Kills = value
		case tournament.FieldPlacement:
			rec.Teams[i].MatchScores[matchIndex].Placement = value
		case tournament.FieldBonus:
			rec.Teams[i].MatchScores[matchIndex].Bonus = value
		default:
			return tournament.ErrInvalidScoreField
		}
		return a.save(rec)
	}
	return tournament.ErrTeamNotFound
}

func (a *adapter) DeleteTeam(_ context.Context, teamID string) error {
	rec := a.load()
	kept := rec.Teams[:0]
	for _, team := range rec.Teams {
		if team.ID != teamID {
			kept = append(kept, team)
		}
	}
	rec.Teams = kept
	return a.save(rec)
}

func (a *adapter) SetMatchCount(_ context.Context, matchCount int) error {
	rec := a.load()
	rec.MatchCount = matchCount
	for i := range rec.Teams {
		rec.Teams[i].MatchScores = scoring.NormalizeScores(rec.Teams[i].MatchScores, matchCount)
	}
	return a.save(rec)
}

func (a *adapter) Load(_ context.Context) ([]scoring.Team, int, error) {
	rec := a.load()
	return rec.Teams, rec.MatchCount, nil
}

func (a *adapter) ClearAll(_ context.Context) error {
	rec := a.load()
	rec.Teams = nil
	return a.save(rec)
}

// load reads the stored record. Absent or corrupt data is an empty
// tournament, never an error.
func (a *adapter) load() record {
	empty := record{MatchCount: 1}

	raw, err := a.store.Get(recordKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warn("Failed to read local tournament, starting empty", "error", err)
		}
		return empty
	}

	var rec record
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		log.Warn("Corrupt local tournament record, starting empty", "error", err)
		return empty
	}
	if rec.MatchCount < 1 {
		rec.MatchCount = 1
	}
	return rec
}

func (a *adapter) save(rec record) error {
	raw, err := msgpack.Marshal(rec)
	if err != nil {
		return err
	}
	return a.store.Set(recordKey, raw)
}

package tournament

import (
	"context"
	"fmt"

	"github.com/mborch/scorekeeper/internal/scoring"
)

// ScoreField names one of the three per-match leaf values an admin can edit.
type ScoreField string

const (
	FieldKills     ScoreField = "kills"
	FieldPlacement ScoreField = "placement"
	FieldBonus     ScoreField = "bonus"
)

// ParseScoreField converts user input to a ScoreField.
func ParseScoreField(s string) (ScoreField, error) {
	switch ScoreField(s) {
	case FieldKills, FieldPlacement, FieldBonus:
		return ScoreField(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScoreField, s)
}

// Adapter is the persistence capability both backends satisfy. All calls are
// context-aware; the remote implementation applies a network timeout per
// call and a timeout surfaces as an ordinary write failure.
//
// The session assigns team ids and applies every mutation to its view
// before dispatching here, so an adapter failure never rolls anything back.
type Adapter interface {
	CreateTeam(ctx context.Context, team scoring.Team) error
	UpdateMatchScore(ctx context.Context, teamID string, matchIndex int, field ScoreField, value int) error
	DeleteTeam(ctx context.Context, teamID string) error
	SetMatchCount(ctx context.Context, matchCount int) error
	Load(ctx context.Context) (teams []scoring.Team, matchCount int, err error)
	ClearAll(ctx context.Context) error
}

// StorageMode is the tagged variant selecting which backend a session talks
// to. It is fixed at construction; the adapter is chosen by a factory
// switching on the tag, never inferred per call.
type StorageMode struct {
	remote       bool
	tournamentID string
}

// Local is the mode for a single-client session whose data lives only in
// the on-device store.
func Local() StorageMode {
	return StorageMode{}
}

// Remote binds a session to a shared tournament that multiple admin clients
// may mutate concurrently.
func Remote(tournamentID string) StorageMode {
	return StorageMode{remote: true, tournamentID: tournamentID}
}

func (m StorageMode) IsRemote() bool { return m.remote }

// TournamentID returns the shared tournament identity; empty in local mode.
func (m StorageMode) TournamentID() string { return m.tournamentID }

func (m StorageMode) String() string {
	if m.remote {
		return "remote(" + m.tournamentID + ")"
	}
	return "local"
}

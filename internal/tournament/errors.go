package tournament

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors. These are rejected before the optimistic apply, so the
// in-memory view is untouched when one of them is returned.
var (
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMatchIndexOutOfRange = errors.New("match index out of range")
	ErrPlacementOutOfRange  = errors.New("placement out of range")
	ErrInvalidScoreField    = errors.New("invalid score field")
	ErrMinMatchCount        = errors.New("a tournament needs at least one match")
)

// WriteError reports a failed durable write. The optimistic in-memory view
// has already been applied and is NOT rolled back, so the view may be ahead
// of the store until the caller resynchronizes with Load. Writes are never
// retried automatically.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("durable write failed for %s (view may be stale): %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed Load against the shared store. The local
// adapter never produces one (corrupt or absent local data loads as an
// empty tournament), but a remote store being unreachable must not be
// mistaken for emptiness.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to load tournament: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// PartialClearError reports a ClearAll that deleted some teams but not all.
// There is no rollback of the successful deletes and no retry; the caller
// must re-Load to observe the true state of the store.
type PartialClearError struct {
	FailedIDs []string
	Err       error
}

func (e *PartialClearError) Error() string {
	return fmt.Sprintf("clear left %d team(s) behind (%s): %v",
		len(e.FailedIDs), strings.Join(e.FailedIDs, ", "), e.Err)
}

func (e *PartialClearError) Unwrap() error { return e.Err }

// Package adapters selects the persistence backend for a storage mode.
package adapters

import (
	"database/sql"
	"time"

	"github.com/mborch/scorekeeper/internal/kv"
	"github.com/mborch/scorekeeper/internal/tournament"
	"github.com/mborch/scorekeeper/internal/tournament/local"
	"github.com/mborch/scorekeeper/internal/tournament/remote"
)

// New returns the adapter for the given mode. The decision is made exactly
// once, here, by switching on the mode tag: local sessions get the
// key-value backed adapter, remote sessions get the shared-database one.
func New(mode tournament.StorageMode, store kv.Store, db *sql.DB, timeout time.Duration) tournament.Adapter {
	if mode.IsRemote() {
		return remote.New(db, mode.TournamentID(), timeout)
	}
	return local.New(store)
}

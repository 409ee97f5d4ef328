package kv

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// sqliteStore persists key-value pairs in the kv table of the local
// database file. Every call is a single statement, so a write either fully
// succeeds or fully fails.
type sqliteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite creates a Store backed by the given database handle. The kv
// table is created by the migrations.
func NewSQLite(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("Failed to read kv entry", "error", err, "key", key)
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

func (s *sqliteStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		log.Error("Failed to write kv entry", "error", err, "key", key)
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		log.Error("Failed to delete kv entry", "error", err, "key", key)
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

package kv

import "errors"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal durable key-value capability. The local tournament
// adapter only needs Get/Set/Delete on opaque byte records, which keeps it
// portable across backends (sqlite file, in-memory map for tests).
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Package storage provides key-value storage backends for NeoDB snapshots.
//
// The graph itself lives in memory; storage is the persistence seam the
// database writes serialized snapshots through. Three implementations are
// provided:
//
//   - BadgerStore: persistent disk-based storage using BadgerDB
//   - MemoryStore: in-process map, useful for tests
//   - CachedStore: read-through LRU cache wrapping any other Store
package storage

import "errors"

// Common storage errors. Match with errors.Is.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreClosed = errors.New("store closed")
)

// Store is a flat key-value store.
//
// All implementations are safe for concurrent use. Values returned by Get
// are owned by the caller; implementations must not retain or mutate them.
type Store interface {
	// Put stores value under key, replacing any existing value.
	Put(key string, value []byte) error

	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Exists reports whether key is present.
	Exists(key string) (bool, error)

	// Keys returns all keys with the given prefix. An empty prefix
	// returns every key.
	Keys(prefix string) ([]string, error)

	// Close releases resources. Operations after Close return
	// ErrStoreClosed.
	Close() error
}

package storage

import (
	"errors"

	"github.com/neodb/neodb/pkg/cache"
)

// CachedStore wraps a Store with a read-through LRU cache.
//
// Reads check the cache before the inner store; writes go through to the
// inner store and update the cache. Negative results are not cached.
type CachedStore struct {
	inner Store
	lru   *cache.LRU
}

// NewCachedStore wraps inner with an LRU cache holding up to capacity
// entries. A non-positive capacity uses the LRU default.
func NewCachedStore(inner Store, capacity int) *CachedStore {
	return &CachedStore{
		inner: inner,
		lru:   cache.NewLRU(capacity),
	}
}

// Put writes through to the inner store and refreshes the cache entry.
func (s *CachedStore) Put(key string, value []byte) error {
	if err := s.inner.Put(key, value); err != nil {
		return err
	}
	s.lru.Put(key, value)
	return nil
}

// Get returns the cached value when present, otherwise reads from the
// inner store and caches the result.
func (s *CachedStore) Get(key string) ([]byte, error) {
	if value, ok := s.lru.Get(key); ok {
		return value, nil
	}
	value, err := s.inner.Get(key)
	if err != nil {
		return nil, err
	}
	s.lru.Put(key, value)
	return value, nil
}

// Delete removes key from both the inner store and the cache.
func (s *CachedStore) Delete(key string) error {
	if err := s.inner.Delete(key); err != nil {
		return err
	}
	s.lru.Remove(key)
	return nil
}

// Exists reports whether key is present, consulting the cache first.
func (s *CachedStore) Exists(key string) (bool, error) {
	if s.lru.Contains(key) {
		return true, nil
	}
	return s.inner.Exists(key)
}

// Keys delegates to the inner store. The cache holds a subset of the
// keyspace, so listing always goes to the source of truth.
func (s *CachedStore) Keys(prefix string) ([]string, error) {
	return s.inner.Keys(prefix)
}

// Close drops the cache and closes the inner store.
func (s *CachedStore) Close() error {
	s.lru.Clear()
	err := s.inner.Close()
	if err != nil && !errors.Is(err, ErrStoreClosed) {
		return err
	}
	return nil
}

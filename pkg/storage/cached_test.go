package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps MemoryStore and counts reads hitting the inner store.
type countingStore struct {
	*MemoryStore
	gets   int
	exists int
}

func (c *countingStore) Get(key string) ([]byte, error) {
	c.gets++
	return c.MemoryStore.Get(key)
}

func (c *countingStore) Exists(key string) (bool, error) {
	c.exists++
	return c.MemoryStore.Exists(key)
}

func TestCachedStoreReadThrough(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	store := NewCachedStore(inner, 16)
	defer store.Close()

	require.NoError(t, inner.Put("k", []byte("v")))

	t.Run("first_get_reads_inner", func(t *testing.T) {
		value, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
		assert.Equal(t, 1, inner.gets)
	})

	t.Run("second_get_served_from_cache", func(t *testing.T) {
		value, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
		assert.Equal(t, 1, inner.gets)
	})

	t.Run("exists_uses_cache", func(t *testing.T) {
		ok, err := store.Exists("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, inner.exists)
	})

	t.Run("misses_are_not_cached", func(t *testing.T) {
		before := inner.gets
		_, err := store.Get("absent")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		_, err = store.Get("absent")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.Equal(t, before+2, inner.gets)
	})
}

func TestCachedStoreWriteThrough(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	store := NewCachedStore(inner, 16)
	defer store.Close()

	require.NoError(t, store.Put("k", []byte("v1")))

	// Put populates the cache, so the next read skips the inner store.
	value, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)
	assert.Zero(t, inner.gets)

	// The inner store saw the write.
	value, err = inner.MemoryStore.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	// Delete invalidates the cache entry.
	require.NoError(t, store.Delete("k"))
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCachedStoreEviction(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	store := NewCachedStore(inner, 2)
	defer store.Close()

	require.NoError(t, store.Put("a", []byte("1")))
	require.NoError(t, store.Put("b", []byte("2")))
	require.NoError(t, store.Put("c", []byte("3"))) // evicts "a" from cache

	// Evicted entries fall back to the inner store.
	value, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)
	assert.Equal(t, 1, inner.gets)
}

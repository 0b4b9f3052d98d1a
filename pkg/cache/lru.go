package cache

import (
	"container/list"
	"sync"
)

// LRU is a thread-safe single-tier cache with a strict capacity bound and
// least-recently-used eviction.
//
// Unlike the tiered Manager, which tolerates an O(n) eviction scan over a
// small hot tier, LRU guarantees O(1) get and put: a key-to-element index
// (hash map) over a recency-ordered doubly-linked list. The front of the
// list is the most recently used entry; eviction pops the back.
//
// Example:
//
//	lru := cache.NewLRU(256)
//	lru.Put("node:alice", payload)
//	if data, ok := lru.Get("node:alice"); ok {
//		// data is the cached payload; the entry moved to the front
//	}
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	index    map[string]*list.Element
}

// lruEntry pairs a key with its payload inside the recency list.
type lruEntry struct {
	key   string
	value []byte
}

// NewLRU creates a bounded LRU cache. Non-positive capacities fall back
// to 1000.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = 1000
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the payload for key and whether it was present, refreshing
// the entry's recency on a hit.
func (c *LRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).value, true
}

// Put stores the payload under key at the front of the recency order,
// evicting the least recently used entry when the cache is full. Updating
// an existing key refreshes its recency instead of evicting.
func (c *LRU) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		elem.Value.(*lruEntry).value = value
		c.order.MoveToFront(elem)
		return
	}

	for c.order.Len() >= c.capacity {
		c.evictOldestLocked()
	}

	c.index[key] = c.order.PushFront(&lruEntry{key: key, value: value})
}

// Remove deletes key, reporting whether it was present.
func (c *LRU) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return false
	}
	c.removeLocked(elem)
	return true
}

// Contains reports whether key is cached without refreshing its recency.
func (c *LRU) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[key]
	return ok
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.index = make(map[string]*list.Element, c.capacity)
}

// evictOldestLocked drops the back of the recency list. Caller holds mu.
func (c *LRU) evictOldestLocked() {
	if elem := c.order.Back(); elem != nil {
		c.removeLocked(elem)
	}
}

// removeLocked unlinks an element from both structures. Caller holds mu.
func (c *LRU) removeLocked(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.index, elem.Value.(*lruEntry).key)
}

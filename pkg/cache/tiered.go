// Package cache provides the tiered cache manager for NeoDB.
//
// The manager keeps two capacity-bounded tiers of opaque byte payloads:
// L1 holds hot entries, L2 holds warm overflow. Reads promote fresh L2
// hits into L1 when there is room; writes always land in L1, demoting the
// coldest L1 entry into L2 when eviction is needed. TTL expiry is
// evaluated lazily on access; there is no background sweep.
//
// Absence is always a normal result, never an error. Capacity exhaustion
// on the demotion path is observable through the DemotionDrops counter
// rather than a warning.
//
// Usage:
//
//	mgr := cache.NewManager(cache.Config{L1Capacity: 100, L2Capacity: 1000, TTL: time.Hour})
//
//	mgr.Put("result:42", payload)
//	if data, ok := mgr.Get("result:42"); ok {
//		return data // cache hit
//	}
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Config configures the tiered cache manager.
type Config struct {
	// L1Capacity bounds the hot tier. L1 is kept small enough that the
	// O(n) eviction scan stays cheap.
	L1Capacity int

	// L2Capacity bounds the warm tier.
	L2Capacity int

	// TTL is the absolute lifetime of an entry from creation.
	// Zero means entries never expire.
	TTL time.Duration
}

// DefaultConfig returns the default tier sizing: 1000 hot entries, 10000
// warm entries, one hour TTL.
func DefaultConfig() Config {
	return Config{
		L1Capacity: 1000,
		L2Capacity: 10000,
		TTL:        time.Hour,
	}
}

// entry is a cached payload with its access metadata.
type entry struct {
	data        []byte
	createdAt   time.Time
	accessCount uint64
	lastAccess  time.Time
}

func newEntry(data []byte) *entry {
	now := time.Now()
	return &entry{
		data:        data,
		createdAt:   now,
		accessCount: 1,
		lastAccess:  now,
	}
}

// touch bumps the access metadata on a hit.
func (e *entry) touch() {
	e.accessCount++
	e.lastAccess = time.Now()
}

// expired reports whether the entry's absolute lifetime has elapsed.
// A zero TTL never expires.
func (e *entry) expired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(e.createdAt) > ttl
}

// Manager is a thread-safe two-tier key/byte-payload cache.
//
// Each tier is guarded by its own lock and the two locks are never held
// together: cross-tier moves (promotion on read, demotion on eviction)
// release one tier before touching the other. Under concurrent access a
// promotion racing a put-triggered eviction on the same key can
// transiently duplicate or drop an entry; cache contents are idempotently
// reconstructible, so a lost entry only costs recomputation.
//
// Statistics are atomics, separate from the tier locks, so bookkeeping
// never contends with the hit path.
type Manager struct {
	config Config

	l1Mu sync.Mutex
	l1   map[string]*entry

	l2Mu sync.Mutex
	l2   map[string]*entry

	hits          atomic.Uint64
	misses        atomic.Uint64
	inserts       atomic.Uint64
	evictions     atomic.Uint64
	demotionDrops atomic.Uint64
}

// NewManager creates a tiered cache with the given configuration.
// Non-positive capacities fall back to the defaults.
func NewManager(config Config) *Manager {
	if config.L1Capacity <= 0 {
		config.L1Capacity = DefaultConfig().L1Capacity
	}
	if config.L2Capacity <= 0 {
		config.L2Capacity = DefaultConfig().L2Capacity
	}
	return &Manager{
		config: config,
		l1:     make(map[string]*entry, config.L1Capacity),
		l2:     make(map[string]*entry),
	}
}

// Get returns a copy of the cached payload and whether it was present.
//
// L1 is consulted first; an expired L1 entry is purged and the lookup
// falls through to L2 under the same expiry rule. A fresh L2 hit is
// promoted into L1 best-effort: the promotion is skipped silently when L1
// is at capacity (no eviction happens on the read path), and the payload
// is returned either way.
func (m *Manager) Get(key string) ([]byte, bool) {
	m.l1Mu.Lock()
	if e, ok := m.l1[key]; ok {
		if !e.expired(m.config.TTL) {
			e.touch()
			data := cloneBytes(e.data)
			m.l1Mu.Unlock()
			m.hits.Add(1)
			return data, true
		}
		delete(m.l1, key)
	}
	m.l1Mu.Unlock()

	m.l2Mu.Lock()
	e, ok := m.l2[key]
	if !ok {
		m.l2Mu.Unlock()
		m.misses.Add(1)
		return nil, false
	}
	if e.expired(m.config.TTL) {
		delete(m.l2, key)
		m.l2Mu.Unlock()
		m.misses.Add(1)
		return nil, false
	}
	e.touch()
	data := cloneBytes(e.data)
	promoted := e
	m.l2Mu.Unlock()

	// Best-effort promotion; L2 keeps the copy only if L1 has no room.
	m.l1Mu.Lock()
	if len(m.l1) < m.config.L1Capacity {
		m.l1[key] = promoted
		m.l1Mu.Unlock()
		m.l2Mu.Lock()
		delete(m.l2, key)
		m.l2Mu.Unlock()
	} else {
		m.l1Mu.Unlock()
	}

	m.hits.Add(1)
	return data, true
}

// Put inserts a payload under key, always targeting L1.
//
// When L1 is at capacity, exactly one victim — the entry with the oldest
// last-access time, found by an O(n) scan — is evicted and demoted into
// L2 if L2 has spare capacity, otherwise dropped (counted in
// DemotionDrops). The new entry is inserted unconditionally afterwards,
// accepting a bounded one-entry overshoot if the eviction raced. Any
// stale L2 copy of the key is removed to keep tier exclusivity.
func (m *Manager) Put(key string, value []byte) {
	e := newEntry(cloneBytes(value))

	m.l1Mu.Lock()
	_, replacing := m.l1[key]
	var victimKey string
	var victim *entry
	if !replacing && len(m.l1) >= m.config.L1Capacity {
		victimKey, victim = m.oldestL1Locked()
		if victim != nil {
			delete(m.l1, victimKey)
			m.evictions.Add(1)
		}
	}
	m.l1[key] = e
	m.l1Mu.Unlock()

	m.l2Mu.Lock()
	delete(m.l2, key)
	if victim != nil {
		if len(m.l2) < m.config.L2Capacity {
			m.l2[victimKey] = victim
		} else {
			m.demotionDrops.Add(1)
		}
	}
	m.l2Mu.Unlock()

	m.inserts.Add(1)
}

// oldestL1Locked scans L1 for the entry with the oldest last-access time.
// Caller holds l1Mu. The linear scan is acceptable because the hot tier
// is sized small; no auxiliary recency index is maintained.
func (m *Manager) oldestL1Locked() (string, *entry) {
	var oldestKey string
	var oldest *entry
	for k, e := range m.l1 {
		if oldest == nil || e.lastAccess.Before(oldest.lastAccess) {
			oldestKey, oldest = k, e
		}
	}
	return oldestKey, oldest
}

// Remove deletes key from both tiers unconditionally, reporting whether
// anything was present.
func (m *Manager) Remove(key string) bool {
	m.l1Mu.Lock()
	_, inL1 := m.l1[key]
	delete(m.l1, key)
	m.l1Mu.Unlock()

	m.l2Mu.Lock()
	_, inL2 := m.l2[key]
	delete(m.l2, key)
	m.l2Mu.Unlock()

	return inL1 || inL2
}

// Contains reports whether either tier holds the key, without touching
// access metadata or hit/miss counters. Expiry is not evaluated here.
func (m *Manager) Contains(key string) bool {
	m.l1Mu.Lock()
	_, inL1 := m.l1[key]
	m.l1Mu.Unlock()
	if inL1 {
		return true
	}

	m.l2Mu.Lock()
	_, inL2 := m.l2[key]
	m.l2Mu.Unlock()
	return inL2
}

// Clear empties both tiers. Counters are preserved; they are monotonic
// totals, not gauges.
func (m *Manager) Clear() {
	m.l1Mu.Lock()
	m.l1 = make(map[string]*entry, m.config.L1Capacity)
	m.l1Mu.Unlock()

	m.l2Mu.Lock()
	m.l2 = make(map[string]*entry)
	m.l2Mu.Unlock()
}

// Len returns the current sizes of the two tiers.
func (m *Manager) Len() (l1, l2 int) {
	m.l1Mu.Lock()
	l1 = len(m.l1)
	m.l1Mu.Unlock()

	m.l2Mu.Lock()
	l2 = len(m.l2)
	m.l2Mu.Unlock()
	return l1, l2
}

// Stats returns a snapshot of the cache counters and tier sizes.
func (m *Manager) Stats() Stats {
	l1, l2 := m.Len()
	return Stats{
		Hits:          m.hits.Load(),
		Misses:        m.misses.Load(),
		Inserts:       m.inserts.Load(),
		Evictions:     m.evictions.Load(),
		DemotionDrops: m.demotionDrops.Load(),
		L1Size:        l1,
		L2Size:        l2,
	}
}

// Stats holds cache performance counters. All counters are monotonic.
type Stats struct {
	Hits          uint64 // lookups served from either tier
	Misses        uint64 // lookups absent (or expired) in both tiers
	Inserts       uint64 // Put calls
	Evictions     uint64 // L1 victims displaced by writes
	DemotionDrops uint64 // evicted victims dropped because L2 was full
	L1Size        int    // current hot-tier entry count
	L2Size        int    // current warm-tier entry count
}

// HitRate returns hits / (hits + misses), or 0 when no accesses have
// occurred.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

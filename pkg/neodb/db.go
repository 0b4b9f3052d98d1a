// Package neodb provides the main API for embedded NeoDB usage.
//
// NeoDB is an in-memory labeled property graph with optional snapshot
// persistence. The DB facade owns the graph, enforces the concurrency
// discipline (single writer, many readers), generates ids, caches query
// results, and exposes traversal helpers.
//
// Example Usage:
//
//	db, err := neodb.Open("", nil) // in-memory, defaults
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	alice, _ := db.CreateNode([]string{"User"}, map[string]any{"name": "Alice"})
//	bob, _ := db.CreateNode([]string{"User"}, map[string]any{"name": "Bob"})
//	db.CreateEdge(alice, bob, "KNOWS", nil)
//
//	path, _ := db.ShortestPath(alice, bob)
//	fmt.Println(path.Nodes)
//
// Storage Modes:
//
// Opening with a non-empty dataDir attaches a BadgerDB-backed store: Close
// writes a snapshot of the graph into it, and Open restores the previous
// snapshot if one exists. Opening with an empty dataDir runs fully in
// memory.
//
// Thread Safety:
//
// All DB methods are safe for concurrent use. Reads (gets, finds,
// traversals) hold a shared lock; mutations hold an exclusive lock.
package neodb

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/neodb/neodb/pkg/cache"
	"github.com/neodb/neodb/pkg/config"
	"github.com/neodb/neodb/pkg/graph"
	"github.com/neodb/neodb/pkg/storage"
	"github.com/neodb/neodb/pkg/traversal"
)

// Errors returned by DB operations.
var (
	ErrClosed       = errors.New("database is closed")
	ErrInvalidInput = errors.New("invalid input")
)

// snapshotKey is the store key the serialized graph lives under.
const snapshotKey = "snapshot/graph"

// Config holds database settings.
type Config struct {
	// Name identifies the database in stats output.
	Name string

	// Cache configures the query result cache.
	Cache cache.Config

	// SyncWrites forces fsync on snapshot writes.
	SyncWrites bool

	// StoreCacheSize is the entry capacity of the read-through cache in
	// front of the store. 0 disables it.
	StoreCacheSize int

	// MaxDepth is the default depth limit for TraverseDFS and
	// TraverseBFS. 0 means unlimited.
	MaxDepth int

	// MaxPathDepth bounds ShortestPath and AllPaths searches.
	// 0 means unlimited.
	MaxPathDepth int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:           "neodb",
		Cache:          cache.DefaultConfig(),
		StoreCacheSize: 256,
		MaxPathDepth:   15,
	}
}

// ConfigFrom maps application settings onto a database Config.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Name: "neodb",
		Cache: cache.Config{
			L1Capacity: cfg.Cache.L1Capacity,
			L2Capacity: cfg.Cache.L2Capacity,
			TTL:        cfg.Cache.TTL,
		},
		SyncWrites:     cfg.Database.SyncWrites,
		StoreCacheSize: cfg.Database.StoreCacheSize,
		MaxDepth:       cfg.Traversal.MaxDepth,
		MaxPathDepth:   cfg.Traversal.MaxPathDepth,
	}
}

// DB is an embedded NeoDB database.
type DB struct {
	config *Config
	mu     sync.RWMutex
	closed bool

	graph *graph.Graph
	store storage.Store // nil when persistence is disabled
	cache *cache.Manager
}

// Open opens or creates a NeoDB database.
//
// A non-empty dataDir attaches persistent snapshot storage at that
// location and restores the previous snapshot if one exists. An empty
// dataDir runs fully in memory. A nil config uses DefaultConfig().
func Open(dataDir string, cfg *Config) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	db := &DB{
		config: cfg,
		graph:  graph.New(),
		cache:  cache.NewManager(cfg.Cache),
	}

	if dataDir != "" {
		badgerStore, err := storage.NewBadgerStoreWithOptions(storage.BadgerOptions{
			DataDir:    dataDir,
			SyncWrites: cfg.SyncWrites,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open persistent storage: %w", err)
		}
		if cfg.StoreCacheSize > 0 {
			db.store = storage.NewCachedStore(badgerStore, cfg.StoreCacheSize)
		} else {
			db.store = badgerStore
		}

		if err := db.Restore(); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			db.store.Close()
			return nil, fmt.Errorf("failed to restore snapshot: %w", err)
		}
		log.Printf("neodb: persistent storage at %s (%d nodes, %d edges)",
			dataDir, db.graph.NodeCount(), db.graph.EdgeCount())
	}

	return db, nil
}

// OpenFromConfig opens a database from application settings, honoring the
// persistence switch.
func OpenFromConfig(cfg *config.Config) (*DB, error) {
	dataDir := ""
	if cfg.Database.PersistenceEnabled {
		dataDir = cfg.Database.DataDir
	}
	return Open(dataDir, ConfigFrom(cfg))
}

// Close snapshots the graph when a store is attached and releases
// resources. Close is idempotent.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true

	if db.store != nil {
		if err := db.snapshotLocked(); err != nil {
			db.store.Close()
			return fmt.Errorf("snapshot on close: %w", err)
		}
		return db.store.Close()
	}
	return nil
}

// ============================================================================
// Node and edge CRUD
// ============================================================================

// CreateNode adds a node with a generated id and returns the id.
func (db *DB) CreateNode(labels []string, props map[string]any) (graph.NodeID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return "", ErrClosed
	}

	node := graph.NewNodeWithID(graph.NodeID(uuid.NewString()))
	for _, label := range labels {
		node.AddLabel(label)
	}
	for k, v := range props {
		node.SetProperty(k, v)
	}
	if _, err := db.graph.AddNode(node); err != nil {
		return "", err
	}
	db.cache.Clear()
	return node.ID, nil
}

// CreateEdge adds a directed edge between two existing nodes and returns
// the edge id. The edge type must be non-empty.
func (db *DB) CreateEdge(source, target graph.NodeID, edgeType string, props map[string]any) (graph.EdgeID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return "", ErrClosed
	}
	if edgeType == "" {
		return "", fmt.Errorf("edge type: %w", ErrInvalidInput)
	}

	edge := graph.NewEdgeWithID(graph.EdgeID(uuid.NewString()), source, target, edgeType)
	for k, v := range props {
		edge.SetProperty(k, v)
	}
	if _, err := db.graph.AddEdge(edge); err != nil {
		return "", err
	}
	db.cache.Clear()
	return edge.ID, nil
}

// GetNode returns the node with the given id, or graph.ErrNodeNotFound.
func (db *DB) GetNode(id graph.NodeID) (*graph.Node, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	node := db.graph.Node(id)
	if node == nil {
		return nil, fmt.Errorf("node %q: %w", id, graph.ErrNodeNotFound)
	}
	return node, nil
}

// GetEdge returns the edge with the given id, or graph.ErrEdgeNotFound.
func (db *DB) GetEdge(id graph.EdgeID) (*graph.Edge, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	edge := db.graph.Edge(id)
	if edge == nil {
		return nil, fmt.Errorf("edge %q: %w", id, graph.ErrEdgeNotFound)
	}
	return edge, nil
}

// DeleteNode removes a node and all edges touching it.
func (db *DB) DeleteNode(id graph.NodeID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	if _, err := db.graph.RemoveNode(id); err != nil {
		return err
	}
	db.cache.Clear()
	return nil
}

// DeleteEdge removes a single edge. Its endpoints are untouched.
func (db *DB) DeleteEdge(id graph.EdgeID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	if _, err := db.graph.RemoveEdge(id); err != nil {
		return err
	}
	db.cache.Clear()
	return nil
}

// Neighbors returns the nodes adjacent to id in either direction. A node
// connected by multiple edges appears once per edge.
func (db *DB) Neighbors(id graph.NodeID) ([]*graph.Node, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	if db.graph.Node(id) == nil {
		return nil, fmt.Errorf("node %q: %w", id, graph.ErrNodeNotFound)
	}
	return db.graph.Neighbors(id), nil
}

// NodeEdges returns every edge touching id, outgoing then incoming.
// Self-loops appear in both directions.
func (db *DB) NodeEdges(id graph.NodeID) ([]*graph.Edge, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	if db.graph.Node(id) == nil {
		return nil, fmt.Errorf("node %q: %w", id, graph.ErrNodeNotFound)
	}
	edges := db.graph.OutgoingEdges(id)
	edges = append(edges, db.graph.IncomingEdges(id)...)
	return edges, nil
}

// Clear removes every node and edge.
func (db *DB) Clear() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	db.graph.Clear()
	db.cache.Clear()
	return nil
}

// ============================================================================
// Queries
// ============================================================================

// FindNodesByLabel returns all nodes carrying the given label.
//
// Results are served from the query cache when the graph has not mutated
// since the last identical query.
func (db *DB) FindNodesByLabel(label string) ([]*graph.Node, error) {
	return db.cachedQuery("label/"+label, func() []*graph.Node {
		return db.graph.FindNodesByLabel(label)
	})
}

// FindNodesByProperty returns all nodes whose property key deep-equals
// value.
func (db *DB) FindNodesByProperty(key string, value any) ([]*graph.Node, error) {
	return db.cachedQuery(fmt.Sprintf("prop/%s/%v", key, value), func() []*graph.Node {
		return db.graph.FindNodesByProperty(key, value)
	})
}

// cachedQuery serves a node query through the result cache. Cached entries
// hold node ids; every mutation clears the cache, so ids always resolve.
func (db *DB) cachedQuery(key string, query func() []*graph.Node) ([]*graph.Node, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}

	if data, ok := db.cache.Get(key); ok {
		var ids []graph.NodeID
		if err := json.Unmarshal(data, &ids); err == nil {
			nodes := make([]*graph.Node, 0, len(ids))
			for _, id := range ids {
				if node := db.graph.Node(id); node != nil {
					nodes = append(nodes, node)
				}
			}
			return nodes, nil
		}
		// Undecodable entry; fall through and recompute.
	}

	nodes := query()
	ids := make([]graph.NodeID, len(nodes))
	for i, node := range nodes {
		ids[i] = node.ID
	}
	if data, err := json.Marshal(ids); err == nil {
		db.cache.Put(key, data)
	}
	return nodes, nil
}

// ============================================================================
// Traversal
// ============================================================================

// dbVisitor adapts a visit callback to the traversal visitor protocol,
// resolving neighbors through the graph's outgoing adjacency.
type dbVisitor struct {
	g     *graph.Graph
	visit func(id graph.NodeID) traversal.VisitResult
}

func (v *dbVisitor) VisitNode(id graph.NodeID) traversal.VisitResult {
	return v.visit(id)
}

func (v *dbVisitor) Neighbors(id graph.NodeID) []graph.NodeID {
	return v.g.NeighborIDs(id)
}

// TraverseDFS walks the graph depth-first from start, following outgoing
// edges, invoking visit once per reachable node. The configured MaxDepth
// applies; exceeding it aborts with traversal.ErrDepthLimitExceeded.
func (db *DB) TraverseDFS(start graph.NodeID, visit func(id graph.NodeID) traversal.VisitResult) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return ErrClosed
	}
	if db.graph.Node(start) == nil {
		return fmt.Errorf("node %q: %w", start, graph.ErrNodeNotFound)
	}
	dfs := traversal.NewDFSWithMaxDepth(db.config.MaxDepth)
	return dfs.Traverse(start, &dbVisitor{g: db.graph, visit: visit})
}

// TraverseBFS walks the graph breadth-first from start, following outgoing
// edges, invoking visit once per reachable node in level order.
func (db *DB) TraverseBFS(start graph.NodeID, visit func(id graph.NodeID) traversal.VisitResult) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return ErrClosed
	}
	if db.graph.Node(start) == nil {
		return fmt.Errorf("node %q: %w", start, graph.ErrNodeNotFound)
	}
	bfs := traversal.NewBFSWithMaxDepth(db.config.MaxDepth)
	return bfs.Traverse(start, &dbVisitor{g: db.graph, visit: visit})
}

// ShortestPath returns a minimum-hop path from start to end following
// outgoing edges, or nil when no path exists within the configured
// MaxPathDepth.
func (db *DB) ShortestPath(start, end graph.NodeID) (*traversal.Path, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	if db.graph.Node(start) == nil {
		return nil, fmt.Errorf("node %q: %w", start, graph.ErrNodeNotFound)
	}
	if db.graph.Node(end) == nil {
		return nil, fmt.Errorf("node %q: %w", end, graph.ErrNodeNotFound)
	}
	finder := traversal.NewPathFinderWithMaxDepth(db.config.MaxPathDepth)
	return finder.ShortestPath(start, end, db.graph.NeighborIDs), nil
}

// AllPaths returns every simple path from start to end within the
// configured MaxPathDepth.
func (db *DB) AllPaths(start, end graph.NodeID) ([]traversal.Path, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	if db.graph.Node(start) == nil {
		return nil, fmt.Errorf("node %q: %w", start, graph.ErrNodeNotFound)
	}
	if db.graph.Node(end) == nil {
		return nil, fmt.Errorf("node %q: %w", end, graph.ErrNodeNotFound)
	}
	finder := traversal.NewPathFinderWithMaxDepth(db.config.MaxPathDepth)
	return finder.AllPaths(start, end, db.graph.NeighborIDs), nil
}

// ============================================================================
// Stats and persistence
// ============================================================================

// DBStats reports database counters.
type DBStats struct {
	Name      string      `json:"name"`
	NodeCount int         `json:"node_count"`
	EdgeCount int         `json:"edge_count"`
	Cache     cache.Stats `json:"cache"`
}

// Stats returns a point-in-time snapshot of database counters.
func (db *DB) Stats() DBStats {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return DBStats{
		Name:      db.config.Name,
		NodeCount: db.graph.NodeCount(),
		EdgeCount: db.graph.EdgeCount(),
		Cache:     db.cache.Stats(),
	}
}

// snapshotData is the serialized graph format.
type snapshotData struct {
	Nodes []*graph.Node `json:"nodes"`
	Edges []*graph.Edge `json:"edges"`
}

// Snapshot serializes the graph into the attached store.
func (db *DB) Snapshot() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return ErrClosed
	}
	return db.snapshotLocked()
}

func (db *DB) snapshotLocked() error {
	if db.store == nil {
		return fmt.Errorf("snapshot: no store attached")
	}
	data, err := json.Marshal(snapshotData{
		Nodes: db.graph.Nodes(),
		Edges: db.graph.Edges(),
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return db.store.Put(snapshotKey, data)
}

// Restore replaces the graph with the snapshot in the attached store.
// Returns storage.ErrKeyNotFound when no snapshot exists.
func (db *DB) Restore() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	if db.store == nil {
		return fmt.Errorf("restore: no store attached")
	}

	data, err := db.store.Get(snapshotKey)
	if err != nil {
		return err
	}
	var snap snapshotData
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	restored := graph.New()
	for _, node := range snap.Nodes {
		if _, err := restored.AddNode(node); err != nil {
			return fmt.Errorf("restore node %q: %w", node.ID, err)
		}
	}
	for _, edge := range snap.Edges {
		if _, err := restored.AddEdge(edge); err != nil {
			return fmt.Errorf("restore edge %q: %w", edge.ID, err)
		}
	}

	db.graph = restored
	db.cache.Clear()
	return nil
}

// Package graph provides the in-memory property-graph store for NeoDB.
//
// The graph follows the labeled property graph model: nodes carry a set of
// label strings and a map of JSON-like property values, edges are directed
// connections between two existing nodes with a relationship type and their
// own property map. The Graph type maintains referential integrity between
// the node table, the edge table, and two directional adjacency indexes.
//
// Example Usage:
//
//	g := graph.New()
//
//	alice := graph.NewNodeWithID("alice")
//	alice.AddLabel("Person")
//	alice.SetProperty("name", "Alice")
//	g.AddNode(alice)
//
//	bob := graph.NewNodeWithID("bob")
//	bob.AddLabel("Person")
//	g.AddNode(bob)
//
//	knows := graph.NewEdge("alice", "bob", "KNOWS")
//	g.AddEdge(knows)
//
//	neighbors := g.Neighbors("alice")
//	fmt.Printf("alice has %d neighbors\n", len(neighbors))
//
// Thread Safety:
//
//	Graph is NOT internally synchronized. Mutations span multiple internal
//	structures (the cascade on node removal touches both adjacency indexes
//	and the edge table), so callers must serialize mutations against each
//	other and against reads. Read-only queries may run concurrently with
//	each other but never with an in-flight mutation. The neodb.DB facade
//	enforces this single-writer/many-reader discipline with a RWMutex.
package graph

import (
	"github.com/google/uuid"
)

// NodeID is a strongly-typed unique identifier for graph nodes.
//
// Using a custom type prevents accidentally passing an EdgeID where a
// NodeID is expected and keeps traversal signatures self-documenting.
type NodeID string

// EdgeID is a strongly-typed unique identifier for graph edges.
type EdgeID string

// Node is a graph vertex with a set of labels and a property map.
//
// Labels have set semantics: AddLabel is idempotent and the slice never
// contains duplicates. Property values are JSON-like (string, number, bool,
// nil, nested maps and slices). The ID is immutable after creation.
//
// Node structs are not thread-safe; synchronization is the owning Graph's
// caller's concern.
type Node struct {
	ID         NodeID         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// NewNode creates a node with a generated UUID.
func NewNode() *Node {
	return NewNodeWithID(NodeID(uuid.NewString()))
}

// NewNodeWithID creates a node with a caller-supplied id.
func NewNodeWithID(id NodeID) *Node {
	return &Node{
		ID:         id,
		Labels:     []string{},
		Properties: make(map[string]any),
	}
}

// AddLabel adds a label to the node. Adding an existing label is a no-op.
func (n *Node) AddLabel(label string) {
	if n.HasLabel(label) {
		return
	}
	n.Labels = append(n.Labels, label)
}

// RemoveLabel removes a label, reporting whether it was present.
func (n *Node) RemoveLabel(label string) bool {
	for i, l := range n.Labels {
		if l == label {
			n.Labels = append(n.Labels[:i], n.Labels[i+1:]...)
			return true
		}
	}
	return false
}

// HasLabel reports whether the node carries the given label.
func (n *Node) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// SetProperty sets a property on the node, replacing any existing value.
func (n *Node) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
}

// Property returns a property value and whether it is present.
func (n *Node) Property(key string) (any, bool) {
	v, ok := n.Properties[key]
	return v, ok
}

// RemoveProperty removes a property, returning the removed value if any.
func (n *Node) RemoveProperty(key string) (any, bool) {
	v, ok := n.Properties[key]
	if ok {
		delete(n.Properties, key)
	}
	return v, ok
}

// Edge is a directed connection between two nodes.
//
// Source and Target must reference nodes that exist at the time the edge is
// added to a Graph; the check happens once at AddEdge, not continuously.
// The Type string names the relationship (e.g. "KNOWS", "CITES").
type Edge struct {
	ID         EdgeID         `json:"id"`
	Source     NodeID         `json:"source"`
	Target     NodeID         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// NewEdge creates an edge with a generated UUID.
func NewEdge(source, target NodeID, relType string) *Edge {
	return NewEdgeWithID(EdgeID(uuid.NewString()), source, target, relType)
}

// NewEdgeWithID creates an edge with a caller-supplied id.
func NewEdgeWithID(id EdgeID, source, target NodeID, relType string) *Edge {
	return &Edge{
		ID:         id,
		Source:     source,
		Target:     target,
		Type:       relType,
		Properties: make(map[string]any),
	}
}

// SetProperty sets a property on the edge, replacing any existing value.
func (e *Edge) SetProperty(key string, value any) {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
}

// Property returns a property value and whether it is present.
func (e *Edge) Property(key string) (any, bool) {
	v, ok := e.Properties[key]
	return v, ok
}

// RemoveProperty removes a property, returning the removed value if any.
func (e *Edge) RemoveProperty(key string) (any, bool) {
	v, ok := e.Properties[key]
	if ok {
		delete(e.Properties, key)
	}
	return v, ok
}

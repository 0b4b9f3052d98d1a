package graph

import (
	"fmt"
	"reflect"
)

// Graph owns the node table, the edge table, and two directional adjacency
// indexes (outgoing and incoming edge ids per node).
//
// Invariants maintained by every mutation:
//   - Every edge id in either adjacency index resolves to an edge in the
//     edge table.
//   - Every edge's Source and Target resolve to nodes in the node table.
//   - Removing a node cascades: all incident edges are removed and both
//     adjacency indexes are purged of references to them.
//   - Removing an edge updates exactly the two adjacency entries for its
//     endpoints.
//
// Performance Characteristics:
//   - Add/get/remove node or edge: O(1) average (cascade is O(degree))
//   - Outgoing/incoming edges, neighbors: O(degree)
//   - Label and property queries: O(|V|) linear scan, no secondary index
//
// Graph is not internally synchronized; see the package documentation.
type Graph struct {
	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge

	outgoing map[NodeID]map[EdgeID]struct{}
	incoming map[NodeID]map[EdgeID]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[NodeID]*Node),
		edges:    make(map[EdgeID]*Edge),
		outgoing: make(map[NodeID]map[EdgeID]struct{}),
		incoming: make(map[NodeID]map[EdgeID]struct{}),
	}
}

// AddNode inserts a node and returns its id.
//
// Returns ErrNodeExists (wrapped with the id) if a node with the same id is
// already present.
func (g *Graph) AddNode(node *Node) (NodeID, error) {
	if _, exists := g.nodes[node.ID]; exists {
		return "", fmt.Errorf("node %q: %w", node.ID, ErrNodeExists)
	}

	g.nodes[node.ID] = node
	g.outgoing[node.ID] = make(map[EdgeID]struct{})
	g.incoming[node.ID] = make(map[EdgeID]struct{})

	return node.ID, nil
}

// Node returns the node with the given id, or nil if absent.
// Absence is a normal outcome, not an error.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Edge returns the edge with the given id, or nil if absent.
func (g *Graph) Edge(id EdgeID) *Edge {
	return g.edges[id]
}

// RemoveNode removes a node and cascades to every incident edge.
//
// All edges where the node is source or target are deleted from the edge
// table, and both adjacency indexes are purged of references to them. The
// cascade walks only the node's own adjacency sets, so the cost is
// O(degree), not a full sweep.
//
// Returns the removed node, or ErrNodeNotFound (wrapped with the id).
func (g *Graph) RemoveNode(id NodeID) (*Node, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, fmt.Errorf("node %q: %w", id, ErrNodeNotFound)
	}

	// Drop outgoing edges, fixing up each target's incoming set.
	for edgeID := range g.outgoing[id] {
		if edge := g.edges[edgeID]; edge != nil {
			if incoming := g.incoming[edge.Target]; incoming != nil {
				delete(incoming, edgeID)
			}
		}
		delete(g.edges, edgeID)
	}
	delete(g.outgoing, id)

	// Drop incoming edges, fixing up each source's outgoing set.
	// A self-loop was already removed above; the map deletes are no-ops.
	for edgeID := range g.incoming[id] {
		if edge := g.edges[edgeID]; edge != nil {
			if outgoing := g.outgoing[edge.Source]; outgoing != nil {
				delete(outgoing, edgeID)
			}
		}
		delete(g.edges, edgeID)
	}
	delete(g.incoming, id)

	delete(g.nodes, id)
	return node, nil
}

// AddEdge inserts an edge and returns its id.
//
// Both endpoints must already exist; the source is checked first. The
// endpoint check happens once here and is not re-verified afterwards.
//
// Returns ErrEdgeExists if the edge id is taken, or ErrNodeNotFound naming
// whichever endpoint is missing.
func (g *Graph) AddEdge(edge *Edge) (EdgeID, error) {
	if _, exists := g.edges[edge.ID]; exists {
		return "", fmt.Errorf("edge %q: %w", edge.ID, ErrEdgeExists)
	}
	if _, exists := g.nodes[edge.Source]; !exists {
		return "", fmt.Errorf("node %q: %w", edge.Source, ErrNodeNotFound)
	}
	if _, exists := g.nodes[edge.Target]; !exists {
		return "", fmt.Errorf("node %q: %w", edge.Target, ErrNodeNotFound)
	}

	if g.outgoing[edge.Source] == nil {
		g.outgoing[edge.Source] = make(map[EdgeID]struct{})
	}
	g.outgoing[edge.Source][edge.ID] = struct{}{}

	if g.incoming[edge.Target] == nil {
		g.incoming[edge.Target] = make(map[EdgeID]struct{})
	}
	g.incoming[edge.Target][edge.ID] = struct{}{}

	g.edges[edge.ID] = edge
	return edge.ID, nil
}

// RemoveEdge removes an edge, updating exactly the two adjacency entries
// for its endpoints.
//
// Returns the removed edge, or ErrEdgeNotFound (wrapped with the id).
func (g *Graph) RemoveEdge(id EdgeID) (*Edge, error) {
	edge, exists := g.edges[id]
	if !exists {
		return nil, fmt.Errorf("edge %q: %w", id, ErrEdgeNotFound)
	}

	if outgoing := g.outgoing[edge.Source]; outgoing != nil {
		delete(outgoing, id)
	}
	if incoming := g.incoming[edge.Target]; incoming != nil {
		delete(incoming, id)
	}

	delete(g.edges, id)
	return edge, nil
}

// OutgoingEdges returns all edges where the given node is the source.
//
// The adjacency index is set-backed, so the order is unspecified. Returns
// an empty slice for unknown nodes.
func (g *Graph) OutgoingEdges(id NodeID) []*Edge {
	edgeIDs := g.outgoing[id]
	edges := make([]*Edge, 0, len(edgeIDs))
	for edgeID := range edgeIDs {
		if edge := g.edges[edgeID]; edge != nil {
			edges = append(edges, edge)
		}
	}
	return edges
}

// IncomingEdges returns all edges where the given node is the target, in
// unspecified order.
func (g *Graph) IncomingEdges(id NodeID) []*Edge {
	edgeIDs := g.incoming[id]
	edges := make([]*Edge, 0, len(edgeIDs))
	for edgeID := range edgeIDs {
		if edge := g.edges[edgeID]; edge != nil {
			edges = append(edges, edge)
		}
	}
	return edges
}

// Neighbors returns the nodes reachable via outgoing edges (by target)
// plus the nodes reaching this one via incoming edges (by source).
//
// If multiple edges connect the same pair of nodes the neighbor appears
// once per edge; callers wanting set semantics deduplicate themselves.
func (g *Graph) Neighbors(id NodeID) []*Node {
	var neighbors []*Node

	for edgeID := range g.outgoing[id] {
		if edge := g.edges[edgeID]; edge != nil {
			if n := g.nodes[edge.Target]; n != nil {
				neighbors = append(neighbors, n)
			}
		}
	}
	for edgeID := range g.incoming[id] {
		if edge := g.edges[edgeID]; edge != nil {
			if n := g.nodes[edge.Source]; n != nil {
				neighbors = append(neighbors, n)
			}
		}
	}

	return neighbors
}

// NeighborIDs returns the ids of the targets of the node's outgoing edges,
// in unspecified order. This is the neighbor resolution used by directed
// traversal; Neighbors is the undirected view.
func (g *Graph) NeighborIDs(id NodeID) []NodeID {
	edgeIDs := g.outgoing[id]
	ids := make([]NodeID, 0, len(edgeIDs))
	for edgeID := range edgeIDs {
		if edge := g.edges[edgeID]; edge != nil {
			ids = append(ids, edge.Target)
		}
	}
	return ids
}

// FindNodesByLabel returns all nodes carrying the given label.
//
// This is a documented O(|V|) linear scan over all nodes; there is no
// secondary label index.
func (g *Graph) FindNodesByLabel(label string) []*Node {
	var matched []*Node
	for _, node := range g.nodes {
		if node.HasLabel(label) {
			matched = append(matched, node)
		}
	}
	return matched
}

// FindNodesByProperty returns all nodes whose property under key equals
// value. Equality is deep (reflect.DeepEqual) so JSON-like nested values
// compare by structure. O(|V|) linear scan.
func (g *Graph) FindNodesByProperty(key string, value any) []*Node {
	var matched []*Node
	for _, node := range g.nodes {
		if v, ok := node.Properties[key]; ok && reflect.DeepEqual(v, value) {
			matched = append(matched, node)
		}
	}
	return matched
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all nodes in unspecified order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns all edges in unspecified order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	return edges
}

// Clear empties the node table, the edge table, and both adjacency
// indexes. From the caller's perspective (mutations are externally
// serialized) this is atomic.
func (g *Graph) Clear() {
	g.nodes = make(map[NodeID]*Node)
	g.edges = make(map[EdgeID]*Edge)
	g.outgoing = make(map[NodeID]map[EdgeID]struct{})
	g.incoming = make(map[NodeID]map[EdgeID]struct{})
}

// Package traversal provides the visitor protocol and traversal algorithms
// over NeoDB graphs: depth-first search, breadth-first search, and a
// path finder for unweighted shortest paths and simple-path enumeration.
//
// Algorithms consume neighbor resolution either through a Visitor (the
// extensibility point for filtering and depth-limiting decorators) or a
// plain NeighborFunc. Either seam can be backed by the in-memory graph, a
// storage engine, or a test fixture.
//
// Example:
//
//	g := graph.New()
//	// ... populate ...
//
//	collector := traversal.NewCollectingVisitor(g.NeighborIDs)
//	if err := traversal.NewDFS().Traverse("a", collector); err != nil {
//		return err
//	}
//	fmt.Println(collector.Visited)
//
// Depth limits are fail-fast in every traversal: visiting a node beyond the
// configured maximum returns ErrDepthLimitExceeded and aborts the whole
// walk. The PathFinder is the exception by contract: its depth limit is a
// search cutoff, and a path that exists only beyond it is reported as not
// found rather than as an error.
package traversal

import (
	"errors"

	"github.com/neodb/neodb/pkg/graph"
)

// ErrDepthLimitExceeded is returned by DFS and BFS when a traversal reaches
// a node deeper than its configured maximum depth. It is always wrapped
// with the limit; match with errors.Is.
var ErrDepthLimitExceeded = errors.New("traversal depth limit exceeded")

// VisitResult is the tri-state outcome of visiting a node or edge.
type VisitResult int

const (
	// Continue expands the node's neighbors.
	Continue VisitResult = iota
	// Stop aborts the entire traversal immediately; no further nodes are
	// visited even if already queued.
	Stop
	// Skip suppresses expansion of this node's neighbors, but the
	// traversal continues elsewhere.
	Skip
)

// String returns the result name for logs and test failure messages.
func (r VisitResult) String() string {
	switch r {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// NeighborFunc resolves a node id to the ids of its neighbors. It is the
// plain-function alternative to the Visitor capability, letting a storage
// engine back traversal lazily instead of the in-memory graph.
type NeighborFunc func(id graph.NodeID) []graph.NodeID

// Visitor is the capability set every traversal algorithm consumes.
//
// The two required capabilities are visiting a node and resolving its
// neighbors. Optional capabilities (EdgeVisitor, Leaver) are discovered by
// type assertion, so plain visitors pay nothing for features they don't
// implement.
type Visitor interface {
	// VisitNode is called once per node reached by the traversal.
	VisitNode(id graph.NodeID) VisitResult

	// Neighbors resolves the nodes to expand from id. Visitation order
	// follows the returned order.
	Neighbors(id graph.NodeID) []graph.NodeID
}

// EdgeVisitor is an optional Visitor capability invoked before a neighbor
// is expanded. Stop aborts the traversal, Skip suppresses that single
// neighbor. The edge type is empty when neighbor resolution carries no
// edge information.
type EdgeVisitor interface {
	VisitEdge(from, to graph.NodeID, edgeType string) VisitResult
}

// Leaver is an optional Visitor capability notified when depth-first
// search backtracks out of a node. Breadth-first search never backtracks
// and does not call it.
type Leaver interface {
	LeaveNode(id graph.NodeID)
}

// visitEdge invokes the optional edge capability, defaulting to Continue.
func visitEdge(v Visitor, from, to graph.NodeID) VisitResult {
	if ev, ok := v.(EdgeVisitor); ok {
		return ev.VisitEdge(from, to, "")
	}
	return Continue
}

// leaveNode invokes the optional backtrack capability, defaulting to a
// no-op.
func leaveNode(v Visitor, id graph.NodeID) {
	if l, ok := v.(Leaver); ok {
		l.LeaveNode(id)
	}
}

// CollectingVisitor records the order in which nodes are visited. Neighbor
// resolution is delegated to the supplied NeighborFunc.
type CollectingVisitor struct {
	Visited   []graph.NodeID
	neighbors NeighborFunc
}

// NewCollectingVisitor creates a collecting visitor over the given
// neighbor resolution.
func NewCollectingVisitor(neighbors NeighborFunc) *CollectingVisitor {
	return &CollectingVisitor{neighbors: neighbors}
}

// VisitNode records the node and continues.
func (c *CollectingVisitor) VisitNode(id graph.NodeID) VisitResult {
	c.Visited = append(c.Visited, id)
	return Continue
}

// Neighbors delegates to the configured NeighborFunc.
func (c *CollectingVisitor) Neighbors(id graph.NodeID) []graph.NodeID {
	return c.neighbors(id)
}

// VisitedCount returns the number of nodes visited so far.
func (c *CollectingVisitor) VisitedCount() int {
	return len(c.Visited)
}

// Reset clears the recorded visit order for reuse.
func (c *CollectingVisitor) Reset() {
	c.Visited = c.Visited[:0]
}

package traversal

import "github.com/neodb/neodb/pkg/graph"

// Decorators wrap an inner Visitor while satisfying the full capability
// set themselves, so filtering and depth-limiting compose arbitrarily:
//
//	v := traversal.NewDepthLimitVisitor(
//		traversal.NewFilterVisitor(isPerson, collector), 3)
//
// Every decorator forwards the optional capabilities (VisitEdge,
// LeaveNode) to its inner visitor, invoking the defaults when the inner
// visitor lacks them.

// FilterVisitor visits only nodes matching a predicate; non-matching
// nodes are answered with Skip so their neighbors are not expanded.
type FilterVisitor struct {
	predicate func(id graph.NodeID) bool
	inner     Visitor
}

// NewFilterVisitor wraps inner so that only nodes satisfying predicate are
// forwarded to it.
func NewFilterVisitor(predicate func(id graph.NodeID) bool, inner Visitor) *FilterVisitor {
	return &FilterVisitor{predicate: predicate, inner: inner}
}

// VisitNode forwards matching nodes and skips the rest.
func (f *FilterVisitor) VisitNode(id graph.NodeID) VisitResult {
	if !f.predicate(id) {
		return Skip
	}
	return f.inner.VisitNode(id)
}

// Neighbors delegates to the inner visitor.
func (f *FilterVisitor) Neighbors(id graph.NodeID) []graph.NodeID {
	return f.inner.Neighbors(id)
}

// VisitEdge forwards the optional edge capability.
func (f *FilterVisitor) VisitEdge(from, to graph.NodeID, edgeType string) VisitResult {
	if ev, ok := f.inner.(EdgeVisitor); ok {
		return ev.VisitEdge(from, to, edgeType)
	}
	return Continue
}

// LeaveNode forwards the optional backtrack capability.
func (f *FilterVisitor) LeaveNode(id graph.NodeID) {
	leaveNode(f.inner, id)
}

// DepthLimitVisitor skips nodes deeper than maxDepth levels below the
// start node. Unlike the traversal-level depth limit this is a soft
// bound: deep nodes are skipped, not errored, which makes it suitable for
// composing with visitors that must never abort the walk.
//
// Depth is tracked through backtrack notices, so the bound applies to
// depth-first traversals; breadth-first search never backtracks and sees
// the decorator as a transparent wrapper.
type DepthLimitVisitor struct {
	inner    Visitor
	maxDepth int
	depth    int
}

// NewDepthLimitVisitor wraps inner with a soft depth bound. The start
// node is at depth 0; nodes at depth >= maxDepth are skipped.
func NewDepthLimitVisitor(inner Visitor, maxDepth int) *DepthLimitVisitor {
	return &DepthLimitVisitor{inner: inner, maxDepth: maxDepth}
}

// VisitNode skips nodes beyond the bound, otherwise forwards. The depth
// counter advances only on Continue, since only continued nodes expand
// and later backtrack.
func (d *DepthLimitVisitor) VisitNode(id graph.NodeID) VisitResult {
	if d.depth >= d.maxDepth {
		return Skip
	}
	result := d.inner.VisitNode(id)
	if result == Continue {
		d.depth++
	}
	return result
}

// Neighbors delegates to the inner visitor.
func (d *DepthLimitVisitor) Neighbors(id graph.NodeID) []graph.NodeID {
	return d.inner.Neighbors(id)
}

// VisitEdge forwards the optional edge capability.
func (d *DepthLimitVisitor) VisitEdge(from, to graph.NodeID, edgeType string) VisitResult {
	if ev, ok := d.inner.(EdgeVisitor); ok {
		return ev.VisitEdge(from, to, edgeType)
	}
	return Continue
}

// LeaveNode retreats the depth counter and forwards the backtrack notice.
func (d *DepthLimitVisitor) LeaveNode(id graph.NodeID) {
	d.depth--
	leaveNode(d.inner, id)
}

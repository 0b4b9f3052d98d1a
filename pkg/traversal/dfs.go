package traversal

import (
	"fmt"

	"github.com/neodb/neodb/pkg/graph"
)

// DFS is a depth-first traversal driven by a Visitor.
//
// A single visited set is shared for the whole Traverse call (never reset
// per branch), so each node is visited at most once per call and cycles
// are silently neutralized rather than surfaced as errors.
//
// The zero value traverses without a depth limit.
type DFS struct {
	maxDepth int // 0 = unlimited
}

// NewDFS creates a depth-first traversal without a depth limit.
func NewDFS() *DFS {
	return &DFS{}
}

// NewDFSWithMaxDepth creates a depth-first traversal that fails fast when
// a node deeper than maxDepth would be visited. The start node is at
// depth 0.
func NewDFSWithMaxDepth(maxDepth int) *DFS {
	return &DFS{maxDepth: maxDepth}
}

// Traverse walks the graph depth-first from start.
//
// Neighbor visitation order follows the order returned by the visitor's
// Neighbors. Returns ErrDepthLimitExceeded (wrapped with the limit) if the
// depth limit is exceeded; the traversal aborts immediately.
func (d *DFS) Traverse(start graph.NodeID, visitor Visitor) error {
	visited := make(map[graph.NodeID]struct{})
	_, err := d.walk(start, visitor, visited, 0)
	return err
}

// walk returns stop=true when the visitor asked to abort the whole
// traversal.
func (d *DFS) walk(id graph.NodeID, visitor Visitor, visited map[graph.NodeID]struct{}, depth int) (stop bool, err error) {
	if d.maxDepth > 0 && depth > d.maxDepth {
		return true, fmt.Errorf("depth %d: %w", d.maxDepth, ErrDepthLimitExceeded)
	}

	if _, seen := visited[id]; seen {
		return false, nil
	}
	visited[id] = struct{}{}

	switch visitor.VisitNode(id) {
	case Stop:
		return true, nil
	case Skip:
		return false, nil
	}

	for _, neighbor := range visitor.Neighbors(id) {
		switch visitEdge(visitor, id, neighbor) {
		case Stop:
			return true, nil
		case Skip:
			continue
		}

		stop, err := d.walk(neighbor, visitor, visited, depth+1)
		if err != nil || stop {
			return stop, err
		}
	}

	leaveNode(visitor, id)
	return false, nil
}

package traversal

import (
	"fmt"

	"github.com/neodb/neodb/pkg/graph"
)

// BFS is an iterative, queue-based breadth-first traversal driven by a
// Visitor. Nodes are explored in increasing distance from the start; a
// visited set marks nodes at enqueue time so nothing is queued twice.
//
// The depth-limit policy is fail-fast, matching DFS: dequeuing a node
// beyond the configured maximum returns ErrDepthLimitExceeded and aborts
// the traversal.
type BFS struct {
	maxDepth int // 0 = unlimited
}

// NewBFS creates a breadth-first traversal without a depth limit.
func NewBFS() *BFS {
	return &BFS{}
}

// NewBFSWithMaxDepth creates a breadth-first traversal that fails fast
// beyond maxDepth. The start node is at depth 0.
func NewBFSWithMaxDepth(maxDepth int) *BFS {
	return &BFS{maxDepth: maxDepth}
}

type bfsItem struct {
	id    graph.NodeID
	depth int
}

// Traverse walks the graph breadth-first from start.
func (b *BFS) Traverse(start graph.NodeID, visitor Visitor) error {
	visited := map[graph.NodeID]struct{}{start: {}}
	queue := []bfsItem{{id: start, depth: 0}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if b.maxDepth > 0 && item.depth > b.maxDepth {
			return fmt.Errorf("depth %d: %w", b.maxDepth, ErrDepthLimitExceeded)
		}

		switch visitor.VisitNode(item.id) {
		case Stop:
			return nil
		case Skip:
			continue
		}

		for _, neighbor := range visitor.Neighbors(item.id) {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			switch visitEdge(visitor, item.id, neighbor) {
			case Stop:
				return nil
			case Skip:
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, bfsItem{id: neighbor, depth: item.depth + 1})
		}
	}

	return nil
}

package traversal

import "github.com/neodb/neodb/pkg/graph"

// Path is an ordered sequence of node ids. Edges carry unit cost, so a
// path's cost is its hop count; weighted edges are not supported.
type Path struct {
	Nodes []graph.NodeID
}

// Len returns the number of nodes on the path.
func (p Path) Len() int {
	return len(p.Nodes)
}

// Cost returns the hop count (edges traversed), each edge contributing a
// fixed unit cost.
func (p Path) Cost() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// PathFinder finds paths between nodes using plain neighbor resolution.
//
// Its depth limit is a hard search cutoff, not an error condition: nodes
// beyond the cutoff are never explored, so a path that exists only beyond
// it is reported as not found. This contract differs deliberately from the
// fail-fast DFS/BFS traversals.
type PathFinder struct {
	maxDepth int // 0 = unlimited
}

// NewPathFinder creates a path finder without a depth cutoff.
func NewPathFinder() *PathFinder {
	return &PathFinder{}
}

// NewPathFinderWithMaxDepth creates a path finder whose searches never
// explore nodes more than maxDepth hops from the start.
func NewPathFinderWithMaxDepth(maxDepth int) *PathFinder {
	return &PathFinder{maxDepth: maxDepth}
}

// ShortestPath returns a minimum-edge-count path from start to end, or nil
// if end is unreachable (unreachability is a normal outcome, never an
// error).
//
// The search is an unweighted breadth-first expansion with parent-pointer
// backtracking, so the first discovered path has minimum hop count; when
// several shortest paths exist, which one is returned is unspecified.
// start == end short-circuits to a single-node path.
func (p *PathFinder) ShortestPath(start, end graph.NodeID, neighbors NeighborFunc) *Path {
	if start == end {
		return &Path{Nodes: []graph.NodeID{start}}
	}

	visited := map[graph.NodeID]struct{}{start: {}}
	parent := make(map[graph.NodeID]graph.NodeID)
	queue := []bfsItem{{id: start, depth: 0}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		// Hard cutoff: nothing beyond maxDepth is ever explored.
		if p.maxDepth > 0 && item.depth >= p.maxDepth {
			continue
		}

		for _, neighbor := range neighbors(item.id) {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			parent[neighbor] = item.id

			if neighbor == end {
				return &Path{Nodes: backtrack(parent, start, end)}
			}
			queue = append(queue, bfsItem{id: neighbor, depth: item.depth + 1})
		}
	}

	return nil
}

// backtrack reconstructs the start→end node sequence from parent links.
func backtrack(parent map[graph.NodeID]graph.NodeID, start, end graph.NodeID) []graph.NodeID {
	nodes := []graph.NodeID{end}
	for current := end; current != start; {
		current = parent[current]
		nodes = append(nodes, current)
	}
	// Reverse in place.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

// AllPaths enumerates every simple path (no node repeated within one path)
// from start to end, bounded by the configured depth cutoff.
//
// An unreachable end yields an empty slice, not an error. Enumeration is
// exponential in branching factor; intended for small graphs only.
func (p *PathFinder) AllPaths(start, end graph.NodeID, neighbors NeighborFunc) []Path {
	var paths []Path
	onPath := make(map[graph.NodeID]struct{})
	p.enumerate(start, end, neighbors, nil, onPath, &paths, 0)
	return paths
}

// enumerate runs the depth-bounded DFS with explicit backtracking.
func (p *PathFinder) enumerate(current, end graph.NodeID, neighbors NeighborFunc, trail []graph.NodeID, onPath map[graph.NodeID]struct{}, paths *[]Path, depth int) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return
	}

	trail = append(trail, current)
	onPath[current] = struct{}{}

	if current == end {
		found := make([]graph.NodeID, len(trail))
		copy(found, trail)
		*paths = append(*paths, Path{Nodes: found})
	} else {
		for _, neighbor := range neighbors(current) {
			if _, seen := onPath[neighbor]; seen {
				continue
			}
			p.enumerate(neighbor, end, neighbors, trail, onPath, paths, depth+1)
		}
	}

	delete(onPath, current)
}

package traversal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neodb/neodb/pkg/graph"
)

// diamond is the A→B, A→C, B→D, C→D fixture used across traversal tests.
func diamond() NeighborFunc {
	edges := map[graph.NodeID][]graph.NodeID{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {},
	}
	return func(id graph.NodeID) []graph.NodeID {
		return edges[id]
	}
}

// chain builds A→B→C→...→ the given ids in order.
func chain(ids ...graph.NodeID) NeighborFunc {
	next := make(map[graph.NodeID][]graph.NodeID)
	for i := 0; i+1 < len(ids); i++ {
		next[ids[i]] = []graph.NodeID{ids[i+1]}
	}
	return func(id graph.NodeID) []graph.NodeID {
		return next[id]
	}
}

func visitedSet(v *CollectingVisitor) map[graph.NodeID]bool {
	set := make(map[graph.NodeID]bool, len(v.Visited))
	for _, id := range v.Visited {
		set[id] = true
	}
	return set
}

func TestDFSDiamondCoverage(t *testing.T) {
	collector := NewCollectingVisitor(diamond())
	require.NoError(t, NewDFS().Traverse("A", collector))

	// Exactly {A,B,C,D}, no repeats: the visited set is shared across the
	// whole call, not reset per branch.
	assert.Len(t, collector.Visited, 4)
	set := visitedSet(collector)
	for _, id := range []graph.NodeID{"A", "B", "C", "D"} {
		assert.True(t, set[id], "missing %s", id)
	}
	// Neighbor order is honored: A first, then its first neighbor B.
	assert.Equal(t, graph.NodeID("A"), collector.Visited[0])
	assert.Equal(t, graph.NodeID("B"), collector.Visited[1])
}

func TestBFSDiamondCoverage(t *testing.T) {
	collector := NewCollectingVisitor(diamond())
	require.NoError(t, NewBFS().Traverse("A", collector))

	assert.Equal(t, []graph.NodeID{"A", "B", "C", "D"}, collector.Visited)
}

func TestBFSCycleVisitsOnce(t *testing.T) {
	edges := map[graph.NodeID][]graph.NodeID{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	}
	collector := NewCollectingVisitor(func(id graph.NodeID) []graph.NodeID { return edges[id] })
	require.NoError(t, NewBFS().Traverse("A", collector))
	assert.Len(t, collector.Visited, 3)
}

type controlVisitor struct {
	neighbors NeighborFunc
	results   map[graph.NodeID]VisitResult
	visited   []graph.NodeID
	left      []graph.NodeID
	edges     [][2]graph.NodeID
}

func (c *controlVisitor) VisitNode(id graph.NodeID) VisitResult {
	c.visited = append(c.visited, id)
	if r, ok := c.results[id]; ok {
		return r
	}
	return Continue
}

func (c *controlVisitor) Neighbors(id graph.NodeID) []graph.NodeID {
	return c.neighbors(id)
}

func (c *controlVisitor) VisitEdge(from, to graph.NodeID, _ string) VisitResult {
	c.edges = append(c.edges, [2]graph.NodeID{from, to})
	return Continue
}

func (c *controlVisitor) LeaveNode(id graph.NodeID) {
	c.left = append(c.left, id)
}

func TestDFSStopAbortsImmediately(t *testing.T) {
	v := &controlVisitor{
		neighbors: diamond(),
		results:   map[graph.NodeID]VisitResult{"B": Stop},
	}
	require.NoError(t, NewDFS().Traverse("A", v))

	// B stops the whole walk; C and D are never visited even though C was
	// a pending sibling.
	assert.Equal(t, []graph.NodeID{"A", "B"}, v.visited)
}

func TestBFSStopAbortsImmediately(t *testing.T) {
	v := &controlVisitor{
		neighbors: diamond(),
		results:   map[graph.NodeID]VisitResult{"B": Stop},
	}
	require.NoError(t, NewBFS().Traverse("A", v))
	assert.Equal(t, []graph.NodeID{"A", "B"}, v.visited)
}

func TestSkipSuppressesExpansionOnly(t *testing.T) {
	// Skipping B in the diamond still reaches D through C.
	v := &controlVisitor{
		neighbors: diamond(),
		results:   map[graph.NodeID]VisitResult{"B": Skip},
	}
	require.NoError(t, NewDFS().Traverse("A", v))

	set := make(map[graph.NodeID]bool)
	for _, id := range v.visited {
		set[id] = true
	}
	assert.True(t, set["D"], "D reachable via C despite skipping B")
	assert.Len(t, v.visited, 4)
}

func TestDFSDepthLimitFailFast(t *testing.T) {
	collector := NewCollectingVisitor(chain("A", "B", "C", "D"))
	err := NewDFSWithMaxDepth(2).Traverse("A", collector)
	require.ErrorIs(t, err, ErrDepthLimitExceeded)
	assert.Contains(t, err.Error(), "2")

	// Within the limit nothing errors.
	collector.Reset()
	require.NoError(t, NewDFSWithMaxDepth(3).Traverse("A", collector))
	assert.Len(t, collector.Visited, 4)
}

func TestBFSDepthLimitFailFast(t *testing.T) {
	collector := NewCollectingVisitor(chain("A", "B", "C", "D"))
	err := NewBFSWithMaxDepth(2).Traverse("A", collector)
	require.ErrorIs(t, err, ErrDepthLimitExceeded)

	collector.Reset()
	require.NoError(t, NewBFSWithMaxDepth(3).Traverse("A", collector))
	assert.Len(t, collector.Visited, 4)
}

func TestDFSEdgeAndLeaveCapabilities(t *testing.T) {
	v := &controlVisitor{neighbors: diamond()}
	require.NoError(t, NewDFS().Traverse("A", v))

	// Every expansion reported an edge first.
	assert.Contains(t, v.edges, [2]graph.NodeID{"A", "B"})
	assert.Contains(t, v.edges, [2]graph.NodeID{"B", "D"})

	// Backtrack order: D leaves before B, B before A.
	require.Len(t, v.left, 4)
	assert.Equal(t, graph.NodeID("A"), v.left[len(v.left)-1])
	assert.Equal(t, graph.NodeID("D"), v.left[0])
}

func TestFilterVisitorSkipsNonMatching(t *testing.T) {
	collector := NewCollectingVisitor(diamond())
	filtered := NewFilterVisitor(func(id graph.NodeID) bool { return id != "B" }, collector)
	require.NoError(t, NewDFS().Traverse("A", filtered))

	set := visitedSet(collector)
	assert.False(t, set["B"])
	assert.True(t, set["D"], "still reachable through C")
}

func TestDecoratorsCompose(t *testing.T) {
	collector := NewCollectingVisitor(chain("A", "B", "C", "D", "E"))
	wrapped := NewDepthLimitVisitor(
		NewFilterVisitor(func(id graph.NodeID) bool { return id != "B" }, collector), 10)

	require.NoError(t, NewDFS().Traverse("A", wrapped))
	assert.Equal(t, []graph.NodeID{"A"}, collector.Visited, "chain is cut at the filtered node")
}

func TestDepthLimitVisitorSoftBound(t *testing.T) {
	collector := NewCollectingVisitor(chain("A", "B", "C", "D"))
	limited := NewDepthLimitVisitor(collector, 1)

	// Soft bound: deep nodes are skipped, no error raised.
	require.NoError(t, NewDFS().Traverse("A", limited))
	assert.Less(t, len(collector.Visited), 4)
}

func TestShortestPathDiamond(t *testing.T) {
	path := NewPathFinder().ShortestPath("A", "D", diamond())
	require.NotNil(t, path)
	assert.Equal(t, 3, path.Len())
	assert.Equal(t, 2, path.Cost())
	assert.Equal(t, graph.NodeID("A"), path.Nodes[0])
	assert.Equal(t, graph.NodeID("D"), path.Nodes[2])
}

func TestShortestPathUnreachable(t *testing.T) {
	// The diamond is directed; nothing leads back to A.
	assert.Nil(t, NewPathFinder().ShortestPath("D", "A", diamond()))
}

func TestShortestPathStartEqualsEnd(t *testing.T) {
	path := NewPathFinder().ShortestPath("A", "A", diamond())
	require.NotNil(t, path)
	assert.Equal(t, []graph.NodeID{"A"}, path.Nodes)
	assert.Equal(t, 0, path.Cost())
}

func TestShortestPathDepthCutoff(t *testing.T) {
	neighbors := chain("A", "B", "C", "D")

	// D is 3 hops away; a cutoff of 2 reports it as not found, never as
	// found-but-truncated.
	assert.Nil(t, NewPathFinderWithMaxDepth(2).ShortestPath("A", "D", neighbors))

	path := NewPathFinderWithMaxDepth(3).ShortestPath("A", "D", neighbors)
	require.NotNil(t, path)
	assert.Equal(t, 4, path.Len())
}

func TestAllPathsDiamond(t *testing.T) {
	paths := NewPathFinder().AllPaths("A", "D", diamond())
	require.Len(t, paths, 2)

	middles := map[graph.NodeID]bool{}
	for _, p := range paths {
		require.Equal(t, 3, p.Len())
		assert.Equal(t, graph.NodeID("A"), p.Nodes[0])
		assert.Equal(t, graph.NodeID("D"), p.Nodes[2])
		middles[p.Nodes[1]] = true
	}
	assert.True(t, middles["B"])
	assert.True(t, middles["C"])
}

func TestAllPathsSimpleOnly(t *testing.T) {
	// A cycle must not produce paths revisiting a node.
	edges := map[graph.NodeID][]graph.NodeID{
		"A": {"B"},
		"B": {"A", "C"},
		"C": {},
	}
	neighbors := func(id graph.NodeID) []graph.NodeID { return edges[id] }

	paths := NewPathFinder().AllPaths("A", "C", neighbors)
	require.Len(t, paths, 1)
	assert.Equal(t, []graph.NodeID{"A", "B", "C"}, paths[0].Nodes)
}

func TestAllPathsUnreachableIsEmpty(t *testing.T) {
	assert.Empty(t, NewPathFinder().AllPaths("D", "A", diamond()))
}

func TestAllPathsDepthBound(t *testing.T) {
	neighbors := chain("A", "B", "C", "D")
	assert.Empty(t, NewPathFinderWithMaxDepth(2).AllPaths("A", "D", neighbors))
	assert.Len(t, NewPathFinderWithMaxDepth(3).AllPaths("A", "D", neighbors), 1)
}

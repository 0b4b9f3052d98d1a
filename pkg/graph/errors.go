package graph

import "errors"

// Structural violations always surface as errors to the caller; plain
// absence on lookups (GetNode, GetEdge) is a normal outcome, not an error.
// All errors are returned wrapped with the offending id, so match with
// errors.Is:
//
//	if _, err := g.RemoveNode("ghost"); errors.Is(err, graph.ErrNodeNotFound) {
//		// handle missing node
//	}
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrNodeExists   = errors.New("node already exists")
	ErrEdgeExists   = errors.New("edge already exists")
)

// Package graph defines the data model of a force-directed diagram.
//
// A [Graph] is an immutable index over mutable [Node] values and a list of
// weighted [Edge] values. Node identity is a numeric [NodeID]; edges are
// addressed by their position in [Graph.Edges], which keeps parallel edges
// (several edges between the same pair of nodes) individually addressable.
//
// # Construction
//
// [New] is the only constructor. It copies its inputs and enforces the
// graph invariants:
//
//   - node ids are unique (a duplicate fails with errors.ErrCodeDuplicateNode)
//   - every kept edge references two known nodes
//   - every kept edge has a finite, positive weight
//   - node coordinates are finite
//
// Malformed edges do not fail construction. They are dropped and reported
// in [Graph.Skipped] so a caller can log them and keep going:
//
//	g, err := graph.New(nodes, edges)
//	if err != nil {
//	    return err
//	}
//	for _, s := range g.Skipped {
//	    logger.Warn("skipped edge", "index", s.Index, "reason", s.Reason)
//	}
//
// # Mutation
//
// The physics integrator and the interaction controller are the only
// writers of position, velocity and pin fields. Everything else treats
// nodes as read-only.
package graph

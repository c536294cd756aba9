// Package provider supplies graph data to an engine.
//
// A [Source] delivers whole-graph [Snapshot]s on a channel. Every snapshot
// carries the complete node list and edge list together, so a consumer
// never sees a node removed while its edges remain.
//
// [Store] is the in-memory source with add, update and remove operations.
// [Watch] keeps a store in sync with a graph file, and [Demo] returns the
// sample dataset.
package provider

import (
	"context"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Snapshot is one complete version of the graph.
type Snapshot struct {
	Version uint64
	Nodes   []graph.Node
	Edges   []graph.Edge
}

// Source publishes snapshots. The channel receives the current snapshot
// immediately and is closed when ctx ends. A slow reader only ever sees the
// latest snapshot.
type Source interface {
	Subscribe(ctx context.Context) <-chan Snapshot
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Version: s.Version,
		Nodes:   make([]graph.Node, len(s.Nodes)),
		Edges:   make([]graph.Edge, len(s.Edges)),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = cloneNode(n)
	}
	copy(out.Edges, s.Edges)
	return out
}

// cloneNode copies n without sharing its pin.
func cloneNode(n graph.Node) graph.Node {
	if p, ok := n.PinPos(); ok {
		n.FX, n.FY = &p.X, &p.Y
	}
	return n
}

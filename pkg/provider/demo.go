package provider

import "github.com/matzehuels/forcegraph/pkg/graph"

// Demo returns the sample graph: ten labelled nodes cycling through the
// three shapes, and sixteen weighted edges. The 5→1 edge appears twice.
func Demo() ([]graph.Node, []graph.Edge) {
	names := []string{
		"Node 1 with a very long description",
		"Node 2 which also has quite a detailed explanation",
		"Node 3 with lots of information",
		"Node 4 and its description",
		"Node 5 containing important data",
		"Node 6 with additional context",
		"Node 7 explaining the process",
		"Node 8 with technical details",
		"Node 9 showing results",
		"Node 10 with conclusions",
	}
	nodes := make([]graph.Node, len(names))
	for i, name := range names {
		nodes[i] = graph.Node{
			ID:       graph.NodeID(i + 1),
			Name:     name,
			Shape:    graph.Shapes[i%len(graph.Shapes)],
			ShowText: true,
		}
	}

	edges := []graph.Edge{
		{Source: 1, Target: 2, Weight: 1},
		{Source: 2, Target: 3, Weight: 2},
		{Source: 3, Target: 4, Weight: 0.5},
		{Source: 4, Target: 1, Weight: 1.5},
		{Source: 5, Target: 1, Weight: 1},
		{Source: 5, Target: 6, Weight: 2},
		{Source: 6, Target: 7, Weight: 0.7},
		{Source: 7, Target: 8, Weight: 1},
		{Source: 8, Target: 9, Weight: 1.2},
		{Source: 9, Target: 10, Weight: 0.8},
		{Source: 10, Target: 5, Weight: 1},
		{Source: 2, Target: 7, Weight: 1.5},
		{Source: 3, Target: 9, Weight: 5},
		{Source: 4, Target: 6, Weight: 0.5},
		{Source: 1, Target: 8, Weight: 1},
		{Source: 5, Target: 1, Weight: 1},
	}
	return nodes, edges
}

// DemoStore returns a store seeded with Demo.
func DemoStore() *Store {
	return NewStore(Demo())
}

package physics

import (
	"testing"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

func TestScatterIsDeterministic(t *testing.T) {
	mk := func() []*graph.Node {
		return []*graph.Node{{ID: 1}, {ID: 2}, {ID: 3, X: 5, Y: 5}, {ID: 4}}
	}
	a, b := mk(), mk()
	center := geom.V(400, 300)

	if n := Scatter(a, center, 0, 42); n != 3 {
		t.Errorf("placed = %d, want 3", n)
	}
	Scatter(b, center, 0, 42)

	for i := range a {
		if a[i].Pos() != b[i].Pos() {
			t.Errorf("node %d: %v vs %v", a[i].ID, a[i].Pos(), b[i].Pos())
		}
	}
	if a[2].Pos() != geom.V(5, 5) {
		t.Errorf("placed node was moved: %v", a[2].Pos())
	}
	if a[0].Pos().Eq(a[1].Pos(), 1) {
		t.Errorf("nodes 1 and 2 landed together at %v", a[0].Pos())
	}
}

func TestScatterSkipsPinned(t *testing.T) {
	n := &graph.Node{ID: 1}
	n.Pin(0, 0)
	if placed := Scatter([]*graph.Node{n}, geom.V(10, 10), 0, 1); placed != 0 {
		t.Errorf("placed = %d, want 0", placed)
	}
}

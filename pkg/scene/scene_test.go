package scene

import (
	"testing"

	"github.com/matzehuels/forcegraph/pkg/geom"
)

func TestSurfaceKeepsOrderAndResets(t *testing.T) {
	s := NewSurface(800, 600)
	s.Add(3)
	s.Add(1)
	s.Add(3) // replace keeps position

	groups := s.Groups()
	if len(groups) != 2 || groups[0].ID != 3 || groups[1].ID != 1 {
		t.Fatalf("groups = %+v", groups)
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset = %d", s.Len())
	}
	if _, ok := s.Group(3); ok {
		t.Error("group survived Reset")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewSurface(100, 100)
	g := s.Add(1)
	g.Pos = geom.V(5, 5)
	g.Body = Element{Kind: KindCircle, R: 10}
	g.Highlighted = true

	f := s.Snapshot(7, geom.Identity, nil)
	g.Pos = geom.V(50, 50)

	if f.Nodes[0].Pos != geom.V(5, 5) {
		t.Errorf("frame node moved with surface: %v", f.Nodes[0].Pos)
	}
	if f.Highlighted == nil || *f.Highlighted != 1 {
		t.Errorf("Highlighted = %v, want 1", f.Highlighted)
	}
	if f.Seq != 7 {
		t.Errorf("Seq = %d", f.Seq)
	}

	b, ok := f.Bounds()
	if !ok || b.Min != geom.V(-5, -5) || b.Max != geom.V(15, 15) {
		t.Errorf("Bounds = %+v, %v", b, ok)
	}
}

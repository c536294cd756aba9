package geom

import (
	"math"
	"testing"
)

func TestTransformToSim(t *testing.T) {
	tests := []struct {
		name   string
		tr     Transform
		screen Vec
		want   Vec
	}{
		{"identity", Identity, V(10, 20), V(10, 20)},
		{"zoom 2", Transform{Zoom: 2}, V(100, 100), V(50, 50)},
		{"pan only", Transform{Zoom: 1, Pan: V(30, -10)}, V(30, -10), V(0, 0)},
		{"zoom and pan", Transform{Zoom: 0.5, Pan: V(100, 50)}, V(150, 100), V(100, 100)},
		{"zero zoom treated as 1", Transform{}, V(7, 8), V(7, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.ToSim(tt.screen)
			if !got.Eq(tt.want, 1e-9) {
				t.Errorf("ToSim(%v) = %v, want %v", tt.screen, got, tt.want)
			}
			back := tt.tr.ToScreen(got)
			if !back.Eq(tt.screen, 1e-9) {
				t.Errorf("ToScreen(ToSim(%v)) = %v, want round trip", tt.screen, back)
			}
		})
	}
}

func TestTransformDeltaIgnoresPan(t *testing.T) {
	tr := Transform{Zoom: 4, Pan: V(1000, 1000)}
	if got := tr.DeltaToSim(V(8, -4)); !got.Eq(V(2, -1), 1e-9) {
		t.Errorf("DeltaToSim = %v, want (2,-1)", got)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	tr := Transform{Zoom: 1, Pan: V(20, 40)}
	anchor := V(300, 200)
	before := tr.ToSim(anchor)

	next := tr.ZoomAt(anchor, 2.5)
	if next.Zoom != 2.5 {
		t.Fatalf("Zoom = %v, want 2.5", next.Zoom)
	}
	if after := next.ToSim(anchor); !after.Eq(before, 1e-9) {
		t.Errorf("anchor moved: before %v, after %v", before, after)
	}
}

func TestCenterOn(t *testing.T) {
	b := Bounds{Min: V(0, 0), Max: V(200, 100)}
	tr := Transform{Zoom: 2}.CenterOn(b, 800, 600)

	// graph center (100,50) at zoom 2 lands at viewport center (400,300)
	if got := tr.ToScreen(b.Center()); !got.Eq(V(400, 300), 1e-9) {
		t.Errorf("center maps to %v, want (400,300)", got)
	}

	bad := Bounds{Min: V(math.NaN(), 0), Max: V(1, 1)}
	if got := (Transform{Zoom: 1}).CenterOn(bad, 800, 600); !got.Pan.IsZero() {
		t.Errorf("non-finite bounds pan = %v, want zero", got.Pan)
	}
}

func TestBoundsOfSkipsNonFinite(t *testing.T) {
	b, ok := BoundsOf([]Vec{V(1, 2), V(math.Inf(1), 0), V(-3, 8)})
	if !ok {
		t.Fatal("BoundsOf reported no points")
	}
	if b.Min != V(-3, 2) || b.Max != V(1, 8) {
		t.Errorf("bounds = %+v", b)
	}
	if _, ok := BoundsOf(nil); ok {
		t.Error("BoundsOf(nil) should report no points")
	}
}

func TestNormal(t *testing.T) {
	n, ok := V(10, 0).Normal()
	if !ok || !n.Eq(V(0, 1), 1e-12) {
		t.Errorf("Normal((10,0)) = %v, %v", n, ok)
	}
	if _, ok := (Vec{}).Normal(); ok {
		t.Error("zero vector must have no normal")
	}
}

package shape

import (
	"testing"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

func TestForDefaultsToCircle(t *testing.T) {
	tests := []struct {
		in   graph.Shape
		want Shape
	}{
		{graph.ShapeCircle, Circle{}},
		{graph.ShapeRectangle, Rectangle{}},
		{graph.ShapeSquare, Square{}},
		{"triangle", Circle{}},
		{"", Circle{}},
	}
	for _, tt := range tests {
		if got := For(tt.in); got != tt.want {
			t.Errorf("For(%q) = %T, want %T", tt.in, got, tt.want)
		}
	}
}

func TestDrawAndClip(t *testing.T) {
	tests := []struct {
		shape      graph.Shape
		body, clip scene.Element
		hit, width float64
	}{
		{
			shape: graph.ShapeCircle,
			body:  scene.Element{Kind: scene.KindCircle, R: 30, Fill: scene.DefaultFill},
			clip:  scene.Element{Kind: scene.KindCircle, R: 28},
			hit:   30,
			width: 56,
		},
		{
			shape: graph.ShapeRectangle,
			body:  scene.Element{Kind: scene.KindRect, W: 75, H: 45, RX: 5, Fill: scene.DefaultFill},
			clip:  scene.Element{Kind: scene.KindRect, W: 71, H: 41, RX: 5},
			hit:   37.5,
			width: 71,
		},
		{
			shape: graph.ShapeSquare,
			body:  scene.Element{Kind: scene.KindRect, W: 60, H: 60, Fill: scene.DefaultFill},
			clip:  scene.Element{Kind: scene.KindRect, W: 56, H: 56},
			hit:   30,
			width: 56,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			sh := For(tt.shape)
			g := &scene.Group{}
			sh.Draw(g, DefaultSize)
			sh.ClipRegion(g, DefaultSize)

			if g.Body != tt.body {
				t.Errorf("body = %+v, want %+v", g.Body, tt.body)
			}
			if !g.HasClip || g.Clip != tt.clip {
				t.Errorf("clip = %+v, want %+v", g.Clip, tt.clip)
			}
			if got := sh.HitRadius(DefaultSize); got != tt.hit {
				t.Errorf("HitRadius = %v, want %v", got, tt.hit)
			}
			if got := sh.VisibleWidth(DefaultSize); got != tt.width {
				t.Errorf("VisibleWidth = %v, want %v", got, tt.width)
			}
			if body, clip := g.Body.HalfExtent(), g.Clip.HalfExtent(); body.X-clip.X != ClipInset || body.Y-clip.Y != ClipInset {
				t.Errorf("clip inset = (%v,%v), want %v", body.X-clip.X, body.Y-clip.Y, ClipInset)
			}
		})
	}
}

func TestRectangleIsWiderThanTall(t *testing.T) {
	e := Rectangle{}.Extent(DefaultSize)
	if e.X <= e.Y {
		t.Errorf("rectangle extent = %v, want wider than tall", e)
	}
}

func TestHighlightToggle(t *testing.T) {
	for _, s := range graph.Shapes {
		t.Run(string(s), func(t *testing.T) {
			sh := For(s)
			g := &scene.Group{}
			sh.Draw(g, DefaultSize)
			sh.ClipRegion(g, DefaultSize)
			drawn, clip := g.Body, g.Clip

			sh.Highlight(g)
			sh.Highlight(g)
			if g.Body.Stroke != scene.HighlightStroke || g.Body.StrokeWidth != scene.HighlightStrokeWidth || !g.Highlighted {
				t.Errorf("after Highlight: %+v", g.Body)
			}
			if g.Clip != clip {
				t.Errorf("Highlight touched the clip region: %+v", g.Clip)
			}

			sh.Unhighlight(g)
			sh.Unhighlight(g)
			if g.Body != drawn || g.Highlighted {
				t.Errorf("Unhighlight did not restore body: %+v, want %+v", g.Body, drawn)
			}
		})
	}
}

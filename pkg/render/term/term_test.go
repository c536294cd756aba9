package term

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/label"
	"github.com/matzehuels/forcegraph/pkg/route"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

func TestGridRoundTrip(t *testing.T) {
	g := GridFor(10, 5)
	if w, h := g.Size(); w != 80 || h != 80 {
		t.Fatalf("Size = %vx%v, want 80x80", w, h)
	}

	tests := []struct {
		name     string
		p        geom.Vec
		col, row int
		ok       bool
	}{
		{"origin", geom.V(0, 0), 0, 0, true},
		{"inside", geom.V(44, 40), 5, 2, true},
		{"right edge", geom.V(80, 10), 10, 0, false},
		{"negative", geom.V(-1, 10), -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := g.ToCell(tt.p)
			if col != tt.col || row != tt.row || ok != tt.ok {
				t.Errorf("ToCell(%v) = %d,%d,%v want %d,%d,%v", tt.p, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}

	col, row, ok := g.ToCell(g.ToScreen(7, 3))
	if !ok || col != 7 || row != 3 {
		t.Errorf("ToCell(ToScreen(7,3)) = %d,%d,%v", col, row, ok)
	}
}

func frame(nodes ...scene.Group) *scene.Frame {
	return &scene.Frame{Width: 80, Height: 80, View: geom.Identity, Nodes: nodes}
}

func TestRasterizeBodies(t *testing.T) {
	f := frame(scene.Group{ID: 1, Pos: geom.V(40, 40), Body: scene.Element{Kind: scene.KindCircle, R: 10}})
	c := Rasterize(f, GridFor(10, 5))

	for _, cell := range [][2]int{{4, 2}, {5, 2}} {
		if r, k := c.At(cell[0], cell[1]); r != runeBody || k != KindBody {
			t.Errorf("cell %v = %q/%d, want body", cell, r, k)
		}
	}
	for _, cell := range [][2]int{{3, 2}, {6, 2}, {5, 1}} {
		if _, k := c.At(cell[0], cell[1]); k != KindEmpty {
			t.Errorf("cell %v kind = %d, want empty", cell, k)
		}
	}

	// zoom 2 around the origin doubles both position and radius
	f.View = geom.Transform{Zoom: 2}
	f.Nodes[0].Pos = geom.V(20, 20)
	f.Nodes[0].Highlighted = true
	c = Rasterize(f, GridFor(10, 5))
	if _, k := c.At(3, 2); k != KindHighlight {
		t.Errorf("zoomed cell (3,2) kind = %d, want highlight", k)
	}
}

func TestRasterizeTinyBodyStillVisible(t *testing.T) {
	f := frame(scene.Group{ID: 1, Pos: geom.V(41, 41), Pinned: true, Body: scene.Element{Kind: scene.KindCircle, R: 1}})
	c := Rasterize(f, GridFor(10, 5))
	if r, k := c.At(5, 2); r != runePinned || k != KindPinned {
		t.Errorf("cell (5,2) = %q/%d, want pinned marker", r, k)
	}
}

func TestRasterizeEdges(t *testing.T) {
	f := frame()
	f.Edges = []scene.EdgePath{
		{Path: route.Path{From: geom.V(4, 72), To: geom.V(76, 72)}},
		{Path: route.Path{From: geom.V(4, 8), To: geom.V(4, 56)}},
	}
	c := Rasterize(f, GridFor(10, 5))
	lines := c.Lines()

	if lines[4] != strings.Repeat("─", 10) {
		t.Errorf("horizontal edge row = %q", lines[4])
	}
	for row := 1; row <= 3; row++ {
		if r, _ := c.At(0, row); r != '│' {
			t.Errorf("vertical edge at row %d = %q", row, r)
		}
	}
}

func TestRasterizeLabels(t *testing.T) {
	rect := scene.Element{Kind: scene.KindRect, W: 60, H: 20}
	tests := []struct {
		name  string
		text  string
		want  string
		runes int
	}{
		{"ascii", "ab", "ab", 10},
		{"wide runes take two cells", "日本", "日本", 8},
		{"clipped to body", "abcdefghij", "abcdefg", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frame(scene.Group{
				ID: 1, Pos: geom.V(44, 40), Body: rect, ShowLabel: true,
				Label: label.Layout{Lines: []label.Line{{Text: tt.text}}},
			})
			c := Rasterize(f, GridFor(10, 5))
			row := c.Lines()[2]
			if !strings.Contains(row, tt.want) {
				t.Errorf("row = %q, want it to contain %q", row, tt.want)
			}
			if n := utf8.RuneCountInString(row); n != tt.runes {
				t.Errorf("row has %d runes, want %d", n, tt.runes)
			}
			if !strings.Contains(c.Render(DefaultStyles()), tt.want) {
				t.Error("styled output lost the label")
			}
		})
	}
}

func TestRasterizeMultiLineLabel(t *testing.T) {
	f := frame(scene.Group{
		ID: 1, Pos: geom.V(44, 40), ShowLabel: true,
		Body:  scene.Element{Kind: scene.KindRect, W: 60, H: 60},
		Label: label.Layout{Lines: []label.Line{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
	})
	c := Rasterize(f, GridFor(10, 5))
	for row, want := range map[int]rune{1: 'a', 2: 'b', 3: 'c'} {
		if r, k := c.At(5, row); r != want || k != KindLabel {
			t.Errorf("row %d = %q/%d, want %q", row, r, k, want)
		}
	}
}

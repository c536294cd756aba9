package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/label"
	"github.com/matzehuels/forcegraph/pkg/route"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

func circle(r float64) scene.Element {
	return scene.Element{Kind: scene.KindCircle, R: r, Fill: scene.DefaultFill}
}

func testFrame() *scene.Frame {
	hid := graph.NodeID(2)
	return &scene.Frame{
		Seq:      4,
		Width:    400,
		Height:   300,
		View:     geom.Transform{Zoom: 2, Pan: geom.V(10, 20)},
		FontSize: scene.DefaultFontSize,
		Edges: []scene.EdgePath{
			{Path: route.Path{Index: 0, From: geom.V(50, 50), To: geom.V(150, 50)}, Source: 1, Target: 2, Weight: 1},
			{
				Path:   route.Path{Index: 1, From: geom.V(150, 50), To: geom.V(50, 50), Control: geom.V(100, 65), Curved: true, Offset: 15},
				Source: 2, Target: 1, Weight: 2,
			},
		},
		Nodes: []scene.Group{
			{
				ID: 1, Shape: graph.ShapeCircle, Pos: geom.V(50, 50), Size: 30,
				Body: circle(30), Clip: scene.Element{Kind: scene.KindCircle, R: 28}, HasClip: true,
				Text: "alpha", ShowLabel: true, Label: label.NewFitter(56).Fit("alpha", 2),
			},
			{
				ID: 2, Shape: graph.ShapeRectangle, Pos: geom.V(150, 50), Size: 30,
				Body: scene.Element{
					Kind: scene.KindRect, W: 75, H: 45, RX: 6, Fill: scene.DefaultFill,
					Stroke: scene.HighlightStroke, StrokeWidth: scene.HighlightStrokeWidth,
				},
				Text: "beta", Highlighted: true, Pinned: true,
			},
		},
		Highlighted: &hid,
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testFrame()))

	for _, want := range []string{
		"<svg",
		`id="clip-1"`,
		"translate(10.00,20.00) scale(2.0000)",
		`stroke="#999999"`,
		"M50.00,50.00 L150.00,50.00",
		"M150.00,50.00 Q100.00,65.00 50.00,50.00",
		`id="node-1"`,
		`id="node-2"`,
		`clip-path="url(#clip-1)"`,
		">alpha<",
		`stroke="#ff4444"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	if strings.Contains(out, "clip-2") {
		t.Error("node without a clip region must not get a clipPath")
	}
	if strings.Contains(out, ">beta<") {
		t.Error("hidden label was drawn")
	}
}

func TestRenderSVGFitContent(t *testing.T) {
	out := string(RenderSVG(testFrame(), WithFitContent(), WithBackground("#000000")))

	// bodies start at (20,20); padding by 20 puts the corner at the origin
	if !strings.Contains(out, "translate(0.00,0.00) scale(1.0000)") {
		t.Errorf("fit content should drop the view transform:\n%s", out)
	}
	if !strings.Contains(out, `fill="#000000"`) {
		t.Error("background not drawn")
	}
}

func TestRenderPNG(t *testing.T) {
	f := testFrame()
	f.View = geom.Identity
	f.Nodes[0].ShowLabel = false

	data, err := RenderPNG(f, WithPixelScale(2))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("image is %dx%d, want 800x600", b.Dx(), b.Dy())
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint32
	}{
		{"background", 5, 5, 0xff, 0xff, 0xff},
		{"circle body", 100 - 30, 100 + 30, 0x69, 0xb3, 0xa2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, _ := img.At(tt.x, tt.y).RGBA()
			if r>>8 != tt.r || g>>8 != tt.g || b>>8 != tt.b {
				t.Errorf("pixel (%d,%d) = #%02x%02x%02x, want #%02x%02x%02x",
					tt.x, tt.y, r>>8, g>>8, b>>8, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRenderPNGRejectsEmptyCanvas(t *testing.T) {
	f := &scene.Frame{Width: 0, Height: 100, View: geom.Identity}
	if _, err := RenderPNG(f); err == nil {
		t.Error("expected an error for a zero-width frame")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testFrame())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var got struct {
		Seq  uint64 `json:"seq"`
		View struct {
			Zoom float64 `json:"zoom"`
		} `json:"view"`
		Highlighted *int64 `json:"highlighted"`
		Nodes       []struct {
			ID     int64    `json:"id"`
			Label  []string `json:"label"`
			Pinned bool     `json:"pinned"`
		} `json:"nodes"`
		Edges []struct {
			Offset float64   `json:"offset"`
			Path   string    `json:"path"`
			Mid    []float64 `json:"mid"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Seq != 4 || got.View.Zoom != 2 {
		t.Errorf("seq/zoom = %d/%v", got.Seq, got.View.Zoom)
	}
	if got.Highlighted == nil || *got.Highlighted != 2 {
		t.Errorf("highlighted = %v", got.Highlighted)
	}
	if len(got.Nodes) != 2 || len(got.Nodes[0].Label) == 0 || got.Nodes[0].Label[0] != "alpha" {
		t.Errorf("nodes = %+v", got.Nodes)
	}
	if got.Nodes[1].Label != nil || !got.Nodes[1].Pinned {
		t.Errorf("node 2 = %+v", got.Nodes[1])
	}
	if len(got.Edges) != 2 || got.Edges[1].Offset != 15 {
		t.Fatalf("edges = %+v", got.Edges)
	}
	// quadratic midpoint: (P0 + 2C + P2) / 4
	if got.Edges[1].Mid[0] != 100 || got.Edges[1].Mid[1] != 57.5 {
		t.Errorf("curved mid = %v, want [100 57.5]", got.Edges[1].Mid)
	}
}

package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/label"
	"github.com/matzehuels/forcegraph/pkg/route"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

func frame() *scene.Frame {
	return &scene.Frame{
		Width: 200, Height: 200, View: geom.Identity,
		Nodes: []scene.Group{
			{
				ID: 1, Pos: geom.V(40, 80), ShowLabel: true, Text: "Node 1 with a very long label",
				Body:  scene.Element{Kind: scene.KindCircle, R: 30, Fill: scene.DefaultFill},
				Label: label.NewFitter(56).Fit("Node 1 with a very long label", 1),
			},
			{
				ID: 2, Pos: geom.V(160, 80), Highlighted: true,
				Body: scene.Element{Kind: scene.KindRect, W: 75, H: 45},
			},
		},
		Edges: []scene.EdgePath{
			{Path: route.Path{From: geom.V(40, 80), To: geom.V(160, 80)}, Source: 1, Target: 2, Weight: 2.7},
		},
	}
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
		deny []string
	}{
		{
			name: "full text",
			want: []string{
				"layout=neato;",
				`1 [label="Node 1 with a very long label", shape=circle, width=0.625, height=0.625, pos="30.00,-60.00!"`,
				`2 [label="", shape=box, width=0.781, height=0.469, pos="120.00,-60.00!", fillcolor="#69b3a2", color="#ff4444", penwidth=3]`,
				"1 -> 2 [weight=2];",
			},
		},
		{
			name: "fitted labels",
			opts: Options{Labels: true},
			want: []string{`label="Node 1\nwith a\nve..."`},
			deny: []string{"very long label"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(frame(), tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("DOT missing %q\n%s", w, dot)
				}
			}
			for _, d := range tt.deny {
				if strings.Contains(dot, d) {
					t.Errorf("DOT should not contain %q", d)
				}
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("root not rewritten: %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("body changed: %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

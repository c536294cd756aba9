package sink

import (
	"encoding/json"

	"github.com/matzehuels/forcegraph/pkg/scene"
)

type frameJSON struct {
	Seq         uint64     `json:"seq"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	View        viewJSON   `json:"view"`
	Nodes       []nodeJSON `json:"nodes"`
	Edges       []edgeJSON `json:"edges"`
	Highlighted *int64     `json:"highlighted,omitempty"`
}

type viewJSON struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

type nodeJSON struct {
	ID          int64    `json:"id"`
	Text        string   `json:"text"`
	Shape       string   `json:"shape"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Pinned      bool     `json:"pinned,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
	Label       []string `json:"label,omitempty"`
}

type edgeJSON struct {
	Index  int       `json:"index"`
	Source int64     `json:"source"`
	Target int64     `json:"target"`
	Weight float64   `json:"weight"`
	Offset float64   `json:"offset,omitempty"`
	Path   string    `json:"path"`
	Mid    []float64 `json:"mid"`
}

// RenderJSON serializes the frame's geometry.
func RenderJSON(f *scene.Frame) ([]byte, error) {
	out := frameJSON{
		Seq:    f.Seq,
		Width:  f.Width,
		Height: f.Height,
		View:   viewJSON{Zoom: zoomOf(f.View.Zoom), PanX: f.View.Pan.X, PanY: f.View.Pan.Y},
		Nodes:  make([]nodeJSON, 0, len(f.Nodes)),
		Edges:  make([]edgeJSON, 0, len(f.Edges)),
	}
	if f.Highlighted != nil {
		id := int64(*f.Highlighted)
		out.Highlighted = &id
	}

	for _, n := range f.Nodes {
		nj := nodeJSON{
			ID:          int64(n.ID),
			Text:        n.Text,
			Shape:       string(n.Shape),
			X:           n.Pos.X,
			Y:           n.Pos.Y,
			Pinned:      n.Pinned,
			Highlighted: n.Highlighted,
		}
		if n.ShowLabel {
			nj.Label = n.Label.Texts()
		}
		out.Nodes = append(out.Nodes, nj)
	}

	for _, e := range f.Edges {
		mid := e.At(0.5)
		out.Edges = append(out.Edges, edgeJSON{
			Index:  e.Index,
			Source: int64(e.Source),
			Target: int64(e.Target),
			Weight: e.Weight,
			Offset: e.Offset,
			Path:   e.D(),
			Mid:    []float64{mid.X, mid.Y},
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

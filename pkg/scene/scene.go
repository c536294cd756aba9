// Package scene is the retained drawing surface shared by the engine and
// the renderers.
//
// A [Surface] keeps one [Group] per node for the lifetime of a graph. Shapes
// draw into a group once, highlight toggles mutate it in place, and every
// frame the engine refreshes positions and labels before taking an
// immutable [Frame] snapshot for the renderers.
package scene

import (
	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/label"
	"github.com/matzehuels/forcegraph/pkg/route"
)

// Default node styling.
const (
	DefaultFill          = "#69b3a2"
	DefaultEdgeStroke    = "#999999"
	DefaultLabelColor    = "#ffffff"
	HighlightStroke      = "#ff4444"
	HighlightStrokeWidth = 3.0
	DefaultFontSize      = 10.0
)

// Kind is the primitive an Element draws.
type Kind int

const (
	KindCircle Kind = iota
	KindRect
)

func (k Kind) String() string {
	if k == KindRect {
		return "rect"
	}
	return "circle"
}

// Element is a primitive centered on its group's origin.
type Element struct {
	Kind Kind
	// R is the radius of a circle.
	R float64
	// W and H are the full width and height of a rect; RX rounds its corners.
	W, H, RX float64

	Fill        string
	Stroke      string
	StrokeWidth float64
}

// HalfExtent returns half the element's width and height.
func (e Element) HalfExtent() geom.Vec {
	if e.Kind == KindCircle {
		return geom.Vec{X: e.R, Y: e.R}
	}
	return geom.Vec{X: e.W / 2, Y: e.H / 2}
}

// Group is everything drawn for one node.
type Group struct {
	ID    graph.NodeID
	Shape graph.Shape
	Pos   geom.Vec
	Size  float64

	Body Element
	// Clip bounds the label. It is 2px inside the body on every side.
	Clip    Element
	HasClip bool

	Text        string
	ShowLabel   bool
	Label       label.Layout
	Highlighted bool
	Pinned      bool
}

// Surface retains the groups of one graph.
type Surface struct {
	Width, Height float64

	groups map[graph.NodeID]*Group
	order  []graph.NodeID
}

// NewSurface returns an empty surface of the given size.
func NewSurface(width, height float64) *Surface {
	return &Surface{Width: width, Height: height, groups: make(map[graph.NodeID]*Group)}
}

// Reset tears down every group.
func (s *Surface) Reset() {
	s.groups = make(map[graph.NodeID]*Group)
	s.order = nil
}

// Add creates the group for id, replacing any existing one.
func (s *Surface) Add(id graph.NodeID) *Group {
	if _, ok := s.groups[id]; !ok {
		s.order = append(s.order, id)
	}
	g := &Group{ID: id}
	s.groups[id] = g
	return g
}

// Group returns the group for id.
func (s *Surface) Group(id graph.NodeID) (*Group, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// Groups returns the groups in creation order, which is also draw order.
func (s *Surface) Groups() []*Group {
	out := make([]*Group, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.groups[id])
	}
	return out
}

// Len returns the number of groups.
func (s *Surface) Len() int { return len(s.order) }

// EdgePath is one routed edge in a frame.
type EdgePath struct {
	route.Path
	Source, Target graph.NodeID
	Weight         float64
}

// Frame is an immutable snapshot of one render pass.
type Frame struct {
	Seq           uint64
	Width, Height float64
	View          geom.Transform
	FontSize      float64

	Edges []EdgePath
	Nodes []Group
	// Highlighted is the id of the highlighted node, if any.
	Highlighted *graph.NodeID
}

// Snapshot copies the surface's groups into a frame.
func (s *Surface) Snapshot(seq uint64, view geom.Transform, edges []EdgePath) *Frame {
	f := &Frame{
		Seq:      seq,
		Width:    s.Width,
		Height:   s.Height,
		View:     view,
		FontSize: DefaultFontSize,
		Edges:    edges,
		Nodes:    make([]Group, 0, len(s.order)),
	}
	for _, id := range s.order {
		g := *s.groups[id]
		if g.Highlighted {
			hid := g.ID
			f.Highlighted = &hid
		}
		f.Nodes = append(f.Nodes, g)
	}
	return f
}

// Bounds returns the simulation-space bounding box of all node bodies.
func (f *Frame) Bounds() (geom.Bounds, bool) {
	pts := make([]geom.Vec, 0, 2*len(f.Nodes))
	for _, n := range f.Nodes {
		h := n.Body.HalfExtent()
		pts = append(pts, n.Pos.Sub(h), n.Pos.Add(h))
	}
	return geom.BoundsOf(pts)
}

package graph

import (
	"strings"

	"github.com/matzehuels/forcegraph/pkg/geom"
)

// NodeID identifies a node within one graph.
type NodeID int64

// Shape selects how a node is drawn.
type Shape string

// Supported shapes.
const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
	ShapeSquare    Shape = "square"
)

// Shapes lists every supported shape in declaration order.
var Shapes = []Shape{ShapeCircle, ShapeRectangle, ShapeSquare}

// ParseShape maps a shape name to a Shape. Matching ignores case and
// surrounding space; unknown or empty names fall back to ShapeCircle.
func ParseShape(s string) Shape {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeRectangle:
		return ShapeRectangle
	case ShapeSquare:
		return ShapeSquare
	default:
		return ShapeCircle
	}
}

// Node is a positioned, drawable vertex.
//
// FX and FY pin the node: while both are set the integrator places the node
// exactly there and never integrates it.
type Node struct {
	ID       NodeID   `json:"id"`
	Name     string   `json:"name"`
	Shape    Shape    `json:"shape"`
	ShowText bool     `json:"showText"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	VX       float64  `json:"vx"`
	VY       float64  `json:"vy"`
	FX       *float64 `json:"fx,omitempty"`
	FY       *float64 `json:"fy,omitempty"`
}

// Pos returns the current position.
func (n *Node) Pos() geom.Vec { return geom.Vec{X: n.X, Y: n.Y} }

// SetPos moves the node without touching its velocity.
func (n *Node) SetPos(p geom.Vec) { n.X, n.Y = p.X, p.Y }

// Pinned reports whether the node's position is overridden.
func (n *Node) Pinned() bool { return n.FX != nil && n.FY != nil }

// Pin fixes the node at (x, y) and zeroes its velocity.
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
	n.X, n.Y = x, y
	n.VX, n.VY = 0, 0
}

// PinPos returns the pinned position; ok is false when unpinned.
func (n *Node) PinPos() (p geom.Vec, ok bool) {
	if !n.Pinned() {
		return geom.Vec{}, false
	}
	return geom.Vec{X: *n.FX, Y: *n.FY}, true
}

// Unpin releases the override. The node resumes from its current position
// with zero velocity.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
	n.VX, n.VY = 0, 0
}

// Label returns the display text, falling back to the numeric id.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return formatID(n.ID)
}

// Edge is a weighted connection. Direction matters for storage and for the
// drawn path; routing groups edges by their unordered endpoint pair.
type Edge struct {
	Source NodeID  `json:"source"`
	Target NodeID  `json:"target"`
	Weight float64 `json:"weight"`
}

// SkippedEdge records an input edge that New dropped.
type SkippedEdge struct {
	Index  int
	Edge   Edge
	Reason string
}

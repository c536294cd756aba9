// Package shape draws node bodies.
//
// Each [graph.Shape] maps to one [Shape] strategy through a lookup table,
// so adding a variant means adding a type and a table entry. All variants
// share the same contract:
//
//   - Draw emits the body at a canonical size (radius or half extent).
//   - ClipRegion emits a region 2px inside the body, used to keep labels
//     inside the shape.
//   - Highlight and Unhighlight toggle the body stroke only. They are
//     idempotent and undo each other.
//
// Extent and HitRadius expose the same geometry to hit-testing and label
// fitting.
package shape

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// DefaultSize is the canonical size parameter of a node.
const DefaultSize = 30.0

// ClipInset is how far the clip region sits inside the body on each side.
const ClipInset = 2.0

// Shape is the drawing strategy of one node shape.
type Shape interface {
	Draw(g *scene.Group, size float64)
	ClipRegion(g *scene.Group, size float64)
	Highlight(g *scene.Group)
	Unhighlight(g *scene.Group)
	// Extent returns the half width and half height of the body.
	Extent(size float64) geom.Vec
	// HitRadius is the pointer distance below which the node is hit.
	HitRadius(size float64) float64
	// VisibleWidth is the width of the clip region, the label's budget.
	VisibleWidth(size float64) float64
}

var table = map[graph.Shape]Shape{
	graph.ShapeCircle:    Circle{},
	graph.ShapeRectangle: Rectangle{},
	graph.ShapeSquare:    Square{},
}

// For returns the strategy for s. Unknown shapes draw as circles.
func For(s graph.Shape) Shape {
	if sh, ok := table[s]; ok {
		return sh
	}
	return Circle{}
}

// Circle draws a disc of radius size.
type Circle struct{}

func (Circle) Draw(g *scene.Group, size float64) {
	g.Size = size
	g.Body = scene.Element{Kind: scene.KindCircle, R: size, Fill: scene.DefaultFill}
}

func (Circle) ClipRegion(g *scene.Group, size float64) {
	g.Clip = scene.Element{Kind: scene.KindCircle, R: math.Max(0, size-ClipInset)}
	g.HasClip = true
}

func (Circle) Highlight(g *scene.Group)   { highlight(g) }
func (Circle) Unhighlight(g *scene.Group) { unhighlight(g) }

func (Circle) Extent(size float64) geom.Vec      { return geom.Vec{X: size, Y: size} }
func (Circle) HitRadius(size float64) float64    { return size }
func (Circle) VisibleWidth(size float64) float64 { return 2 * math.Max(0, size-ClipInset) }

// Rectangle draws a rounded box 2.5*size wide and 1.5*size tall.
type Rectangle struct{}

const (
	rectWidthFactor  = 2.5
	rectHeightFactor = 1.5
	rectCornerRadius = 5.0
)

func (Rectangle) Draw(g *scene.Group, size float64) {
	g.Size = size
	g.Body = scene.Element{
		Kind: scene.KindRect,
		W:    rectWidthFactor * size,
		H:    rectHeightFactor * size,
		RX:   rectCornerRadius,
		Fill: scene.DefaultFill,
	}
}

func (Rectangle) ClipRegion(g *scene.Group, size float64) {
	g.Clip = scene.Element{
		Kind: scene.KindRect,
		W:    math.Max(0, rectWidthFactor*size-2*ClipInset),
		H:    math.Max(0, rectHeightFactor*size-2*ClipInset),
		RX:   rectCornerRadius,
	}
	g.HasClip = true
}

func (Rectangle) Highlight(g *scene.Group)   { highlight(g) }
func (Rectangle) Unhighlight(g *scene.Group) { unhighlight(g) }

func (Rectangle) Extent(size float64) geom.Vec {
	return geom.Vec{X: rectWidthFactor * size / 2, Y: rectHeightFactor * size / 2}
}

func (r Rectangle) HitRadius(size float64) float64 {
	e := r.Extent(size)
	return math.Max(e.X, e.Y)
}

func (Rectangle) VisibleWidth(size float64) float64 {
	return math.Max(0, rectWidthFactor*size-2*ClipInset)
}

// Square draws a box with side 2*size.
type Square struct{}

func (Square) Draw(g *scene.Group, size float64) {
	g.Size = size
	g.Body = scene.Element{Kind: scene.KindRect, W: 2 * size, H: 2 * size, Fill: scene.DefaultFill}
}

func (Square) ClipRegion(g *scene.Group, size float64) {
	side := 2 * math.Max(0, size-ClipInset)
	g.Clip = scene.Element{Kind: scene.KindRect, W: side, H: side}
	g.HasClip = true
}

func (Square) Highlight(g *scene.Group)   { highlight(g) }
func (Square) Unhighlight(g *scene.Group) { unhighlight(g) }

func (Square) Extent(size float64) geom.Vec      { return geom.Vec{X: size, Y: size} }
func (Square) HitRadius(size float64) float64    { return size }
func (Square) VisibleWidth(size float64) float64 { return 2 * math.Max(0, size-ClipInset) }

func highlight(g *scene.Group) {
	g.Body.Stroke = scene.HighlightStroke
	g.Body.StrokeWidth = scene.HighlightStrokeWidth
	g.Highlighted = true
}

func unhighlight(g *scene.Group) {
	g.Body.Stroke = ""
	g.Body.StrokeWidth = 0
	g.Highlighted = false
}

package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/forcegraph/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	edgeStroke string
	labelColor string
	fitContent bool
}

// WithBackground fills the canvas before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithEdgeStroke sets the edge color.
func WithEdgeStroke(color string) SVGOption { return func(r *svgRenderer) { r.edgeStroke = color } }

// WithFitContent ignores the frame's pan and zoom and sizes the canvas to
// the graph's bounds instead.
func WithFitContent() SVGOption { return func(r *svgRenderer) { r.fitContent = true } }

// RenderSVG draws the frame as a standalone SVG document.
func RenderSVG(f *scene.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{
		edgeStroke: scene.DefaultEdgeStroke,
		labelColor: scene.DefaultLabelColor,
	}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := f.Width, f.Height
	view := f.View
	if r.fitContent {
		view, width, height = fitView(f, 20)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	if r.background != "" {
		canvas.Rect(0, 0, width, height, attr("fill", r.background))
	}

	canvas.Def()
	for _, n := range f.Nodes {
		if n.HasClip && n.ShowLabel {
			canvas.ClipPath(attr("id", clipID(n)))
			drawElement(canvas, n.Clip)
			canvas.ClipEnd()
		}
	}
	canvas.DefEnd()

	canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) scale(%.4f)", view.Pan.X, view.Pan.Y, zoomOf(view.Zoom)))

	canvas.Group(`class="edges"`, `fill="none"`, attr("stroke", r.edgeStroke), `stroke-width="1"`)
	for _, e := range f.Edges {
		canvas.Path(e.D(), fmt.Sprintf(`id="edge-%d"`, e.Index))
	}
	canvas.Gend()

	for _, n := range f.Nodes {
		canvas.Group(fmt.Sprintf(`id="node-%d"`, n.ID), fmt.Sprintf(`transform="translate(%.2f,%.2f)"`, n.Pos.X, n.Pos.Y))
		drawElement(canvas, n.Body)
		if n.ShowLabel && len(n.Label.Lines) > 0 {
			drawLabel(canvas, n, f.FontSize, r.labelColor)
		}
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func attr(name, value string) string { return fmt.Sprintf("%s=%q", name, value) }

func clipID(n scene.Group) string { return fmt.Sprintf("clip-%d", n.ID) }

func zoomOf(z float64) float64 {
	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return 1
	}
	return z
}

func drawElement(canvas *svg.SVG, e scene.Element) {
	style := []string{}
	if e.Fill != "" {
		style = append(style, attr("fill", e.Fill))
	}
	if e.Stroke != "" {
		style = append(style, attr("stroke", e.Stroke), fmt.Sprintf(`stroke-width="%g"`, e.StrokeWidth))
	}
	switch e.Kind {
	case scene.KindRect:
		if e.RX > 0 {
			canvas.Roundrect(-e.W/2, -e.H/2, e.W, e.H, e.RX, e.RX, style...)
			return
		}
		canvas.Rect(-e.W/2, -e.H/2, e.W, e.H, style...)
	default:
		canvas.Circle(0, 0, e.R, style...)
	}
}

// drawLabel writes one text element per line. Label layouts are fitted in
// screen pixels at scale Label.Scale, so the font is divided by the scale
// to come out at FontSize on screen.
func drawLabel(canvas *svg.SVG, n scene.Group, fontSize float64, color string) {
	scale := n.Label.Scale
	if !(scale > 0) {
		scale = 1
	}
	size := fontSize / scale

	opts := []string{
		`text-anchor="middle"`,
		`dominant-baseline="central"`,
		fmt.Sprintf(`font-size="%.2f"`, size),
		`font-family="sans-serif"`,
		attr("fill", color),
	}
	if n.HasClip {
		opts = append(opts, fmt.Sprintf(`clip-path="url(#%s)"`, clipID(n)))
	}
	canvas.Group(opts...)
	for _, ln := range n.Label.Lines {
		canvas.Text(0, ln.Offset*size, ln.Text)
	}
	canvas.Gend()
}

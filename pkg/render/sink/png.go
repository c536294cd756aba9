package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	background string
	edgeStroke string
	labelColor string
	pixelScale float64
	fitContent bool
}

// WithPNGBackground fills the canvas before drawing. The default is white.
func WithPNGBackground(color string) PNGOption { return func(r *pngRenderer) { r.background = color } }

// WithPixelScale renders at a multiple of the frame size.
func WithPixelScale(s float64) PNGOption { return func(r *pngRenderer) { r.pixelScale = s } }

// WithPNGFitContent sizes the image to the graph's bounds.
func WithPNGFitContent() PNGOption { return func(r *pngRenderer) { r.fitContent = true } }

// RenderPNG rasterizes the frame.
func RenderPNG(f *scene.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		background: "#ffffff",
		edgeStroke: scene.DefaultEdgeStroke,
		labelColor: scene.DefaultLabelColor,
		pixelScale: 1,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.pixelScale > 0) {
		r.pixelScale = 1
	}

	width, height := f.Width, f.Height
	view := f.View
	if r.fitContent {
		view, width, height = fitView(f, 20)
	}
	w := int(math.Ceil(width * r.pixelScale))
	h := int(math.Ceil(height * r.pixelScale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot render a %dx%d image", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(r.background)
	dc.Clear()

	dc.Scale(r.pixelScale, r.pixelScale)
	dc.Translate(view.Pan.X, view.Pan.Y)
	zoom := zoomOf(view.Zoom)
	dc.Scale(zoom, zoom)

	dc.SetHexColor(r.edgeStroke)
	dc.SetLineWidth(1 / zoom)
	for _, e := range f.Edges {
		dc.MoveTo(e.From.X, e.From.Y)
		if e.Curved {
			dc.QuadraticTo(e.Control.X, e.Control.Y, e.To.X, e.To.Y)
		} else {
			dc.LineTo(e.To.X, e.To.Y)
		}
		dc.Stroke()
	}

	for _, n := range f.Nodes {
		dc.Push()
		dc.Translate(n.Pos.X, n.Pos.Y)
		paintElement(dc, n.Body)
		if n.ShowLabel && len(n.Label.Lines) > 0 {
			paintLabel(dc, n, f.FontSize, r.labelColor)
		}
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

func tracePath(dc *gg.Context, e scene.Element) {
	switch e.Kind {
	case scene.KindRect:
		dc.DrawRoundedRectangle(-e.W/2, -e.H/2, e.W, e.H, e.RX)
	default:
		dc.DrawCircle(0, 0, e.R)
	}
}

func paintElement(dc *gg.Context, e scene.Element) {
	if e.Fill != "" {
		tracePath(dc, e)
		dc.SetHexColor(e.Fill)
		dc.Fill()
	}
	if e.Stroke != "" && e.StrokeWidth > 0 {
		tracePath(dc, e)
		dc.SetHexColor(e.Stroke)
		dc.SetLineWidth(e.StrokeWidth)
		dc.Stroke()
	}
}

// paintLabel uses gg's built-in face, which is fixed at 13px. The text is
// scaled so the rendered cap height tracks fontSize on screen.
func paintLabel(dc *gg.Context, n scene.Group, fontSize float64, color string) {
	scale := n.Label.Scale
	if !(scale > 0) {
		scale = 1
	}
	size := fontSize / scale
	k := size / builtinFontSize

	dc.Push()
	if n.HasClip {
		tracePath(dc, n.Clip)
		dc.Clip()
	}
	dc.SetHexColor(color)
	dc.Scale(k, k)
	for _, ln := range n.Label.Lines {
		dc.DrawStringAnchored(ln.Text, 0, ln.Offset*size/k, 0.5, 0.35)
	}
	dc.ResetClip()
	dc.Pop()
}

const builtinFontSize = 13.0

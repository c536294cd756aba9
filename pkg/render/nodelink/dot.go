package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// pointsPerPixel converts simulation pixels to Graphviz points at 96 dpi.
const pointsPerPixel = 0.75

// Options configures DOT generation.
type Options struct {
	// Labels uses the fitted label lines instead of the full node text.
	Labels bool
}

// ToDOT converts a laid-out frame to Graphviz DOT. Every node carries a
// pinned position, so neato reproduces the force layout instead of
// computing its own. The y axis is flipped into Graphviz's bottom-up space.
func ToDOT(f *scene.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=10, fontcolor=white, fixedsize=true, penwidth=0];\n")
	buf.WriteString("  edge [color=\"#999999\", arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes {
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		attrs := []string{fmt.Sprintf("weight=%d", max(1, int(e.Weight)))}
		if e.Curved {
			attrs = append(attrs, fmt.Sprintf("comment=\"offset %.1f\"", e.Offset))
		}
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n scene.Group, opts Options) []string {
	text := n.Text
	if opts.Labels {
		text = strings.Join(n.Label.Texts(), "\n")
	}
	if !n.ShowLabel {
		text = ""
	}

	half := n.Body.HalfExtent()
	attrs := []string{
		fmt.Sprintf("label=%q", text),
		"shape=" + dotShape(n.Body),
		fmt.Sprintf("width=%.3f", 2*half.X*pointsPerPixel/72),
		fmt.Sprintf("height=%.3f", 2*half.Y*pointsPerPixel/72),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Pos.X*pointsPerPixel, 0-n.Pos.Y*pointsPerPixel),
		fmt.Sprintf("fillcolor=%q", fillOf(n.Body)),
	}
	if n.Highlighted {
		attrs = append(attrs, fmt.Sprintf("color=%q", scene.HighlightStroke),
			fmt.Sprintf("penwidth=%g", scene.HighlightStrokeWidth))
	}
	return attrs
}

func dotShape(e scene.Element) string {
	if e.Kind == scene.KindRect {
		return "box"
	}
	return "circle"
}

func fillOf(e scene.Element) string {
	if e.Fill == "" {
		return scene.DefaultFill
	}
	return e.Fill
}

// RenderSVG lays out DOT source with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in user units, so the SVG scales like the sink output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

package pipeline

import (
	"context"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/render/nodelink"
	"github.com/matzehuels/forcegraph/pkg/render/sink"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// Render writes the frame in every requested format.
func Render(ctx context.Context, f *scene.Frame, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, f, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, f *scene.Frame, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(f, svgOptions(opts)...), nil
	case FormatPDF:
		return render.ToPDF(sink.RenderSVG(f, svgOptions(opts)...))
	case FormatPNG:
		return sink.RenderPNG(f, pngOptions(opts)...)
	case FormatJSON:
		return sink.RenderJSON(f)
	case FormatDOT:
		return []byte(nodelink.ToDOT(f, nodelink.Options{Labels: opts.Labels})), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(f, nodelink.Options{Labels: opts.Labels}))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Background != "" {
		out = append(out, sink.WithBackground(opts.Background))
	}
	if opts.FitContent {
		out = append(out, sink.WithFitContent())
	}
	return out
}

func pngOptions(opts Options) []sink.PNGOption {
	out := []sink.PNGOption{sink.WithPixelScale(opts.PixelScale)}
	if opts.Background != "" {
		out = append(out, sink.WithPNGBackground(opts.Background))
	}
	if opts.FitContent {
		out = append(out, sink.WithPNGFitContent())
	}
	return out
}

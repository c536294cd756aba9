// Package render holds format conversion shared by the renderers.
//
// The subpackages do the drawing:
//
//   - [sink]: SVG, PNG and JSON output of an engine frame
//   - [nodelink]: DOT export and Graphviz rendering of a frame
//   - [term]: character-cell rasterization for the terminal viewer
//
// [ToPDF] converts any SVG produced by them using the external rsvg-convert
// tool (from librsvg).
//
//	svg := sink.RenderSVG(frame)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/forcegraph/pkg/render/sink
// [nodelink]: github.com/matzehuels/forcegraph/pkg/render/nodelink
// [term]: github.com/matzehuels/forcegraph/pkg/render/term
package render

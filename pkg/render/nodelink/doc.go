// Package nodelink hands a force layout to Graphviz.
//
// [ToDOT] writes a laid-out frame as DOT with every node pinned at its
// simulated position, so the result can be post-processed by the Graphviz
// toolchain. [RenderSVG] runs that DOT through neato in-process:
//
//	dot := nodelink.ToDOT(frame, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly; no system installation is needed.
package nodelink

// Package pkg provides the libraries behind forcegraph, an interactive
// force-directed graph explorer.
//
// # Overview
//
// forcegraph settles a weighted graph with a spring-electrical simulation
// and draws it: nodes as labelled circles, rectangles or squares, edges as
// straight or bowed paths so parallel edges stay apart. The pkg directory is
// organized into four areas:
//
//  1. Model - [graph], [geom], [errors]
//  2. Simulation and interaction - [physics], [interact], [engine], [provider]
//  3. Drawing - [shape], [label], [route], [scene], [render]
//  4. Plumbing - [io], [pipeline], [cache], [config], [observability]
//
// # Architecture
//
// The data flow through one frame:
//
//	graph file / provider.Store
//	         ↓
//	    [graph] (validated nodes and edges)
//	         ↓
//	    [physics] (one integration step)
//	         ↓
//	    [route] + [label] + [shape] (edge paths, fitted labels, bodies)
//	         ↓
//	    [scene].Frame
//	         ↓
//	    [render] sinks: SVG, PNG, PDF, JSON, DOT, terminal
//
// [engine] owns the loop: it rebuilds on new provider snapshots, applies
// pointer and keyboard input through [interact], and produces frames.
//
// # Quick Start
//
// Settle the demo graph and write an SVG:
//
//	import (
//	    "github.com/matzehuels/forcegraph/pkg/engine"
//	    "github.com/matzehuels/forcegraph/pkg/provider"
//	    "github.com/matzehuels/forcegraph/pkg/render/sink"
//	)
//
//	e := engine.New(engine.DefaultConfig())
//	defer e.Dispose()
//	_ = e.Rebuild(provider.Demo())
//	for range 300 {
//	    _, _ = e.Frame()
//	}
//	e.Controller().Center()
//	f, _ := e.Snapshot()
//	svg := sink.RenderSVG(f)
//
// Or run the whole load → simulate → render flow with caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "graph.json",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//
// # Main Packages
//
// [graph] - Nodes, edges and the validated [graph.Graph]. Bad edges are
// dropped and reported, never fatal.
//
// [physics] - Repulsion, weighted springs and optional gravity, integrated
// with a fixed damping. Pinned nodes never move.
//
// [interact] - Hit testing, click-to-highlight, drag-to-pin, pan and zoom,
// and the debouncer used for resizes and file watching.
//
// [engine] - The frame loop tying simulation, interaction and drawing
// together, with a single-goroutine Run driven by a [provider.Source].
//
// [route] - Edge paths. Edges between the same pair of nodes fan out into
// quadratic curves.
//
// [label] - Fits node names into the shape's visible width at the current
// zoom, over up to three lines.
//
// [render] - Output sinks for SVG, PNG and JSON ([render/sink]), Graphviz
// DOT ([render/nodelink]), terminal cells ([render/term]), and PDF through
// rsvg-convert.
//
// [io] - JSON, TOML, YAML and DOT graph files.
//
// [pipeline] - Headless load → layout → render with a layout and artifact
// [cache], used by the CLI.
//
// [observability] - Hooks for engine and pipeline events; [observability/metrics]
// implements them with Prometheus.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/graph
// [geom]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/geom
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/errors
// [physics]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/physics
// [interact]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/interact
// [engine]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/engine
// [provider]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/provider
// [provider.Source]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/provider#Source
// [graph.Graph]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/graph#Graph
// [shape]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/shape
// [label]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/label
// [route]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/route
// [scene]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render/nodelink
// [render/term]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render/term
// [io]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/observability
// [observability/metrics]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/observability/metrics
package pkg

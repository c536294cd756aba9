// Package io reads and writes graphs as JSON, TOML, YAML and DOT.
//
// # Document Format
//
// The structured formats share one document shape, two arrays:
//
//	{
//	  "nodes": [
//	    {"id": 1, "name": "Gateway", "shape": "rectangle"},
//	    {"id": 2, "name": "Cache"}
//	  ],
//	  "edges": [
//	    {"source": 1, "target": 2, "weight": 1.5}
//	  ]
//	}
//
// In TOML the arrays are [[nodes]] and [[edges]] tables; YAML uses the same
// keys as JSON.
//
// # Node Fields
//
// Required:
//   - id: integer, unique within the document
//
// Optional:
//   - name: display text (defaults to the id)
//   - shape: "circle", "rectangle" or "square" (defaults to circle)
//   - showText: whether the label is drawn (defaults to true)
//   - x, y: starting position (unplaced nodes are scattered)
//   - fx, fy: pin the node; both must be present
//
// Edges default to weight 1. The decoders only check structure; duplicate
// ids and dangling edges are reported by graph.New.
//
// # DOT
//
// [ReadDOT] parses Graphviz DOT with go-graphviz. Numeric node names become
// ids; other names are assigned ids after the largest numeric one and kept
// as the display name. The "label" and "shape" node attributes are honored,
// and an edge's weight is read from "len" or "weight". [ToDOT] emits the
// same subset plus node positions.
//
// # Files
//
// [ImportFile] and [ExportFile] pick the format from the file extension.
package io

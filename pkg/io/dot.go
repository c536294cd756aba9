package io

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// ReadDOT parses a Graphviz graph. Nodes appear in declaration order and
// edges in the order Graphviz walks them (by tail node, then declaration).
func ReadDOT(ctx context.Context, data []byte) ([]graph.Node, []graph.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	g, err := graphviz.ParseBytes(data)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var (
		names []string
		attrs = map[string]*cgraph.Node{}
	)
	n, err := g.FirstNode()
	for ; err == nil && n != nil; n, err = g.NextNode(n) {
		name, nerr := n.Name()
		if nerr != nil {
			return nil, nil, fmt.Errorf("node name: %w", nerr)
		}
		names = append(names, name)
		attrs[name] = n
	}
	if err != nil {
		return nil, nil, fmt.Errorf("walk nodes: %w", err)
	}

	ids := assignIDs(names)
	nodes := make([]graph.Node, len(names))
	for i, name := range names {
		gn := attrs[name]
		nd := graph.Node{ID: ids[name], Shape: dotShape(gn.GetStr("shape")), ShowText: true}
		if label := gn.GetStr("label"); label != "" && label != `\N` {
			nd.Name = label
		} else if _, numeric := parseID(name); !numeric {
			nd.Name = name
		}
		nodes[i] = nd
	}

	var edges []graph.Edge
	for _, name := range names {
		e, err := g.FirstOut(attrs[name])
		for ; err == nil && e != nil; e, err = g.NextOut(e) {
			head, herr := e.Head()
			if herr != nil {
				return nil, nil, fmt.Errorf("edge head: %w", herr)
			}
			target, herr := head.Name()
			if herr != nil {
				return nil, nil, fmt.Errorf("edge head: %w", herr)
			}
			edges = append(edges, graph.Edge{
				Source: ids[name],
				Target: ids[target],
				Weight: dotWeight(e.GetStr("len"), e.GetStr("weight")),
			})
		}
		if err != nil {
			return nil, nil, fmt.Errorf("walk edges of %s: %w", name, err)
		}
	}
	return nodes, edges, nil
}

func parseID(name string) (graph.NodeID, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(name), 10, 64)
	return graph.NodeID(v), err == nil
}

// assignIDs keeps numeric names as ids and numbers the rest after the
// largest numeric id.
func assignIDs(names []string) map[string]graph.NodeID {
	ids := make(map[string]graph.NodeID, len(names))
	var next graph.NodeID
	for _, name := range names {
		if id, ok := parseID(name); ok {
			ids[name] = id
			next = max(next, id)
		}
	}
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			next++
			ids[name] = next
		}
	}
	return ids
}

func dotShape(s string) graph.Shape {
	switch strings.ToLower(s) {
	case "box", "rect", "rectangle":
		return graph.ShapeRectangle
	case "square":
		return graph.ShapeSquare
	default:
		return graph.ShapeCircle
	}
}

// dotWeight reads the first numeric value of len or weight. Graphviz's
// own weight must be an integer for dot, so exports use len.
func dotWeight(values ...string) float64 {
	for _, s := range values {
		if w, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return w
		}
	}
	return 1
}

var dotShapes = map[graph.Shape]string{
	graph.ShapeCircle:    "circle",
	graph.ShapeRectangle: "box",
	graph.ShapeSquare:    "square",
}

// ToDOT converts a graph to Graphviz DOT. Node positions are written as
// "pos" attributes in points, y flipped to Graphviz's upward axis.
func ToDOT(nodes []graph.Node, edges []graph.Edge) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=\"#69b3a2\", fontcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label()),
			"shape=" + dotShapes[graph.ParseShape(string(n.Shape))],
			fmt.Sprintf("pos=\"%.2f,%.2f\"", n.X, 0-n.Y),
		}
		if n.Pinned() {
			attrs = append(attrs, "pin=true")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %d -> %d [len=%s];\n", e.Source, e.Target, strconv.FormatFloat(e.Weight, 'g', -1, 64))
	}

	buf.WriteString("}\n")
	return buf.String()
}

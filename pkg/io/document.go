package io

import (
	"github.com/matzehuels/forcegraph/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []edge `json:"edges" toml:"edges" yaml:"edges"`
}

type node struct {
	ID       int64    `json:"id" toml:"id" yaml:"id"`
	Name     string   `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Shape    string   `json:"shape,omitempty" toml:"shape,omitempty" yaml:"shape,omitempty"`
	ShowText *bool    `json:"showText,omitempty" toml:"showText,omitempty" yaml:"showText,omitempty"`
	X        *float64 `json:"x,omitempty" toml:"x,omitempty" yaml:"x,omitempty"`
	Y        *float64 `json:"y,omitempty" toml:"y,omitempty" yaml:"y,omitempty"`
	FX       *float64 `json:"fx,omitempty" toml:"fx,omitempty" yaml:"fx,omitempty"`
	FY       *float64 `json:"fy,omitempty" toml:"fy,omitempty" yaml:"fy,omitempty"`
}

type edge struct {
	Source int64    `json:"source" toml:"source" yaml:"source"`
	Target int64    `json:"target" toml:"target" yaml:"target"`
	Weight *float64 `json:"weight,omitempty" toml:"weight,omitempty" yaml:"weight,omitempty"`
}

func (d document) graph() ([]graph.Node, []graph.Edge) {
	nodes := make([]graph.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		nd := graph.Node{
			ID:       graph.NodeID(n.ID),
			Name:     n.Name,
			Shape:    graph.ParseShape(n.Shape),
			ShowText: n.ShowText == nil || *n.ShowText,
		}
		if n.X != nil {
			nd.X = *n.X
		}
		if n.Y != nil {
			nd.Y = *n.Y
		}
		if n.FX != nil && n.FY != nil {
			nd.Pin(*n.FX, *n.FY)
		}
		nodes[i] = nd
	}

	edges := make([]graph.Edge, len(d.Edges))
	for i, e := range d.Edges {
		w := 1.0
		if e.Weight != nil {
			w = *e.Weight
		}
		edges[i] = graph.Edge{Source: graph.NodeID(e.Source), Target: graph.NodeID(e.Target), Weight: w}
	}
	return nodes, edges
}

func toDocument(nodes []graph.Node, edges []graph.Edge) document {
	d := document{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}
	for i, n := range nodes {
		nd := node{ID: int64(n.ID), Name: n.Name}
		if n.Shape != "" && n.Shape != graph.ShapeCircle {
			nd.Shape = string(n.Shape)
		}
		if !n.ShowText {
			hide := false
			nd.ShowText = &hide
		}
		x, y := n.X, n.Y
		nd.X, nd.Y = &x, &y
		if p, ok := n.PinPos(); ok {
			nd.FX, nd.FY = &p.X, &p.Y
		}
		d.Nodes[i] = nd
	}
	for i, e := range edges {
		ed := edge{Source: int64(e.Source), Target: int64(e.Target)}
		if e.Weight != 1 {
			w := e.Weight
			ed.Weight = &w
		}
		d.Edges[i] = ed
	}
	return d
}

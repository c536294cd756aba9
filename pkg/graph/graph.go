package graph

import (
	"strconv"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/geom"
)

// Graph indexes a node set and the edges between them.
type Graph struct {
	nodes []*Node
	edges []Edge
	index map[NodeID]int

	// Skipped lists the input edges New dropped, in input order.
	Skipped []SkippedEdge
}

// New builds a graph from copies of nodes and edges.
//
// A duplicate node id is an error. Edges with an unknown endpoint or an
// invalid weight are dropped and reported in Skipped. Non-finite node
// coordinates are reset to zero.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]*Node, 0, len(nodes)),
		edges: make([]Edge, 0, len(edges)),
		index: make(map[NodeID]int, len(nodes)),
	}

	for _, n := range nodes {
		if _, dup := g.index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateNode, "node %d declared more than once", n.ID)
		}
		nd := n
		nd.Shape = ParseShape(string(n.Shape))
		sanitize(&nd)
		g.index[nd.ID] = len(g.nodes)
		g.nodes = append(g.nodes, &nd)
	}

	for i, e := range edges {
		if reason := g.check(e); reason != "" {
			g.Skipped = append(g.Skipped, SkippedEdge{Index: i, Edge: e, Reason: reason})
			continue
		}
		g.edges = append(g.edges, e)
	}
	return g, nil
}

func (g *Graph) check(e Edge) string {
	if _, ok := g.index[e.Source]; !ok {
		return "unknown source node " + formatID(e.Source)
	}
	if _, ok := g.index[e.Target]; !ok {
		return "unknown target node " + formatID(e.Target)
	}
	if err := errors.ValidateWeight(e.Weight); err != nil {
		return errors.UserMessage(err)
	}
	return ""
}

func sanitize(n *Node) {
	n.X, n.Y = geom.OrZero(n.X), geom.OrZero(n.Y)
	n.VX, n.VY = geom.OrZero(n.VX), geom.OrZero(n.VY)
	if n.FX != nil && !geom.Finite(*n.FX) || n.FY != nil && !geom.Finite(*n.FY) {
		n.FX, n.FY = nil, nil
	}
	if n.Pinned() {
		x, y := *n.FX, *n.FY
		n.FX, n.FY = &x, &y
	}
}

// Nodes returns the nodes in insertion order. The slice is shared; the
// nodes are live.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the kept edges. Edge indices are stable for the lifetime
// of the graph.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of kept edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Bounds returns the bounding box of all node positions.
func (g *Graph) Bounds() (geom.Bounds, bool) {
	pts := make([]geom.Vec, len(g.nodes))
	for i, n := range g.nodes {
		pts[i] = n.Pos()
	}
	return geom.BoundsOf(pts)
}

// Snapshot returns value copies of the nodes and edges, suitable for
// handing to another goroutine or serializing.
func (g *Graph) Snapshot() ([]Node, []Edge) {
	nodes := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		nodes[i] = *n
		if n.Pinned() {
			x, y := *n.FX, *n.FY
			nodes[i].FX, nodes[i].FY = &x, &y
		}
	}
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return nodes, edges
}

func formatID(id NodeID) string {
	return strconv.FormatInt(int64(id), 10)
}

// Package route computes draw paths for edges, separating parallel edges.
//
// Edges between the same unordered pair of nodes form a group. A group of
// one is drawn as a straight line; larger groups fan out as quadratic
// curves whose control points sit at symmetric offsets from the straight
// line's midpoint:
//
//	offset(i) = spacing * (i - (N-1)/2)
//
// Paths are recomputed from live node positions every frame. Only the
// grouping is cached, and it is rebuilt whenever the edge set changes.
package route

import (
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// DefaultSpacing is the perpendicular distance between neighbouring
// parallel edges.
const DefaultSpacing = 30.0

// PairKey identifies an unordered node pair.
type PairKey struct {
	Lo, Hi graph.NodeID
}

// Key returns the direction-independent key for a and b.
func Key(a, b graph.NodeID) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// Groups maps each pair to the indices of its edges, in input order.
type Groups map[PairKey][]int

// Group collects edges by unordered endpoint pair.
func Group(edges []graph.Edge) Groups {
	g := make(Groups)
	for i, e := range edges {
		k := Key(e.Source, e.Target)
		g[k] = append(g[k], i)
	}
	return g
}

// Offset returns the signed curve offset of member i in a group of n.
func Offset(i, n int, spacing float64) float64 {
	if n <= 1 {
		return 0
	}
	return spacing * (float64(i) - float64(n-1)/2)
}

// Path is one edge's drawable geometry.
type Path struct {
	// Index is the edge's position in the routed edge list.
	Index    int
	From, To geom.Vec
	// Control is the quadratic control point. It is only meaningful when
	// Curved is true.
	Control geom.Vec
	Curved  bool
	// Offset is the signed perpendicular displacement actually applied.
	Offset float64
}

// D renders the path as SVG path data.
func (p Path) D() string {
	if p.Curved {
		return fmt.Sprintf("M%.2f,%.2f Q%.2f,%.2f %.2f,%.2f",
			p.From.X, p.From.Y, p.Control.X, p.Control.Y, p.To.X, p.To.Y)
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f", p.From.X, p.From.Y, p.To.X, p.To.Y)
}

// At evaluates the path at t in [0, 1].
func (p Path) At(t float64) geom.Vec {
	if !p.Curved {
		return p.From.Add(p.To.Sub(p.From).Scale(t))
	}
	u := 1 - t
	return p.From.Scale(u * u).Add(p.Control.Scale(2 * u * t)).Add(p.To.Scale(t * t))
}

// Positions resolves a node id to its current simulation position.
type Positions interface {
	Position(id graph.NodeID) (geom.Vec, bool)
}

// PositionFunc adapts a function to Positions.
type PositionFunc func(id graph.NodeID) (geom.Vec, bool)

func (f PositionFunc) Position(id graph.NodeID) (geom.Vec, bool) { return f(id) }

type slot struct {
	key  PairKey
	i, n int
}

// Router holds the grouping of one edge set.
type Router struct {
	spacing float64
	edges   []graph.Edge
	groups  Groups
	slots   []slot
}

// NewRouter groups edges. A non-positive spacing selects DefaultSpacing.
func NewRouter(edges []graph.Edge, spacing float64) *Router {
	if !(spacing > 0) || !geom.Finite(spacing) {
		spacing = DefaultSpacing
	}
	r := &Router{
		spacing: spacing,
		edges:   edges,
		groups:  Group(edges),
		slots:   make([]slot, len(edges)),
	}
	for k, members := range r.groups {
		for i, idx := range members {
			r.slots[idx] = slot{key: k, i: i, n: len(members)}
		}
	}
	return r
}

// Groups returns the grouping. Callers must not modify it.
func (r *Router) Groups() Groups { return r.groups }

// Len returns the number of routed edges.
func (r *Router) Len() int { return len(r.edges) }

// PathFor computes the path of edge idx from the current positions.
// It returns false when idx is out of range or an endpoint is unknown.
func (r *Router) PathFor(idx int, pos Positions) (Path, bool) {
	if idx < 0 || idx >= len(r.edges) {
		return Path{}, false
	}
	e := r.edges[idx]
	from, ok := pos.Position(e.Source)
	if !ok {
		return Path{}, false
	}
	to, ok := pos.Position(e.Target)
	if !ok {
		return Path{}, false
	}

	p := Path{Index: idx, From: from, To: to}
	s := r.slots[idx]
	off := Offset(s.i, s.n, r.spacing)
	if off == 0 || !from.Finite() || !to.Finite() {
		return p, true
	}

	// The normal comes from the canonical Lo->Hi direction so that a->b
	// and b->a members of one group fan out to opposite sides.
	lo, hi := from, to
	if e.Source != s.key.Lo {
		lo, hi = to, from
	}
	normal, ok := hi.Sub(lo).Normal()
	if !ok {
		return p, true
	}

	ctrl := from.Mid(to).Add(normal.Scale(off))
	if !ctrl.Finite() {
		return p, true
	}
	p.Control = ctrl
	p.Curved = true
	p.Offset = off
	return p, true
}

// Paths computes every edge path. Edges whose endpoints cannot be
// resolved are omitted and reported by index.
func (r *Router) Paths(pos Positions) (paths []Path, missing []int) {
	paths = make([]Path, 0, len(r.edges))
	for i := range r.edges {
		p, ok := r.PathFor(i, pos)
		if !ok {
			missing = append(missing, i)
			continue
		}
		paths = append(paths, p)
	}
	return paths, missing
}

package physics

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Params are the integrator constants.
type Params struct {
	Repulsion      float64
	SpringConstant float64
	SpringLength   float64
	Damping        float64
	MinDistance    float64
	// Gravity pulls free nodes toward the center. Zero disables it.
	Gravity float64
}

// DefaultParams returns the standard constants.
func DefaultParams() Params {
	return Params{
		Repulsion:      8000,
		SpringConstant: 0.05,
		SpringLength:   200,
		Damping:        0.5,
		MinDistance:    1,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if !(p.MinDistance > 0) {
		p.MinDistance = d.MinDistance
	}
	if !(p.Damping > 0) || p.Damping >= 1 {
		p.Damping = d.Damping
	}
	return p
}

// Stats summarizes the most recent step.
type Stats struct {
	Step     uint64
	Energy   float64 // sum of squared speeds of free nodes
	MaxSpeed float64
	Resets   int // nodes restored after a non-finite update
}

// Simulation integrates the nodes of one graph.
type Simulation struct {
	id     string
	params Params
	center geom.Vec

	nodes []*graph.Node
	edges []graph.Edge
	index map[graph.NodeID]int
	force []geom.Vec

	stats    Stats
	stepping bool
	disposed bool
}

// New creates a simulation over g. A nil graph yields an empty simulation.
func New(g *graph.Graph, p Params) *Simulation {
	s := &Simulation{id: uuid.NewString(), params: p.withDefaults()}
	s.load(g)
	return s
}

// ID identifies the simulation in logs.
func (s *Simulation) ID() string { return s.id }

// Params returns the active constants.
func (s *Simulation) Params() Params { return s.params }

// Stats returns the statistics of the last step.
func (s *Simulation) Stats() Stats { return s.stats }

// Nodes returns the simulated nodes.
func (s *Simulation) Nodes() []*graph.Node { return s.nodes }

// Disposed reports whether Dispose was called.
func (s *Simulation) Disposed() bool { return s.disposed }

// Center returns the force-center reference.
func (s *Simulation) Center() geom.Vec { return s.center }

// SetCenter moves the force-center reference.
func (s *Simulation) SetCenter(c geom.Vec) {
	if c.Finite() {
		s.center = c
	}
}

// Rebuild replaces the simulated graph. All previous state is dropped.
func (s *Simulation) Rebuild(g *graph.Graph) error {
	if s.disposed {
		return errors.New(errors.ErrCodeDisposed, "simulation %s is disposed", s.id)
	}
	if s.stepping {
		return errors.New(errors.ErrCodeBusy, "simulation %s is stepping", s.id)
	}
	s.load(g)
	return nil
}

func (s *Simulation) load(g *graph.Graph) {
	s.nodes, s.edges = nil, nil
	s.index = make(map[graph.NodeID]int)
	s.stats = Stats{}
	if g == nil {
		s.force = nil
		return
	}
	s.nodes = g.Nodes()
	s.edges = g.Edges()
	for i, n := range s.nodes {
		s.index[n.ID] = i
	}
	s.force = make([]geom.Vec, len(s.nodes))
}

// Dispose ends the simulation. Further steps fail.
func (s *Simulation) Dispose() {
	s.disposed = true
	s.nodes, s.edges, s.force = nil, nil, nil
	s.index = nil
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() error {
	if s.disposed {
		return errors.New(errors.ErrCodeDisposed, "simulation %s is disposed", s.id)
	}
	if s.stepping {
		return errors.New(errors.ErrCodeBusy, "simulation %s is already stepping", s.id)
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	s.accumulate()
	s.integrate()
	return nil
}

func (s *Simulation) accumulate() {
	p := s.params
	for i := range s.force {
		s.force[i] = geom.Vec{}
	}

	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			dir, d := separation(s.nodes[i], s.nodes[j], p.MinDistance)
			f := dir.Scale(p.Repulsion / (d * d))
			s.force[i] = s.force[i].Add(f)
			s.force[j] = s.force[j].Sub(f)
		}
	}

	for _, e := range s.edges {
		a, okA := s.index[e.Source]
		b, okB := s.index[e.Target]
		if !okA || !okB || a == b {
			continue
		}
		// dir points from b to a; d is the raw distance.
		dir, _ := separation(s.nodes[a], s.nodes[b], p.MinDistance)
		d := s.nodes[a].Pos().Dist(s.nodes[b].Pos())
		stretch := p.SpringConstant * (d - p.SpringLength*e.Weight)
		f := dir.Scale(stretch)
		s.force[a] = s.force[a].Sub(f)
		s.force[b] = s.force[b].Add(f)
	}

	if p.Gravity != 0 {
		for i, n := range s.nodes {
			s.force[i] = s.force[i].Add(s.center.Sub(n.Pos()).Scale(p.Gravity))
		}
	}
}

func (s *Simulation) integrate() {
	damping := s.params.Damping
	st := Stats{Step: s.stats.Step + 1}

	for i, n := range s.nodes {
		if pin, ok := n.PinPos(); ok {
			n.SetPos(pin)
			n.VX, n.VY = 0, 0
			continue
		}

		prev := n.Pos()
		vx := (n.VX + s.force[i].X) * damping
		vy := (n.VY + s.force[i].Y) * damping
		next := geom.Vec{X: prev.X + vx, Y: prev.Y + vy}

		if !next.Finite() || !geom.Finite(vx) || !geom.Finite(vy) {
			n.SetPos(sanitize(prev))
			n.VX, n.VY = 0, 0
			st.Resets++
			continue
		}
		n.VX, n.VY = vx, vy
		n.SetPos(next)

		speed2 := vx*vx + vy*vy
		st.Energy += speed2
		st.MaxSpeed = math.Max(st.MaxSpeed, math.Sqrt(speed2))
	}
	s.stats = st
}

func sanitize(p geom.Vec) geom.Vec {
	return geom.Vec{X: geom.OrZero(p.X), Y: geom.OrZero(p.Y)}
}

// goldenAngle spreads coincident pairs around the circle.
const goldenAngle = 2.399963229728653

// separation returns the unit vector pointing from b to a and the distance
// between them floored at minDist. Coincident nodes get a direction derived
// from their ids so they separate deterministically.
func separation(a, b *graph.Node, minDist float64) (geom.Vec, float64) {
	delta := a.Pos().Sub(b.Pos())
	d := delta.Len()
	if dir, ok := delta.Unit(); ok {
		return dir, math.Max(d, minDist)
	}

	lo, hi, sign := a.ID, b.ID, 1.0
	if lo > hi {
		lo, hi, sign = hi, lo, -1.0
	}
	theta := goldenAngle * float64(lo*31+hi)
	dir := geom.Vec{X: math.Cos(theta), Y: math.Sin(theta)}.Scale(sign)
	return dir, minDist
}

// Package engine drives one interactive force-directed graph.
//
// An [Engine] owns a physics simulation, an edge router, an interaction
// controller and the retained scene surface. Each call to [Engine.Frame]
// steps the simulation once, routes every edge from the live positions,
// refits labels at the current zoom and returns an immutable snapshot for
// a renderer.
//
// All engine state belongs to one goroutine. [Engine.Run] is that
// goroutine when the engine is driven by a ticker and a provider; other
// goroutines hand input over with [Engine.Post].
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/interact"
	"github.com/matzehuels/forcegraph/pkg/label"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/physics"
	"github.com/matzehuels/forcegraph/pkg/route"
	"github.com/matzehuels/forcegraph/pkg/scene"
	"github.com/matzehuels/forcegraph/pkg/shape"
)

// eventBuffer is the capacity of the Post queue.
const eventBuffer = 256

// Engine is the frame-driven owner of one graph.
type Engine struct {
	id     string
	cfg    Config
	logger *log.Logger
	clock  interact.Clock
	hooks  observability.EngineHooks
	ticks  <-chan time.Time

	graph   *graph.Graph
	sim     *physics.Simulation
	router  *route.Router
	surface *scene.Surface
	ctrl    *interact.Controller
	resize  *interact.Debouncer[geom.Vec]

	seq      uint64
	framing  bool
	disposed bool
	restart  bool

	events   chan interact.Event
	done     chan struct{}
	stopOnce sync.Once
	runMu    sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock sets the clock behind the resize debouncer.
func WithClock(c interact.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithHooks sets the observability hooks. The default is the globally
// registered observability.Engine().
func WithHooks(h observability.EngineHooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithTicks replaces Run's frame ticker with c. Frames are produced once
// per receive.
func WithTicks(c <-chan time.Time) Option {
	return func(e *Engine) { e.ticks = c }
}

// New returns an engine with an empty graph.
func New(cfg Config, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		id:      uuid.NewString(),
		cfg:     cfg,
		logger:  log.Default(),
		clock:   interact.SystemClock,
		hooks:   observability.Engine(),
		surface: scene.NewSurface(cfg.Width, cfg.Height),
		ctrl:    interact.New(cfg.Interact),
		events:  make(chan interact.Event, eventBuffer),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resize = interact.NewDebouncer[geom.Vec](cfg.Interact.ResizeDebounce, e.clock)
	e.sim = physics.New(nil, cfg.Physics)
	e.sim.SetCenter(geom.Vec{X: cfg.Width / 2, Y: cfg.Height / 2})
	e.router = route.NewRouter(nil, cfg.EdgeSpacing)
	e.ctrl.OnHighlight(e.applyHighlight)
	e.ctrl.OnZoom(func(z float64) { e.logger.Debug("zoom", "engine", e.id, "zoom", z) })
	e.ctrl.Resize(cfg.Width, cfg.Height)
	return e
}

// ID identifies the engine in logs and metrics.
func (e *Engine) ID() string { return e.id }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Controller exposes the interaction controller.
func (e *Engine) Controller() *interact.Controller { return e.ctrl }

// Graph returns the current graph, or nil before the first Rebuild.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Simulation returns the live simulation.
func (e *Engine) Simulation() *physics.Simulation { return e.sim }

// Rebuild replaces the whole graph. Edges with unknown endpoints or bad
// weights are logged and skipped; a duplicate node id fails the rebuild
// and leaves the previous graph in place. Unplaced nodes are scattered
// around the surface center. The highlight survives when its node id does.
func (e *Engine) Rebuild(nodes []graph.Node, edges []graph.Edge) error {
	start := time.Now()
	err := e.rebuild(nodes, edges)
	var n, m, skipped int
	if err == nil {
		n, m, skipped = e.graph.NodeCount(), e.graph.EdgeCount(), len(e.graph.Skipped)
	}
	e.hooks.OnRebuild(context.Background(), e.id, n, m, skipped, time.Since(start), err)
	return err
}

func (e *Engine) rebuild(nodes []graph.Node, edges []graph.Edge) error {
	if e.disposed {
		return errors.New(errors.ErrCodeDisposed, "engine %s is disposed", e.id)
	}
	if e.framing {
		return errors.New(errors.ErrCodeBusy, "engine %s is rendering a frame", e.id)
	}

	g, err := graph.New(nodes, edges)
	if err != nil {
		return err
	}
	for _, s := range g.Skipped {
		e.logger.Warn("skipping edge",
			"index", s.Index, "source", s.Edge.Source, "target", s.Edge.Target, "reason", s.Reason)
	}

	center := geom.Vec{X: e.cfg.Width / 2, Y: e.cfg.Height / 2}
	placed := physics.Scatter(g.Nodes(), center, e.cfg.ScatterRadius, e.cfg.Seed)
	if err := e.sim.Rebuild(g); err != nil {
		return err
	}
	e.sim.SetCenter(center)

	e.graph = g
	e.router = route.NewRouter(g.Edges(), e.cfg.EdgeSpacing)

	e.surface.Reset()
	for _, n := range g.Nodes() {
		grp := e.surface.Add(n.ID)
		sh := shape.For(n.Shape)
		sh.Draw(grp, e.cfg.NodeSize)
		sh.ClipRegion(grp, e.cfg.NodeSize)
		grp.Shape = n.Shape
		grp.Text = n.Label()
		grp.ShowLabel = n.ShowText
		grp.Pos = n.Pos()
	}
	e.ctrl.SetNodes(g.Nodes())
	e.restart = true

	e.logger.Info("graph rebuilt", "engine", e.id,
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "skipped", len(g.Skipped), "scattered", placed)
	return nil
}

// applyHighlight mirrors a controller highlight change onto the retained
// groups.
func (e *Engine) applyHighlight(prev, next *graph.Node) {
	if prev != nil {
		if grp, ok := e.surface.Group(prev.ID); ok {
			shape.For(grp.Shape).Unhighlight(grp)
		}
	}
	if next != nil {
		if grp, ok := e.surface.Group(next.ID); ok {
			shape.For(grp.Shape).Highlight(grp)
		}
	}
}

// Frame advances the simulation one step and snapshots the scene.
// Calling Frame while a frame is in progress fails with ErrCodeBusy.
func (e *Engine) Frame() (*scene.Frame, error) {
	if e.disposed {
		return nil, errors.New(errors.ErrCodeDisposed, "engine %s is disposed", e.id)
	}
	if e.framing {
		return nil, errors.New(errors.ErrCodeBusy, "engine %s is already rendering a frame", e.id)
	}
	e.framing = true
	defer func() { e.framing = false }()

	start := time.Now()
	if err := e.sim.Step(); err != nil {
		e.hooks.OnFrameError(context.Background(), e.id, err)
		return nil, err
	}
	f := e.snapshot()

	st := e.sim.Stats()
	if st.Resets > 0 {
		e.logger.Warn("discarded non-finite node updates", "engine", e.id, "nodes", st.Resets, "step", st.Step)
	}
	e.hooks.OnFrame(context.Background(), e.id, observability.FrameStats{
		Seq:      f.Seq,
		Nodes:    len(f.Nodes),
		Edges:    len(f.Edges),
		Energy:   st.Energy,
		MaxSpeed: st.MaxSpeed,
		Resets:   st.Resets,
		Duration: time.Since(start),
	})
	return f, nil
}

// Snapshot returns the current scene without stepping the simulation.
func (e *Engine) Snapshot() (*scene.Frame, error) {
	if e.disposed {
		return nil, errors.New(errors.ErrCodeDisposed, "engine %s is disposed", e.id)
	}
	return e.snapshot(), nil
}

func (e *Engine) snapshot() *scene.Frame {
	zoom := e.ctrl.View().Zoom
	for _, n := range e.sim.Nodes() {
		grp, ok := e.surface.Group(n.ID)
		if !ok {
			continue
		}
		grp.Pos = n.Pos()
		grp.Pinned = n.Pinned()
		if grp.ShowLabel {
			fit := label.NewFitter(shape.For(grp.Shape).VisibleWidth(e.cfg.NodeSize))
			grp.Label = fit.Fit(grp.Text, zoom)
		}
	}

	var edges []scene.EdgePath
	if e.graph != nil {
		pos := route.PositionFunc(func(id graph.NodeID) (geom.Vec, bool) {
			n, ok := e.graph.Node(id)
			if !ok {
				return geom.Vec{}, false
			}
			return n.Pos(), true
		})
		paths, missing := e.router.Paths(pos)
		for _, idx := range missing {
			e.logger.Debug("edge has no endpoints", "engine", e.id, "index", idx)
		}
		all := e.graph.Edges()
		edges = make([]scene.EdgePath, 0, len(paths))
		for _, p := range paths {
			ed := all[p.Index]
			edges = append(edges, scene.EdgePath{Path: p, Source: ed.Source, Target: ed.Target, Weight: ed.Weight})
		}
	}

	e.seq++
	return e.surface.Snapshot(e.seq, e.ctrl.Transform(), edges)
}

// Dispatch applies an input event. Resize events are debounced.
// It must be called from the engine goroutine; use Post elsewhere.
func (e *Engine) Dispatch(ev interact.Event) {
	if e.disposed || ev == nil {
		return
	}
	e.hooks.OnInput(context.Background(), e.id, eventKind(ev))
	if r, ok := ev.(interact.Resize); ok {
		e.Resize(r.Width, r.Height)
		return
	}
	e.ctrl.Handle(ev)
}

// Post queues ev for the Run loop. It is safe to call from any goroutine
// and reports false when the queue is full or the engine is stopped.
func (e *Engine) Post(ev interact.Event) bool {
	select {
	case <-e.done:
		return false
	default:
	}
	select {
	case e.events <- ev:
		return true
	default:
		return false
	}
}

// Resize schedules a viewport change. Only the last size within the
// debounce window is applied.
func (e *Engine) Resize(width, height float64) {
	if e.disposed {
		return
	}
	if e.cfg.Interact.ResizeDebounce <= 0 {
		e.applyResize(geom.Vec{X: width, Y: height})
		return
	}
	e.resize.Schedule(geom.Vec{X: width, Y: height})
}

// FlushResize applies a pending resize immediately.
func (e *Engine) FlushResize() {
	if size, ok := e.resize.Flush(); ok {
		e.applyResize(size)
	}
}

func (e *Engine) applyResize(size geom.Vec) {
	if !(size.X > 0) || !(size.Y > 0) || !size.Finite() {
		return
	}
	e.cfg.Width, e.cfg.Height = size.X, size.Y
	e.surface.Width, e.surface.Height = size.X, size.Y
	e.sim.SetCenter(size.Scale(0.5))
	e.ctrl.Resize(size.X, size.Y)
	e.logger.Debug("resized", "engine", e.id, "width", size.X, "height", size.Y)
}

// Dispose stops Run, cancels the pending resize and releases the
// simulation. It is safe to call from any goroutine and more than once,
// but not from inside a Run sink.
func (e *Engine) Dispose() {
	e.stopOnce.Do(func() { close(e.done) })
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	e.resize.Cancel()
	e.sim.Dispose()
	e.surface.Reset()
	e.logger.Debug("engine disposed", "engine", e.id)
}

// Disposed reports whether Dispose was called.
func (e *Engine) Disposed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

func eventKind(ev interact.Event) string {
	switch ev.(type) {
	case interact.PointerDown:
		return "pointer_down"
	case interact.PointerMove:
		return "pointer_move"
	case interact.PointerUp:
		return "pointer_up"
	case interact.Wheel:
		return "wheel"
	case interact.Key:
		return "key"
	case interact.Resize:
		return "resize"
	default:
		return "other"
	}
}

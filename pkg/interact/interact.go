// Package interact turns pointer, wheel and key input into view and node
// changes.
//
// The [Controller] is a small state machine:
//
//	Idle --down on node-->  Dragging --move--> Dragging --up--> Idle
//	Idle --down elsewhere--> Panning --move--> Panning  --up--> Idle
//
// Dragging pins the node under the pointer and moves the pin by the
// pointer delta converted to simulation space. Panning moves the view by
// the raw screen delta. A press and release that never moved further than
// the click tolerance is a click, and clicking a node toggles its
// highlight. Wheel input zooms around the pointer.
//
// All coordinates given to the controller are screen coordinates; the
// conversion to simulation space goes through geom.Transform only.
package interact

import (
	"math"
	"time"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/shape"
)

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	Dragging
	Panning
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Panning:
		return "panning"
	default:
		return "idle"
	}
}

// Config tunes the controller.
type Config struct {
	MinZoom          float64
	MaxZoom          float64
	WheelSensitivity float64
	// ClickTolerance is how far (screen px) a press may travel and still
	// count as a click.
	ClickTolerance float64
	NodeSize       float64
	// RecenterOnResize keeps the graph centered when the viewport changes.
	RecenterOnResize bool
	ResizeDebounce   time.Duration
}

// DefaultConfig returns the standard interaction settings.
func DefaultConfig() Config {
	return Config{
		MinZoom:          0.1,
		MaxZoom:          5,
		WheelSensitivity: 0.001,
		ClickTolerance:   2,
		NodeSize:         shape.DefaultSize,
		RecenterOnResize: true,
		ResizeDebounce:   150 * time.Millisecond,
	}
}

// ViewState is the pan/zoom and selection state of the view.
type ViewState struct {
	Zoom        float64
	Pan         geom.Vec
	Dragged     *graph.Node
	Highlighted *graph.Node
}

// Transform returns the screen/simulation transform of the view.
func (v ViewState) Transform() geom.Transform {
	return geom.Transform{Zoom: v.Zoom, Pan: v.Pan}
}

// Controller owns the ViewState.
type Controller struct {
	cfg   Config
	view  ViewState
	state State
	nodes []*graph.Node

	width, height float64

	pressAt geom.Vec
	last    geom.Vec
	pressed *graph.Node
	moved   bool

	onHighlight func(prev, next *graph.Node)
	onZoom      func(zoom float64)
}

// New returns an idle controller at zoom 1 with no pan.
func New(cfg Config) *Controller {
	d := DefaultConfig()
	if !(cfg.MinZoom > 0) || !(cfg.MaxZoom > cfg.MinZoom) {
		cfg.MinZoom, cfg.MaxZoom = d.MinZoom, d.MaxZoom
	}
	if !(cfg.NodeSize > 0) {
		cfg.NodeSize = d.NodeSize
	}
	if cfg.WheelSensitivity == 0 {
		cfg.WheelSensitivity = d.WheelSensitivity
	}
	return &Controller{
		cfg:  cfg,
		view: ViewState{Zoom: geom.Clamp(1, cfg.MinZoom, cfg.MaxZoom)},
	}
}

// OnHighlight registers the callback run when the highlighted node
// changes. prev and next may be nil.
func (c *Controller) OnHighlight(fn func(prev, next *graph.Node)) { c.onHighlight = fn }

// OnZoom registers the callback run after the zoom factor changes.
func (c *Controller) OnZoom(fn func(zoom float64)) { c.onZoom = fn }

// Config returns the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// View returns a copy of the view state.
func (c *Controller) View() ViewState { return c.view }

// Transform returns the current screen/simulation transform.
func (c *Controller) Transform() geom.Transform { return c.view.Transform() }

// Viewport returns the last applied surface size.
func (c *Controller) Viewport() (w, h float64) { return c.width, c.height }

// SetNodes replaces the hit-testable nodes after a graph rebuild. Any
// gesture in progress is abandoned. The highlight survives only if a node
// with the same id exists in the new set.
func (c *Controller) SetNodes(nodes []*graph.Node) {
	c.nodes = nodes
	c.state = Idle
	c.pressed = nil
	c.view.Dragged = nil

	prev := c.view.Highlighted
	c.view.Highlighted = nil
	if prev == nil {
		return
	}
	for _, n := range nodes {
		if n.ID == prev.ID {
			c.view.Highlighted = n
			break
		}
	}
	if c.onHighlight != nil {
		c.onHighlight(nil, c.view.Highlighted)
	}
}

// SetView sets zoom and pan directly. Zoom is clamped.
func (c *Controller) SetView(zoom float64, pan geom.Vec) {
	if !geom.Finite(zoom) {
		zoom = 1
	}
	if !pan.Finite() {
		pan = geom.Vec{}
	}
	c.view.Pan = pan
	c.setZoom(zoom)
}

// HitTest returns the node under the screen point p, or nil. When several
// nodes qualify the closest wins, and on a tie the one drawn last.
func (c *Controller) HitTest(p geom.Vec) *graph.Node {
	q := c.Transform().ToSim(p)
	var best *graph.Node
	bestDist := math.Inf(1)
	for _, n := range c.nodes {
		d := q.Dist(n.Pos())
		if d >= shape.For(n.Shape).HitRadius(c.cfg.NodeSize) {
			continue
		}
		if d <= bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// PointerDown starts a drag on the node under p, or a pan otherwise.
func (c *Controller) PointerDown(p geom.Vec) {
	if c.state != Idle {
		c.PointerUp(c.last)
	}
	c.pressAt, c.last, c.moved = p, p, false

	n := c.HitTest(p)
	if n == nil {
		c.state = Panning
		return
	}
	q := c.Transform().ToSim(p)
	n.Pin(q.X, q.Y)
	c.pressed = n
	c.view.Dragged = n
	c.state = Dragging
}

// PointerMove continues the current gesture.
func (c *Controller) PointerMove(p geom.Vec) {
	if !p.Finite() {
		return
	}
	delta := p.Sub(c.last)
	c.last = p
	if p.Dist(c.pressAt) > c.cfg.ClickTolerance {
		c.moved = true
	}

	switch c.state {
	case Dragging:
		n := c.view.Dragged
		pin, _ := n.PinPos()
		next := pin.Add(c.Transform().DeltaToSim(delta))
		n.Pin(next.X, next.Y)
	case Panning:
		c.view.Pan = c.view.Pan.Add(delta)
	}
}

// PointerUp ends the current gesture. A press on a node that never moved
// beyond the click tolerance toggles that node's highlight.
func (c *Controller) PointerUp(p geom.Vec) {
	if p.Finite() && c.state != Idle {
		c.PointerMove(p)
	}
	switch c.state {
	case Dragging:
		n := c.view.Dragged
		n.Unpin()
		c.view.Dragged = nil
		if !c.moved && c.pressed == n {
			c.Toggle(n)
		}
	}
	c.state = Idle
	c.pressed = nil
}

// Toggle applies a click to n: clicking the highlighted node clears the
// highlight, clicking any other node moves the highlight to it.
func (c *Controller) Toggle(n *graph.Node) {
	if n == nil {
		return
	}
	if c.view.Highlighted == n {
		c.SetHighlight(nil)
		return
	}
	c.SetHighlight(n)
}

// SetHighlight makes n the only highlighted node. nil clears it.
func (c *Controller) SetHighlight(n *graph.Node) {
	prev := c.view.Highlighted
	if prev == n {
		return
	}
	c.view.Highlighted = n
	if c.onHighlight != nil {
		c.onHighlight(prev, n)
	}
}

// Wheel zooms by zoom*(1 - delta*sensitivity), keeping the simulation
// point under p fixed on screen.
func (c *Controller) Wheel(p geom.Vec, delta float64) {
	if !geom.Finite(delta) || delta == 0 {
		return
	}
	target := c.view.Zoom * (1 - delta*c.cfg.WheelSensitivity)
	target = geom.Clamp(target, c.cfg.MinZoom, c.cfg.MaxZoom)
	if target == c.view.Zoom {
		return
	}
	if p.Finite() {
		c.view.Pan = c.Transform().ZoomAt(p, target).Pan
	}
	c.setZoom(target)
}

// ZoomBy multiplies the zoom around the viewport center.
func (c *Controller) ZoomBy(factor float64) {
	if !(factor > 0) {
		return
	}
	target := geom.Clamp(c.view.Zoom*factor, c.cfg.MinZoom, c.cfg.MaxZoom)
	center := geom.Vec{X: c.width / 2, Y: c.height / 2}
	c.view.Pan = c.Transform().ZoomAt(center, target).Pan
	c.setZoom(target)
}

func (c *Controller) setZoom(z float64) {
	z = geom.Clamp(z, c.cfg.MinZoom, c.cfg.MaxZoom)
	changed := z != c.view.Zoom
	c.view.Zoom = z
	if changed && c.onZoom != nil {
		c.onZoom(z)
	}
}

// Center pans so the bounding box of all nodes sits in the middle of the
// viewport.
func (c *Controller) Center() {
	pts := make([]geom.Vec, len(c.nodes))
	for i, n := range c.nodes {
		pts[i] = n.Pos()
	}
	b, ok := geom.BoundsOf(pts)
	if !ok || c.width <= 0 || c.height <= 0 {
		return
	}
	c.view.Pan = c.Transform().CenterOn(b, c.width, c.height).Pan
}

// Resize applies a new viewport size, recentering when configured to.
func (c *Controller) Resize(width, height float64) {
	if !(width > 0) || !(height > 0) || !geom.Finite(width) || !geom.Finite(height) {
		return
	}
	c.width, c.height = width, height
	if c.cfg.RecenterOnResize {
		c.Center()
	}
}

// Key handles keyboard shortcuts. It reports whether the key was used.
func (c *Controller) Key(k string) bool {
	switch k {
	case "c":
		c.Center()
	case "+", "=":
		c.ZoomBy(1.25)
	case "-", "_":
		c.ZoomBy(0.8)
	case "0":
		c.SetView(1, c.view.Pan)
		c.Center()
	case "esc":
		c.SetHighlight(nil)
	default:
		return false
	}
	return true
}

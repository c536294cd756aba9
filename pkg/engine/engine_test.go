package engine

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/interact"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/provider"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func newDemoEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := New(DefaultConfig(), append([]Option{WithLogger(quiet())}, opts...)...)
	if err := e.Rebuild(provider.Demo()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return e
}

func group(f *scene.Frame, id graph.NodeID) (scene.Group, bool) {
	for _, g := range f.Nodes {
		if g.ID == id {
			return g, true
		}
	}
	return scene.Group{}, false
}

func TestParallelEdgesAreOffsetAfterOneStep(t *testing.T) {
	e := newDemoEngine(t)
	f, err := e.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(f.Edges) != 16 {
		t.Fatalf("frame has %d edges, want 16", len(f.Edges))
	}

	var parallel []scene.EdgePath
	for _, ed := range f.Edges {
		if ed.Source == 5 && ed.Target == 1 {
			parallel = append(parallel, ed)
			continue
		}
		if ed.Curved {
			t.Errorf("edge %d (%d->%d) is curved but has no parallel", ed.Index, ed.Source, ed.Target)
		}
	}
	if len(parallel) != 2 {
		t.Fatalf("found %d 5->1 edges, want 2", len(parallel))
	}

	a, b := parallel[0], parallel[1]
	if !a.Curved || !b.Curved {
		t.Fatal("parallel edges must be curved")
	}
	if a.Offset != -15 || b.Offset != 15 {
		t.Errorf("offsets = %v, %v; want -15, 15", a.Offset, b.Offset)
	}
	mid := a.From.Mid(a.To)
	if got := a.Control.Add(b.Control).Scale(0.5); !got.Eq(mid, 1e-9) {
		t.Errorf("control points are not symmetric about the midpoint %v: %v, %v", mid, a.Control, b.Control)
	}
	if d := a.Control.Dist(b.Control); math.Abs(d-30) > 1e-9 {
		t.Errorf("control points %v apart, want 30", d)
	}
}

func TestFrameFitsLabelsAtZoom(t *testing.T) {
	e := newDemoEngine(t)
	f, err := e.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	g, ok := group(f, 1)
	if !ok {
		t.Fatal("node 1 missing from frame")
	}
	want := []string{"Node 1", "with a", "ve..."}
	got := g.Label.Texts()
	if len(got) != len(want) {
		t.Fatalf("label = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	e.Controller().SetView(2, geom.Vec{})
	f, _ = e.Frame()
	g, _ = group(f, 1)
	if n := len(g.Label.Lines); n != 2 || g.Label.Scale != 2 {
		t.Errorf("at zoom 2 label = %q (scale %v), want two lines", g.Label.Texts(), g.Label.Scale)
	}
}

func TestRebuildSkipsBadEdges(t *testing.T) {
	e := New(DefaultConfig(), WithLogger(quiet()))
	nodes := []graph.Node{{ID: 1}, {ID: 2}}
	edges := []graph.Edge{
		{Source: 1, Target: 2, Weight: 1},
		{Source: 1, Target: 7, Weight: 1},
		{Source: 2, Target: 1, Weight: math.NaN()},
	}
	if err := e.Rebuild(nodes, edges); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if got := len(e.Graph().Skipped); got != 2 {
		t.Errorf("skipped = %d, want 2", got)
	}
	f, _ := e.Frame()
	if len(f.Edges) != 1 {
		t.Errorf("frame edges = %d, want 1", len(f.Edges))
	}
}

func TestRebuildDuplicateKeepsPreviousGraph(t *testing.T) {
	e := newDemoEngine(t)
	err := e.Rebuild([]graph.Node{{ID: 1}, {ID: 1}}, nil)
	if !errors.Is(err, errors.ErrCodeDuplicateNode) {
		t.Fatalf("error = %v, want DUPLICATE_NODE", err)
	}
	if e.Graph().NodeCount() != 10 {
		t.Errorf("graph has %d nodes, want the previous 10", e.Graph().NodeCount())
	}
}

func TestHighlightFollowsClicksAndRebuilds(t *testing.T) {
	e := newDemoEngine(t)
	n3, _ := e.Graph().Node(3)
	at := e.Controller().Transform().ToScreen(n3.Pos())

	e.Dispatch(interact.PointerDown{Pos: at})
	e.Dispatch(interact.PointerUp{Pos: at})

	f, _ := e.Frame()
	if f.Highlighted == nil || *f.Highlighted != 3 {
		t.Fatalf("highlighted = %v, want node 3", f.Highlighted)
	}
	g, _ := group(f, 3)
	if !g.Highlighted || g.Body.Stroke != scene.HighlightStroke || g.Body.StrokeWidth != scene.HighlightStrokeWidth {
		t.Errorf("group 3 body = %+v, want highlight stroke", g.Body)
	}

	// a rebuild that keeps node 3 keeps the highlight
	nodes, edges := provider.Demo()
	if err := e.Rebuild(nodes[:5], edges[:3]); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	f, _ = e.Frame()
	if g, _ := group(f, 3); !g.Highlighted {
		t.Error("highlight lost across a rebuild that kept the node")
	}

	// one that drops it clears it
	if err := e.Rebuild(nodes[3:], nil); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	f, _ = e.Frame()
	if f.Highlighted != nil {
		t.Errorf("highlighted = %v after the node was removed", *f.Highlighted)
	}
}

func TestDragPinsNodeInFrame(t *testing.T) {
	e := newDemoEngine(t)
	e.Controller().SetView(2, geom.Vec{})
	n1, _ := e.Graph().Node(1)
	at := e.Controller().Transform().ToScreen(n1.Pos())

	e.Dispatch(interact.PointerDown{Pos: at})
	e.Dispatch(interact.PointerMove{Pos: geom.V(100, 100)})

	for i := 0; i < 5; i++ {
		if _, err := e.Frame(); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}
	f, _ := e.Frame()
	g, _ := group(f, 1)
	if !g.Pinned || !g.Pos.Eq(geom.V(50, 50), 1e-9) {
		t.Errorf("dragged node at %v pinned=%v, want (50,50) pinned", g.Pos, g.Pinned)
	}

	e.Dispatch(interact.PointerUp{Pos: geom.V(100, 100)})
	f, _ = e.Frame()
	if g, _ := group(f, 1); g.Pinned {
		t.Error("node still pinned after release")
	}
}

type reentrantHooks struct {
	observability.NoopEngineHooks
	e   *Engine
	err error
}

func (h *reentrantHooks) OnFrame(context.Context, string, observability.FrameStats) {
	_, h.err = h.e.Frame()
}

func TestFrameRejectsReentry(t *testing.T) {
	hooks := &reentrantHooks{}
	e := newDemoEngine(t, WithHooks(hooks))
	hooks.e = e

	if _, err := e.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !errors.Is(hooks.err, errors.ErrCodeBusy) {
		t.Errorf("nested Frame error = %v, want BUSY", hooks.err)
	}
}

func TestResizeIsDebounced(t *testing.T) {
	clock := interact.NewManualClock()
	e := newDemoEngine(t, WithClock(clock))

	e.Dispatch(interact.Resize{Width: 1000, Height: 700})
	e.Dispatch(interact.Resize{Width: 1200, Height: 900})
	if clock.Pending() != 1 {
		t.Fatalf("armed timers = %d, want 1", clock.Pending())
	}
	f, _ := e.Frame()
	if f.Width != 800 {
		t.Errorf("width = %v before the debounce elapsed, want 800", f.Width)
	}

	e.FlushResize()
	f, _ = e.Frame()
	if f.Width != 1200 || f.Height != 900 {
		t.Errorf("size = %vx%v, want 1200x900", f.Width, f.Height)
	}
	if c := e.Simulation().Center(); c != geom.V(600, 450) {
		t.Errorf("force center = %v, want (600,450)", c)
	}
}

func TestDisposeStopsEverything(t *testing.T) {
	clock := interact.NewManualClock()
	e := newDemoEngine(t, WithClock(clock))
	e.Resize(1000, 1000)

	e.Dispose()
	e.Dispose()

	if clock.Pending() != 0 {
		t.Errorf("armed timers after Dispose = %d", clock.Pending())
	}
	if _, err := e.Frame(); !errors.Is(err, errors.ErrCodeDisposed) {
		t.Errorf("Frame error = %v, want DISPOSED", err)
	}
	if err := e.Rebuild(provider.Demo()); !errors.Is(err, errors.ErrCodeDisposed) {
		t.Errorf("Rebuild error = %v, want DISPOSED", err)
	}
	if err := e.Run(context.Background(), nil, nil); !errors.Is(err, errors.ErrCodeDisposed) {
		t.Errorf("Run error = %v, want DISPOSED", err)
	}
	if e.Post(interact.Key{Key: "c"}) {
		t.Error("Post accepted an event after Dispose")
	}
}

func TestRunFollowsProvider(t *testing.T) {
	ticks := make(chan time.Time)
	e := New(DefaultConfig(), WithLogger(quiet()), WithTicks(ticks))
	store := provider.DemoStore()

	frames := make(chan *scene.Frame, 64)
	done := make(chan error, 1)
	go func() {
		done <- e.Run(context.Background(), store, func(f *scene.Frame) {
			select {
			case frames <- f:
			default:
			}
		})
	}()

	waitFor := func(nodes int) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case ticks <- time.Now():
			case f := <-frames:
				if len(f.Nodes) == nodes {
					return
				}
			case <-deadline:
				t.Fatalf("no frame with %d nodes", nodes)
			}
		}
	}

	waitFor(10)
	if err := store.RemoveNode(1); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	waitFor(9)

	if !e.Post(interact.Key{Key: "esc"}) {
		t.Error("Post rejected an event while running")
	}

	e.Dispose()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after Dispose, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after Dispose")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := New(DefaultConfig(), WithLogger(quiet()))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, nil, nil) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

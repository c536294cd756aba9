package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/engine"
	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/interact"
	"github.com/matzehuels/forcegraph/pkg/provider"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

type recordingPoster struct {
	events []interact.Event
}

func (p *recordingPoster) Post(ev interact.Event) bool {
	p.events = append(p.events, ev)
	return true
}

func (p *recordingPoster) last() interact.Event {
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

// sized returns a model for a 140x31 terminal: a 140x30 grid plus the
// status bar.
func sized(t *testing.T) (viewModel, *recordingPoster) {
	t.Helper()
	p := &recordingPoster{}
	m := newViewModel(p, make(chan frameMsg), "test")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 31})
	return next.(viewModel), p
}

func TestViewModelResizePostsSurfaceSize(t *testing.T) {
	m, p := sized(t)
	if m.grid.Cols != 140 || m.grid.Rows != 30 {
		t.Fatalf("grid = %dx%d, want 140x30", m.grid.Cols, m.grid.Rows)
	}
	want := interact.Resize{Width: 1120, Height: 480}
	if got := p.last(); got != want {
		t.Errorf("posted %#v, want %#v", got, want)
	}
}

func TestViewModelMouse(t *testing.T) {
	cell := geom.V(84, 88) // center of cell (10, 5)

	tests := []struct {
		name string
		msg  tea.MouseMsg
		want interact.Event
	}{
		{
			name: "left press",
			msg:  tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
			want: interact.PointerDown{Pos: cell},
		},
		{
			name: "motion",
			msg:  tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion},
			want: interact.PointerMove{Pos: cell},
		},
		{
			name: "release",
			msg:  tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease},
			want: interact.PointerUp{Pos: cell},
		},
		{
			name: "wheel up zooms in",
			msg:  tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress},
			want: interact.Wheel{Pos: cell, Delta: -wheelStep},
		},
		{
			name: "wheel down zooms out",
			msg:  tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
			want: interact.Wheel{Pos: cell, Delta: wheelStep},
		},
		{
			name: "status bar ignored",
			msg:  tea.MouseMsg{X: 10, Y: 30, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		},
		{
			name: "right press ignored",
			msg:  tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonRight, Action: tea.MouseActionPress},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, p := sized(t)
			before := len(p.events)
			m.Update(tt.msg)

			if tt.want == nil {
				if len(p.events) != before {
					t.Errorf("posted %#v, want nothing", p.last())
				}
				return
			}
			if got := p.last(); got != tt.want {
				t.Errorf("posted %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestViewModelKeys(t *testing.T) {
	m, p := sized(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if got := p.last(); got != (interact.Key{Key: "c"}) {
		t.Errorf("c posted %#v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := p.last(); got != (interact.Key{Key: "esc"}) {
		t.Errorf("esc posted %#v", got)
	}

	before := len(p.events)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if len(p.events) != before {
		t.Errorf("unbound key posted %#v", p.last())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func demoFrame(t *testing.T) *scene.Frame {
	t.Helper()
	e := engine.New(engine.DefaultConfig(), engine.WithLogger(quietLogger()))
	t.Cleanup(e.Dispose)
	if err := e.Rebuild(provider.Demo()); err != nil {
		t.Fatal(err)
	}
	f, err := e.Frame()
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestViewModelRendersFrame(t *testing.T) {
	m, _ := sized(t)
	if !strings.Contains(m.View(), "starting") {
		t.Error("view before the first frame should show the loading line")
	}

	f := demoFrame(t)
	id := f.Nodes[0].ID
	f.Highlighted = &id

	next, cmd := m.Update(frameMsg{frame: f, energy: 42})
	if cmd == nil {
		t.Error("frame message must wait for the next frame")
	}
	out := next.(viewModel).View()

	lines := strings.Split(out, "\n")
	if len(lines) != 31 {
		t.Errorf("view has %d lines, want 30 grid rows and a status bar", len(lines))
	}
	status := lines[len(lines)-1]
	for _, want := range []string{"test", "10 nodes", "16 edges", "energy 42.0", f.Nodes[0].Text} {
		if !strings.Contains(status, want) {
			t.Errorf("status bar %q missing %q", status, want)
		}
	}
}

func TestHighlightedText(t *testing.T) {
	f := &scene.Frame{Nodes: []scene.Group{{ID: 1, Text: "one"}, {ID: 2, Text: "two"}}}
	if _, ok := highlightedText(f); ok {
		t.Error("no highlight expected")
	}
	id := graph.NodeID(2)
	f.Highlighted = &id
	if got, ok := highlightedText(f); !ok || got != "two" {
		t.Errorf("highlightedText = %q, %v", got, ok)
	}
}

func TestFrameBoxKeepsLatest(t *testing.T) {
	b := newFrameBox()
	b.put(frameMsg{energy: 1})
	b.put(frameMsg{energy: 2})
	b.put(frameMsg{energy: 3})

	if got := <-b.c; got.energy != 3 {
		t.Errorf("got frame with energy %v, want the latest (3)", got.energy)
	}
	select {
	case extra := <-b.c:
		t.Errorf("stale frame left in box: %v", extra.energy)
	default:
	}
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/interact"
	"github.com/matzehuels/forcegraph/pkg/render/term"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// wheelStep is the wheel delta of one scroll notch, in the units a browser
// reports for deltaY.
const wheelStep = 120

// Status bar styles
var (
	statusBarStyle = lipgloss.NewStyle().Foreground(colorGray)
	statusKeyStyle = lipgloss.NewStyle().Foreground(colorBlue)
)

// poster accepts input events for the engine goroutine.
type poster interface {
	Post(ev interact.Event) bool
}

// frameMsg carries a frame from the engine to the program.
type frameMsg struct {
	frame  *scene.Frame
	energy float64
}

// viewModel is the bubbletea model of the interactive viewer. Input is
// translated into engine events; the engine answers with frames.
type viewModel struct {
	engine poster
	frames <-chan frameMsg
	source string

	grid   term.Grid
	styles term.Styles
	width  int
	height int

	frame  *scene.Frame
	energy float64
}

func newViewModel(e poster, frames <-chan frameMsg, source string) viewModel {
	return viewModel{
		engine: e,
		frames: frames,
		source: source,
		styles: term.DefaultStyles(),
	}
}

func (m viewModel) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

// waitForFrame blocks until the engine delivers the next frame.
func waitForFrame(frames <-chan frameMsg) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return nil
		}
		return f
	}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame, m.energy = msg.frame, msg.energy
		return m, waitForFrame(m.frames)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// last row is the status bar
		m.grid = term.GridFor(msg.Width, msg.Height-1)
		w, h := m.grid.Size()
		if w > 0 && h > 0 {
			m.engine.Post(interact.Resize{Width: w, Height: h})
		}

	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c", "+", "=", "-", "_", "0", "esc":
			m.engine.Post(interact.Key{Key: k})
		}

	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m.engine.Post(ev)
		}
	}
	return m, nil
}

// mouseEvent maps a terminal mouse report to a surface event at the
// center of the reported cell.
func (m viewModel) mouseEvent(msg tea.MouseMsg) (interact.Event, bool) {
	if msg.Y >= m.grid.Rows || msg.X >= m.grid.Cols || msg.X < 0 || msg.Y < 0 {
		return nil, false
	}
	p := m.grid.ToScreen(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return interact.Wheel{Pos: p, Delta: -wheelStep}, true
	case tea.MouseButtonWheelDown:
		return interact.Wheel{Pos: p, Delta: wheelStep}, true
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return interact.PointerDown{Pos: p}, true
		}
	case tea.MouseActionMotion:
		return interact.PointerMove{Pos: p}, true
	case tea.MouseActionRelease:
		return interact.PointerUp{Pos: p}, true
	}
	return nil, false
}

func (m viewModel) View() string {
	if m.frame == nil || m.grid.Cols == 0 || m.grid.Rows <= 0 {
		return StyleDim.Render("starting simulation...")
	}
	canvas := term.Rasterize(m.frame, m.grid)
	return canvas.Render(m.styles) + "\n" + m.statusBar()
}

func (m viewModel) statusBar() string {
	f := m.frame
	parts := []string{
		StyleTitle.Render(m.source),
		fmt.Sprintf("%d nodes", len(f.Nodes)),
		fmt.Sprintf("%d edges", len(f.Edges)),
	}
	if name, ok := highlightedText(f); ok {
		parts = append(parts, StyleHighlight.Render("▸ "+name))
	}
	keys := fmt.Sprintf("%s center %s zoom %s quit",
		statusKeyStyle.Render("c"), statusKeyStyle.Render("+/-"), statusKeyStyle.Render("q"))
	parts = append(parts,
		fmt.Sprintf("zoom %.2fx", f.View.Zoom),
		fmt.Sprintf("energy %.1f", geom.OrZero(m.energy)),
		keys)

	line := strings.Join(parts, StyleDim.Render(" · "))
	return statusBarStyle.MaxWidth(m.width).Render(line)
}

// highlightedText returns the label of the highlighted node.
func highlightedText(f *scene.Frame) (string, bool) {
	if f.Highlighted == nil {
		return "", false
	}
	for _, n := range f.Nodes {
		if n.ID == *f.Highlighted {
			return n.Text, true
		}
	}
	return "", false
}

package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// Kind classifies what occupies a cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindEdge
	KindBody
	KindPinned
	KindHighlight
	KindLabel
)

const (
	runeBody   = '█'
	runePinned = '▓'
	// wide runes occupy two cells; the second holds this marker
	runeCont = 0
)

// Canvas is a rasterized frame.
type Canvas struct {
	grid  Grid
	runes []rune
	kinds []Kind
	// under remembers the body kind a label was drawn on, for styling.
	under []Kind
}

// Rasterize draws the frame onto a grid. The frame's view transform maps
// simulation positions to pixels, and the grid maps pixels to cells.
func Rasterize(f *scene.Frame, g Grid) *Canvas {
	n := g.Cols * g.Rows
	c := &Canvas{grid: g, runes: make([]rune, n), kinds: make([]Kind, n), under: make([]Kind, n)}
	for i := range c.runes {
		c.runes[i] = ' '
	}

	view := f.View
	if view.Zoom == 0 {
		view = geom.Identity
	}

	for _, e := range f.Edges {
		c.edge(e, view)
	}
	for _, node := range f.Nodes {
		c.body(node, view)
	}
	for _, node := range f.Nodes {
		if node.ShowLabel {
			c.label(node, view)
		}
	}
	return c
}

// Grid returns the grid the canvas was drawn on.
func (c *Canvas) Grid() Grid { return c.grid }

// At returns the rune and kind of a cell. Cells outside the grid are empty.
func (c *Canvas) At(col, row int) (rune, Kind) {
	if !c.grid.contains(col, row) {
		return ' ', KindEmpty
	}
	i := row*c.grid.Cols + col
	return c.runes[i], c.kinds[i]
}

func (c *Canvas) set(col, row int, r rune, k Kind) {
	if !c.grid.contains(col, row) {
		return
	}
	i := row*c.grid.Cols + col
	c.runes[i], c.kinds[i] = r, k
}

func (c *Canvas) edge(e scene.EdgePath, view geom.Transform) {
	from, to := view.ToScreen(e.From), view.ToScreen(e.To)
	if !from.Finite() || !to.Finite() {
		return
	}
	cells := math.Max(math.Abs(to.X-from.X)/c.grid.CellW, math.Abs(to.Y-from.Y)/c.grid.CellH)
	steps := int(math.Min(math.Ceil(cells*2), 4096)) + 1

	prev := from
	for i := 1; i <= steps; i++ {
		p := view.ToScreen(e.At(float64(i) / float64(steps)))
		col, row, ok := c.grid.ToCell(p)
		if ok {
			c.set(col, row, slopeRune(p.Sub(prev), c.grid), KindEdge)
		}
		prev = p
	}
}

// slopeRune picks a line-drawing rune for a pixel direction, measured in
// cell units so a 45 degree diagonal on screen reads as a diagonal.
func slopeRune(d geom.Vec, g Grid) rune {
	dx, dy := d.X/g.CellW, d.Y/g.CellH
	switch {
	case math.Abs(dy) < 0.4*math.Abs(dx):
		return '─'
	case math.Abs(dx) < 0.4*math.Abs(dy):
		return '│'
	case dx*dy > 0:
		return '╲'
	default:
		return '╱'
	}
}

func (c *Canvas) body(n scene.Group, view geom.Transform) {
	center := view.ToScreen(n.Pos)
	if !center.Finite() {
		return
	}
	zoom := view.Zoom
	half := n.Body.HalfExtent().Scale(zoom)

	kind, r := KindBody, runeBody
	switch {
	case n.Highlighted:
		kind = KindHighlight
	case n.Pinned:
		kind, r = KindPinned, runePinned
	}

	c0, r0, _ := c.grid.ToCell(center.Sub(half))
	c1, r1, _ := c.grid.ToCell(center.Add(half))
	hit := false
	for row := max(r0, 0); row <= min(r1, c.grid.Rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.grid.Cols-1); col++ {
			if inside(n.Body, c.grid.ToScreen(col, row).Sub(center), zoom) {
				c.set(col, row, r, kind)
				hit = true
			}
		}
	}
	// bodies smaller than a cell still show up
	if !hit {
		if col, row, ok := c.grid.ToCell(center); ok {
			c.set(col, row, r, kind)
		}
	}
}

func inside(e scene.Element, d geom.Vec, zoom float64) bool {
	if e.Kind == scene.KindCircle {
		return d.Len() <= e.R*zoom
	}
	return math.Abs(d.X) <= e.W*zoom/2 && math.Abs(d.Y) <= e.H*zoom/2
}

// label centers one row per line on the node and clips each line to the
// body's width in cells.
func (c *Canvas) label(n scene.Group, view geom.Transform) {
	center := view.ToScreen(n.Pos)
	col, row, _ := c.grid.ToCell(center)
	if !center.Finite() {
		return
	}
	half := n.Body.HalfExtent().Scale(view.Zoom)
	span := max(1, int(2*half.X/c.grid.CellW))

	lines := n.Label.Lines
	top := row - (len(lines)-1)/2
	for i, ln := range lines {
		text := runewidth.Truncate(ln.Text, span, "")
		w := runewidth.StringWidth(text)
		x := col - w/2
		for _, r := range text {
			rw := runewidth.RuneWidth(r)
			c.putLabel(x, top+i, r)
			if rw == 2 {
				c.putLabel(x+1, top+i, runeCont)
			}
			x += max(rw, 1)
		}
	}
}

func (c *Canvas) putLabel(col, row int, r rune) {
	if !c.grid.contains(col, row) {
		return
	}
	i := row*c.grid.Cols + col
	c.under[i] = c.kinds[i]
	c.runes[i], c.kinds[i] = r, KindLabel
}

// Lines returns the canvas as plain text, one string per row.
func (c *Canvas) Lines() []string {
	out := make([]string, c.grid.Rows)
	var b strings.Builder
	for row := range c.grid.Rows {
		b.Reset()
		for col := range c.grid.Cols {
			if r := c.runes[row*c.grid.Cols+col]; r != runeCont {
				b.WriteRune(r)
			}
		}
		out[row] = b.String()
	}
	return out
}

// String returns the canvas as plain text.
func (c *Canvas) String() string { return strings.Join(c.Lines(), "\n") }

// Styles colors each cell kind.
type Styles struct {
	Edge      lipgloss.Style
	Body      lipgloss.Style
	Pinned    lipgloss.Style
	Highlight lipgloss.Style
	// Label is applied to text over empty cells; text over a body takes
	// the body's color as background.
	Label lipgloss.Style
}

// DefaultStyles matches the SVG output: teal nodes, grey edges, red
// highlight.
func DefaultStyles() Styles {
	teal, red := lipgloss.Color("#69b3a2"), lipgloss.Color("#ff4444")
	return Styles{
		Edge:      lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		Body:      lipgloss.NewStyle().Foreground(teal),
		Pinned:    lipgloss.NewStyle().Foreground(teal),
		Highlight: lipgloss.NewStyle().Foreground(red),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
	}
}

func (s Styles) style(k, under Kind) lipgloss.Style {
	switch k {
	case KindEdge:
		return s.Edge
	case KindBody:
		return s.Body
	case KindPinned:
		return s.Pinned
	case KindHighlight:
		return s.Highlight
	case KindLabel:
		switch under {
		case KindBody, KindPinned:
			return s.Label.Background(s.Body.GetForeground())
		case KindHighlight:
			return s.Label.Background(s.Highlight.GetForeground())
		}
		return s.Label
	}
	return lipgloss.NewStyle()
}

// Render returns the styled canvas. Runs of cells with the same style are
// rendered together.
func (c *Canvas) Render(s Styles) string {
	rows := make([]string, c.grid.Rows)
	var line, run strings.Builder
	for row := range c.grid.Rows {
		line.Reset()
		run.Reset()
		curK, curU := KindEmpty, KindEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if curK == KindEmpty {
				line.WriteString(run.String())
			} else {
				line.WriteString(s.style(curK, curU).Render(run.String()))
			}
			run.Reset()
		}
		for col := range c.grid.Cols {
			i := row*c.grid.Cols + col
			r, k, u := c.runes[i], c.kinds[i], c.under[i]
			if r == runeCont {
				continue
			}
			if k != KindLabel {
				u = KindEmpty
			}
			if k != curK || u != curU {
				flush()
				curK, curU = k, u
			}
			run.WriteRune(r)
		}
		flush()
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}

package term

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/geom"
)

// Default cell size in screen pixels. Terminal cells are roughly twice as
// tall as they are wide.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Grid maps between terminal cells and surface pixels.
type Grid struct {
	Cols, Rows   int
	CellW, CellH float64
}

// GridFor returns a grid of the given size with the default cell size.
func GridFor(cols, rows int) Grid {
	return Grid{Cols: max(cols, 0), Rows: max(rows, 0), CellW: DefaultCellWidth, CellH: DefaultCellHeight}
}

// Size returns the surface size the grid covers, in pixels.
func (g Grid) Size() (width, height float64) {
	return float64(g.Cols) * g.CellW, float64(g.Rows) * g.CellH
}

// ToScreen returns the pixel at the center of a cell.
func (g Grid) ToScreen(col, row int) geom.Vec {
	return geom.V((float64(col)+0.5)*g.CellW, (float64(row)+0.5)*g.CellH)
}

// ToCell returns the cell containing a pixel. ok is false outside the grid.
func (g Grid) ToCell(p geom.Vec) (col, row int, ok bool) {
	if !p.Finite() || g.CellW <= 0 || g.CellH <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor(p.X / g.CellW))
	row = int(math.Floor(p.Y / g.CellH))
	return col, row, g.contains(col, row)
}

func (g Grid) contains(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

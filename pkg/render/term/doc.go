// Package term rasterizes engine frames into terminal character cells.
//
// A [Grid] fixes how many screen pixels one cell covers, which lets the
// terminal viewer size the engine surface in pixels and map mouse cells
// back to pointer positions. [Rasterize] draws edges, then node bodies,
// then label lines, and [Canvas.Render] styles the result with lipgloss.
package term

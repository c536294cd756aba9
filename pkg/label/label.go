// Package label fits node text inside a node's visible region.
//
// Fitting happens in screen pixels. A glyph is estimated at CharWidth
// pixels per display cell regardless of zoom, while the node's visible
// width grows with zoom, so zooming in makes room for more text:
//
//	budget   = VisibleWidth * scale
//	maxChars = floor(VisibleWidth * CharsPerPixel * scale)
//
// The text is first cut to maxChars, then wrapped greedily by words, then
// capped at MaxLines. Every returned line is guaranteed to fit the budget.
package label

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Defaults used by NewFitter.
const (
	DefaultCharsPerPixel = 0.3
	DefaultCharWidth     = 6.0
	DefaultMaxLines      = 3
	DefaultLineHeight    = 1.2 // em
	Ellipsis             = "..."
)

// Fitter computes label layouts for one visible width.
type Fitter struct {
	VisibleWidth  float64
	CharsPerPixel float64
	CharWidth     float64
	MaxLines      int
	LineHeight    float64
}

// NewFitter returns a Fitter with the default density constants.
func NewFitter(visibleWidth float64) Fitter {
	return Fitter{
		VisibleWidth:  visibleWidth,
		CharsPerPixel: DefaultCharsPerPixel,
		CharWidth:     DefaultCharWidth,
		MaxLines:      DefaultMaxLines,
		LineHeight:    DefaultLineHeight,
	}
}

// Line is one row of a fitted label.
type Line struct {
	Text string
	// Offset is the vertical offset of the baseline from the node center,
	// in em.
	Offset float64
}

// Layout is the fitted label of one node at one scale.
type Layout struct {
	Lines []Line
	Scale float64
	// Budget is the pixel width every line fits within.
	Budget float64
}

// Texts returns the line strings.
func (l Layout) Texts() []string {
	out := make([]string, len(l.Lines))
	for i, ln := range l.Lines {
		out[i] = ln.Text
	}
	return out
}

// Width estimates the pixel width of s.
func (f Fitter) Width(s string) float64 {
	return float64(runewidth.StringWidth(s)) * f.charWidth()
}

// Fit lays out text at the given zoom scale. The result always has at
// least one line (possibly empty) and at most MaxLines lines.
func (f Fitter) Fit(text string, scale float64) Layout {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	budget := math.Max(0, f.VisibleWidth*scale)

	maxChars := int(math.Floor(f.VisibleWidth * f.density() * scale))
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > maxChars {
		text = string(r[:max(maxChars, 0)]) + Ellipsis
	}

	lines := f.wrap(text, budget)
	maxLines := f.maxLines()
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = dropLastWord(lines[maxLines-1]) + Ellipsis
	}
	for i, ln := range lines {
		lines[i] = f.cut(ln, budget)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	return Layout{Lines: f.place(lines), Scale: scale, Budget: budget}
}

func (f Fitter) wrap(text string, budget float64) []string {
	words := strings.Fields(text)
	var lines []string
	cur := ""
	for _, w := range words {
		test := w
		if cur != "" {
			test = cur + " " + w
		}
		if f.Width(test) > budget && cur != "" {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = test
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// cut shortens s until it fits budget, marking the cut with an ellipsis
// when there is room for one.
func (f Fitter) cut(s string, budget float64) string {
	if f.Width(s) <= budget {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n >= 0; n-- {
		cand := strings.TrimRight(string(runes[:n]), " ") + Ellipsis
		if f.Width(cand) <= budget {
			return cand
		}
	}
	for n := len(runes) - 1; n >= 0; n-- {
		if cand := string(runes[:n]); f.Width(cand) <= budget {
			return cand
		}
	}
	return ""
}

func (f Fitter) place(lines []string) []Line {
	lh := f.LineHeight
	if !(lh > 0) {
		lh = DefaultLineHeight
	}
	n := len(lines)
	out := make([]Line, n)
	first := -float64(n-1) * lh / 2
	for i, s := range lines {
		out[i] = Line{Text: s, Offset: first + float64(i)*lh}
	}
	return out
}

func dropLastWord(s string) string {
	s = strings.TrimRight(s, " ")
	i := strings.LastIndex(s, " ")
	if i < 0 {
		return s
	}
	return strings.TrimRight(s[:i], " ")
}

func (f Fitter) charWidth() float64 {
	if f.CharWidth > 0 {
		return f.CharWidth
	}
	return DefaultCharWidth
}

func (f Fitter) density() float64 {
	if f.CharsPerPixel > 0 {
		return f.CharsPerPixel
	}
	return DefaultCharsPerPixel
}

func (f Fitter) maxLines() int {
	if f.MaxLines > 0 {
		return f.MaxLines
	}
	return DefaultMaxLines
}

// ABOUTME: Box-drawing border renderer with an optional centred title on the top edge
// ABOUTME: Emits absolute-positioned fragments; glyph sets are 7-entry tables

package tui

import (
	"strings"
	"unicode/utf8"
)

// Glyphs is a border glyph table indexed by the Glyph* constants.
type Glyphs [7]string

const (
	GlyphTopLeft = iota
	GlyphTop
	GlyphTopRight
	GlyphVertical
	GlyphBottomLeft
	GlyphBottomRight
	GlyphBottom
)

var (
	// Borders is the default frame: double top edge, rounded bottom corners.
	Borders = Glyphs{"╒", "═", "╕", "│", "╰", "╯", "─"}

	// NoBorders frames a region with blanks, clearing it without visible lines.
	NoBorders = Glyphs{" ", " ", " ", " ", " ", " ", " "}
)

// RenderBorder draws a border around r. A non-empty title is padded with one
// space on each side and written over the top edge starting at column
// floor(dx/2) + min.x - floor(len/2); characters that would reach the
// top-right corner are dropped.
func RenderBorder(r Rect, g Glyphs, title string) string {
	var b strings.Builder
	writeBorder(&b, r, g, title)
	return b.String()
}

func writeBorder(b *strings.Builder, r Rect, g Glyphs, title string) {
	minX, minY, maxX, maxY := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	titleStart := maxX // never reached when there is no title
	var titleRunes []rune
	if title != "" {
		padded := " " + title + " "
		titleRunes = []rune(padded)
		titleStart = (maxX-minX)/2 + minX - utf8.RuneCountInString(padded)/2
	}

	// Top edge, corners included, as one run.
	writeMoveTo(b, minX, minY)
	b.WriteString(g[GlyphTopLeft])
	ti := 0
	for x := minX + 1; x < maxX; x++ {
		if x >= titleStart && ti < len(titleRunes) {
			b.WriteRune(titleRunes[ti])
			ti++
			continue
		}
		b.WriteString(g[GlyphTop])
	}
	if maxX > minX {
		b.WriteString(g[GlyphTopRight])
	}

	// Sides.
	for y := minY + 1; y < maxY; y++ {
		writeMoveTo(b, minX, y)
		b.WriteString(g[GlyphVertical])
		if maxX > minX {
			writeMoveTo(b, maxX, y)
			b.WriteString(g[GlyphVertical])
		}
	}

	if maxY == minY {
		return
	}

	// Bottom edge.
	writeMoveTo(b, minX, maxY)
	b.WriteString(g[GlyphBottomLeft])
	for x := minX + 1; x < maxX; x++ {
		b.WriteString(g[GlyphBottom])
	}
	if maxX > minX {
		b.WriteString(g[GlyphBottomRight])
	}
}

// Fill blanks every cell of r.
func Fill(r Rect) string {
	var b strings.Builder
	line := strings.Repeat(" ", r.Dx()+1)
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		writeMoveTo(&b, r.Min.X, y)
		b.WriteString(line)
	}
	return b.String()
}

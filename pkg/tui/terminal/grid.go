// ABOUTME: Grid replays absolute-positioned terminal output onto a cell matrix
// ABOUTME: Lets tests assert what a frame looks like instead of matching escape bytes

package terminal

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Grid is a width by height matrix of cells, row-major, 1-based when addressed
// through At.
type Grid struct {
	Width  int
	Height int
	cells  [][]string
}

// NewGrid returns a blank grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height}
	g.clear()
	return g
}

func (g *Grid) clear() {
	g.cells = make([][]string, g.Height)
	for y := range g.cells {
		row := make([]string, g.Width)
		for x := range row {
			row[x] = " "
		}
		g.cells[y] = row
	}
}

// Replay interprets out: CSI row;col H moves the cursor, CSI 2J clears, other
// escape sequences are ignored, and text is written cell by cell. Cells
// outside the grid are dropped.
func (g *Grid) Replay(out string) {
	x, y := 1, 1
	for len(out) > 0 {
		if out[0] == 0x1b {
			seq, rest := splitEscape(out)
			out = rest
			switch {
			case seq == "\x1b[2J":
				g.clear()
			case strings.HasSuffix(seq, "H") && strings.HasPrefix(seq, "\x1b["):
				x, y = parseCUP(seq[2 : len(seq)-1])
			}
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(out, -1)
		out = rest
		if cluster == "\n" || cluster == "\r" {
			continue
		}
		if y >= 1 && y <= g.Height && x >= 1 && x <= g.Width {
			g.cells[y-1][x-1] = cluster
		}
		x++
	}
}

// At returns the cell at column x, row y (1-based).
func (g *Grid) At(x, y int) string {
	if y < 1 || y > g.Height || x < 1 || x > g.Width {
		return ""
	}
	return g.cells[y-1][x-1]
}

// Row returns row y (1-based) as a string.
func (g *Grid) Row(y int) string {
	if y < 1 || y > g.Height {
		return ""
	}
	return strings.Join(g.cells[y-1], "")
}

// String renders the grid with one line per row.
func (g *Grid) String() string {
	rows := make([]string, g.Height)
	for i := range rows {
		rows[i] = g.Row(i + 1)
	}
	return strings.Join(rows, "\n")
}

// Contains reports whether any row contains s.
func (g *Grid) Contains(s string) bool {
	for y := 1; y <= g.Height; y++ {
		if strings.Contains(g.Row(y), s) {
			return true
		}
	}
	return false
}

// splitEscape returns the escape sequence at the start of s and the remainder.
func splitEscape(s string) (seq, rest string) {
	if len(s) < 2 || s[1] != '[' {
		n := min(2, len(s))
		return s[:n], s[n:]
	}
	for i := 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return s[:i+1], s[i+1:]
		}
	}
	return s, ""
}

// parseCUP parses "row;col" with missing values defaulting to 1.
func parseCUP(params string) (x, y int) {
	y, x = 1, 1
	rowStr, colStr, _ := strings.Cut(params, ";")
	if n, err := strconv.Atoi(rowStr); err == nil {
		y = n
	}
	if n, err := strconv.Atoi(colStr); err == nil {
		x = n
	}
	return x, y
}

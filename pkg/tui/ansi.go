// ABOUTME: ANSI control sequences emitted by the screen compositor
// ABOUTME: Absolute cursor addressing, cursor visibility, clear, and SGR video modes

package tui

import (
	"strconv"
	"strings"
)

const (
	HideCursor    = "\x1b[?25l"
	ShowCursor    = "\x1b[?25h"
	ClearScreen   = "\x1b[2J"
	InverseColors = "\x1b[7m"
	NormalColors  = "\x1b[27m"
	ResetMode     = "\x1b[0m"
	Bold          = "\x1b[1m"
	Underline     = "\x1b[4m"
	NoUnderline   = "\x1b[24m"

	// syncBegin/syncEnd bracket a frame with CSI 2026 synchronized output so
	// terminals that support it paint the whole frame at once.
	syncBegin = "\x1b[?2026h"
	syncEnd   = "\x1b[?2026l"
)

// controlSequences lists every sequence the compositor emits; Content text
// may not contain any of them.
var controlSequences = []string{
	HideCursor,
	ShowCursor,
	ClearScreen,
	InverseColors,
	NormalColors,
	ResetMode,
	Bold,
	Underline,
	NoUnderline,
}

// MoveTo returns msg prefixed with an absolute cursor move to column x, row y.
// Coordinates are 1-based terminal cells.
func MoveTo(x, y int, msg string) string {
	var b strings.Builder
	b.Grow(len(msg) + 12)
	writeMoveTo(&b, x, y)
	b.WriteString(msg)
	return b.String()
}

// writeMoveTo appends ESC[{row};{col}H to b without allocating.
func writeMoveTo(b *strings.Builder, x, y int) {
	var num [20]byte
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(num[:0], int64(y), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(num[:0], int64(x), 10))
	b.WriteByte('H')
}

// ABOUTME: InputModal is a centred, bordered overlay that collects alphanumeric input
// ABOUTME: Enter confirms the buffer via callback; Escape falls through for dismissal

package tui

import (
	"strings"
	"sync"

	"github.com/mauromedda/postdash/pkg/tui/key"
)

// InputModal captures letters and digits into a buffer until confirmed.
type InputModal struct {
	title     string
	width     int
	height    int
	glyphs    Glyphs
	onConfirm func(string)

	mu     sync.Mutex
	buffer string
}

// NewInputModal creates a modal of the given size. onConfirm receives the
// buffer when Enter is pressed.
func NewInputModal(title string, width, height int, onConfirm func(string)) *InputModal {
	return &InputModal{
		title:     title,
		width:     width,
		height:    height,
		glyphs:    Borders,
		onConfirm: onConfirm,
	}
}

// SetGlyphs changes the border glyph set.
func (m *InputModal) SetGlyphs(g Glyphs) { m.glyphs = g }

// Title returns the modal title.
func (m *InputModal) Title() string { return m.title }

// Buffer returns the text typed so far.
func (m *InputModal) Buffer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffer
}

// HandleKey appends letters and digits, confirms on Enter, and lets Escape
// fall through. Every other key is consumed and ignored.
func (m *InputModal) HandleKey(k key.Key) Result {
	switch {
	case k.Type == key.KeyEnter:
		if m.onConfirm != nil {
			m.onConfirm(m.Buffer())
		}
		return Handled
	case k.Type == key.KeyEscape:
		return Unhandled
	case k.IsAlphanumeric():
		m.mu.Lock()
		m.buffer += string(k.Rune)
		m.mu.Unlock()
		return Handled
	}
	return Handled
}

// Bounds returns the modal rectangle for a termW by termH screen.
func (m *InputModal) Bounds(termW, termH int) Rect {
	return Centered(termW, termH, m.width, m.height)
}

// Render blanks the modal area, draws the buffer inside the top-left
// corner, and frames it with the titled border.
func (m *InputModal) Render(termW, termH int) string {
	r := m.Bounds(termW, termH)

	var b strings.Builder
	blank := strings.Repeat(" ", r.Dx()+1)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		writeMoveTo(&b, r.Min.X, y)
		b.WriteString(blank)
	}

	// The buffer is ASCII; keep its tail visible when it outgrows the box.
	buf := m.Buffer()
	if room := r.Dx() - 3; room > 0 && len(buf) > room {
		buf = buf[len(buf)-room:]
	}
	writeMoveTo(&b, r.Min.X+2, r.Min.Y+2)
	b.WriteString(buf)

	writeBorder(&b, r, m.glyphs, m.title)
	return b.String()
}

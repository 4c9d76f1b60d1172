// ABOUTME: Content is a single line of text with alignment, focus inversion, and a spinner
// ABOUTME: Construction rejects line breaks and escape bytes; rendering truncates to fit

package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mauromedda/postdash/pkg/tui/width"
)

// ErrInvalidContent is returned when text cannot be shown on a single line.
var ErrInvalidContent = errors.New("invalid content")

// Align selects where text sits between the render bounds.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// SpinnerOff is the spinner index of an inactive spinner.
const SpinnerOff = -1

// Content is one displayable line. Its text is immutable; focus and spinner
// state are guarded so the render loop and input loop may share it.
type Content struct {
	text  string
	align Align

	mu      sync.Mutex
	focused bool
	spinner int
}

// NewContent validates text and returns a left-aligned Content.
func NewContent(text string) (*Content, error) {
	return NewAlignedContent(text, AlignLeft)
}

// NewAlignedContent validates text and returns a Content with the given alignment.
func NewAlignedContent(text string, align Align) (*Content, error) {
	if err := validate(text); err != nil {
		return nil, err
	}
	return &Content{text: text, align: align, spinner: SpinnerOff}, nil
}

// MustContent is NewAlignedContent for literals known to be valid.
func MustContent(text string, align Align) *Content {
	c, err := NewAlignedContent(text, align)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(text string) error {
	if strings.ContainsAny(text, "\n\r\x1b") {
		return fmt.Errorf("%w: %q contains a line break or escape byte", ErrInvalidContent, text)
	}
	for _, seq := range controlSequences {
		if strings.Contains(text, seq) {
			return fmt.Errorf("%w: %q contains a control sequence", ErrInvalidContent, text)
		}
	}
	return nil
}

// Text returns the content's text.
func (c *Content) Text() string { return c.text }

// Align returns the content's alignment.
func (c *Content) Align() Align { return c.align }

// SetFocused sets whether the line is drawn in inverse video.
func (c *Content) SetFocused(focused bool) {
	c.mu.Lock()
	c.focused = focused
	c.mu.Unlock()
}

// Focused reports whether the line is focused.
func (c *Content) Focused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// StartSpinner activates the spinner at the first character. A running
// spinner keeps its position.
func (c *Content) StartSpinner() {
	c.mu.Lock()
	if c.spinner == SpinnerOff {
		c.spinner = 0
	}
	c.mu.Unlock()
}

// StopSpinner deactivates the spinner.
func (c *Content) StopSpinner() {
	c.mu.Lock()
	c.spinner = SpinnerOff
	c.mu.Unlock()
}

// SpinnerIndex returns the character the next render highlights, or SpinnerOff.
func (c *Content) SpinnerIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spinner
}

// Render returns the escape-coded fragment drawing the line between from and
// to on row from.Y. Text is cut so that it ends no later than to.X. When the
// spinner is active the character at its index is inverted and the index
// advances, wrapping to 0 at the end of the visible text.
func (c *Content) Render(from, to Point) string {
	avail := to.X - from.X
	shown := width.Truncate(c.text, avail)
	shownW := width.Of(shown)

	c.mu.Lock()
	focused := c.focused
	spin := c.spinner
	clusters := width.Clusters(shown)
	if spin != SpinnerOff {
		if spin >= len(clusters) {
			spin = 0
		}
		if len(clusters) > 0 {
			c.spinner = (spin + 1) % len(clusters)
		} else {
			c.spinner = 0
		}
	}
	c.mu.Unlock()

	inverse, normal := InverseColors, NormalColors
	if focused {
		inverse, normal = NormalColors, InverseColors
	}

	var body strings.Builder
	body.Grow(len(shown) + 16)
	for i, cl := range clusters {
		if spin != SpinnerOff && i == spin {
			body.WriteString(inverse)
			body.WriteString(cl.Text)
			body.WriteString(normal)
			continue
		}
		body.WriteString(cl.Text)
	}

	x := from.X
	switch c.align {
	case AlignCenter:
		x = from.X + ceilHalf(avail) - ceilHalf(shownW)
	case AlignRight:
		x = to.X - shownW
	}

	var b strings.Builder
	b.WriteString(normal)
	writeMoveTo(&b, x, from.Y)
	b.WriteString(body.String())
	b.WriteString(NormalColors)
	return b.String()
}

func ceilHalf(n int) int {
	return (n + 1) / 2
}

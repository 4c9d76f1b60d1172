// ABOUTME: Frame composition: footer legend, accounts and posts panels, modal on top
// ABOUTME: Produces one back-buffer string per call for the render loop to write

package dashboard

import (
	"strings"

	"github.com/mauromedda/postdash/internal/fetch"
	"github.com/mauromedda/postdash/pkg/tui"
	"github.com/mauromedda/postdash/pkg/tui/width"
)

// failedMark trails the row of an account whose last fetch failed.
const failedMark = " !"

// Smallest terminal the layout fits in.
const (
	minHeight = 6
	tooSmall  = "terminal too small"
)

// Frame composes the full screen for a w by h terminal.
func (c *Controller) Frame(w, h int) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	b.WriteString(tui.ClearScreen)

	aw := c.accountsWidthLocked()
	if h < minHeight || w < aw+4 {
		b.WriteString(tui.MoveTo(1, 1, width.Truncate(tooSmall, w)))
		return b.String()
	}

	footerTop := h - 2
	b.WriteString(tui.RenderBorder(tui.R(1, footerTop, w, h), c.glyphs, FooterTitle))
	if n := len(c.footer); n > 0 {
		slot := (w - 2) / n
		x := 2
		for _, item := range c.footer {
			b.WriteString(item.Render(tui.Pt(x, h-1), tui.Pt(x+slot, h)))
			x += slot
		}
	}

	bottom := footerTop - 1
	b.WriteString(tui.RenderBorder(tui.R(1, 1, aw, bottom), c.glyphs, c.accounts.Title()))
	area := tui.R(3, 2, aw, bottom-1)
	b.WriteString(c.accounts.Render(area))
	c.writeFailedMarksLocked(&b, area)

	b.WriteString(tui.RenderBorder(tui.R(aw+1, 1, w, bottom), c.glyphs, c.posts.Title()))
	b.WriteString(c.posts.Render(tui.R(aw+3, 2, w-1, bottom-1)))

	if c.modal != nil {
		b.WriteString(c.modal.Render(w, h))
	}
	return b.String()
}

// accountsWidthLocked sizes the accounts column to its widest handle, with
// room for the title and failure marks.
func (c *Controller) accountsWidthLocked() int {
	aw := width.Of(AccountsTitle) + 6
	for _, h := range c.handles {
		n := width.Of(h) + 3
		if c.fetch.State(h) == fetch.Failed {
			n += width.Of(failedMark)
		}
		aw = max(aw, n)
	}
	return aw
}

func (c *Controller) writeFailedMarksLocked(b *strings.Builder, area tui.Rect) {
	off := c.accounts.Offset()
	rows := area.Dy() + 1
	for i := off; i < len(c.handles) && i < off+rows; i++ {
		h := c.handles[i]
		if c.fetch.State(h) != fetch.Failed {
			continue
		}
		shown := width.Truncate(h, area.Dx())
		b.WriteString(tui.MoveTo(area.Min.X+width.Of(shown), area.Min.Y+i-off, failedMark))
	}
}

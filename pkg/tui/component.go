// ABOUTME: Core interfaces shared by the dashboard's panels and overlays
// ABOUTME: InputHandler reports whether it consumed a key so callers can fall through

package tui

import "github.com/mauromedda/postdash/pkg/tui/key"

// Result tells the caller whether a component consumed a key.
type Result int

const (
	// Unhandled means the key should fall through to the next handler.
	Unhandled Result = iota
	// Handled means the component consumed the key, even if it did nothing.
	Handled
)

// InputHandler is implemented by components that receive keystrokes.
type InputHandler interface {
	HandleKey(k key.Key) Result
}

// Drawable is implemented by components that draw themselves inside a region.
type Drawable interface {
	Render(area Rect) string
}

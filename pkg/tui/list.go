// ABOUTME: ListPanel is an ordered, focusable list of Content with cyclic navigation
// ABOUTME: Selection changes are published as events; rendering scrolls to keep selection visible

package tui

import (
	"strings"
	"sync"

	"github.com/mauromedda/postdash/internal/eventbus"
	"github.com/mauromedda/postdash/pkg/tui/key"
)

// Move is a navigation step within a list.
type Move int

const (
	MoveDown Move = iota
	MoveUp
)

// Selection is published whenever a ListPanel moves its selection.
type Selection struct {
	Panel *ListPanel
	Index int
	Item  *Content
}

// ListPanel holds an ordered list of Content items and at most one selected item.
// It is safe for concurrent use: the input loop mutates it while the render
// loop draws it.
type ListPanel struct {
	title  string
	events *eventbus.Bus[Selection]

	mu       sync.RWMutex
	items    []*Content
	selected int // -1 when nothing is selected
	offset   int // first visible item
	keys     map[key.Key]Move
}

// NewListPanel creates an empty panel navigated with j/k and the arrow keys.
func NewListPanel(title string) *ListPanel {
	return &ListPanel{
		title:    title,
		events:   eventbus.New[Selection](),
		selected: -1,
		keys: map[key.Key]Move{
			key.Rune('j'):       MoveDown,
			{Type: key.KeyDown}: MoveDown,
			key.Rune('k'):       MoveUp,
			{Type: key.KeyUp}:   MoveUp,
		},
	}
}

// Title returns the panel title.
func (p *ListPanel) Title() string { return p.title }

// SetMoveKeys replaces the navigation bindings.
func (p *ListPanel) SetMoveKeys(bindings map[key.Key]Move) {
	keys := make(map[key.Key]Move, len(bindings))
	for k, m := range bindings {
		keys[k] = m
	}
	p.mu.Lock()
	p.keys = keys
	p.mu.Unlock()
}

// OnSelect subscribes fn to selection changes.
func (p *ListPanel) OnSelect(fn func(Selection)) (unsubscribe func()) {
	return p.events.Subscribe(fn)
}

// SetItems replaces the items and clears the selection.
func (p *ListPanel) SetItems(items []*Content) {
	p.mu.Lock()
	p.unfocusLocked()
	p.items = append([]*Content(nil), items...)
	p.selected = -1
	p.offset = 0
	p.mu.Unlock()
}

// Items returns a snapshot of the items.
func (p *ListPanel) Items() []*Content {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*Content(nil), p.items...)
}

// Len returns the number of items.
func (p *ListPanel) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Selected returns the selected item and its index, or ok=false.
func (p *ListPanel) Selected() (item *Content, index int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selected < 0 {
		return nil, -1, false
	}
	return p.items[p.selected], p.selected, true
}

// ClearSelection unfocuses the selected item without publishing an event.
func (p *ListPanel) ClearSelection() {
	p.mu.Lock()
	p.unfocusLocked()
	p.selected = -1
	p.mu.Unlock()
}

// FocusNext selects the item after the current one, wrapping from the last
// item to the first. With no selection the first item is chosen. An empty
// panel is left untouched.
func (p *ListPanel) FocusNext() bool {
	return p.step(MoveDown)
}

// FocusPrev selects the item before the current one, wrapping from the first
// item to the last. With no selection the last item is chosen.
func (p *ListPanel) FocusPrev() bool {
	return p.step(MoveUp)
}

// HandleKey applies the navigation bound to k. Keys without a binding fall
// through; navigation on an empty panel is consumed as a no-op.
func (p *ListPanel) HandleKey(k key.Key) Result {
	p.mu.RLock()
	m, ok := p.keys[k]
	p.mu.RUnlock()
	if !ok {
		return Unhandled
	}
	p.step(m)
	return Handled
}

func (p *ListPanel) step(m Move) bool {
	p.mu.Lock()
	n := len(p.items)
	if n == 0 {
		p.mu.Unlock()
		return false
	}

	next := 0
	switch {
	case p.selected < 0 && m == MoveUp:
		next = n - 1
	case p.selected < 0:
		next = 0
	case m == MoveUp:
		next = (p.selected - 1 + n) % n
	default:
		next = (p.selected + 1) % n
	}

	p.unfocusLocked()
	p.selected = next
	item := p.items[next]
	item.SetFocused(true)
	p.mu.Unlock()

	p.events.Publish(Selection{Panel: p, Index: next, Item: item})
	return true
}

func (p *ListPanel) unfocusLocked() {
	if p.selected >= 0 && p.selected < len(p.items) {
		p.items[p.selected].SetFocused(false)
	}
}

// Offset returns the index of the first item drawn by the last Render.
func (p *ListPanel) Offset() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.offset
}

// Render draws the items on successive rows of area, starting at its top
// and stopping once a row would pass its bottom. The window scrolls so the
// selected item stays visible.
func (p *ListPanel) Render(area Rect) string {
	rows := area.Dy() + 1
	if rows <= 0 {
		return ""
	}

	p.mu.Lock()
	if p.selected >= 0 {
		if p.selected < p.offset {
			p.offset = p.selected
		}
		if p.selected >= p.offset+rows {
			p.offset = p.selected - rows + 1
		}
	}
	if p.offset > len(p.items) {
		p.offset = 0
	}
	end := min(p.offset+rows, len(p.items))
	visible := append([]*Content(nil), p.items[p.offset:end]...)
	p.mu.Unlock()

	var b strings.Builder
	for i, item := range visible {
		y := area.Min.Y + i
		b.WriteString(item.Render(Pt(area.Min.X, y), area.Max))
	}
	return b.String()
}

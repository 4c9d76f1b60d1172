// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Layers the override file over defaults, detects conflicts, supports hot-reload

package keybindings

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mauromedda/postdash/internal/config"
	"github.com/mauromedda/postdash/pkg/tui/key"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	mu       sync.RWMutex
	bindings *config.Keybindings
	lookup   map[key.Key]config.KeyAction
}

// New creates a Manager from the defaults plus the override file at path.
// A missing file is not an error; an unreadable one is logged and ignored.
func New(path string) *Manager {
	m := &Manager{}
	m.Reload(path)
	return m
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{}
	m.set(kb)
	return m
}

// Reload re-reads the override file and rebuilds the lookup table.
func (m *Manager) Reload(path string) {
	kb := config.NewKeybindings()
	if path != "" {
		overrides, err := config.LoadKeybindings(path)
		switch {
		case err == nil:
			kb.Merge(overrides)
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.Warn().Err(err).Str("file", path).Msg("ignoring keybinding overrides")
		}
	}
	m.set(kb)
}

func (m *Manager) set(kb *config.Keybindings) {
	lookup := make(map[key.Key]config.KeyAction, len(kb.Bindings)*2)
	// Resolve in a fixed order so conflicting bindings always pick the same action.
	for _, action := range config.Actions {
		for _, name := range kb.Bindings[action] {
			k, ok := key.FromName(name)
			if !ok {
				log.Warn().Str("key", name).Str("action", string(action)).Msg("unknown key name")
				continue
			}
			if _, taken := lookup[k]; !taken {
				lookup[k] = action
			}
		}
	}

	m.mu.Lock()
	m.bindings = kb
	m.lookup = lookup
	m.mu.Unlock()
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(k key.Key) config.KeyAction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup[k]
}

// KeysFor returns the parsed keys bound to action.
func (m *Manager) KeysFor(action config.KeyAction) []key.Key {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []key.Key
	for _, name := range m.bindings.GetBindings(action) {
		if k, ok := key.FromName(name); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Conflicts detects keys bound to multiple actions, sorted by key name.
func (m *Manager) Conflicts() []ConflictInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keyActions := make(map[string][]config.KeyAction)
	for _, action := range config.Actions {
		for _, k := range m.bindings.GetBindings(action) {
			keyActions[k] = append(keyActions[k], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int { return strings.Compare(a.Key, b.Key) })
	return conflicts
}

// FormatAll returns a table of every binding, one action per line.
func (m *Manager) FormatAll() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Keybindings:\n\n")
	for _, action := range config.Actions {
		keys := m.bindings.GetBindings(action)
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-20s %s\n", strings.Join(keys, ", "), action)
	}
	return b.String()
}

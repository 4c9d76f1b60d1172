// ABOUTME: Dashboard keybinding table with an optional YAML override file
// ABOUTME: Format is `action: [key, key]`; key names follow pkg/tui/key

package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// KeyAction represents an action that can be bound to keys.
type KeyAction string

const (
	ActionNavigateUp   KeyAction = "navigateUp"
	ActionNavigateDown KeyAction = "navigateDown"
	ActionFocusLeft    KeyAction = "focusLeft"
	ActionFocusRight   KeyAction = "focusRight"
	ActionFollow       KeyAction = "follow"
	ActionDelete       KeyAction = "delete"
	ActionRefresh      KeyAction = "refresh"
	ActionQuit         KeyAction = "quit"
	ActionDismiss      KeyAction = "dismiss"
)

// Actions lists every action in display order.
var Actions = []KeyAction{
	ActionNavigateUp,
	ActionNavigateDown,
	ActionFocusLeft,
	ActionFocusRight,
	ActionFollow,
	ActionDelete,
	ActionRefresh,
	ActionQuit,
	ActionDismiss,
}

// Keybindings maps actions to key names.
type Keybindings struct {
	Bindings map[KeyAction][]string
}

// NewKeybindings creates a Keybindings with the default bindings.
func NewKeybindings() *Keybindings {
	return &Keybindings{Bindings: map[KeyAction][]string{
		ActionNavigateUp:   {"k", "up"},
		ActionNavigateDown: {"j", "down"},
		ActionFocusLeft:    {"h", "left"},
		ActionFocusRight:   {"l", "right"},
		ActionFollow:       {"f"},
		ActionDelete:       {"d"},
		ActionRefresh:      {"r"},
		ActionQuit:         {"q", "ctrl+c"},
		ActionDismiss:      {"escape"},
	}}
}

// LoadKeybindings reads overrides from a YAML file and applies them over the
// defaults. Unknown actions are ignored.
func LoadKeybindings(path string) (*Keybindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	kb := NewKeybindings()
	for name, keys := range raw {
		action := KeyAction(name)
		if _, ok := kb.Bindings[action]; ok {
			kb.Bindings[action] = keys
		}
	}
	return kb, nil
}

// SaveKeybindings writes the bindings as YAML.
func (kb *Keybindings) SaveKeybindings(path string) error {
	data, err := yaml.Marshal(kb.raw())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// GetBindings returns the key names bound to action.
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// Merge copies every action present in overrides onto kb.
func (kb *Keybindings) Merge(overrides *Keybindings) {
	if overrides == nil {
		return
	}
	maps.Copy(kb.Bindings, overrides.Bindings)
}

func (kb *Keybindings) raw() map[string][]string {
	out := make(map[string][]string, len(kb.Bindings))
	for action, keys := range kb.Bindings {
		out[string(action)] = slices.Clone(keys)
	}
	return out
}

// ABOUTME: Tests for the keybinding table and its YAML override file
// ABOUTME: Validates defaults, partial overrides, unknown actions, and save/load

package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestKeybindings_Defaults(t *testing.T) {
	t.Parallel()

	kb := NewKeybindings()
	tests := []struct {
		action KeyAction
		want   []string
	}{
		{ActionNavigateUp, []string{"k", "up"}},
		{ActionNavigateDown, []string{"j", "down"}},
		{ActionFocusLeft, []string{"h", "left"}},
		{ActionFocusRight, []string{"l", "right"}},
		{ActionFollow, []string{"f"}},
		{ActionDelete, []string{"d"}},
		{ActionRefresh, []string{"r"}},
		{ActionQuit, []string{"q", "ctrl+c"}},
		{ActionDismiss, []string{"escape"}},
	}
	for _, tt := range tests {
		if got := kb.GetBindings(tt.action); !slices.Equal(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.action, got, tt.want)
		}
	}
	if len(kb.Bindings) != len(Actions) {
		t.Errorf("defaults cover %d actions, Actions lists %d", len(kb.Bindings), len(Actions))
	}
}

func TestLoadKeybindings_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "keys.yaml")
	yml := "quit: [x]\nfollow:\n  - a\n  - enter\nbogus: [z]\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	kb, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("LoadKeybindings: %v", err)
	}
	if got := kb.GetBindings(ActionQuit); !slices.Equal(got, []string{"x"}) {
		t.Errorf("quit = %v, want [x]", got)
	}
	if got := kb.GetBindings(ActionFollow); !slices.Equal(got, []string{"a", "enter"}) {
		t.Errorf("follow = %v, want [a enter]", got)
	}
	if got := kb.GetBindings(ActionDelete); !slices.Equal(got, []string{"d"}) {
		t.Errorf("untouched delete = %v, want [d]", got)
	}
	if _, ok := kb.Bindings["bogus"]; ok {
		t.Error("unknown action was kept")
	}
}

func TestLoadKeybindings_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := LoadKeybindings(filepath.Join(dir, "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing file err = %v, want not-exist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("quit: {nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKeybindings(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestKeybindings_SaveLoad(t *testing.T) {
	t.Parallel()

	kb := NewKeybindings()
	kb.Bindings[ActionRefresh] = []string{"R", "ctrl+l"}
	path := filepath.Join(t.TempDir(), "keys.yaml")

	if err := kb.SaveKeybindings(path); err != nil {
		t.Fatalf("SaveKeybindings: %v", err)
	}
	loaded, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("LoadKeybindings: %v", err)
	}
	if got := loaded.GetBindings(ActionRefresh); !slices.Equal(got, []string{"R", "ctrl+l"}) {
		t.Errorf("refresh = %v after round trip", got)
	}
}

func TestKeybindings_Merge(t *testing.T) {
	t.Parallel()

	base := NewKeybindings()
	base.Merge(&Keybindings{Bindings: map[KeyAction][]string{ActionDelete: {"x"}}})
	base.Merge(nil)

	if got := base.GetBindings(ActionDelete); !slices.Equal(got, []string{"x"}) {
		t.Errorf("delete = %v, want [x]", got)
	}
	var nilKB *Keybindings
	if nilKB.GetBindings(ActionQuit) != nil {
		t.Error("nil Keybindings returned bindings")
	}
}

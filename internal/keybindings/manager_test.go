// ABOUTME: Tests for keybindings manager
// ABOUTME: Validates key lookup, conflict detection, overrides, reload, and format

package keybindings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/postdash/internal/config"
	"github.com/mauromedda/postdash/pkg/tui/key"
)

func TestManager_DefaultBindings(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	tests := []struct {
		key    key.Key
		action config.KeyAction
	}{
		{key.Rune('k'), config.ActionNavigateUp},
		{key.Key{Type: key.KeyUp}, config.ActionNavigateUp},
		{key.Rune('j'), config.ActionNavigateDown},
		{key.Key{Type: key.KeyDown}, config.ActionNavigateDown},
		{key.Rune('h'), config.ActionFocusLeft},
		{key.Rune('l'), config.ActionFocusRight},
		{key.Rune('f'), config.ActionFollow},
		{key.Rune('d'), config.ActionDelete},
		{key.Rune('r'), config.ActionRefresh},
		{key.Rune('q'), config.ActionQuit},
		{key.Key{Type: key.KeyCtrlC}, config.ActionQuit},
		{key.Key{Type: key.KeyEscape}, config.ActionDismiss},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := m.ActionForKey(tt.key); got != tt.action {
				t.Errorf("ActionForKey(%v) = %q; want %q", tt.key, got, tt.action)
			}
		})
	}
}

func TestManager_UnboundKey(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	if action := m.ActionForKey(key.Rune('z')); action != "" {
		t.Errorf("expected empty action for unbound key, got %q", action)
	}
	if action := m.ActionForKey(key.Key{Type: key.KeyRune, Rune: 'q', Alt: true}); action != "" {
		t.Errorf("alt+q resolved to %q", action)
	}
}

func TestManager_Conflicts(t *testing.T) {
	t.Parallel()

	if c := NewFromBindings(config.NewKeybindings()).Conflicts(); len(c) != 0 {
		t.Errorf("defaults have conflicts: %+v", c)
	}

	kb := config.NewKeybindings()
	kb.Bindings[config.ActionRefresh] = []string{"r", "q"}
	m := NewFromBindings(kb)

	conflicts := m.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Key != "q" || len(conflicts[0].Actions) != 2 {
		t.Fatalf("Conflicts() = %+v", conflicts)
	}
	// Earlier actions in display order win the lookup.
	if got := m.ActionForKey(key.Rune('q')); got != config.ActionRefresh {
		t.Errorf("q resolved to %q, want refresh", got)
	}
}

func TestManager_OverrideFileAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "keys.yaml")
	if err := os.WriteFile(path, []byte("follow: [a]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m := New(path)
	if got := m.ActionForKey(key.Rune('a')); got != config.ActionFollow {
		t.Errorf("override a = %q, want follow", got)
	}
	if got := m.ActionForKey(key.Rune('f')); got != "" {
		t.Errorf("replaced binding f still resolves to %q", got)
	}

	if err := os.WriteFile(path, []byte("follow: [n, enter]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m.Reload(path)
	if got := m.ActionForKey(key.Key{Type: key.KeyEnter}); got != config.ActionFollow {
		t.Errorf("after reload enter = %q, want follow", got)
	}
	if got := m.ActionForKey(key.Rune('a')); got != "" {
		t.Errorf("after reload a still resolves to %q", got)
	}
}

func TestManager_MissingAndBadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := New(filepath.Join(dir, "absent.yaml"))
	if got := m.ActionForKey(key.Rune('q')); got != config.ActionQuit {
		t.Errorf("missing file lost defaults: q = %q", got)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("::: not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}
	m = New(bad)
	if got := m.ActionForKey(key.Rune('d')); got != config.ActionDelete {
		t.Errorf("bad file lost defaults: d = %q", got)
	}
}

func TestManager_UnknownKeyNamesSkipped(t *testing.T) {
	t.Parallel()

	kb := config.NewKeybindings()
	kb.Bindings[config.ActionDelete] = []string{"hyper+x", "x"}
	m := NewFromBindings(kb)

	keys := m.KeysFor(config.ActionDelete)
	if len(keys) != 1 || keys[0] != key.Rune('x') {
		t.Errorf("KeysFor(delete) = %v, want [x]", keys)
	}
}

func TestManager_FormatAll(t *testing.T) {
	t.Parallel()
	out := NewFromBindings(config.NewKeybindings()).FormatAll()

	for _, want := range []string{"Keybindings:", "k, up", "navigateUp", "escape", "dismiss"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatAll missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "navigateUp") > strings.Index(out, "quit") {
		t.Error("FormatAll not in display order")
	}
}

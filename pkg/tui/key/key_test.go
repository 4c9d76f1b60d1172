// ABOUTME: Table-driven tests for ParseKey, binding names, and alphanumeric checks
// ABOUTME: Covers runes, control bytes, CSI/SS3 arrows, and name round-trips

package key

import "testing"

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Key
	}{
		{name: "lowercase j", data: "j", want: Rune('j')},
		{name: "uppercase A", data: "A", want: Rune('A')},
		{name: "digit", data: "7", want: Rune('7')},
		{name: "space", data: " ", want: Rune(' ')},
		{name: "carriage return", data: "\r", want: Key{Type: KeyEnter}},
		{name: "line feed", data: "\n", want: Key{Type: KeyEnter}},
		{name: "tab", data: "\t", want: Key{Type: KeyTab}},
		{name: "del", data: "\x7f", want: Key{Type: KeyBackspace}},
		{name: "escape", data: "\x1b", want: Key{Type: KeyEscape}},
		{name: "ctrl+c", data: "\x03", want: Key{Type: KeyCtrlC}},
		{name: "arrow up", data: "\x1b[A", want: Key{Type: KeyUp}},
		{name: "arrow down", data: "\x1b[B", want: Key{Type: KeyDown}},
		{name: "SS3 left", data: "\x1bOD", want: Key{Type: KeyLeft}},
		{name: "delete", data: "\x1b[3~", want: Key{Type: KeyDelete}},
		{name: "alt+x", data: "\x1bx", want: Key{Type: KeyRune, Rune: 'x', Alt: true}},
		{name: "multibyte rune", data: "é", want: Rune('é')},
		{name: "unknown escape", data: "\x1b[99Z", want: Key{Type: KeyUnknown}},
		{name: "unknown control", data: "\x01", want: Key{Type: KeyUnknown}},
		{name: "empty", data: "", want: Key{Type: KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseKey(tt.data); got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestKey_IsAlphanumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  Key
		want bool
	}{
		{Rune('a'), true},
		{Rune('Z'), true},
		{Rune('5'), true},
		{Rune('-'), false},
		{Rune('é'), false},
		{Key{Type: KeyRune, Rune: 'a', Alt: true}, false},
		{Key{Type: KeyEnter}, false},
	}

	for _, tt := range tests {
		if got := tt.key.IsAlphanumeric(); got != tt.want {
			t.Errorf("%v.IsAlphanumeric() = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestKey_NameRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []Key{
		Rune('q'),
		{Type: KeyRune, Rune: 'x', Alt: true},
		{Type: KeyEnter},
		{Type: KeyEscape},
		{Type: KeyUp},
		{Type: KeyCtrlC},
	}

	for _, k := range keys {
		got, ok := FromName(k.String())
		if !ok {
			t.Errorf("FromName(%q) not ok", k.String())
			continue
		}
		if got != k {
			t.Errorf("FromName(%q) = %+v, want %+v", k.String(), got, k)
		}
	}
}

func TestFromName_Invalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "nope", "ctrl+zz"} {
		if _, ok := FromName(name); ok {
			t.Errorf("FromName(%q) ok, want false", name)
		}
	}
}

func TestFromName_CaseInsensitiveNames(t *testing.T) {
	t.Parallel()

	k, ok := FromName("Enter")
	if !ok || k.Type != KeyEnter {
		t.Errorf("FromName(Enter) = %+v, %v; want KeyEnter", k, ok)
	}
}

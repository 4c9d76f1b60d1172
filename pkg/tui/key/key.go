// ABOUTME: Defines the Key type and ParseKey for raw terminal keystrokes
// ABOUTME: Handles printable runes, control bytes, and legacy CSI/SS3 escape sequences

package key

import (
	"strings"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event. Key is comparable and can
// be used as a map key.
type Key struct {
	Type KeyType
	Rune rune // For printable characters
	Alt  bool
}

// KeyType enumerates the kinds of key events the dashboard distinguishes.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyEscape                   // Escape
	KeyCtrlC                    // Ctrl+C
	KeyCtrlD                    // Ctrl+D
	KeyCtrlL                    // Ctrl+L
	KeyUnknown                  // Unrecognized input
)

// Rune returns the Key for a printable character.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// ParseKey parses one raw read from the terminal into a Key.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}
	if len(data) == 1 {
		return parseSingleByte(data[0])
	}
	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Rune(r)
}

func parseSingleByte(b byte) Key {
	switch {
	case b == '\r' || b == '\n':
		return Key{Type: KeyEnter}
	case b == '\t':
		return Key{Type: KeyTab}
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b == 0x03:
		return Key{Type: KeyCtrlC}
	case b == 0x04:
		return Key{Type: KeyCtrlD}
	case b == 0x0c:
		return Key{Type: KeyCtrlL}
	case b >= 0x20 && b <= 0x7e:
		return Rune(rune(b))
	}
	return Key{Type: KeyUnknown}
}

func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}
	// Alt+letter: ESC followed by a single printable byte.
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}
	return Key{Type: KeyUnknown}
}

// IsAlphanumeric reports whether k is an unmodified ASCII letter or digit.
func (k Key) IsAlphanumeric() bool {
	if k.Type != KeyRune || k.Alt {
		return false
	}
	r := k.Rune
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// names maps non-rune key types to their binding names.
var names = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyEscape:    "escape",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
	KeyCtrlL:     "ctrl+l",
}

// String returns the binding name of k: the character itself for runes
// ("alt+x" with Alt), or a lower-case name such as "enter" or "up".
func (k Key) String() string {
	if k.Type == KeyRune {
		if k.Alt {
			return "alt+" + string(k.Rune)
		}
		return string(k.Rune)
	}
	if name, ok := names[k.Type]; ok {
		return name
	}
	return "unknown"
}

// FromName parses a binding name produced by String. Matching is
// case-insensitive for named keys; single characters are taken literally.
func FromName(name string) (Key, bool) {
	if name == "" {
		return Key{}, false
	}
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && r != utf8.RuneError {
		return Rune(r), true
	}
	lower := strings.ToLower(name)
	if rest, ok := strings.CutPrefix(lower, "alt+"); ok && len(rest) == 1 {
		return Key{Type: KeyRune, Rune: rune(name[len(name)-1]), Alt: true}, true
	}
	for t, n := range names {
		if n == lower {
			return Key{Type: t}, true
		}
	}
	return Key{}, false
}

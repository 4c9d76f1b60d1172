// ABOUTME: Dashboard commands, focus targets, and the keybinding-to-command table
// ABOUTME: Commands are what a key means once the focused component declines it

package dashboard

import (
	"github.com/mauromedda/postdash/internal/config"
	"github.com/mauromedda/postdash/pkg/tui/key"
)

// Command is a controller-level action.
type Command int

const (
	Unhandled Command = iota
	NavigateUp
	NavigateDown
	SwitchFocusLeft
	SwitchFocusRight
	OpenFollowModal
	DeleteSelected
	Refresh
	Quit
	DismissModal
)

var commandNames = [...]string{
	Unhandled:        "unhandled",
	NavigateUp:       "navigate-up",
	NavigateDown:     "navigate-down",
	SwitchFocusLeft:  "switch-focus-left",
	SwitchFocusRight: "switch-focus-right",
	OpenFollowModal:  "open-follow-modal",
	DeleteSelected:   "delete-selected",
	Refresh:          "refresh",
	Quit:             "quit",
	DismissModal:     "dismiss-modal",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

var actionCommands = map[config.KeyAction]Command{
	config.ActionNavigateUp:   NavigateUp,
	config.ActionNavigateDown: NavigateDown,
	config.ActionFocusLeft:    SwitchFocusLeft,
	config.ActionFocusRight:   SwitchFocusRight,
	config.ActionFollow:       OpenFollowModal,
	config.ActionDelete:       DeleteSelected,
	config.ActionRefresh:      Refresh,
	config.ActionQuit:         Quit,
	config.ActionDismiss:      DismissModal,
}

// CommandFor maps an action to its command; unknown actions are Unhandled.
func CommandFor(action config.KeyAction) Command {
	return actionCommands[action]
}

// KeyMap resolves keys to commands.
type KeyMap interface {
	ActionForKey(k key.Key) config.KeyAction
	KeysFor(action config.KeyAction) []key.Key
}

// Focus is the component receiving keystrokes.
type Focus int

const (
	FocusAccounts Focus = iota
	FocusPosts
	FocusModal
)

func (f Focus) String() string {
	switch f {
	case FocusAccounts:
		return "accounts"
	case FocusPosts:
		return "posts"
	case FocusModal:
		return "modal"
	}
	return "unknown"
}

package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nebula/keybind"
)

// KeyMap holds the few bindings the shell handles outside the
// keybind manager: quitting must work even when a modal has trapped
// focus or the binding config is broken.
type KeyMap struct {
	Quit key.Binding
}

func newKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// EventFromKeyMsg translates a Bubble Tea key message into a keybind
// event. The bubbletea key string is a "+"-joined modifier prefix plus
// the key label; shifted letters arrive as upper-cased runes without a
// shift prefix, which is exactly the convention the matcher's
// case-insensitive-under-shift rule expects.
func EventFromKeyMsg(msg tea.KeyMsg) keybind.Event {
	var ev keybind.Event

	s := msg.String()
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			ev.CtrlKey = true
			s = s[len("ctrl+"):]
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			ev.AltKey = true
			s = s[len("alt+"):]
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			ev.ShiftKey = true
			s = s[len("shift+"):]
		case strings.HasPrefix(s, "meta+") && len(s) > len("meta+"):
			ev.MetaKey = true
			s = s[len("meta+"):]
		default:
			ev.Key = s
			return ev
		}
	}
}

// isBareRune reports whether ev is a single printable character with no
// modifier beyond shift. Bare runes are text input: the shell skips the
// room and navigation contexts for them so bindings can never shadow
// typing into the composer or the room filter.
func isBareRune(ev keybind.Event) bool {
	if ev.CtrlKey || ev.AltKey || ev.MetaKey {
		return false
	}
	return utf8.RuneCountInString(ev.Key) == 1
}

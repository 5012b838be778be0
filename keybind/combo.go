package keybind

import "strings"

// Event is a single physical key press: the key label reported by the
// terminal plus the four independent modifier flags.
type Event struct {
	Key      string
	AltKey   bool
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool
}

// Combo declaratively describes a key press to match against an Event.
// All flags default to false; an unset flag means "must not be held".
//
// CtrlOrCmd abstracts the platform primary modifier: Command on Mac,
// Control everywhere else. When set it takes precedence over the plain
// CtrlKey/MetaKey flags for the side it covers.
type Combo struct {
	Key       string
	CtrlOrCmd bool
	AltKey    bool
	CtrlKey   bool
	MetaKey   bool
	ShiftKey  bool
}

// Matches reports whether ev satisfies combo under the given platform
// convention (mac selects the Command-as-primary branch).
//
// The key label is compared case-insensitively while the event's shift
// modifier is active, because shifted keys arrive upper-cased; without
// shift the comparison is exact. This is intentional and load-bearing:
// it distinguishes e.g. "?" from "shift+/" on layouts where shift
// changes the reported label.
func Matches(ev Event, combo Combo, mac bool) bool {
	if combo.Key != "" {
		if ev.ShiftKey {
			if !strings.EqualFold(combo.Key, ev.Key) {
				return false
			}
		} else if combo.Key != ev.Key {
			return false
		}
	}

	if combo.CtrlOrCmd {
		if mac {
			if !ev.MetaKey ||
				ev.CtrlKey != combo.CtrlKey ||
				ev.AltKey != combo.AltKey ||
				ev.ShiftKey != combo.ShiftKey {
				return false
			}
		} else {
			if !ev.CtrlKey ||
				ev.MetaKey != combo.MetaKey ||
				ev.AltKey != combo.AltKey ||
				ev.ShiftKey != combo.ShiftKey {
				return false
			}
		}
		return true
	}

	return ev.MetaKey == combo.MetaKey &&
		ev.CtrlKey == combo.CtrlKey &&
		ev.AltKey == combo.AltKey &&
		ev.ShiftKey == combo.ShiftKey
}

// Matches reports whether ev satisfies c under the given platform convention.
func (c Combo) Matches(ev Event, mac bool) bool {
	return Matches(ev, c, mac)
}

package keybind

import (
	"fmt"
	"strings"
)

// Key label aliases accepted in combo specs, normalized to the labels
// the terminal layer reports.
var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"space":    " ",
	"pageup":   "pgup",
	"pagedown": "pgdown",
}

// ParseCombo parses a combo spec like "mod+enter", "ctrl+shift+u" or
// "alt+up" into a Combo. "mod" (aliases "ctrlorcmd", "primary") selects
// the platform primary modifier. Modifier tokens may appear in any
// order; at most one non-modifier token is allowed and it becomes the
// key label. A spec of only modifiers yields a key-less combo.
func ParseCombo(spec string) (Combo, error) {
	var combo Combo

	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Combo{}, fmt.Errorf("empty combo spec")
	}

	// A trailing "+" is the literal plus key: "ctrl++" is ctrl plus "+".
	var tokens []string
	if trimmed == "+" {
		tokens = []string{"+"}
	} else if strings.HasSuffix(trimmed, "++") {
		tokens = append(strings.Split(trimmed[:len(trimmed)-2], "+"), "+")
	} else {
		tokens = strings.Split(trimmed, "+")
	}
	for _, tok := range tokens {
		if tok == "" {
			return Combo{}, fmt.Errorf("malformed combo spec %q", spec)
		}
	}

	for i, tok := range tokens {
		switch strings.ToLower(tok) {
		case "mod", "ctrlorcmd", "primary":
			combo.CtrlOrCmd = true
		case "ctrl", "control":
			combo.CtrlKey = true
		case "alt", "opt", "option":
			combo.AltKey = true
		case "shift":
			combo.ShiftKey = true
		case "meta", "cmd", "command", "super", "win":
			combo.MetaKey = true
		default:
			if i != len(tokens)-1 {
				return Combo{}, fmt.Errorf("combo spec %q: key %q must come last", spec, tok)
			}
			key := tok
			if len(key) > 1 {
				key = strings.ToLower(key)
				if alias, ok := keyAliases[key]; ok {
					key = alias
				}
			}
			combo.Key = key
		}
	}

	if combo.CtrlOrCmd && (combo.CtrlKey || combo.MetaKey) {
		return Combo{}, fmt.Errorf("combo spec %q: mod excludes explicit ctrl/meta", spec)
	}

	return combo, nil
}

// String returns the canonical spec for the combo, parseable by
// ParseCombo.
func (c Combo) String() string {
	var parts []string
	if c.CtrlOrCmd {
		parts = append(parts, "mod")
	}
	if c.CtrlKey {
		parts = append(parts, "ctrl")
	}
	if c.MetaKey {
		parts = append(parts, "meta")
	}
	if c.AltKey {
		parts = append(parts, "alt")
	}
	if c.ShiftKey {
		parts = append(parts, "shift")
	}
	if c.Key != "" {
		key := c.Key
		if key == " " {
			key = "space"
		}
		parts = append(parts, key)
	}
	return strings.Join(parts, "+")
}

// Label renders the combo for display under the given platform
// convention, resolving "mod" to cmd or ctrl.
func (c Combo) Label(mac bool) string {
	s := c.String()
	if !c.CtrlOrCmd {
		return s
	}
	if mac {
		return strings.Replace(s, "mod", "cmd", 1)
	}
	return strings.Replace(s, "mod", "ctrl", 1)
}

// MustCombo parses spec and panics on error. For static binding tables.
func MustCombo(spec string) Combo {
	combo, err := ParseCombo(spec)
	if err != nil {
		panic(err)
	}
	return combo
}

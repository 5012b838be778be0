package keybind

import "testing"

func TestMatchesKeyOnlyUnshifted(t *testing.T) {
	combo := Combo{Key: "k"}

	if !Matches(Event{Key: "k"}, combo, false) {
		t.Error("exact key should match without modifiers")
	}
	if Matches(Event{Key: "K"}, combo, false) {
		t.Error("unshifted comparison must be case-sensitive")
	}
	if Matches(Event{Key: "j"}, combo, false) {
		t.Error("different key must not match")
	}
}

func TestMatchesKeyShiftedIsCaseInsensitive(t *testing.T) {
	combo := Combo{Key: "k", ShiftKey: true}

	if !Matches(Event{Key: "K", ShiftKey: true}, combo, false) {
		t.Error("shifted comparison should be case-insensitive")
	}
	if !Matches(Event{Key: "k", ShiftKey: true}, combo, false) {
		t.Error("shifted comparison should accept lower case too")
	}
}

func TestMatchesShiftLeniencyDoesNotRelaxFlags(t *testing.T) {
	// A combo without shift must not match a shifted event even though
	// the key labels compare equal case-insensitively.
	combo := Combo{Key: "esc"}

	if Matches(Event{Key: "esc", ShiftKey: true}, combo, false) {
		t.Error("shift held but not in combo: must not match")
	}
	if !Matches(Event{Key: "esc"}, combo, false) {
		t.Error("plain escape should match")
	}
}

func TestMatchesCtrlOrCmdOnMac(t *testing.T) {
	combo := Combo{Key: "k", CtrlOrCmd: true}

	if !Matches(Event{Key: "k", MetaKey: true}, combo, true) {
		t.Error("meta-held event should match mod combo on Mac")
	}
	if Matches(Event{Key: "k", CtrlKey: true}, combo, true) {
		t.Error("ctrl without meta must not match mod combo on Mac")
	}
	if Matches(Event{Key: "k", MetaKey: true, ShiftKey: true}, combo, true) {
		t.Error("extra shift must not match")
	}
	if Matches(Event{Key: "k", MetaKey: true, AltKey: true}, combo, true) {
		t.Error("extra alt must not match")
	}
}

func TestMatchesCtrlOrCmdOnPC(t *testing.T) {
	combo := Combo{Key: "k", CtrlOrCmd: true}

	if !Matches(Event{Key: "k", CtrlKey: true}, combo, false) {
		t.Error("ctrl-held event should match mod combo on PC")
	}
	if Matches(Event{Key: "k", MetaKey: true}, combo, false) {
		t.Error("meta without ctrl must not match mod combo on PC")
	}
	if Matches(Event{Key: "k", CtrlKey: true, MetaKey: true}, combo, false) {
		t.Error("ctrl plus meta must not match: meta baseline is false")
	}
}

func TestMatchesCtrlOrCmdWithExplicitShift(t *testing.T) {
	combo := Combo{Key: "u", CtrlOrCmd: true, ShiftKey: true}

	if !Matches(Event{Key: "u", CtrlKey: true, ShiftKey: true}, combo, false) {
		t.Error("ctrl+shift should match mod+shift combo on PC")
	}
	if Matches(Event{Key: "u", CtrlKey: true}, combo, false) {
		t.Error("missing shift must not match")
	}
	if !Matches(Event{Key: "u", MetaKey: true, ShiftKey: true}, combo, true) {
		t.Error("meta+shift should match mod+shift combo on Mac")
	}
}

func TestMatchesExactModifiers(t *testing.T) {
	combo := Combo{Key: "x", AltKey: true, CtrlKey: true}

	if !Matches(Event{Key: "x", AltKey: true, CtrlKey: true}, combo, false) {
		t.Error("exact modifier set should match")
	}
	if Matches(Event{Key: "x", AltKey: true}, combo, false) {
		t.Error("missing ctrl must not match")
	}
	if Matches(Event{Key: "x", AltKey: true, CtrlKey: true, MetaKey: true}, combo, false) {
		t.Error("extra meta must not match")
	}
	// Same on Mac: without CtrlOrCmd the platform makes no difference.
	if !Matches(Event{Key: "x", AltKey: true, CtrlKey: true}, combo, true) {
		t.Error("exact modifier matching should be platform-independent")
	}
}

func TestMatchesKeylessCombo(t *testing.T) {
	// Degenerate but well-defined: no key, no modifiers matches any
	// modifier-free event.
	combo := Combo{}

	if !Matches(Event{Key: "a"}, combo, false) {
		t.Error("empty combo should match modifier-free event")
	}
	if Matches(Event{Key: "a", CtrlKey: true}, combo, false) {
		t.Error("empty combo must not match event with modifiers held")
	}
}

func TestMatchesModifierOnlyCombo(t *testing.T) {
	combo := Combo{CtrlKey: true}

	if !Matches(Event{Key: "anything", CtrlKey: true}, combo, false) {
		t.Error("modifier-only combo should match any key with ctrl held")
	}
	if Matches(Event{Key: "anything"}, combo, false) {
		t.Error("modifier-only combo must not match plain event")
	}
}

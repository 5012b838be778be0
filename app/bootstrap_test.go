package app

import (
	"testing"

	"nebula/config"
	"nebula/keybind"
)

func TestBuildManagerDefaultsOnly(t *testing.T) {
	manager, _, warnings := BuildManager(config.DefaultConfig())
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}

	got := manager.Resolve(keybind.ContextComposer, keybind.Event{Key: "enter"})
	if got != keybind.ComposerSend {
		t.Errorf("enter resolved to %q, want send", got)
	}
}

func TestBuildManagerUserBindingsTakePrecedence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.Composer = []config.BindingSpec{
		{Keys: "ctrl+enter", Action: "send"},
		{Keys: "enter", Action: "new_line"},
	}

	manager, _, warnings := BuildManager(cfg)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}

	if got := manager.Resolve(keybind.ContextComposer, keybind.Event{Key: "enter", CtrlKey: true}); got != keybind.ComposerSend {
		t.Errorf("ctrl+enter resolved to %q, want send", got)
	}
	if got := manager.Resolve(keybind.ContextComposer, keybind.Event{Key: "enter"}); got != keybind.ComposerNewLine {
		t.Errorf("enter resolved to %q, want the user's new_line override", got)
	}
}

func TestBuildManagerReportsBadSpecs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.Room = []config.BindingSpec{
		{Keys: "mod+ctrl+u", Action: "scroll_up"},
		{Keys: "pgup", Action: "no_such_action"},
	}

	manager, _, warnings := BuildManager(cfg)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", warnings)
	}

	// Broken specs are skipped; the defaults still resolve.
	if got := manager.Resolve(keybind.ContextRoom, keybind.Event{Key: "pgup"}); got != keybind.RoomScrollUp {
		t.Errorf("pgup resolved to %q, want scroll_up", got)
	}
}

func TestBuildManagerLiveReload(t *testing.T) {
	cfg := config.DefaultConfig()
	manager, bindings, _ := BuildManager(cfg)

	kb := config.Keybindings{
		Navigation: []config.BindingSpec{{Keys: "ctrl+o", Action: "toggle_room_list"}},
	}
	if warnings := bindings.Reload(kb); len(warnings) != 0 {
		t.Fatalf("reload warnings = %v", warnings)
	}

	got := manager.Resolve(keybind.ContextNavigation, keybind.Event{Key: "o", CtrlKey: true})
	if got != keybind.NavToggleRoomList {
		t.Errorf("ctrl+o resolved to %q after reload, want toggle_room_list", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"nebula/keybind"
)

func testDefaults(dir string) Config {
	cfg := DefaultConfig()
	cfg.NebulaDir = dir
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DisplayName == "" {
		t.Error("DisplayName should never be empty")
	}
	if cfg.AccentColor != "208" {
		t.Errorf("AccentColor = %q, want %q", cfg.AccentColor, "208")
	}
	if cfg.Platform != "" {
		t.Errorf("Platform = %q, want empty (detect)", cfg.Platform)
	}
	if len(cfg.Rooms) == 0 {
		t.Error("default config should seed rooms")
	}
	if filepath.Dir(cfg.ConfigFilePath()) != cfg.NebulaDir {
		t.Errorf("ConfigFilePath %q is not inside NebulaDir %q", cfg.ConfigFilePath(), cfg.NebulaDir)
	}
	if !cfg.Keybindings.Empty() {
		t.Error("default config should declare no custom bindings")
	}
}

func TestLoadNoFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nonexistent.toml")
	defaults := testDefaults(tmp)

	cfg, warnings, err := LoadFrom(path, defaults)
	if err != nil {
		t.Fatalf("LoadFrom returned error for missing file: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if cfg.DisplayName != defaults.DisplayName || cfg.NebulaDir != defaults.NebulaDir {
		t.Errorf("LoadFrom with missing file returned non-default config")
	}
}

func TestLoadValidFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	content := `display_name = "ada"
platform = "mac"

[[keybindings.composer]]
keys = "mod+enter"
action = "send"

[[keybindings.composer]]
keys = "enter"
action = "new_line"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	defaults := testDefaults(tmp)
	cfg, warnings, err := LoadFrom(path, defaults)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for valid keys, got %v", warnings)
	}

	if cfg.DisplayName != "ada" {
		t.Errorf("DisplayName = %q, want %q", cfg.DisplayName, "ada")
	}
	if !cfg.Mac() {
		t.Error("platform override mac should force Mac convention")
	}
	if len(cfg.Keybindings.Composer) != 2 {
		t.Fatalf("composer bindings = %d, want 2", len(cfg.Keybindings.Composer))
	}
	// Array-of-tables order must survive decoding: it is the
	// within-provider resolution order.
	if cfg.Keybindings.Composer[0].Keys != "mod+enter" {
		t.Errorf("first composer binding = %q, want mod+enter", cfg.Keybindings.Composer[0].Keys)
	}
	// Non-overridden fields keep defaults.
	if cfg.AccentColor != defaults.AccentColor {
		t.Errorf("AccentColor = %q, want default %q", cfg.AccentColor, defaults.AccentColor)
	}
}

func TestLoadUnknownKeysWarn(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	content := `display_name = "ada"
displayname = "typo"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, warnings, err := LoadFrom(path, testDefaults(tmp))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
}

func TestLoadInvalidPlatformWarns(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	if err := os.WriteFile(path, []byte(`platform = "amiga"`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := LoadFrom(path, testDefaults(tmp))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if cfg.Platform != "" {
		t.Errorf("Platform = %q, want reset to empty", cfg.Platform)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	if err := os.WriteFile(path, []byte(`display_name = `), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFrom(path, testDefaults(tmp)); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestBindingProviderOverridesDefaults(t *testing.T) {
	kb := Keybindings{
		Composer: []BindingSpec{
			{Keys: "mod+enter", Action: "send"},
			{Keys: "enter", Action: "new_line"},
		},
	}
	p, warnings := NewBindingProvider(kb)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	m := keybind.NewManager(false, keybind.DefaultProvider{})
	m.Prepend(p)

	// Custom provider rebinds enter to new_line, defaults would say send.
	if got := m.Resolve(keybind.ContextComposer, keybind.Event{Key: "enter"}); got != keybind.ComposerNewLine {
		t.Errorf("Resolve(enter) = %q, want %q", got, keybind.ComposerNewLine)
	}
	if got := m.Resolve(keybind.ContextComposer, keybind.Event{Key: "enter", CtrlKey: true}); got != keybind.ComposerSend {
		t.Errorf("Resolve(ctrl+enter) = %q, want %q", got, keybind.ComposerSend)
	}
	// Unbound combos still fall through to defaults.
	if got := m.Resolve(keybind.ContextComposer, keybind.Event{Key: "esc"}); got != keybind.ComposerCancelEditing {
		t.Errorf("Resolve(esc) = %q, want default %q", got, keybind.ComposerCancelEditing)
	}
}

func TestBindingProviderWarnsAndSkipsInvalid(t *testing.T) {
	kb := Keybindings{
		Composer: []BindingSpec{
			{Keys: "enter+ctrl", Action: "send"},     // malformed combo
			{Keys: "mod+enter", Action: "teleport"},  // unknown action
			{Keys: "mod+enter", Action: "room.scroll_up"}, // wrong context
			{Keys: "mod+enter", Action: "composer.send"},  // qualified, valid
		},
	}
	p, warnings := NewBindingProvider(kb)
	if len(warnings) != 3 {
		t.Fatalf("warnings = %v, want 3", warnings)
	}
	if got := len(p.ComposerBindings()); got != 1 {
		t.Fatalf("ComposerBindings length = %d, want 1", got)
	}
	if p.ComposerBindings()[0].Action != keybind.ComposerSend {
		t.Errorf("surviving binding = %q, want composer.send", p.ComposerBindings()[0].Action)
	}
}

func TestBindingProviderRoomOverrides(t *testing.T) {
	kb := Keybindings{
		Room: []BindingSpec{
			{Keys: "pgup", Action: "scroll_up"},
		},
		RoomOverrides: []RoomOverride{
			{
				Match: "dev/**",
				Bindings: []BindingSpec{
					{Keys: "pgup", Action: "jump_to_first"},
				},
			},
		},
	}
	p, warnings := NewBindingProvider(kb)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	m := keybind.NewManager(false, p)
	ev := keybind.Event{Key: "pgup"}

	p.SetActiveRoom("general")
	if got := m.Resolve(keybind.ContextRoom, ev); got != keybind.RoomScrollUp {
		t.Errorf("non-matching room: Resolve = %q, want scroll_up", got)
	}

	p.SetActiveRoom("dev/infra")
	if got := m.Resolve(keybind.ContextRoom, ev); got != keybind.RoomJumpToFirst {
		t.Errorf("matching room: Resolve = %q, want jump_to_first", got)
	}
}

func TestBindingProviderReload(t *testing.T) {
	p, _ := NewBindingProvider(Keybindings{
		Navigation: []BindingSpec{{Keys: "ctrl+p", Action: "prev_room"}},
	})
	m := keybind.NewManager(false, p)
	ev := keybind.Event{Key: "p", CtrlKey: true}

	if got := m.Resolve(keybind.ContextNavigation, ev); got != keybind.NavPrevRoom {
		t.Fatalf("Resolve = %q, want prev_room", got)
	}

	warnings := p.Reload(Keybindings{
		Navigation: []BindingSpec{{Keys: "ctrl+p", Action: "next_room"}},
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if got := m.Resolve(keybind.ContextNavigation, ev); got != keybind.NavNextRoom {
		t.Errorf("after reload Resolve = %q, want next_room", got)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nebula/keybind"
)

// BindingSpec is one user-declared key binding: a combo spec string and
// a context-scoped action name.
type BindingSpec struct {
	Keys   string `toml:"keys"`
	Action string `toml:"action"`
}

// RoomOverride scopes extra room-context bindings to rooms whose name
// matches a doublestar glob. Overrides are consulted ahead of the plain
// room list for the matching room.
type RoomOverride struct {
	Match    string        `toml:"match"`
	Bindings []BindingSpec `toml:"bindings"`
}

// Keybindings holds the per-context user binding lists. Arrays of
// tables keep declaration order, which is part of the resolution
// contract (first listed wins within the provider).
type Keybindings struct {
	Composer      []BindingSpec  `toml:"composer"`
	Autocomplete  []BindingSpec  `toml:"autocomplete"`
	RoomList      []BindingSpec  `toml:"room_list"`
	Room          []BindingSpec  `toml:"room"`
	Navigation    []BindingSpec  `toml:"navigation"`
	RoomOverrides []RoomOverride `toml:"room_overrides"`
}

// Empty reports whether no custom bindings are declared at all.
func (k Keybindings) Empty() bool {
	return len(k.Composer) == 0 &&
		len(k.Autocomplete) == 0 &&
		len(k.RoomList) == 0 &&
		len(k.Room) == 0 &&
		len(k.Navigation) == 0 &&
		len(k.RoomOverrides) == 0
}

// RoomSeed describes a room created at startup.
type RoomSeed struct {
	Name    string `toml:"name"`
	Topic   string `toml:"topic"`
	Section string `toml:"section"` // favorites, rooms, people
}

// Config holds all nebula configuration values.
type Config struct {
	DisplayName string `toml:"display_name"`
	AccentColor string `toml:"accent_color"`

	// Platform overrides modifier-convention detection: "mac", "pc",
	// or empty for runtime detection.
	Platform string `toml:"platform"`

	NebulaDir string `toml:"nebula_dir"`

	Rooms []RoomSeed `toml:"rooms"`

	Keybindings Keybindings `toml:"keybindings"`
}

// DefaultConfig returns a Config with all defaults populated.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	name := os.Getenv("USER")
	if name == "" {
		name = "me"
	}

	return Config{
		DisplayName: name,
		AccentColor: "208",
		Platform:    "",
		NebulaDir:   filepath.Join(home, ".nebula"),
		Rooms: []RoomSeed{
			{Name: "general", Topic: "Anything goes", Section: "rooms"},
			{Name: "dev", Topic: "Build talk", Section: "rooms"},
			{Name: "random", Topic: "Off topic", Section: "rooms"},
			{Name: "echo", Topic: "Loopback test room", Section: "people"},
		},
	}
}

// ConfigFilePath returns the path to the config file inside NebulaDir.
func (c Config) ConfigFilePath() string {
	return filepath.Join(c.NebulaDir, "config.toml")
}

// Mac resolves the platform modifier convention, honoring the override.
func (c Config) Mac() bool {
	switch c.Platform {
	case "mac":
		return true
	case "pc":
		return false
	}
	return keybind.IsMacPlatform()
}

// Load loads configuration from the default location
// (~/.nebula/config.toml), falling back to defaults if the file does
// not exist.
func Load() (Config, []string, error) {
	defaults := DefaultConfig()
	return LoadFrom(defaults.ConfigFilePath(), defaults)
}

// LoadFrom loads configuration from the given path, overlaying TOML
// values onto the provided defaults. A missing file returns the
// defaults without error (first-run case); a malformed file is an
// error. Warnings are returned for unrecognized TOML keys and for
// invalid platform overrides.
func LoadFrom(path string, defaults Config) (Config, []string, error) {
	cfg := defaults

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil, nil
		}
		return Config{}, nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown config key: %s", key))
	}

	switch cfg.Platform {
	case "", "mac", "pc":
	default:
		warnings = append(warnings, fmt.Sprintf("invalid platform %q (want mac or pc), using detection", cfg.Platform))
		cfg.Platform = ""
	}

	return cfg, warnings, nil
}

// EnsureDirs creates NebulaDir if it does not exist.
func (c Config) EnsureDirs() error {
	if c.NebulaDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.NebulaDir, 0700); err != nil {
		return fmt.Errorf("creating directory %s: %w", c.NebulaDir, err)
	}
	return nil
}

package app

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nebula/config"
	"nebula/core"
	"nebula/keybind"
	"nebula/ui"
)

const echoDelay = 900 * time.Millisecond

// Bootstrap creates and wires all application dependencies.
// Each phase is separate for testability.
func Bootstrap() (*Application, error) {
	// 1. Load configuration
	cfg, warnings, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "nebula: warning: %s\n", w)
	}

	// 2. Assemble the key binding manager
	manager, bindings, bindWarnings := BuildManager(cfg)
	for _, w := range bindWarnings {
		fmt.Fprintf(os.Stderr, "nebula: warning: %s\n", w)
	}

	// 3. Create core session and feed
	notifierAdapter := &coreNotifierAdapter{}
	session := core.NewSession(cfg.DisplayName, notifierAdapter)
	for _, seed := range cfg.Rooms {
		session.AddRoom(seed.Name, seed.Topic, seed.Section)
	}

	feed := core.NewLoopbackFeed(echoDelay)
	session.AttachFeed(feed)

	// 4. Set up UI around the session
	shell := ui.NewShell(&sessionStore{session: session}, manager)
	notifierAdapter.ui = shell.GetNotifier()
	configureShell(shell, cfg, bindings)

	// 5. Create Bubble Tea program
	program := tea.NewProgram(shell, tea.WithAltScreen())
	shell.GetNotifier().SetProgram(program)

	// 6. Watch the config file for binding changes
	watcher := watchConfig(cfg, bindings, shell.GetNotifier())

	return &Application{
		Config:   cfg,
		Session:  session,
		Shell:    shell,
		Program:  program,
		Manager:  manager,
		Bindings: bindings,
		feed:     feed,
		watcher:  watcher,
	}, nil
}

// loadConfig loads configuration from disk and ensures directories exist.
func loadConfig() (config.Config, []string, error) {
	cfg, warnings, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, warnings, nil
}

// BuildManager assembles the key binding manager: the built-in defaults
// with the user's configured bindings prepended so they take
// precedence. Also used by the keys command so the cheatsheet shows the
// same bindings the TUI dispatches.
func BuildManager(cfg config.Config) (*keybind.Manager, *config.BindingProvider, []string) {
	bindings, warnings := config.NewBindingProvider(cfg.Keybindings)

	manager := keybind.NewManager(cfg.Mac(), keybind.DefaultProvider{})
	manager.Prepend(bindings)

	return manager, bindings, warnings
}

// configureShell applies config-driven settings and wires the binding
// layer's room scope.
func configureShell(shell *ui.Shell, cfg config.Config, bindings *config.BindingProvider) {
	if cfg.AccentColor != "" {
		shell.SetAccentColor(cfg.AccentColor)
	}
	shell.AddStatusItem("user", cfg.DisplayName)
	shell.AddStatusItem("keys", "ctrl+g keys")
	shell.SetRoomScope(bindings.SetActiveRoom)
}

// watchConfig starts a file watcher that reloads the binding layer when
// the config file changes. Returns nil when watching is unavailable;
// the app then simply runs without live reload.
func watchConfig(cfg config.Config, bindings *config.BindingProvider, notifier *ui.Notifier) *config.Watcher {
	path := cfg.ConfigFilePath()
	watcher, err := config.WatchFile(path, func() {
		fresh, _, err := config.LoadFrom(path, config.DefaultConfig())
		if err != nil {
			notifier.Send(ui.StatusItemUpdateMsg{Key: "config", Value: "config reload failed"})
			return
		}
		warnings := bindings.Reload(fresh.Keybindings)
		if len(warnings) > 0 {
			notifier.Send(ui.StatusItemUpdateMsg{
				Key:   "config",
				Value: fmt.Sprintf("config: %d binding warnings", len(warnings)),
			})
		} else {
			notifier.Send(ui.StatusItemUpdateMsg{Key: "config", Value: "bindings reloaded"})
		}
		notifier.Notify()
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "nebula: warning: config watch disabled: %v\n", err)
		return nil
	}
	return watcher
}

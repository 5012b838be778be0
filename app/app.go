package app

import (
	"nebula/config"
	"nebula/core"
	"nebula/keybind"
	"nebula/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Application holds all wired dependencies and manages the application
// lifecycle.
type Application struct {
	Config   config.Config
	Session  *core.Session
	Shell    *ui.Shell
	Program  *tea.Program
	Manager  *keybind.Manager
	Bindings *config.BindingProvider

	feed    *core.LoopbackFeed
	watcher *config.Watcher
}

// Run starts the application and blocks until it exits.
func (a *Application) Run() error {
	if a.watcher != nil {
		defer a.watcher.Close()
	}
	defer a.feed.Close()

	if _, err := a.Program.Run(); err != nil {
		return err
	}
	return nil
}

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk, so binding
// lists reflect live configuration without restarting.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onChange  func()
	stopChan  chan struct{}
}

// WatchFile watches path and invokes onChange (on the watcher
// goroutine) after the file is written or replaced. The parent
// directory is watched rather than the file itself: editors and atomic
// writers replace the file by rename, which would otherwise silently
// detach the watch.
func WatchFile(path string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	// Editors emit bursts (create, write, chmod); debounce so a save
	// triggers a single reload.
	const debounce = 100 * time.Millisecond
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.onChange()

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-w.stopChan:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stopChan)
	return w.fsWatcher.Close()
}

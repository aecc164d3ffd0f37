package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type busChangedMsg struct{}

// busWatcher wakes consumers when the command bus file is written. The
// directory is watched so that a bus file recreated by an external tool is
// still seen.
type busWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

func newBusWatcher(path string) (*busWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &busWatcher{path: filepath.Clean(path), watcher: w}, nil
}

// Changed blocks until the bus file is created or written. It returns false
// once the watcher is closed.
func (b *busWatcher) Changed() bool {
	for {
		select {
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return false
			}
			if filepath.Clean(ev.Name) != b.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				return true
			}
		case _, ok := <-b.watcher.Errors:
			if !ok {
				return false
			}
		}
	}
}

func (b *busWatcher) waitCmd() tea.Cmd {
	return func() tea.Msg {
		if b.Changed() {
			return busChangedMsg{}
		}
		return nil
	}
}

func (b *busWatcher) Close() error {
	if b == nil {
		return nil
	}
	return b.watcher.Close()
}

package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

// ScenarioReloadedMsg is sent when a followed scenario file changes.
// Err is set when the new contents could not be loaded.
type ScenarioReloadedMsg struct {
	Name string
	Map  patrol.Map
	Err  error
}

// FileWatcher follows one scenario file on disk.
// The parent directory is watched so editors that replace the file
// by rename are still seen.
type FileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// WatchScenario starts following the scenario file at path.
func WatchScenario(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	return &FileWatcher{path: abs, watcher: w}, nil
}

// Path returns the absolute path being followed.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Next returns a command that blocks until the file changes and then
// reloads it. The command returns nil once the watcher is closed.
func (fw *FileWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-fw.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != fw.path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				return fw.reload()

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return nil
				}
				return ScenarioReloadedMsg{Err: err}
			}
		}
	}
}

func (fw *FileWatcher) reload() ScenarioReloadedMsg {
	sc, err := scenario.LoadFile(fw.path)
	if err != nil {
		return ScenarioReloadedMsg{Err: err}
	}
	m, err := sc.Map()
	if err != nil {
		return ScenarioReloadedMsg{Name: sc.Name, Err: err}
	}
	return ScenarioReloadedMsg{Name: sc.Name, Map: m}
}

// Close stops following the file.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

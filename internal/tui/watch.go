package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// dbChangedMsg reports that another process wrote the conversation
// database; the model reloads its snapshot in response.
type dbChangedMsg struct{}

// watchCmd blocks on an fsnotify watcher for the database file's
// directory and resolves on the first relevant write. The model re-issues
// it after each reload, so the watch lives for the whole session.
func watchCmd(dbPath string) tea.Cmd {
	if dbPath == "" {
		return nil
	}
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil
		}
		defer watcher.Close()

		if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
			return nil
		}
		base := filepath.Base(dbPath)
		for {
			select {
			case evt, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// sqlite writes hit the db plus -wal/-journal siblings.
				name := filepath.Base(evt.Name)
				if name == base || name == base+"-wal" || name == base+"-journal" {
					return dbChangedMsg{}
				}
			case <-watcher.Errors:
			}
		}
	}
}

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses rapid successive writes (editors often write a
// file several times in a row) into one reload notification.
const watchDebounce = 500 * time.Millisecond

// Watcher watches the config file for changes and delivers debounced
// reload notifications on Events.
type Watcher struct {
	Events chan struct{}

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the given config file. The containing directory is
// watched rather than the file itself so atomic rename-over-write saves
// are still observed.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		Events:  make(chan struct{}, 1),
		watcher: fw,
		done:    make(chan struct{}),
	}
	go w.loop(filepath.Base(path))
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	w.watcher.Close()
}

func (w *Watcher) loop(base string) {
	var debounce *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case w.Events <- struct{}{}:
				default: // a notification is already pending
				}
			})

		case <-w.watcher.Errors:
			// Watch errors are not fatal; the manual reload key still works.

		case <-w.done:
			return
		}
	}
}

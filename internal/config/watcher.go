// ABOUTME: fsnotify-based file watcher for keybinding hot-reload
// ABOUTME: Watches parent directories so editors that replace files are seen

package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher calls onChange when any of its files is written, created, removed
// or renamed.
type Watcher struct {
	paths    map[string]struct{}
	onChange func()

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for paths. Call Start to begin watching.
func NewWatcher(paths []string, onChange func()) *Watcher {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = struct{}{}
	}
	return &Watcher{
		paths:    set,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// Start begins watching. Calling Start twice is a no-op. Directories that do
// not exist are skipped.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	dirs := make(map[string]struct{})
	for p := range w.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("not watching directory")
		}
	}
	w.fsw = fsw
	go w.loop(fsw)
	return nil
}

// Stop halts watching. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		fsw := w.fsw
		w.mu.Unlock()
		close(w.done)
		if fsw != nil {
			fsw.Close()
		}
	})
}

func (w *Watcher) loop(fsw *fsnotify.Watcher) {
	const interesting = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Op&interesting == 0 {
				continue
			}
			if _, watched := w.paths[filepath.Clean(ev.Name)]; watched {
				w.onChange()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// ABOUTME: Tests for the fsnotify file watcher
// ABOUTME: Validates change detection, path filtering, and idempotent stop

package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestWatcher_DetectsChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	if err := os.WriteFile(path, []byte("quit: [q]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("quit: [x]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return called.Load() > 0 }) {
		t.Error("onChange not called after modification")
	}
}

func TestWatcher_DetectsCreate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("quit: [x]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return called.Load() > 0 }) {
		t.Error("onChange not called after the file was created")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if called.Load() != 0 {
		t.Errorf("onChange called %d times for an unrelated file", called.Load())
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	w := NewWatcher([]string{filepath.Join(t.TempDir(), "keys.yaml")}, func() {})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	t.Parallel()

	w := NewWatcher(nil, func() {})
	w.Stop()
}

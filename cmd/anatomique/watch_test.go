//go:build !wasm

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
)

// TestWatchCreated_LogsAddFailure verifies that a new directory the watcher
// cannot follow is reported at warn level instead of being dropped.
func TestWatchCreated_LogsAddFailure(t *testing.T) {
	// Arrange: A closed watcher rejects every Add
	b, dir, _ := newTestBuilder(t)
	var logs bytes.Buffer
	b.logger = slog.New(slog.NewTextHandler(&logs, nil))
	w := &watcher{builder: b, dir: dir}
	sub := filepath.Join(dir, "widgets")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	fsw.Close()

	// Act
	w.watchCreated(fsw, sub)

	// Assert
	out := logs.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "failed to watch new directory") {
		t.Errorf("Expected a warning for the new directory, got:\n%s", out)
	}
}

// TestWatchCreated_IgnoresFilesAndOutput verifies that plain files and the
// output directory are never added.
func TestWatchCreated_IgnoresFilesAndOutput(t *testing.T) {
	b, dir, _ := newTestBuilder(t)
	var logs bytes.Buffer
	b.logger = slog.New(slog.NewTextHandler(&logs, nil))
	w := &watcher{builder: b, dir: dir}
	if err := os.MkdirAll(b.cfg.OutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := writeInput(t, dir, "app.ast", helloAST)
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	fsw.Close()

	w.watchCreated(fsw, file)
	w.watchCreated(fsw, b.cfg.OutDir)

	if logs.Len() != 0 {
		t.Errorf("Expected no add attempts, got:\n%s", logs.String())
	}
}

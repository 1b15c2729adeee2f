package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Build, then rebuild whenever an input changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, flags)
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			w := &watcher{builder: &builder{session: s, out: newPrinter(os.Stderr)}, dir: dir}
			return w.run(cmd.Context())
		},
	}
}

// watcher rebuilds dir on input changes, coalescing bursts of events.
type watcher struct {
	*builder
	dir string
}

func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addDirs(fsw); err != nil {
		return err
	}
	w.rebuild(ctx)

	// pending fires once the debounce window after the last change closes.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				w.watchCreated(fsw, ev.Name)
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			pending = time.After(w.cfg.Watch.Debounce)
		case <-pending:
			pending = nil
			w.rebuild(ctx)
		}
	}
}

// rebuild runs a build and reports failures without stopping the watch.
func (w *watcher) rebuild(ctx context.Context) {
	if _, err := w.builder.run(ctx, []string{w.dir}); err != nil && !errors.Is(err, context.Canceled) {
		w.out.failure("%v", err)
	}
}

func (w *watcher) addDirs(fsw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.dir && w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// watchCreated starts watching path when it is a new directory.
func (w *watcher) watchCreated(fsw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.skipDir(path) {
		return
	}
	if err := fsw.Add(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

func (w *watcher) skipDir(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	abs, _ := filepath.Abs(path)
	out, _ := filepath.Abs(w.cfg.OutDir)
	return abs == out
}

// relevant reports whether ev touches an input file.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	for _, p := range w.cfg.Inputs {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

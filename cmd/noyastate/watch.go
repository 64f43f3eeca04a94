package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/noya-app/noyastate"
)

// watch applies the script once, then again after every change to it,
// until ctx is done. Failed runs are logged and do not stop the watch.
func (c *cli) watch(ctx context.Context, docPath, scriptPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// Editors often save by renaming a temporary file over the original,
	// which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(scriptPath)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	run := func() {
		start := time.Now()
		if err := c.applyFiles(docPath, scriptPath, nil); err != nil {
			noyastate.Logger().Error("watch: apply failed", "script", scriptPath, "err", err)
			return
		}
		noyastate.Logger().Info("watch: applied", "script", scriptPath, "output", c.output, "took", time.Since(start))
	}
	run()
	return watchLoop(ctx, w.Events, w.Errors, filepath.Clean(scriptPath), c.cfg.Watch.Debounce, run)
}

// watchLoop calls run once per burst of events touching name. A burst ends
// when no event for name arrives for debounce.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, name string, debounce time.Duration, run func()) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			noyastate.Logger().Warn("watch: watcher error", "err", err)
		case <-pending:
			pending = nil
			run()
		}
	}
}

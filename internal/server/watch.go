package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/logging"
)

// reloadDelay collapses the burst of events a single save produces.
const reloadDelay = 200 * time.Millisecond

// profileWatcher reloads a profiles file when it changes on disk.
type profileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// newProfileWatcher starts watching the directory of path. The directory is
// watched rather than the file because saves replace the file by rename.
func newProfileWatcher(path string) (*profileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create profile watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logging.Info("Watching profiles", zap.String("path", abs))
	return &profileWatcher{path: abs, watcher: w}, nil
}

func (pw *profileWatcher) close() error {
	return pw.watcher.Close()
}

// run delivers every successfully reloaded registry to apply until ctx is
// done. A file that fails to load is logged and the previous profiles stay.
func (pw *profileWatcher) run(ctx context.Context, apply func(*config.Registry)) error {
	defer pw.close()

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-pw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != pw.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			reload = time.After(reloadDelay)

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Profile watcher error", zap.Error(err))

		case <-reload:
			reload = nil
			reg, err := config.LoadRegistryFrom(pw.path)
			if err != nil {
				logging.Warn("Keeping previous profiles", zap.String("path", pw.path), zap.Error(err))
				continue
			}
			logging.Info("Profiles reloaded",
				zap.String("path", pw.path),
				zap.Int("profiles", len(reg.Profiles)),
			)
			apply(reg)
		}
	}
}

package platform

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig watches the config file and invokes onChange with the
// reloaded Config whenever it is rewritten. Editors replace files rather
// than write in place, so the parent directory is watched and events are
// filtered by name. The watcher stops when ctx is cancelled.
func WatchConfig(ctx context.Context, path string, logger *slog.Logger, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadConfig(path)
				if err != nil {
					if logger != nil {
						logger.Warn("config reload failed", "error", err)
					}
					continue
				}
				if logger != nil {
					logger.Debug("config reloaded", "path", path)
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if logger != nil {
					logger.Warn("config watcher error", "error", err)
				}
			}
		}
	})

	return nil
}

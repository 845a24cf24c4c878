package defaults

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the provider whenever its YAML file is written, created or
// renamed into place. It blocks until ctx is done. A provider without a
// backing file returns immediately.
func (p *Provider) Watch(ctx context.Context, logger *zap.Logger) error {
	if p.path == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create default content watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files atomically, so watch the directory.
	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(p.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := p.Reload(); err != nil {
				logger.Warn("default content reload failed", zap.String("path", p.path), zap.Error(err))
				continue
			}
			logger.Info("default content reloaded", zap.String("path", p.path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("default content watcher error", zap.Error(err))
		}
	}
}

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Watch blocks until ctx is done, calling onChange with the reloaded
// configuration (env overrides applied) each time the file at path is written
// or created. The parent directory is watched so that editors replacing the
// file are noticed. Bursts of events are coalesced into one reload.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	var (
		timer  *time.Timer
		reload <-chan time.Time
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
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(consts.ConfigReloadDebounce)
			} else {
				timer.Reset(consts.ConfigReloadDebounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			cfg, err := Load(path)
			if err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			cfg.ApplyEnvOverrides()
			logger.Debug("config reloaded from %s", path)
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error: %v", err)
		}
	}
}

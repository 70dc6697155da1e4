package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"skillpath_backend/internal/config"
	"skillpath_backend/pkg/logger"
)

const defaultDebounce = time.Second

// Watcher reloads the configuration when its file changes and hands the
// result to OnReload. Bursts of writes are collapsed into one reload.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Load     func(dir string) (*config.Config, error)
	OnReload func(*config.Config)
}

func New(path string, onReload func(*config.Config)) *Watcher {
	return &Watcher{
		Path:     path,
		Debounce: defaultDebounce,
		Load:     config.LoadConfig,
		OnReload: onReload,
	}
}

// Start begins watching and returns once the watch is registered. The
// watch stops when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	absPath, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	// Editors often replace the file instead of writing it, so the
	// directory is watched and events are filtered by name.
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	go w.loop(ctx, fw, absPath)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, absPath string) {
	defer fw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != absPath || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.Debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload(absPath)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload(absPath string) {
	cfg, err := w.Load(filepath.Dir(absPath))
	if err != nil {
		logger.Log.Error("Failed to reload config", zap.String("path", absPath), zap.Error(err))
		return
	}
	logger.Log.Info("Config reloaded", zap.String("path", absPath))
	w.OnReload(cfg)
}

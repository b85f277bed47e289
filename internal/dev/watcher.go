package dev

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starbugmolt/starbug/internal/errors"
)

// DefaultDebounce is the quiet period after the last change before a
// reload runs.
const DefaultDebounce = 200 * time.Millisecond

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Dir is the directory to watch. Subdirectories are not followed.
	Dir string

	// Debounce is the quiet period before Reload runs.
	Debounce time.Duration

	// Reload rebuilds whatever depends on Dir.
	Reload func(ctx context.Context) error

	Logger *slog.Logger
}

// Watcher reloads content when files in a directory change.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	reloads atomic.Int64
	failed  atomic.Int64
}

// NewWatcher starts watching config.Dir. Events are only acted on once Run
// is called.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Reload == nil {
		return nil, errors.Newf(errors.CategoryConfig, "dev: Reload is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.New("E123").WithDetail(config.Dir).Wrap(err)
	}
	if err := fw.Add(config.Dir); err != nil {
		fw.Close()
		return nil, errors.New("E123").WithDetail(config.Dir).Wrap(err)
	}

	return &Watcher{
		config:  config,
		watcher: fw,
		logger:  logger.With("dir", config.Dir),
	}, nil
}

// Run handles events until ctx is done, then closes the watcher. It
// returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	debounce := time.NewTimer(w.config.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	w.logger.Info("watching content")
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("content changed", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			debounce.Reset(w.config.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-debounce.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	start := time.Now()
	if err := w.config.Reload(ctx); err != nil {
		w.failed.Add(1)
		w.logger.Error("reload failed, keeping the previous site", "error", err)
		return
	}
	w.reloads.Add(1)
	w.logger.Info("content reloaded", "duration", time.Since(start))
}

// Reloads reports how many reloads succeeded.
func (w *Watcher) Reloads() int64 { return w.reloads.Load() }

// Failures reports how many reloads failed.
func (w *Watcher) Failures() int64 { return w.failed.Load() }

// relevant filters out editor droppings and chmod-only events.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".tmp"):
		return false
	}
	return true
}

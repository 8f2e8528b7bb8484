package reload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/bpekit/bpe"
)

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher keeps the latest successfully loaded model for a file path.
//
// Current is safe to call from any goroutine. The returned model is never
// mutated by the watcher: each reload builds a new one and swaps it in.
type Watcher struct {
	path         string
	pollInterval time.Duration
	onReload     func(*bpe.Model)
	modelOpts    []bpe.Option

	current atomic.Pointer[bpe.Model]
	reloads atomic.Int64
	modTime time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithPollInterval sets the polling interval used when fsnotify cannot be
// started. Values <= 0 keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithOnReload registers a callback invoked after each successful reload.
func WithOnReload(fn func(*bpe.Model)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithModelOptions sets options applied to every loaded model.
func WithModelOptions(opts ...bpe.Option) Option {
	return func(w *Watcher) {
		w.modelOpts = opts
	}
}

// New loads the model at path and returns a watcher for it.
// It fails if the initial load fails.
func New(path string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		path:         path,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}

	m, err := bpe.LoadFile(path, w.modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}
	w.current.Store(m)
	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
	}
	return w, nil
}

// Path returns the watched model path.
func (w *Watcher) Path() string {
	return w.path
}

// Current returns the most recently loaded model.
func (w *Watcher) Current() *bpe.Model {
	return w.current.Load()
}

// Reloads returns the number of successful reloads since New.
func (w *Watcher) Reloads() int {
	return int(w.reloads.Load())
}

// Run watches the model file until ctx is done. It watches the parent
// directory so that atomic replacement (write + rename) is observed, and falls
// back to polling when fsnotify is unavailable. Run returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Debug("fsnotify unavailable, polling model file", slog.Any("error", err))
		return w.runPolling(ctx)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		slog.Debug("cannot watch model directory, polling", slog.Any("error", err))
		return w.runPolling(ctx)
	}
	return w.runWatcher(ctx, watcher)
}

func (w *Watcher) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) error {
	baseName := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return ctx.Err()
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return ctx.Err()
			}
			slog.Warn("model watcher error", slog.String("path", w.path), slog.Any("error", err))
		}
	}
}

func (w *Watcher) runPolling(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				continue
			}
			if info.ModTime().Equal(w.modTime) {
				continue
			}
			w.modTime = info.ModTime()
			w.reload()
		}
	}
}

// reload swaps in the model on disk. A model that fails to load is logged and
// the previous one stays current.
func (w *Watcher) reload() {
	m, err := bpe.LoadFile(w.path, w.modelOpts...)
	if err != nil {
		slog.Warn("model reload failed, keeping previous model",
			slog.String("path", w.path),
			slog.Any("error", err))
		return
	}
	w.current.Store(m)
	w.reloads.Add(1)
	slog.Info("model reloaded",
		slog.String("path", w.path),
		slog.Int("vocab_size", m.VocabSize()))
	if w.onReload != nil {
		w.onReload(m)
	}
}

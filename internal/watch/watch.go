// Package watch reports debounced changes to content and static files.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more changes before
// reporting a batch.
const DefaultDebounce = 500 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs []string
	// Extensions limits reported files. Empty means every file.
	Extensions []string
	// ExcludeDirs are directory names that are never watched.
	ExcludeDirs []string
	Debounce    time.Duration
	Logger      *slog.Logger
}

// ChangeFunc receives the sorted set of changed paths in a batch.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches directories and calls a ChangeFunc once per quiet period.
type Watcher struct {
	fsw        *fsnotify.Watcher
	opts       Options
	logger     *slog.Logger
	onChange   ChangeFunc
	extensions map[string]bool
	excludes   map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	done chan struct{}
}

// New creates a watcher. Call Start to begin watching.
func New(opts Options, onChange ChangeFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	extensions := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}

	excludes := map[string]bool{".git": true, "node_modules": true}
	for _, dir := range opts.ExcludeDirs {
		excludes[dir] = true
	}

	return &Watcher{
		fsw:        fsw,
		opts:       opts,
		logger:     logger,
		onChange:   onChange,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
		done:       make(chan struct{}),
	}, nil
}

// Start adds the watches and processes events until ctx is cancelled or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.opts.Dirs {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			w.logger.Warn("Watch directory does not exist, skipping", slog.String("dir", dir))
			continue
		}
		if err := w.addWatchesRecursive(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		slog.Any("dirs", w.opts.Dirs),
		slog.Duration("debounce", w.opts.Debounce))
	return nil
}

// Stop closes the underlying watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Done is closed when event processing has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(filepath.Base(path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", slog.String("path", path), slog.String("error", err.Error()))
		}
		return nil
	})
}

func (w *Watcher) skipDir(base string) bool {
	return w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".")
}

// Relevant reports whether a change to name should be reported.
func (w *Watcher) Relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[strings.ToLower(filepath.Ext(name))]
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.handleEvent(event) {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handleEvent records a change and reports whether it was relevant.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skipDir(filepath.Base(event.Name)) {
				if err := w.addWatchesRecursive(event.Name); err != nil {
					w.logger.Warn("Failed to watch new directory", slog.String("path", event.Name), slog.String("error", err.Error()))
				}
			}
			return false
		}
	}
	if event.Op == fsnotify.Chmod || !w.Relevant(event.Name) {
		return false
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))
	return true
}

func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	sort.Strings(changed)
	w.logger.Info("Files changed", slog.Int("count", len(changed)))
	if w.onChange == nil {
		return
	}
	if err := w.onChange(ctx, changed); err != nil {
		w.logger.Error("Change handler failed", slog.String("error", err.Error()))
	}
}

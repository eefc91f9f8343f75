package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups bursts of editor writes into one re-lint.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-lints query files as they change on disk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	opts     Options
	logger   *zap.Logger
	debounce time.Duration
	// explicit files are linted whatever their extension
	explicit map[string]bool
	onReport func(*Report)
}

// NewWatcher watches paths (files or directory trees). onReport is called
// from the Run goroutine for every re-linted file.
func NewWatcher(paths []string, opts Options, logger *zap.Logger, onReport func(*Report)) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		opts:     opts.withDefaults(),
		logger:   logger,
		debounce: DefaultDebounce,
		explicit: make(map[string]bool),
		onReport: onReport,
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// SetDebounce changes the quiet period before re-linting.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		w.explicit[filepath.Clean(path)] = true
		return w.fsw.Add(filepath.Dir(path))
	}
	return w.addTree(path)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		w.logger.Debug("watching directory", zap.String("dir", path))
		return w.fsw.Add(path)
	})
}

func (w *Watcher) wants(path string) bool {
	path = filepath.Clean(path)
	return w.explicit[path] || strings.HasSuffix(path, QueryExt)
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev, pending)
			if len(pending) > 0 {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.flush(ctx, pending)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event, pending map[string]struct{}) {
	switch {
	case ev.Has(fsnotify.Create):
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("cannot watch new directory", zap.String("dir", ev.Name), zap.Error(err))
			}
			return
		}
		fallthrough
	case ev.Has(fsnotify.Write):
		if w.wants(ev.Name) {
			pending[filepath.Clean(ev.Name)] = struct{}{}
		}
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if w.wants(ev.Name) {
			w.logger.Info("query removed", zap.String("path", ev.Name))
			delete(pending, filepath.Clean(ev.Name))
		}
	}
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	clear(pending)
	slices.Sort(paths)

	for _, p := range paths {
		rep := LintFile(ctx, p, w.opts)
		if errors.Is(rep.Err, os.ErrNotExist) {
			// файл успели удалить между событием и линтом
			continue
		}
		w.logger.Debug("re-linted",
			zap.String("path", p),
			zap.Int("diagnostics", len(rep.Diagnostics)),
			zap.Bool("cached", rep.Cached))
		if w.onReport != nil {
			w.onReport(rep)
		}
	}
}

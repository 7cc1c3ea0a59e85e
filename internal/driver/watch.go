package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"xfmt/internal/trace"
)

// DefaultDebounce is how long a file must stay quiet before it is re-formatted.
const DefaultDebounce = 100 * time.Millisecond

// Watch formats paths once, then re-formats files as they change until ctx is
// cancelled. onResult receives every result, the initial pass included, and
// is called from a single goroutine.
func Watch(ctx context.Context, paths []string, opts FormatOptions, debounce time.Duration, onResult func(FormatResult)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".x"}
	}
	if opts.RunID == "" {
		opts.RunID = NewRunID()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	w := &watcher{fsw: fsw, opts: opts, files: make(map[string]struct{})}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			return err
		}
	}

	results, err := FormatPaths(ctx, paths, opts)
	if err != nil && !errors.Is(err, ErrNoSourceFiles) {
		return err
	}
	for _, r := range results {
		onResult(r)
	}

	tracer := trace.FromContext(ctx)
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				if ev.Has(fsnotify.Create) && w.underRoot(ev.Name) {
					_ = w.watchDirRecursive(ev.Name)
				}
				continue
			}
			if w.wanted(ev.Name) {
				pending[ev.Name] = time.Now()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			trace.Point(tracer, trace.ScopeRun, "watch_error", err.Error(), trace.ParentSpan(ctx))

		case now := <-ticker.C:
			var due []string
			for p, at := range pending {
				if now.Sub(at) >= debounce {
					due = append(due, p)
				}
			}
			slices.Sort(due)
			for _, p := range due {
				delete(pending, p)
				// удалённый файл просто пропускаем
				if _, err := os.Stat(p); err != nil {
					continue
				}
				onResult(formatSingleFile(ctx, p, w.opts))
			}
		}
	}
}

type watcher struct {
	fsw   *fsnotify.Watcher
	opts  FormatOptions
	roots []string
	files map[string]struct{}
}

func (w *watcher) add(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return &IOError{Op: "stat", Path: p, Err: err}
	}
	if !info.IsDir() {
		w.files[filepath.Clean(p)] = struct{}{}
		return w.fsw.Add(filepath.Dir(p))
	}
	w.roots = append(w.roots, filepath.Clean(p))
	return w.watchDirRecursive(p)
}

// watchDirRecursive adds root and its subdirectories, skipping hidden and
// excluded ones.
func (w *watcher) watchDirRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || excluded(path, w.opts.Exclude)) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *watcher) wanted(path string) bool {
	path = filepath.Clean(path)
	if _, ok := w.files[path]; ok {
		return true
	}
	if !w.underRoot(path) {
		return false
	}
	return slices.Contains(w.opts.Extensions, filepath.Ext(path)) && !excluded(path, w.opts.Exclude)
}

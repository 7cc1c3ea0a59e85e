package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"xfmt/internal/diag"
	"xfmt/internal/format"
	"xfmt/internal/observ"
	"xfmt/internal/source"
	"xfmt/internal/trace"
)

// FormatOptions configures a batch run.
type FormatOptions struct {
	Check   bool // report changes, write nothing
	Stdout  bool // return output in results, write nothing
	Verify  bool // run format.CheckRoundTrip on every file
	Options format.Options

	Extensions []string // default [".x"]
	Exclude    []string // glob patterns on base names or slash paths
	Jobs       int      // default GOMAXPROCS
	RunID      string   // default a fresh uuid

	Cache    *Cache
	Progress ProgressSink
	Timings  bool
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path       string
	Changed    bool
	Cached     bool
	Err        error
	Diagnostic *diag.Diagnostic // set for format errors, nil for I/O errors
	FileSet    *source.FileSet  // resolves Diagnostic spans
	Formatted  []byte           // only with Stdout
	Timing     *observ.Report   // only with Timings
}

// NewRunID returns an id for tagging cache entries and trace spans.
func NewRunID() string {
	return uuid.NewString()
}

// FormatPaths formats files and directories (recursively collecting files
// with a configured extension) on a bounded worker pool. Every file is an
// independent run: a failure is recorded in its result and never stops the
// others. The returned error is reserved for collection failures and
// cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.RunID == "" {
		opts.RunID = NewRunID()
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeRun, "fmt", trace.ParentSpan(ctx)).
		WithExtra("run_id", opts.RunID)
	ctx = trace.WithSpan(ctx, span)

	files, err := CollectSourceFiles(ctx, paths, opts.Extensions, opts.Exclude)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	if len(files) == 0 {
		span.End("empty")
		return nil, fmt.Errorf("format: %w", ErrNoSourceFiles)
	}
	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// индекс i уникален для горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FormatResult{Path: path, Err: err}
				return err
			}
			results[i] = formatSingleFile(gctx, path, opts)
			return nil
		})
	}
	err = g.Wait()
	span.WithExtra("files", strconv.Itoa(len(files))).End("")
	return results, err
}

func formatSingleFile(ctx context.Context, path string, opts FormatOptions) (res FormatResult) {
	res.Path = path
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	defer func() {
		if timer != nil {
			r := timer.Report()
			res.Timing = &r
		}
		detail := "ok"
		if res.Err != nil {
			detail = res.Err.Error()
		}
		span.WithExtra("changed", strconv.FormatBool(res.Changed)).End(detail)
	}()

	fail := func(stage Stage, err error) FormatResult {
		res.Err = err
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err})
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	idx := timer.Begin("read")
	data, err := os.ReadFile(path)
	timer.End(idx, "")
	if err != nil {
		return fail(StageRead, &IOError{Op: "read", Path: path, Err: err})
	}

	fileSet := source.NewFileSet()
	content, flags := source.Normalize(data)
	sf := fileSet.Get(fileSet.Add(path, content, flags))
	res.FileSet = fileSet

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	formatted, cached, err := formatContent(ctx, sf, opts, timer)
	if err != nil {
		d := format.Diagnose(err, sf)
		res.Diagnostic = &d
		return fail(StageFormat, err)
	}
	res.Cached = cached
	res.Changed = !bytes.Equal(data, formatted)

	switch {
	case opts.Check:
	case opts.Stdout:
		res.Formatted = formatted
	case res.Changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		idx = timer.Begin("write")
		err = writeFileAtomic(path, formatted)
		timer.End(idx, "")
		if err != nil {
			return fail(StageWrite, &IOError{Op: "write", Path: path, Err: err})
		}
	}
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Changed: res.Changed, Cached: cached})
	return res
}

// formatContent consults the cache, then formats and optionally verifies.
func formatContent(ctx context.Context, sf *source.File, opts FormatOptions, timer *observ.Timer) ([]byte, bool, error) {
	fingerprint := opts.Options.Fingerprint()
	if opts.Verify {
		fingerprint += ";verify"
	}
	key := CacheKey(sf.Hash, fingerprint)
	if opts.Cache != nil {
		if e, ok, err := opts.Cache.Get(key); err == nil && ok {
			return e.Formatted, true, nil
		}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "format", trace.ParentSpan(ctx))
	formatted, err := format.FormatFileTimed(sf, opts.Options, timer)
	span.End(string(opts.Options.Strategy))
	if err != nil {
		return nil, false, err
	}

	if opts.Verify {
		emit(opts.Progress, Event{File: sf.Path, Stage: StageVerify, Status: StatusWorking})
		span = trace.Begin(tracer, trace.ScopePhase, "verify", trace.ParentSpan(ctx))
		idx := timer.Begin("verify")
		err = format.CheckRoundTrip(sf, opts.Options)
		timer.End(idx, "")
		span.End("")
		if err != nil {
			return nil, false, err
		}
	}

	if opts.Cache != nil {
		// ошибка записи в кеш не портит результат
		_ = opts.Cache.Put(key, &CacheEntry{Path: sf.Path, Formatted: formatted})
	}
	return formatted, false, nil
}

// writeFileAtomic replaces path through a temp file in the same directory,
// keeping the original permission bits.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".xfmt-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	cleanup := func(err error) error {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if _, err := f.Write(data); err != nil {
		return cleanup(err)
	}
	if err := f.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// CollectSourceFiles expands paths into a sorted, de-duplicated file list.
// Directories are walked recursively, skipping hidden and excluded ones.
func CollectSourceFiles(ctx context.Context, paths, extensions, exclude []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".x"}
	}
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	wanted := func(path string) bool {
		return slices.Contains(extensions, filepath.Ext(path)) && !excluded(path, exclude)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, &IOError{Op: "stat", Path: p, Err: err}
		}
		if !info.IsDir() {
			if wanted(p) {
				add(p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && (strings.HasPrefix(d.Name(), ".") || excluded(path, exclude)) {
					return filepath.SkipDir
				}
				return nil
			}
			if wanted(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, &IOError{Op: "walk", Path: p, Err: err}
		}
	}

	slices.Sort(files)
	return files, nil
}

func excluded(path string, patterns []string) bool {
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, slash); ok {
			return true
		}
	}
	return false
}

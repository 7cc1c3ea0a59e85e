package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"xfmt/internal/config"
	"xfmt/internal/diag"
	"xfmt/internal/diagfmt"
	"xfmt/internal/driver"
	"xfmt/internal/observ"
	"xfmt/internal/ui"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Format source files in place",
		Long: `Format rewrites every file with a configured extension under the given
paths. Files that fail to format are reported and left untouched.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: runFmt,
	}
	f := cmd.Flags()
	f.Bool("check", false, "report files that would change, write nothing")
	f.Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	f.String("format", "text", "output format (text|short|json)")
	f.Int("jobs", 0, "number of files formatted in parallel (default GOMAXPROCS)")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.Bool("watch", false, "keep running and re-format files as they change")
	f.Bool("verify", false, "check that re-formatting the output is a no-op")
	f.Bool("no-cache", false, "bypass the format cache")
	f.StringSlice("exclude", nil, "glob patterns of files and directories to skip")
	addFormatFlags(cmd)
	return cmd
}

type fmtFlags struct {
	check, stdout, watch, verify bool
	format                       string
	ui                           uiMode
	quiet, timings               bool
	maxDiagnostics               int
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var ff fmtFlags
	var err error
	f := cmd.Flags()
	if ff.check, err = f.GetBool("check"); err != nil {
		return ff, err
	}
	if ff.stdout, err = f.GetBool("stdout"); err != nil {
		return ff, err
	}
	if ff.watch, err = f.GetBool("watch"); err != nil {
		return ff, err
	}
	if ff.verify, err = f.GetBool("verify"); err != nil {
		return ff, err
	}
	if ff.format, err = f.GetString("format"); err != nil {
		return ff, err
	}
	uiStr, err := f.GetString("ui")
	if err != nil {
		return ff, err
	}
	if ff.ui, err = readUIMode(uiStr); err != nil {
		return ff, usageError(err)
	}
	pf := cmd.Root().PersistentFlags()
	if ff.quiet, err = pf.GetBool("quiet"); err != nil {
		return ff, err
	}
	if ff.timings, err = pf.GetBool("timings"); err != nil {
		return ff, err
	}
	if ff.maxDiagnostics, err = maxDiagnostics(cmd); err != nil {
		return ff, err
	}

	switch {
	case ff.format != "text" && ff.format != "short" && ff.format != "json":
		return ff, usageErrorf("fmt: unsupported output format %q", ff.format)
	case ff.stdout && ff.check:
		return ff, usageErrorf("fmt: --stdout cannot be used with --check")
	case ff.stdout && ff.format == "json":
		return ff, usageErrorf("fmt: --stdout cannot be used with json output")
	case ff.watch && (ff.stdout || ff.check):
		return ff, usageErrorf("fmt: --watch cannot be used with --stdout or --check")
	}
	return ff, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	ff, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	popts, err := prettyOpts(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts := driver.FormatOptions{
		Check:      ff.check,
		Stdout:     ff.stdout,
		Verify:     ff.verify,
		Options:    cfg.FormatOptions(),
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		Jobs:       cfg.Jobs,
		RunID:      driver.NewRunID(),
		Timings:    ff.timings,
	}
	opts.Cache = openCache(cfg, opts.RunID, logger)
	logger.Debug("run", "id", opts.RunID, "paths", len(args))

	r := &fmtReporter{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		flags:  ff,
		pretty: popts,
	}

	if ff.watch {
		logger.Info("watching for changes", "paths", args)
		err := driver.Watch(ctx, args, opts, driver.DefaultDebounce, r.report)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	results, err := formatWithProgress(ctx, cmd.ErrOrStderr(), args, opts, ff)
	if err != nil {
		if errors.Is(err, driver.ErrNoSourceFiles) {
			return usageError(err)
		}
		return err
	}

	if ff.format == "json" {
		if err := renderFmtJSON(r.out, results, ff); err != nil {
			return err
		}
		r.tally(results)
	} else {
		for _, res := range results {
			r.report(res)
		}
		if ff.timings {
			if report, ok := driver.RunTimings(results); ok {
				fmt.Fprint(r.errOut, timingSummary(report, len(results)))
			}
		}
	}
	return r.exit()
}

// openCache returns nil when caching is off or the directory is unusable.
func openCache(cfg *config.Config, runID string, logger *log.Logger) *driver.Cache {
	if !cfg.Cache {
		return nil
	}
	cache, err := driver.OpenCache(cfg.CacheDir, runID)
	if err != nil {
		logger.Warn("format cache disabled", "err", err)
		return nil
	}
	logger.Debug("format cache", "dir", cache.Dir())
	return cache
}

// formatWithProgress runs the batch, with the progress UI on top when the
// output is an interactive terminal.
func formatWithProgress(ctx context.Context, uiOut io.Writer, args []string, opts driver.FormatOptions, ff fmtFlags) ([]driver.FormatResult, error) {
	if ff.stdout || ff.quiet || ff.format != "text" || !shouldUseTUI(ff.ui, uiOut) {
		return driver.FormatPaths(ctx, args, opts)
	}

	events := make(chan driver.Event, 64)
	opts.Progress = driver.ChannelSink{Ch: events}

	type outcome struct {
		results []driver.FormatResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := driver.FormatPaths(ctx, args, opts)
		close(events)
		done <- outcome{results, err}
	}()

	if err := ui.RunProgress(uiOut, "xfmt", events); err != nil {
		loggerFromContext(ctx).Debug("progress ui unavailable", "err", err)
		for range events {
		}
	}
	res := <-done
	return res.results, res.err
}

// fmtReporter prints per-file outcomes and remembers what the exit code
// has to reflect.
type fmtReporter struct {
	out, errOut io.Writer
	flags       fmtFlags
	pretty      diagfmt.PrettyOpts

	shown      int
	hasErrors  bool
	hasIOError bool
	hasChanges bool
}

func (r *fmtReporter) tally(results []driver.FormatResult) {
	for _, res := range results {
		r.note(res)
	}
}

func (r *fmtReporter) note(res driver.FormatResult) {
	if res.Err != nil {
		r.hasErrors = true
		if driver.IsIOError(res.Err) {
			r.hasIOError = true
		}
	}
	if res.Changed {
		r.hasChanges = true
	}
}

func (r *fmtReporter) report(res driver.FormatResult) {
	r.note(res)
	if res.Err != nil {
		r.reportError(res)
		return
	}

	switch {
	case r.flags.stdout:
		_, _ = r.out.Write(res.Formatted)
	case r.flags.check:
		if res.Changed && !r.flags.quiet {
			fmt.Fprintln(r.out, res.Path)
		}
	case res.Changed && !r.flags.quiet:
		fmt.Fprintf(r.out, "reformatted %s\n", res.Path)
	}

	if r.flags.timings && res.Timing != nil && r.flags.watch {
		diagfmt.PrettyDiagnostic(r.errOut, driver.TimingDiagnostic(res.Path, *res.Timing), nil, r.pretty)
	}
}

func (r *fmtReporter) reportError(res driver.FormatResult) {
	if r.flags.maxDiagnostics > 0 && r.shown >= r.flags.maxDiagnostics {
		return
	}
	r.shown++
	switch {
	case res.Diagnostic == nil:
	case r.flags.format == "short":
		// одна строка на ошибку, удобно для grep и quickfix
		if line := diag.FormatShortDiagnostics([]diag.Diagnostic{*res.Diagnostic}, res.FileSet, true); line != "" {
			fmt.Fprintln(r.errOut, line)
			return
		}
	default:
		diagfmt.PrettyDiagnostic(r.errOut, *res.Diagnostic, res.FileSet, r.pretty)
		return
	}
	fmt.Fprintf(r.errOut, "fmt: %v\n", res.Err)
}

func (r *fmtReporter) exit() error {
	switch {
	case r.hasIOError:
		return silentExit(exitIOError)
	case r.hasErrors:
		return &exitError{code: exitFailure, err: errFormatFailed}
	case r.flags.check && r.hasChanges:
		if r.flags.quiet || r.flags.format == "json" {
			return silentExit(exitFailure)
		}
		return &exitError{code: exitFailure, err: errChangesPending}
	}
	return nil
}

type fmtJSONResult struct {
	Path       string                  `json:"path"`
	Changed    bool                    `json:"changed"`
	Cached     bool                    `json:"cached,omitempty"`
	Check      bool                    `json:"check"`
	Error      string                  `json:"error,omitempty"`
	Diagnostic *diagfmt.DiagnosticJSON `json:"diagnostic,omitempty"`
	Timing     *observ.Report          `json:"timing,omitempty"`
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, ff fmtFlags) error {
	jopts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{
			Path:    res.Path,
			Changed: res.Changed,
			Cached:  res.Cached,
			Check:   ff.check,
			Timing:  res.Timing,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Diagnostic != nil {
			d := diagfmt.DiagnosticToJSON(*res.Diagnostic, res.FileSet, jopts)
			jr.Diagnostic = &d
		}
		payload = append(payload, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func timingSummary(r observ.Report, files int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "timings (%d files):\n", files)
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-12s %8.3f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(&b, "  %-12s %8.3f ms\n", "total", r.TotalMS)
	return b.String()
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xfmt/internal/version"
)

// cli owns the command tree and the cleanups registered while it runs
// (tracer flush, profilers).
type cli struct {
	root     *cobra.Command
	stdout   io.Writer
	stderr   io.Writer
	cleanups []func()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newCLI(os.Stdout, os.Stderr).execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "xfmt",
		Short:         "Formatter for brace-structured source files",
		Long:          `xfmt rewrites source files into a canonical layout: normalized spacing, one statement per line and indented blocks`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("config", "", "config file (default: nearest xfmt.toml or xfmt.yaml)")
	pf.Bool("no-config", false, "ignore config files, use defaults and environment only")
	pf.String("env-file", "", "load XFMT_* variables from a .env file")

	pf.String("trace", "", "trace output file (- for stderr, *.ndjson for NDJSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail)")
	pf.String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for trace events")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0 disables)")

	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(newFmtCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newDocCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newLspCmd())
	root.AddCommand(newVersionCmd())

	c.root = root
	return c
}

// setup runs before every subcommand: logger, tracer, profilers.
func (c *cli) setup(cmd *cobra.Command) error {
	logger, err := loggerForFlags(cmd, c.stderr)
	if err != nil {
		return err
	}
	cmd.SetContext(withLogger(cmd.Context(), logger))

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return usageError(err)
	}
	c.cleanups = append(c.cleanups, stopTrace)

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	c.cleanups = append(c.cleanups, stopProf)
	return nil
}

// execute runs the command line and maps the outcome to a process exit code.
func (c *cli) execute(ctx context.Context, args []string) int {
	c.root.SetArgs(args)
	err := c.root.ExecuteContext(ctx)

	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil

	code := exitCode(err)
	if msg := errorMessage(err); msg != "" {
		fmt.Fprintf(c.stderr, "xfmt: %s\n", msg)
		if code == exitUsage {
			fmt.Fprintln(c.stderr, "Run 'xfmt --help' for usage.")
		}
	}
	return code
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

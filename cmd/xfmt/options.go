package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"xfmt/internal/config"
	"xfmt/internal/diagfmt"
)

// addFormatFlags registers the layout flags shared by fmt, doc, tokenize,
// serve and repl. They override the config file only when set.
func addFormatFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("strategy", "", "layout strategy (doc|greedy)")
	f.Int("width", 0, "maximum line width (0 uses the strategy default)")
	f.Int("indent", 0, "indent width in columns")
	f.Bool("tabs", false, "indent with tabs")
	f.Bool("trailing-commas", false, "add a trailing comma to wrapped lists")
	f.Bool("final-newline", true, "end output with a newline")
	f.StringSlice("keywords", nil, "words scanned as keywords")
}

// loadConfig merges defaults, config file, environment and the flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	file, err := pf.GetString("config")
	if err != nil {
		return nil, err
	}
	noFile, err := pf.GetBool("no-config")
	if err != nil {
		return nil, err
	}
	envFile, err := pf.GetString("env-file")
	if err != nil {
		return nil, err
	}
	if file != "" && noFile {
		return nil, usageErrorf("--config cannot be used with --no-config")
	}

	cfg, err := config.Load(config.LoadOptions{File: file, EnvFile: envFile, NoFile: noFile})
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError(err)
	}

	logger := loggerFromContext(cmd.Context())
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}
	logger.Debug("options", "strategy", cfg.Strategy, "indent", cfg.IndentWidth, "width", cfg.MaxWidth, "jobs", cfg.Jobs)
	return cfg, nil
}

// applyFlags overlays every flag the user actually set onto cfg.
// Flags a command does not define are skipped.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	changed := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}

	var err error
	if changed("strategy") {
		if cfg.Strategy, err = f.GetString("strategy"); err != nil {
			return err
		}
	}
	if changed("width") {
		if cfg.MaxWidth, err = f.GetInt("width"); err != nil {
			return err
		}
	}
	if changed("indent") {
		if cfg.IndentWidth, err = f.GetInt("indent"); err != nil {
			return err
		}
	}
	if changed("tabs") {
		if cfg.UseTabs, err = f.GetBool("tabs"); err != nil {
			return err
		}
	}
	if changed("trailing-commas") {
		if cfg.TrailingCommas, err = f.GetBool("trailing-commas"); err != nil {
			return err
		}
	}
	if changed("final-newline") {
		if cfg.FinalNewline, err = f.GetBool("final-newline"); err != nil {
			return err
		}
	}
	if changed("keywords") {
		if cfg.Keywords, err = f.GetStringSlice("keywords"); err != nil {
			return err
		}
	}
	if changed("jobs") {
		if cfg.Jobs, err = f.GetInt("jobs"); err != nil {
			return err
		}
	}
	if changed("exclude") {
		extra, err := f.GetStringSlice("exclude")
		if err != nil {
			return err
		}
		cfg.Exclude = append(cfg.Exclude, extra...)
	}
	if changed("no-cache") {
		noCache, err := f.GetBool("no-cache")
		if err != nil {
			return err
		}
		cfg.Cache = cfg.Cache && !noCache
	}
	return nil
}

// prettyOpts builds diagnostic rendering options for out from --color.
func prettyOpts(cmd *cobra.Command, out io.Writer) (diagfmt.PrettyOpts, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	useColor, err := colorEnabled(colorFlag, out)
	if err != nil {
		return diagfmt.PrettyOpts{}, usageError(err)
	}
	return diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		ShowNotes: true,
	}, nil
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

package main

import (
	"io"

	"github.com/spf13/cobra"

	"xfmt/internal/diag"
	"xfmt/internal/diagfmt"
	"xfmt/internal/repl"
	"xfmt/internal/source"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Format snippets interactively",
		Long: `Repl reads input until braces balance, formats it and prints the result.
Type :help for commands, Ctrl+D to exit.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runRepl,
	}
	cmd.Flags().String("history", "", "history file (default $TMPDIR/.xfmt_history)")
	addFormatFlags(cmd)
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	history, err := cmd.Flags().GetString("history")
	if err != nil {
		return err
	}
	opts, err := prettyOpts(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	opts.Context = 0

	return repl.Run(cmd.OutOrStdout(), repl.Config{
		Options:     cfg.FormatOptions(),
		HistoryFile: history,
		Render: func(w io.Writer, fs *source.FileSet, d diag.Diagnostic) {
			diagfmt.PrettyDiagnostic(w, d, fs, opts)
		},
	})
}

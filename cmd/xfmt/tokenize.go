package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xfmt/internal/diagfmt"
	"xfmt/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.x",
		Short: "Print the token stream of a source file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addFormatFlags(cmd)
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return usageErrorf("tokenize: unknown format %q", format)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], cfg.FormatOptions(), maxDiags)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Диагностика в stderr, токены в stdout
	if result.Bag.Len() > 0 {
		opts, err := prettyOpts(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, opts)
		if n := result.Bag.Dropped(); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "... %d more diagnostics suppressed\n", n)
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return silentExit(exitFailure)
	}
	return nil
}

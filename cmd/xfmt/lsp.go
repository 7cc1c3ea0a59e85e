package main

import (
	"errors"

	"github.com/spf13/cobra"

	"xfmt/internal/lsp"
)

func newLspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Lsp speaks the Language Server Protocol on stdin/stdout. It offers
document formatting, folding ranges and diagnostics for unformattable input.
Editor settings under "xfmt" override the project configuration.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runLsp,
	}
	cmd.Flags().Duration("debounce", 0, "delay before re-diagnosing an edited document (default 200ms)")
	addFormatFlags(cmd)
	return cmd
}

func runLsp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	if debounce < 0 {
		return usageErrorf("--debounce must not be negative")
	}

	// stdout принадлежит протоколу, логи только в stderr
	logger := loggerFromContext(cmd.Context())
	srv := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
		Options:  cfg.FormatOptions(),
		Debounce: debounce,
		Logger:   logger,
	})
	logger.Debug("lsp: serving on stdio", "strategy", cfg.Strategy)
	err = srv.Run(cmd.Context())
	switch {
	case err == nil, errors.Is(err, lsp.ErrExit):
		return nil
	case errors.Is(err, lsp.ErrExitWithoutShutdown):
		return silentExit(exitFailure)
	default:
		return err
	}
}

package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"xfmt/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Serve the formatter over HTTP",
		Long: `Serve exposes POST /v1/format and GET /v1/health/ready. The loaded
configuration is the default for every request; requests may override it.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runServe,
	}
	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.Duration("read-timeout", server.DefaultReadTimeout, "HTTP read timeout")
	f.Duration("write-timeout", server.DefaultWriteTimeout, "HTTP write timeout")
	addFormatFlags(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	addr, err := f.GetString("addr")
	if err != nil {
		return err
	}
	readTimeout, err := f.GetDuration("read-timeout")
	if err != nil {
		return err
	}
	writeTimeout, err := f.GetDuration("write-timeout")
	if err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())
	srv := server.NewServer(server.Config{
		Addr:         addr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}, logger, cfg.FormatOptions())

	err = srv.ListenAndServe(cmd.Context())
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if err == nil {
		logger.Info("server stopped")
	}
	return err
}

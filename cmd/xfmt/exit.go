package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"xfmt/internal/config"
	"xfmt/internal/driver"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitIOError  = 74 // EX_IOERR
	exitCanceled = 130
)

var (
	errFormatFailed   = errors.New("failed to format some files")
	errChangesPending = errors.New("formatting changes required")
)

// exitError carries an explicit exit code. A nil err means the failure was
// already reported and nothing more should be printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUsage, err: err}
}

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// silentExit reports code without printing anything more.
func silentExit(code int) error {
	return &exitError{code: code}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, context.Canceled):
		return exitCanceled
	case driver.IsIOError(err):
		return exitIOError
	case errors.Is(err, config.ErrInvalidValue), errors.Is(err, config.ErrUnknownFormat):
		return exitUsage
	}
	return exitFailure
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ee *exitError
	if errors.As(err, &ee) && ee.err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return ""
	}
	return err.Error()
}

// usageArgs wraps a positional-args validator so its failures exit 2.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(fn(cmd, args))
	}
}

package format

import (
	"errors"
	"fmt"

	"xfmt/internal/diag"
	"xfmt/internal/source"
)

var (
	// ErrUnsupportedToken: the builder was handed a sentinel token kind.
	ErrUnsupportedToken = errors.New("unsupported token")
	// ErrNotIdempotent: formatting the output again changed it.
	ErrNotIdempotent = errors.New("formatting is not idempotent")
	// ErrTokensChanged: formatting altered a non-whitespace token.
	ErrTokensChanged = errors.New("formatting changed tokens")
)

// CheckError describes a failed round-trip check.
type CheckError struct {
	Kind error
	Span source.Span // first difference, in the original file
	Msg  string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("fmt-check: %v: %s", e.Kind, e.Msg)
}

func (e *CheckError) Unwrap() error { return e.Kind }

func (e *CheckError) Code() diag.Code {
	if errors.Is(e.Kind, ErrTokensChanged) {
		return diag.LayTokensChanged
	}
	return diag.LayIdempotenceFailed
}

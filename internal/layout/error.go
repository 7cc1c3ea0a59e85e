package layout

import (
	"errors"
	"fmt"

	"xfmt/internal/diag"
	"xfmt/internal/source"
)

var (
	// ErrUnbalancedBraces: a '}' at depth zero or a '{' never closed.
	ErrUnbalancedBraces = errors.New("unbalanced braces")
	// ErrUnbalancedParens: a ')' without '(' or a '(' never closed.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
	// ErrUnexpectedToken: a token kind layout cannot place (Invalid).
	ErrUnexpectedToken = errors.New("unexpected token")
)

// LayoutError represents a structural failure found while laying out tokens.
type LayoutError struct {
	Kind  error
	Span  source.Span
	Depth int // brace depth at the failure point
	Msg   string
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return fmt.Sprintf("%v (depth %d)", e.Kind, e.Depth)
	}
	return fmt.Sprintf("%v: %s (depth %d)", e.Kind, e.Msg, e.Depth)
}

func (e *LayoutError) Unwrap() error { return e.Kind }

// Code maps the error to its diagnostic code.
func (e *LayoutError) Code() diag.Code {
	switch {
	case errors.Is(e.Kind, ErrUnbalancedParens):
		return diag.LayUnbalancedParens
	case errors.Is(e.Kind, ErrUnexpectedToken):
		return diag.RenUnsupportedToken
	default:
		return diag.LayUnbalancedBraces
	}
}

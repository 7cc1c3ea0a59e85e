package lexer

import (
	"errors"

	"xfmt/internal/diag"
	"xfmt/internal/source"
)

var (
	// ErrUnterminatedString: a '"' was never closed before end of input.
	ErrUnterminatedString = errors.New("unterminated string literal")
	// ErrUnexpectedEnd: input ended where one more byte was required.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrUnsupportedCharacter: no token rule matches the character.
	ErrUnsupportedCharacter = errors.New("unsupported character")
	// ErrTokenTooLong: a literal or string exceeds Options.MaxTokenLength.
	ErrTokenTooLong = errors.New("token too long")
)

// Error is a scan failure with the offending span.
// errors.Is(err, ErrUnterminatedString) and friends work through Unwrap.
type Error struct {
	Kind error
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

// Code maps the error to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch {
	case errors.Is(e.Kind, ErrUnterminatedString):
		return diag.LexUnterminatedString
	case errors.Is(e.Kind, ErrUnexpectedEnd):
		return diag.LexUnexpectedEnd
	case errors.Is(e.Kind, ErrTokenTooLong):
		return diag.LexTokenTooLong
	default:
		return diag.LexUnsupportedChar
	}
}

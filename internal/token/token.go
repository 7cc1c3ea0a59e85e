package token

import (
	"fmt"

	"xfmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Make builds a synthesized token with no source position.
func Make(k Kind) Token {
	return Token{Kind: k}
}

// IsWhitespace reports whether the token is layout-owned whitespace.
func (t Token) IsWhitespace() bool { return t.Kind.IsWhitespace() }

// IsWord reports whether the token is an operator, literal, string or keyword.
func (t Token) IsWord() bool { return t.Kind.IsWord() }

// Lexeme returns the source spelling of the token: Text for payload kinds and
// the fixed character for punctuation. Whitespace and sentinel kinds yield "".
func (t Token) Lexeme() string {
	if t.Kind.IsWord() {
		return t.Text
	}
	if s, ok := PunctText(t.Kind); ok {
		return s
	}
	return ""
}

// Equal compares kind and payload, ignoring spans.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Lexeme() == other.Lexeme()
}

func (t Token) String() string {
	switch {
	case t.Kind.IsWord():
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

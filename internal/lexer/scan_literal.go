package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"xfmt/internal/token"
)

// scanLiteral: любой печатный не-структурный символ, затем максимальная
// последовательность букв, цифр и '_'.
func (lx *Lexer) scanLiteral() token.Token {
	start := lx.cursor.Mark()
	r, size := lx.cursor.PeekRune()
	if bad := unsupportedRune(r, size); bad != "" {
		lx.cursor.Advance(max(size, 1))
		return lx.fail(ErrUnsupportedCharacter, lx.cursor.SpanFrom(start), bad)
	}
	lx.cursor.Advance(size)

	for !lx.cursor.EOF() {
		r, size = lx.cursor.PeekRune()
		if !isWordRune(r) {
			break
		}
		lx.cursor.Advance(size)
	}

	tok := lx.finishWord(token.Literal, start)
	if tok.Kind == token.Literal {
		if k, ok := lx.opts.Keywords.LookupKeyword(tok.Text); ok {
			tok.Kind = k
		}
	}
	return tok
}

// finishWord applies the length limit and builds the payload token.
func (lx *Lexer) finishWord(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	if limit := lx.opts.MaxTokenLength; limit > 0 && int(sp.Len()) > limit {
		return lx.fail(ErrTokenTooLong, sp, fmt.Sprintf("%d bytes, limit is %d", sp.Len(), limit))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// unsupportedRune returns a description when r cannot start a token.
func unsupportedRune(r rune, size int) string {
	switch {
	case r == utf8.RuneError && size <= 1:
		return "invalid UTF-8 sequence"
	case r == 0:
		return "NUL byte"
	case unicode.IsControl(r):
		return fmt.Sprintf("control character %U", r)
	case unicode.IsSpace(r):
		return fmt.Sprintf("unsupported whitespace %U", r)
	case !unicode.IsPrint(r) && !unicode.IsGraphic(r):
		return fmt.Sprintf("non-printable character %U", r)
	}
	return ""
}

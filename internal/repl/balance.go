package repl

import (
	"errors"

	"xfmt/internal/format"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

// NeedsMoreInput reports whether src has open braces, open parentheses or
// an unterminated string. Other scan errors count as complete input so the
// formatter can report them.
func NeedsMoreInput(src string, opt format.Options) bool {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual(VirtualPath, []byte(src))), lexer.Options{
		Keywords: opt.Keywords,
	})
	braces, parens := 0, 0
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF:
			return braces > 0 || parens > 0
		case token.Invalid:
			err := lx.Err()
			return errors.Is(err, lexer.ErrUnterminatedString) || errors.Is(err, lexer.ErrUnexpectedEnd)
		case token.OpenBrace:
			braces++
		case token.ClosedBrace:
			braces--
		case token.OpenParen:
			parens++
		case token.ClosedParen:
			parens--
		}
		// лишняя закрывающая: дальше ждать нечего
		if braces < 0 || parens < 0 {
			return false
		}
	}
}

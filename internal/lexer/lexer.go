package lexer

import (
	"xfmt/internal/source"
	"xfmt/internal/token"
)

// Lexer turns one source file into tokens. Whitespace is elided: the scanner
// never emits NewLine, Space or Tab, the layout engine owns them.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	err    *Error // первая ошибка; после неё Next всегда отдаёт EOF
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Scan lexes the whole file and returns every token except EOF.
// The first scan error aborts the pass.
func Scan(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	// грубая оценка: токен на каждые ~3 байта
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Invalid {
			return nil, lx.err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// Next возвращает следующий токен. После EOF или ошибки всегда возвращает EOF.
// On error the offending token comes back once as Invalid and Err reports why.
func (lx *Lexer) Next() token.Token {
	if lx.err != nil {
		return lx.eof()
	}

	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return lx.eof()
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '"':
		return lx.scanString()
	case token.IsOperatorByte(ch):
		return lx.scanOperator()
	default:
		if k, ok := token.PunctKind(ch); ok {
			return lx.scanPunct(k)
		}
		return lx.scanLiteral()
	}
}

// Err returns the error that stopped the lexer, or nil.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() && isSkippedSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eof() token.Token {
	return token.Token{Kind: token.EOF, Span: source.At(lx.file.ID, lx.cursor.Off)}
}

// fail records the error, reports it, and returns the Invalid token for sp.
func (lx *Lexer) fail(kind error, sp source.Span, msg string) token.Token {
	e := &Error{Kind: kind, Span: sp, Msg: msg}
	lx.err = e
	lx.report(e.Code(), e)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

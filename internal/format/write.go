package format

import (
	"fmt"
	"strings"

	"xfmt/internal/token"
)

// Writer accumulates output for a laid-out token sequence.
type Writer struct {
	opt    Options
	buf    []byte
	indent string
}

// NewWriter creates a writer; sizeHint preallocates the buffer.
func NewWriter(opt Options, sizeHint int) *Writer {
	opt = opt.withDefaults()
	indent := strings.Repeat(" ", opt.IndentWidth)
	if opt.UseTabs {
		indent = "\t"
	}
	return &Writer{
		opt:    opt,
		buf:    make([]byte, 0, sizeHint),
		indent: indent,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

func (w *Writer) Space() {
	w.buf = append(w.buf, ' ')
}

func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
}

// Tab writes one indent unit.
func (w *Writer) Tab() {
	w.buf = append(w.buf, w.indent...)
}

// WriteToken appends the text of tok. Sentinel kinds are rejected.
func (w *Writer) WriteToken(tok token.Token) error {
	switch tok.Kind {
	case token.Space:
		w.Space()
	case token.Tab:
		w.Tab()
	case token.NewLine:
		w.Newline()
	case token.Comma, token.Semicolon, token.OpenBrace, token.ClosedBrace, token.OpenParen, token.ClosedParen:
		w.WriteString(tok.Lexeme())
	case token.Operator, token.Literal, token.String, token.Keyword:
		w.WriteString(tok.Text)
	default:
		return fmt.Errorf("%w: %s at %s", ErrUnsupportedToken, tok.Kind, tok.Span)
	}
	return nil
}

// Build maps a laid-out token sequence to text.
func Build(toks []token.Token, opt Options) (string, error) {
	w := NewWriter(opt, len(toks)*4)
	for _, tok := range toks {
		if err := w.WriteToken(tok); err != nil {
			return "", err
		}
	}
	return string(w.Bytes()), nil
}

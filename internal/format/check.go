package format

import (
	"bytes"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"xfmt/internal/source"
	"xfmt/internal/token"
)

// CheckRoundTrip formats sf twice and verifies that the second pass is a
// no-op and that the significant tokens of the output match the input.
// With TrailingCommas a comma directly before ')' is ignored on both sides.
func CheckRoundTrip(sf *source.File, opt Options) error {
	opt = opt.withDefaults()
	first, err := FormatFile(sf, opt)
	if err != nil {
		return fmt.Errorf("fmt-check: formatter failed: %w", err)
	}

	fs := source.NewFileSet()
	out := fs.Get(fs.AddVirtual(sf.Path, first))
	second, err := FormatFile(out, opt)
	if err != nil {
		return fmt.Errorf("fmt-check: reformat failed: %w", err)
	}
	if !bytes.Equal(first, second) {
		line := firstDiffLine(first, second)
		return &CheckError{
			Kind: ErrNotIdempotent,
			Span: source.At(sf.ID, 0),
			Msg:  fmt.Sprintf("output line %d differs on the second pass", line),
		}
	}

	before, err := Tokens(sf, opt)
	if err != nil {
		return fmt.Errorf("fmt-check: %w", err)
	}
	after, err := Tokens(out, opt)
	if err != nil {
		return fmt.Errorf("fmt-check: rescan failed: %w", err)
	}
	before = significant(before, opt)
	after = significant(after, opt)
	for i := range min(len(before), len(after)) {
		if !sameToken(before[i], after[i], opt) {
			return &CheckError{
				Kind: ErrTokensChanged,
				Span: before[i].Span,
				Msg:  fmt.Sprintf("token %d: %s became %s", i, before[i], after[i]),
			}
		}
	}
	if len(before) != len(after) {
		return &CheckError{
			Kind: ErrTokensChanged,
			Span: sf.EOFSpan(),
			Msg:  fmt.Sprintf("%d tokens became %d", len(before), len(after)),
		}
	}
	return nil
}

func significant(toks []token.Token, opt Options) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for i, tok := range toks {
		if tok.IsWhitespace() {
			continue
		}
		if opt.TrailingCommas && tok.Kind == token.Comma && i+1 < len(toks) && toks[i+1].Kind == token.ClosedParen {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func sameToken(a, b token.Token, opt Options) bool {
	if !opt.NormalizeUnicode {
		return a.Equal(b)
	}
	return a.Kind == b.Kind && norm.NFC.String(a.Lexeme()) == norm.NFC.String(b.Lexeme())
}

func firstDiffLine(a, b []byte) int {
	line := 1
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return line
		}
		if a[i] == '\n' {
			line++
		}
	}
	return line
}

package fuzztests

import (
	"testing"

	"xfmt/internal/diag"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.x", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("span %v overlaps or runs backwards (prev end %d)", tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.Invalid {
				if lx.Err() == nil || !bag.HasErrors() {
					t.Fatal("invalid token without an error")
				}
				continue
			}
			if tok.Kind.IsWhitespace() {
				t.Fatalf("scanner emitted whitespace token %v", tok.Kind)
			}
			if got := file.Text(tok.Span); got != tok.Lexeme() {
				t.Fatalf("lexeme %q does not match source %q", tok.Lexeme(), got)
			}
		}
	})
}

package lsp

import (
	"encoding/json"
	"sort"

	"xfmt/internal/format"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, _, opt, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, foldingRanges(text, opt))
}

// foldingRanges folds every brace or paren pair spanning more than one
// line. Unmatched closers are skipped; tokens after a scan error are lost.
func foldingRanges(text string, opt format.Options) []foldingRange {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("<lsp>", []byte(text)))
	lx := lexer.New(sf, lexer.Options{Keywords: opt.Keywords, MaxTokenLength: opt.MaxTokenLength})

	type open struct {
		kind token.Kind
		line int
	}
	stack := make([]open, 0, 8)
	ranges := make([]foldingRange, 0)
	for tok := lx.Next(); tok.Kind != token.EOF && tok.Kind != token.Invalid; tok = lx.Next() {
		switch tok.Kind {
		case token.OpenBrace, token.OpenParen:
			stack = append(stack, open{kind: tok.Kind, line: lineAt(sf, tok.Span.Start)})
		case token.ClosedBrace, token.ClosedParen:
			want := token.OpenBrace
			if tok.Kind == token.ClosedParen {
				want = token.OpenParen
			}
			if len(stack) == 0 || stack[len(stack)-1].kind != want {
				continue
			}
			o := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if end := lineAt(sf, tok.Span.Start); end > o.line {
				ranges = append(ranges, foldingRange{StartLine: o.line, EndLine: end})
			}
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}

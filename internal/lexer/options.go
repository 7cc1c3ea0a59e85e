package lexer

import (
	"xfmt/internal/diag"
	"xfmt/internal/token"
)

type Options struct {
	Reporter diag.Reporter // nil: ошибки только возвращаются
	// Keywords reclassifies literal spellings; nil means no reserved words.
	Keywords token.KeywordTable
	// MaxTokenLength caps literal and string length in bytes; 0 disables the check.
	MaxTokenLength int
}

func (lx *Lexer) report(code diag.Code, e *Error) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, e.Span, e.Error()))
	}
}

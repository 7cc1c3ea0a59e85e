package driver

import (
	"os"

	"xfmt/internal/diag"
	"xfmt/internal/format"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans one file. Scan errors land in Bag, the tokens read before
// the failure are kept.
func Tokenize(path string, opt format.Options, maxDiagnostics int) (*TokenizeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	fs := source.NewFileSet()
	content, flags := source.Normalize(data)
	file := fs.Get(fs.Add(path, content, flags))
	return tokenizeFile(fs, file, opt, maxDiagnostics), nil
}

// TokenizeSource is Tokenize for in-memory input.
func TokenizeSource(name string, src []byte, opt format.Options, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	return tokenizeFile(fs, file, opt, maxDiagnostics)
}

func tokenizeFile(fs *source.FileSet, file *source.File, opt format.Options, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter:       diag.BagReporter{Bag: bag},
		Keywords:       opt.Keywords,
		MaxTokenLength: opt.MaxTokenLength,
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
		tokens = append(tokens, tok)
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}

package format

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"xfmt/internal/doc"
	"xfmt/internal/layout"
	"xfmt/internal/lexer"
	"xfmt/internal/observ"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

// VirtualPath names sources that did not come from disk.
const VirtualPath = "<input>"

// Format formats src as a standalone virtual file.
func Format(src []byte, opt Options) ([]byte, error) {
	fs := source.NewFileSet()
	return FormatFile(fs.Get(fs.AddVirtual(VirtualPath, src)), opt)
}

// FormatFile runs scan, layout and render over sf. On error no output is
// returned; the error carries the offending span where one exists.
func FormatFile(sf *source.File, opt Options) ([]byte, error) {
	return FormatFileTimed(sf, opt, nil)
}

// FormatFileTimed is FormatFile with per-phase timings recorded into t.
// A nil timer records nothing.
func FormatFileTimed(sf *source.File, opt Options, t *observ.Timer) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	opt = opt.withDefaults()

	idx := t.Begin("scan")
	toks, err := Tokens(sf, opt)
	t.End(idx, fmt.Sprintf("%d tokens", len(toks)))
	if err != nil {
		return nil, err
	}

	var out string
	switch opt.Strategy {
	case StrategyGreedy:
		idx = t.Begin("layout")
		laid, err := layout.Greedy(toks, opt.layoutOptions())
		t.End(idx, string(opt.Strategy))
		if err != nil {
			return nil, err
		}
		idx = t.Begin("render")
		out, err = Build(laid, opt)
		t.End(idx, "")
		if err != nil {
			return nil, err
		}
	default:
		idx = t.Begin("layout")
		root, err := layout.Build(toks, opt.layoutOptions())
		t.End(idx, string(opt.Strategy))
		if err != nil {
			return nil, err
		}
		idx = t.Begin("render")
		out, err = doc.Render(root, opt.docOptions())
		t.End(idx, "")
		if err != nil {
			return nil, err
		}
	}
	return finish(out, opt), nil
}

// Tokens scans sf with the lexical options of opt.
func Tokens(sf *source.File, opt Options) ([]token.Token, error) {
	return lexer.Scan(sf, lexer.Options{
		Keywords:       opt.Keywords,
		MaxTokenLength: opt.MaxTokenLength,
	})
}

// Document returns the document tree the doc strategy would render for sf.
func Document(sf *source.File, opt Options) (doc.Node, error) {
	opt = opt.withDefaults()
	toks, err := Tokens(sf, opt)
	if err != nil {
		return nil, err
	}
	return layout.Build(toks, opt.layoutOptions())
}

func finish(out string, opt Options) []byte {
	if opt.FinalNewline && out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	b := []byte(out)
	if opt.NormalizeUnicode {
		b = norm.NFC.Bytes(b)
	}
	return b
}

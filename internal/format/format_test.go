package format_test

import (
	"errors"
	"strings"
	"testing"

	"xfmt/internal/diag"
	"xfmt/internal/format"
	"xfmt/internal/layout"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

const scenario1 = "pink x =1+2 ; overtune(a,b){ something , other }"

func greedyOptions(width int) format.Options {
	opt := format.DefaultOptions()
	opt.Strategy = format.StrategyGreedy
	opt.MaxWidth = width
	opt.FinalNewline = false
	return opt
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opt   format.Options
		want  string
	}{
		{
			name:  "doc strategy",
			input: scenario1,
			opt:   format.DefaultOptions(),
			want:  "pink x = 1 + 2;\novertune(a, b) {\n   something, other\n}\n",
		},
		{
			name:  "greedy strategy",
			input: scenario1,
			opt:   greedyOptions(0),
			want:  "pink x = 1 + 2;\novertune(a, b) {\n   something, other\n}",
		},
		{
			name:  "greedy wrap",
			input: "a a a a a a a a a; a",
			opt:   greedyOptions(14),
			want:  "a a a a a a a a\n   a;\na",
		},
		{
			name:  "greedy counts tokens not columns",
			input: "name name name name name name name name name",
			opt:   greedyOptions(14),
			want:  "name name name name name name name name\n   name",
		},
		{
			name:  "list wraps for the semicolon after it",
			input: "f(abc, de);",
			opt:   format.Options{MaxWidth: 10},
			want:  "f(\n   abc,\n   de\n);",
		},
		{
			name:  "crlf and bom",
			input: "\ufeffa;\r\nb;\r\n",
			opt:   format.DefaultOptions(),
			want:  "a;\nb;\n",
		},
		{
			name:  "tabs",
			input: "f { g; }",
			opt:   format.Options{UseTabs: true, FinalNewline: true},
			want:  "f {\n\tg;\n}\n",
		},
		{
			name:  "unicode normalization",
			input: "s = \"e\u0301\";",
			opt:   format.Options{NormalizeUnicode: true},
			want:  "s = \"\u00e9\";",
		},
		{
			name:  "empty input stays empty",
			input: "  \n\n ",
			opt:   format.DefaultOptions(),
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.Format([]byte(tt.input), tt.opt)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Format(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opt   format.Options
		kind  error
		code  diag.Code
	}{
		{"unterminated string", `x = "abc`, format.DefaultOptions(), lexer.ErrUnterminatedString, diag.LexUnterminatedString},
		{"lone brace doc", "}", format.DefaultOptions(), layout.ErrUnbalancedBraces, diag.LayUnbalancedBraces},
		{"lone brace greedy", "}", greedyOptions(0), layout.ErrUnbalancedBraces, diag.LayUnbalancedBraces},
		{"unclosed paren", "f(a", format.DefaultOptions(), layout.ErrUnbalancedParens, diag.LayUnbalancedParens},
		{"token too long", "abcdef", format.Options{MaxTokenLength: 3}, lexer.ErrTokenTooLong, diag.LexTokenTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			sf := fs.Get(fs.AddVirtual("bad.x", []byte(tt.input)))
			out, err := format.FormatFile(sf, tt.opt)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}
			if out != nil {
				t.Errorf("no output expected on error, got %q", out)
			}
			d := format.Diagnose(err, sf)
			if d.Code != tt.code {
				t.Errorf("Diagnose code = %s, want %s", d.Code.ID(), tt.code.ID())
			}
			if d.Severity != diag.SevError {
				t.Errorf("Diagnose severity = %v", d.Severity)
			}
		})
	}
}

func TestStrategiesAgreeOnBraceErrors(t *testing.T) {
	tests := []struct {
		input string
		start uint32 // offset of the reported brace
	}{
		{"f({)", 2},
		{"g(x, {y)", 5},
		{"f(})", 2},
	}
	for _, tt := range tests {
		for name, opt := range map[string]format.Options{"doc": format.DefaultOptions(), "greedy": greedyOptions(0)} {
			fs := source.NewFileSet()
			sf := fs.Get(fs.AddVirtual("braces.x", []byte(tt.input)))
			_, err := format.FormatFile(sf, opt)
			var le *layout.LayoutError
			if !errors.As(err, &le) || !errors.Is(err, layout.ErrUnbalancedBraces) {
				t.Errorf("%s: Format(%q) error = %v, want unbalanced braces", name, tt.input, err)
				continue
			}
			if le.Span.Start != tt.start {
				t.Errorf("%s: Format(%q) span = %v, want start %d", name, tt.input, le.Span, tt.start)
			}
		}
	}
}

func TestBuild(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Keyword, Text: "if"},
		token.Make(token.Space),
		{Kind: token.Literal, Text: "x"},
		token.Make(token.Space),
		token.Make(token.OpenBrace),
		token.Make(token.NewLine),
		token.Make(token.Tab),
		{Kind: token.String, Text: `"s"`},
		token.Make(token.Semicolon),
		token.Make(token.NewLine),
		token.Make(token.ClosedBrace),
	}
	got, err := format.Build(toks, format.Options{IndentWidth: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := "if x {\n  \"s\";\n}"; got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}

	for _, k := range []token.Kind{token.Invalid, token.EOF} {
		if _, err := format.Build([]token.Token{token.Make(k)}, format.Options{}); !errors.Is(err, format.ErrUnsupportedToken) {
			t.Errorf("Build(%v) error = %v, want ErrUnsupportedToken", k, err)
		}
	}
}

func TestCheckRoundTrip(t *testing.T) {
	inputs := []string{
		scenario1,
		"call(alpha,beta,gamma,delta,epsilon,zeta,eta,theta,iota,kappa,lambda,mu);",
		"f(a, b,);",
		"a { b { c; } d } e;",
		`s = "multi
line" + t;`,
	}
	opts := map[string]format.Options{
		"doc":       format.DefaultOptions(),
		"narrow":    {MaxWidth: 16, FinalNewline: true},
		"trailing":  {MaxWidth: 16, TrailingCommas: true},
		"greedy":    greedyOptions(0),
		"greedy-20": greedyOptions(20),
	}
	for name, opt := range opts {
		for _, in := range inputs {
			fs := source.NewFileSet()
			sf := fs.Get(fs.AddVirtual("rt.x", []byte(in)))
			if err := format.CheckRoundTrip(sf, opt); err != nil {
				t.Errorf("%s: CheckRoundTrip(%q): %v", name, in, err)
			}
		}
	}
}

func TestOptions(t *testing.T) {
	if _, err := format.ParseStrategy("Greedy"); err != nil {
		t.Errorf("ParseStrategy(Greedy): %v", err)
	}
	if _, err := format.ParseStrategy("wadler"); err == nil {
		t.Errorf("ParseStrategy(wadler) must fail")
	}
	if err := (format.Options{Strategy: "x"}).Validate(); err == nil {
		t.Errorf("unknown strategy must not validate")
	}
	if err := (format.Options{MaxWidth: -1}).Validate(); err == nil {
		t.Errorf("negative width must not validate")
	}
	if err := format.DefaultOptions().Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	a := format.DefaultOptions()
	b := a
	b.MaxWidth = 40
	if a.Fingerprint() == b.Fingerprint() {
		t.Errorf("fingerprint must depend on max width")
	}
	a.Keywords = token.NewKeywordTable("b", "a")
	b = a
	b.Keywords = token.NewKeywordTable("a", "b")
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprint must not depend on keyword order")
	}
	if !strings.Contains(a.Fingerprint(), "k=a,b") {
		t.Errorf("fingerprint = %q", a.Fingerprint())
	}
}

package layout_test

import (
	"errors"
	"strings"
	"testing"

	"xfmt/internal/doc"
	"xfmt/internal/layout"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

func tokens(t *testing.T, input string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	toks, err := lexer.Scan(fs.Get(fs.AddVirtual("layout.x", []byte(input))), lexer.Options{})
	if err != nil {
		t.Fatalf("Scan(%q): %v", input, err)
	}
	return toks
}

// spell renders a greedy token stream with a Tab of three spaces.
func spell(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		switch tok.Kind {
		case token.Space:
			b.WriteByte(' ')
		case token.Tab:
			b.WriteString("   ")
		case token.NewLine:
			b.WriteByte('\n')
		default:
			b.WriteString(tok.Lexeme())
		}
	}
	return b.String()
}

func greedy(t *testing.T, input string, opts layout.Options) string {
	t.Helper()
	out, err := layout.Greedy(tokens(t, input), opts)
	if err != nil {
		t.Fatalf("Greedy(%q): %v", input, err)
	}
	return spell(out)
}

func TestGreedy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "statement and block",
			input: "pink x =1+2 ; overtune(a,b){ something , other }",
			want:  "pink x = 1 + 2;\novertune(a, b) {\n   something, other\n}",
		},
		{
			name:  "wraps past width",
			input: "a a a a a a a a a; a",
			want:  "a a a a a a a a\n   a;\na",
		},
		{
			name:  "nine names wrap after the eighth",
			input: "name name name name name name name name name",
			want:  "name name name name name name name name\n   name",
		},
		{
			name:  "long literal is one step",
			input: "abcdefghijklmnopqrstuvwxyz b c",
			want:  "abcdefghijklmnopqrstuvwxyz b c",
		},
		{
			name:  "call with block",
			input: "a = a ; a ( a ) { a }",
			want:  "a = a;\na(a) {\n   a\n}",
		},
		{
			name:  "nested blocks",
			input: "a{b{c}}",
			want:  "a {\n   b {\n      c\n   }\n}",
		},
		{
			name:  "semicolon after brace",
			input: "a { b } ;",
			want:  "a {\n   b\n};",
		},
		{
			name:  "empty block",
			input: "a {}",
			want:  "a {\n}",
		},
		{
			name:  "space before paren is dropped",
			input: "+ (a)",
			want:  "+(a)",
		},
		{
			name:  "empty input",
			input: " \n\t ",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := greedy(t, tt.input, layout.Options{}); got != tt.want {
				t.Errorf("Greedy(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGreedyOutputShape(t *testing.T) {
	inputs := []string{
		"pink x =1+2 ; overtune(a,b){ something , other }",
		"a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a;",
		"f(x,y){g(z){h;};k}",
		`s = "long string literal" + "another one" ;`,
	}
	for _, in := range inputs {
		out, err := layout.Greedy(tokens(t, in), layout.Options{})
		if err != nil {
			t.Fatalf("Greedy(%q): %v", in, err)
		}
		for i, tok := range out {
			if tok.Kind != token.Space {
				continue
			}
			if i+1 < len(out) && (out[i+1].Kind == token.Space || out[i+1].Kind == token.NewLine) {
				t.Errorf("%q: space followed by %v at %d", in, out[i+1].Kind, i)
			}
		}
		if n := len(out); n > 0 && out[n-1].IsWhitespace() {
			t.Errorf("%q: trailing whitespace %v", in, out[n-1].Kind)
		}

		// идемпотентность: повторный проход ничего не меняет
		first := spell(out)
		if second := greedy(t, first, layout.Options{}); second != first {
			t.Errorf("not idempotent:\n%q\n%q", first, second)
		}
	}
}

func TestGreedyErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"}", layout.ErrUnbalancedBraces},
		{"a { b } }", layout.ErrUnbalancedBraces},
		{"a {", layout.ErrUnbalancedBraces},
		{"f({)", layout.ErrUnbalancedBraces},
		{"a { b(c { d) }", layout.ErrUnbalancedBraces},
		{"f(})", layout.ErrUnbalancedBraces},
	}
	for _, tt := range tests {
		_, err := layout.Greedy(tokens(t, tt.input), layout.Options{})
		if !errors.Is(err, tt.kind) {
			t.Errorf("Greedy(%q) error = %v, want %v", tt.input, err, tt.kind)
		}
		var le *layout.LayoutError
		if !errors.As(err, &le) {
			t.Errorf("Greedy(%q): want *LayoutError, got %T", tt.input, err)
		}
	}
}

func render(t *testing.T, input string, opts layout.Options) string {
	t.Helper()
	root, err := layout.Build(tokens(t, input), opts)
	if err != nil {
		t.Fatalf("Build(%q): %v", input, err)
	}
	out, err := doc.Render(root, doc.Options{MaxWidth: opts.MaxWidth})
	if err != nil {
		t.Fatalf("Render(%q): %v", input, err)
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  layout.Options
		want  string
	}{
		{
			name:  "statement and block",
			input: "pink x =1+2 ; overtune(a,b){ something , other }",
			want:  "pink x = 1 + 2;\novertune(a, b) {\n   something, other\n}",
		},
		{
			name:  "list wraps one item per line",
			input: "call(alpha,beta,gamma);",
			opts:  layout.Options{MaxWidth: 12},
			want:  "call(\n   alpha,\n   beta,\n   gamma\n);",
		},
		{
			name:  "trailing comma when wrapped",
			input: "call(alpha,beta,gamma);",
			opts:  layout.Options{MaxWidth: 12, TrailingCommas: true},
			want:  "call(\n   alpha,\n   beta,\n   gamma,\n);",
		},
		{
			name:  "source trailing comma kept",
			input: "f(a, b,);",
			want:  "f(a, b,);",
		},
		{
			name:  "source trailing comma dropped when flat",
			input: "f(a, b,);",
			opts:  layout.Options{TrailingCommas: true},
			want:  "f(a, b);",
		},
		{
			name:  "word fill",
			input: "a a a a a a a a a;",
			opts:  layout.Options{MaxWidth: 10},
			want:  "a a a a a\n   a a a\n   a;",
		},
		{
			name:  "empty block",
			input: "if x { } ;",
			want:  "if x {};",
		},
		{
			name:  "nested blocks",
			input: "a { b { c; } }",
			want:  "a {\n   b {\n      c;\n   }\n}",
		},
		{
			name:  "statement after block",
			input: "a {b} c;",
			want:  "a {\n   b\n}\nc;",
		},
		{
			name:  "empty list",
			input: "f ( ) ;",
			want:  "f();",
		},
		{
			name:  "braces inside parens",
			input: "f({a;b})",
			want:  "f({ a; b })",
		},
		{
			name:  "braces stick to atoms inside parens",
			input: "f(a {b}, {})",
			want:  "f(a { b }, {})",
		},
		{
			name:  "semicolon after list counts toward width",
			input: "f(abc, de);",
			opts:  layout.Options{MaxWidth: 10},
			want:  "f(\n   abc,\n   de\n);",
		},
		{
			name:  "closing brace in a wrapped list",
			input: ",({,={,}+dddddd } )",
			opts:  layout.Options{MaxWidth: 10},
			want:  ",\n   (\n      {,\n      = {,\n      } +\n         dddddd }\n   )",
		},
		{
			name:  "bare block",
			input: "{a}",
			want:  "{\n   a\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.input, tt.opts); got != tt.want {
				t.Errorf("Build(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildIdempotent(t *testing.T) {
	inputs := []string{
		"pink x =1+2 ; overtune(a,b){ something , other }",
		"call(alpha,beta,gamma,delta,epsilon,zeta,eta,theta); x",
		"f(g(h(a,b),c),d) { e { f } }",
	}
	for _, opts := range []layout.Options{{MaxWidth: 20}, {MaxWidth: 20, TrailingCommas: true}, {}} {
		for _, in := range inputs {
			first := render(t, in, opts)
			if second := render(t, first, opts); second != first {
				t.Errorf("not idempotent (%+v):\n%q\n%q", opts, first, second)
			}
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"}", layout.ErrUnbalancedBraces},
		{"a {", layout.ErrUnbalancedBraces},
		{")", layout.ErrUnbalancedParens},
		{"f(a", layout.ErrUnbalancedParens},
		{"{ f( }", layout.ErrUnbalancedParens},
		{"f({)", layout.ErrUnbalancedBraces},
		{"a { b(c { d) }", layout.ErrUnbalancedBraces},
		{"f(})", layout.ErrUnbalancedBraces},
		{"f(g(}))", layout.ErrUnbalancedBraces},
	}
	for _, tt := range tests {
		_, err := layout.Build(tokens(t, tt.input), layout.Options{})
		if !errors.Is(err, tt.kind) {
			t.Errorf("Build(%q) error = %v, want %v", tt.input, err, tt.kind)
		}
	}
}

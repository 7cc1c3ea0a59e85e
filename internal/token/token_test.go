package token_test

import (
	"testing"

	"xfmt/internal/source"
	"xfmt/internal/token"
)

func TestKindClasses(t *testing.T) {
	for _, k := range []token.Kind{token.NewLine, token.Space, token.Tab} {
		if !k.IsWhitespace() || k.IsPunct() || k.IsWord() {
			t.Fatalf("%v must be whitespace only", k)
		}
	}
	for _, k := range []token.Kind{token.Comma, token.Semicolon, token.OpenBrace, token.ClosedBrace, token.OpenParen, token.ClosedParen} {
		if !k.IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
		text, ok := token.PunctText(k)
		if !ok || len(text) != 1 {
			t.Fatalf("PunctText(%v) = %q,%v", k, text, ok)
		}
		back, ok := token.PunctKind(text[0])
		if !ok || back != k {
			t.Fatalf("PunctKind(%q) = %v, want %v", text, back, k)
		}
	}
	for _, k := range []token.Kind{token.Operator, token.Literal, token.String, token.Keyword} {
		if !k.IsWord() {
			t.Fatalf("%v should be word", k)
		}
	}
	if token.Invalid.IsWord() || token.EOF.IsPunct() {
		t.Fatalf("sentinel kinds must not be classified")
	}
}

func TestOperatorBytes(t *testing.T) {
	for _, b := range []byte("+-*=:") {
		if !token.IsOperatorByte(b) {
			t.Errorf("%q should be operator", b)
		}
	}
	for _, b := range []byte("/<>!a;") {
		if token.IsOperatorByte(b) {
			t.Errorf("%q must not be operator", b)
		}
	}
}

func TestTokenLexemeAndEqual(t *testing.T) {
	a := token.Token{Kind: token.Literal, Text: "pink", Span: source.Span{Start: 0, End: 4}}
	b := token.Token{Kind: token.Literal, Text: "pink", Span: source.Span{Start: 10, End: 14}}
	if !a.Equal(b) {
		t.Fatalf("tokens with same payload must be equal regardless of span")
	}
	if a.String() != `Literal("pink")` {
		t.Errorf("String() = %q", a.String())
	}
	if got := token.Make(token.OpenParen).Lexeme(); got != "(" {
		t.Errorf("Lexeme(OpenParen) = %q", got)
	}
	if got := token.Make(token.Space).Lexeme(); got != "" {
		t.Errorf("Lexeme(Space) = %q", got)
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Errorf("unknown kind must not panic")
	}
}

func TestKeywordTable(t *testing.T) {
	var empty token.KeywordTable
	if k, ok := empty.LookupKeyword("fn"); ok || k != token.Literal {
		t.Fatalf("empty table must not reclassify, got %v,%v", k, ok)
	}

	kt := token.NewKeywordTable("fn", "let", "")
	if k, ok := kt.LookupKeyword("fn"); !ok || k != token.Keyword {
		t.Fatalf("fn must be keyword, got %v,%v", k, ok)
	}
	if _, ok := kt.LookupKeyword("Fn"); ok {
		t.Fatalf("keywords are case-sensitive")
	}
	if _, ok := kt.LookupKeyword(""); ok {
		t.Fatalf("empty spelling must never be a keyword")
	}
}

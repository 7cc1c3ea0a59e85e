package repl

import (
	"bytes"
	"strings"
	"testing"

	"xfmt/internal/format"
)

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"", false},
		{"f(a, b);", false},
		{"a {", true},
		{"a { b {", true},
		{"a { b; }", false},
		{"f(a,", true},
		{"x = \"open", true},
		{"x = \"a { b\";", false},
		{"}", false},
		{"a } {", false},
		{"x = \x00", false},
	}
	for _, tt := range tests {
		if got := NeedsMoreInput(tt.src, format.DefaultOptions()); got != tt.want {
			t.Errorf("NeedsMoreInput(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestSessionFormats(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, Config{Options: format.DefaultOptions()})

	quit, entry := s.Feed("f(a,b);")
	if quit || entry != "f(a,b);" {
		t.Fatalf("Feed = %v, %q", quit, entry)
	}
	if out.String() != "f(a, b);\n" {
		t.Fatalf("output %q", out.String())
	}
}

func TestSessionMultiline(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, Config{Options: format.DefaultOptions()})

	if _, entry := s.Feed("a {"); entry != "" {
		t.Fatalf("incomplete input reached history: %q", entry)
	}
	if s.Prompt() != ContinuationPrompt {
		t.Fatalf("prompt %q", s.Prompt())
	}
	if out.Len() != 0 {
		t.Fatalf("formatted too early: %q", out.String())
	}
	_, entry := s.Feed("b; }")
	if entry != "a {\nb; }" {
		t.Fatalf("entry %q", entry)
	}
	want, err := format.Format([]byte(entry), format.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != string(want) {
		t.Fatalf("output %q, want %q", out.String(), want)
	}
	if s.Prompt() != Prompt {
		t.Fatalf("prompt after completion %q", s.Prompt())
	}
}

func TestSessionErrorsAndReset(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, Config{Options: format.DefaultOptions()})

	s.Feed("}")
	if !strings.Contains(out.String(), "LAY2001") {
		t.Fatalf("expected diagnostic code, got %q", out.String())
	}

	s.Feed("a {")
	if !s.Reset() {
		t.Fatal("Reset should report buffered input")
	}
	if s.Reset() {
		t.Fatal("second Reset should find nothing")
	}
}

func TestSessionCommands(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, Config{Options: format.DefaultOptions()})

	s.Feed(":strategy greedy")
	s.Feed(":width 20")
	s.Feed(":commas on")
	opt := s.Options()
	if opt.Strategy != format.StrategyGreedy || opt.MaxWidth != 20 || !opt.TrailingCommas {
		t.Fatalf("options not applied: %+v", opt)
	}

	out.Reset()
	s.Feed(":width -1")
	if !strings.HasPrefix(out.String(), "error:") || s.Options().MaxWidth != 20 {
		t.Fatalf("invalid width accepted: %q", out.String())
	}

	out.Reset()
	s.Feed(":nope")
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("got %q", out.String())
	}

	if quit, _ := s.Feed("exit"); !quit {
		t.Fatal("exit should quit")
	}
}

func TestComplete(t *testing.T) {
	got := complete(":st")
	if len(got) != 1 || got[0] != ":strategy" {
		t.Fatalf("complete(:st) = %v", got)
	}
	if complete("abc") != nil {
		t.Fatal("plain input should not complete")
	}
}

package testkit

import (
	"strings"
	"testing"

	"xfmt/internal/format"
)

func TestCheckAll(t *testing.T) {
	inputs := []string{
		"pink x =1+2 ; overtune(a,b){ something , other }",
		"call(alpha,beta,gamma,delta,epsilon,zeta,eta,theta,iota,kappa,lambda,mu);",
		"a { b { c; } d } e;",
		"f(abc, de);",
		",({,={,}+dddddd } )",
		"   dddddd {a}",
		"g(x {}, {y,});",
	}
	narrow := format.DefaultOptions()
	narrow.MaxWidth = 16
	tight := format.DefaultOptions()
	tight.MaxWidth = 8
	for _, in := range inputs {
		for name, opt := range map[string]format.Options{"doc": format.DefaultOptions(), "narrow": narrow, "tight": tight} {
			if err := CheckAll([]byte(in), opt); err != nil {
				t.Errorf("%s: CheckAll(%q): %v", name, in, err)
			}
		}
	}
}

func TestCheckWidth(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		wantErr bool
	}{
		{"fits", "ab cd\n", false},
		{"too wide with a break", "abc def\n", true},
		{"single atom", "abcdefghij\n", false},
		{"space inside string", "\"a b c d\"\n", false},
		{"tab indentation counts", "\tab c\n", true},
		{"space before attached brace", "   dddddd {\n", false},
		{"space before closing brace", "dddddd }\n", false},
		{"brace after a real break", "ab cd {\n", true},
		{"inside multi-line string", "\"a\nb c d e f g\" x\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWidth([]byte(tt.out), 6, 4)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckWidth(%q) = %v, wantErr %v", tt.out, err, tt.wantErr)
			}
		})
	}
}

func TestCheckBalancedNesting(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		wantErr string
	}{
		{"block", "a {\n   b;\n}\n", ""},
		{"nested", "a {\n   b {\n      c;\n   }\n}\n", ""},
		{"inline", "f({ a; b });\n", ""},
		{"empty greedy block", "a {\n}", ""},
		{"unclosed", "a {\n   b;\n", "never closed"},
		{"stray", "}\n", "without an open block"},
		{"closer too deep", "a {\nb;\n   }\n", "indented"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBalancedNesting([]byte(tt.out))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %v, want %q", err, tt.wantErr)
			}
		})
	}
}

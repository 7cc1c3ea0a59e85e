package diag

import (
	"strings"
	"testing"

	"xfmt/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnterminatedString, "LEX1002"},
		{LayUnbalancedBraces, "LAY2001"},
		{RenDuplicateGroupID, "REN3001"},
		{IOWriteFileError, "IO4002"},
		{CfgInvalidValue, "CFG5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unregistered code must fall back to the unknown title")
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }

	bag.Add(New(SevWarning, LayInfo, sp(5), "w"))
	bag.Add(New(SevWarning, LexUnsupportedChar, sp(1), "a"))
	bag.Add(NewError(LayUnbalancedBraces, sp(5), "b"))
	if bag.Add(NewError(LexUnexpectedEnd, sp(9), "dropped")) {
		t.Fatalf("bag must refuse entries past its limit")
	}
	if bag.Len() != 3 || bag.Dropped() != 1 {
		t.Fatalf("Len = %d, Dropped = %d", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatalf("expected an error")
	}

	bag.Sort()
	got := []string{}
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	if strings.Join(got, ",") != "a,b,w" {
		t.Errorf("sorted order = %v", got)
	}

	if unbounded := NewBag(0); !unbounded.Add(Diagnostic{}) || unbounded.Dropped() != 0 {
		t.Errorf("zero limit must be unbounded")
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(10)
	var seen []Code
	reporters := []Reporter{
		BagReporter{Bag: bag},
		BagReporter{},
		ReporterFunc(func(d Diagnostic) { seen = append(seen, d.Code) }),
	}
	d := NewError(LexUnterminatedString, source.Span{Start: 0, End: 4}, "unterminated string literal").
		WithNote(source.Span{Start: 0, End: 1}, "string starts here")
	for _, r := range reporters {
		r.Report(d)
	}
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
	if len(seen) != 1 || seen[0] != LexUnterminatedString {
		t.Errorf("func reporter saw %v", seen)
	}
	if Severity(9).String() != "UNKNOWN" || SevWarning.String() != "WARNING" {
		t.Errorf("severity names broken")
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("./testdata/sample.x", []byte("a\nb \"c\n"), 0)

	diags := []Diagnostic{
		NewError(LexUnterminatedString, source.Span{File: id, Start: 4, End: 7}, "unterminated\nstring").
			WithNote(source.Span{File: id, Start: 4, End: 5}, "opened here"),
		New(SevWarning, LayInfo, source.Span{File: id, Start: 0, End: 1}, "first"),
	}

	want := "warning LAY2000 testdata/sample.x:1:1 first\n" +
		"error LEX1002 testdata/sample.x:2:3 unterminated string\n" +
		"note LEX1002 testdata/sample.x:2:3 opened here"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if FormatShortDiagnostics(nil, fs, true) != "" {
		t.Errorf("no diagnostics must render empty")
	}
}

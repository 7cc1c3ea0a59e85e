package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"xfmt/internal/diag"
	"xfmt/internal/doc"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

func TestJSONBasic(t *testing.T) {
	fs, d := unterminated("test.x")
	bag := diag.NewBag(10)
	bag.Add(d.WithNote(d.Primary, "opened here"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("unexpected count: %+v", output)
	}
	got := output.Diagnostics[0]
	if got.Severity != "ERROR" || got.Code != "LEX1002" {
		t.Fatalf("severity/code: %s %s", got.Severity, got.Code)
	}
	loc := got.Location
	if loc == nil || loc.File != "test.x" || loc.StartByte != 7 || loc.EndByte != 12 {
		t.Fatalf("location: %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 5 {
		t.Fatalf("position: %d:%d", loc.StartLine, loc.StartCol)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "opened here" {
		t.Fatalf("notes: %+v", got.Notes)
	}
}

func TestJSONMaxAndTimings(t *testing.T) {
	fs, d := unterminated("test.x")
	timing := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings").
		WithNote(source.Span{}, `{"kind":"run"}`)

	out := BuildDiagnosticsOutput([]diag.Diagnostic{d, timing}, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %d", out.Count)
	}

	out = BuildDiagnosticsOutput([]diag.Diagnostic{timing}, fs, JSONOpts{})
	got := out.Diagnostics[0]
	if got.Location != nil {
		t.Fatal("timings carry no location")
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != `{"kind":"run"}` {
		t.Fatalf("timing payload dropped: %+v", got.Notes)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.x", []byte("f(a)"))
	toks := []token.Token{
		{Kind: token.Literal, Text: "f", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.OpenParen, Span: source.Span{File: id, Start: 1, End: 2}},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], `"("`) || !strings.Contains(lines[1], "at 1:2-1:3") {
		t.Fatalf("pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[1].Text != "(" || decoded[0].Kind != token.Literal.String() {
		t.Fatalf("json tokens: %+v", decoded)
	}
}

func TestFormatDoc(t *testing.T) {
	root := doc.Group{ID: 1, Nodes: []doc.Node{doc.Text("f"), doc.Indent{doc.Line{}, doc.Text("x")}}}

	var pretty bytes.Buffer
	if err := FormatDocPretty(&pretty, root); err != nil {
		t.Fatal(err)
	}
	want := "Group #1\n" +
		"├─ Text \"f\"\n" +
		"└─ Indent\n" +
		"   ├─ Line\n" +
		"   └─ Text \"x\"\n"
	if pretty.String() != want {
		t.Fatalf("got:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatDocJSON(&js, root); err != nil {
		t.Fatal(err)
	}
	var decoded DocNodeOutput
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != "Group" || decoded.ID != 1 || len(decoded.Children) != 2 || decoded.Children[1].Children[1].Text != "x" {
		t.Fatalf("json doc: %+v", decoded)
	}
}

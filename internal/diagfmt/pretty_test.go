package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"xfmt/internal/diag"
	"xfmt/internal/source"
)

func unterminated(path string) (*source.FileSet, diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte("a;\nx = \"open\n"))
	d := diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: id, Start: 7, End: 12}, "unterminated string literal")
	return fs, d
}

func TestPrettyExcerpt(t *testing.T) {
	fs, d := unterminated("test.x")
	var buf bytes.Buffer
	PrettyDiagnostic(&buf, d, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})

	want := "test.x:2:5: ERROR LEX1002: unterminated string literal\n" +
		" 1 | a;\n" +
		" 2 | x = \"open\n" +
		"   |     ^~~~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyTabsAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("tab.x", []byte("\t}"))
	d := diag.NewError(diag.LayUnbalancedBraces, source.Span{File: id, Start: 1, End: 2}, "unexpected }").
		WithNote(source.Span{}, "no block is open")

	var buf bytes.Buffer
	PrettyDiagnostic(&buf, d, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got:\n%s", buf.String())
	}
	if lines[1] != " 1 |     }" {
		t.Fatalf("tab not expanded: %q", lines[1])
	}
	if lines[2] != "   |     ^" {
		t.Fatalf("caret misplaced: %q", lines[2])
	}
	if lines[3] != "  = note: no block is open" {
		t.Fatalf("note line: %q", lines[3])
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	var buf bytes.Buffer
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings (run): total 1.00 ms"))
	Pretty(&buf, bag, nil, PrettyOpts{})
	if buf.String() != "INFO OBS6001: timings (run): total 1.00 ms\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs, d := unterminated("test.x")
	var plain, colored bytes.Buffer
	PrettyDiagnostic(&plain, d, fs, PrettyOpts{})
	PrettyDiagnostic(&colored, d, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("escape codes with color disabled")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("no escape codes with color enabled")
	}
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		mode PathMode
		base string
		want string
	}{
		{"basename", "/home/user/project/src/a.x", PathModeBasename, "", "a.x"},
		{"relative", "/home/user/project/src/a.x", PathModeRelative, "/home/user/project", "src/a.x"},
		{"auto inside base", "/home/user/project/src/a.x", PathModeAuto, "/home/user/project", "src/a.x"},
		{"auto relative kept", "src/a.x", PathModeAuto, "", "src/a.x"},
		{"auto virtual kept", "<input>", PathModeAuto, "", "<input>"},
		{"auto long outside", "/very/long/absolute/path/to/some/nested/dir/file.x", PathModeAuto, "/elsewhere", "file.x"},
		{"auto short outside", "/tmp/a.x", PathModeAuto, "/elsewhere", "/tmp/a.x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayPath(tt.path, tt.mode, tt.base); got != tt.want {
				t.Fatalf("displayPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Fatalf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Fatal("expected error")
	}
}

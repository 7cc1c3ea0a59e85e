package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.x", []byte("a = b;"), 0)
	id2 := fs.Add("main.x", []byte("a = c;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	if got := string(fs.Get(id2).Content); got != "a = c;" {
		t.Errorf("new version content = %q", got)
	}
	if got := string(fs.Get(id1).Content); got != "a = b;" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("Get on unknown id must return nil")
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("stdin", []byte("\xEF\xBB\xBFa;\r\nb;\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a;\nb;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	for _, flag := range []FileFlags{FileVirtual, FileHadBOM, FileNormalizedCRLF} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %b not set in %b", flag, f.Flags)
		}
	}
	if len(f.LineIdx) != 2 || f.LineIdx[0] != 2 || f.LineIdx[1] != 5 {
		t.Errorf("LineIdx = %v, want [2 5]", f.LineIdx)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.x")
	if err := os.WriteFile(path, []byte("x;\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual != 0 {
		t.Errorf("disk file must not be virtual")
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.x")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.x", []byte("ab\ncd\n\nef"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n'
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}

	lines := map[uint32]string{0: "", 1: "ab", 2: "cd", 3: "", 4: "ef", 5: ""}
	for n, want := range lines {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}

	if got := f.Text(Span{File: id, Start: 3, End: 5}); got != "cd" {
		t.Errorf("Text = %q, want cd", got)
	}
	if got := f.Text(Span{File: id, Start: 8, End: 100}); got != "f" {
		t.Errorf("Text clamp = %q, want f", got)
	}
}

package lsp

import (
	"net/url"
	"path/filepath"
	"unicode/utf8"

	"xfmt/internal/source"
)

// LSP positions count UTF-16 code units within a line.

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// applyChanges replays didChange events; a change without a range replaces
// the whole text.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetAt(text, change.Range.Start)
		end := max(offsetAt(text, change.Range.End), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetAt converts pos to a byte offset, clamped to text.
func offsetAt(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; i++ {
		if i >= len(text) {
			return len(text)
		}
		if text[i] == '\n' {
			line++
		}
	}
	units := 0
	for i < len(text) && text[i] != '\n' {
		r, size := utf8.DecodeRuneInString(text[i:])
		if units+utf16Len(r) > pos.Character {
			break
		}
		units += utf16Len(r)
		i += size
	}
	return i
}

// positionAt is the inverse of offsetAt.
func positionAt(text string, off int) position {
	off = min(max(off, 0), len(text))
	var pos position
	for i := 0; i < off; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if i+size > off {
			break
		}
		if r == '\n' {
			pos.Line++
			pos.Character = 0
		} else {
			pos.Character += utf16Len(r)
		}
		i += size
	}
	return pos
}

func endPosition(text string) position {
	return positionAt(text, len(text))
}

// rangeForSpan maps a span of the normalized file content.
func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	text := string(file.Content)
	return lspRange{
		Start: positionAt(text, int(span.Start)),
		End:   positionAt(text, int(span.End)),
	}
}

// lineAt returns the 0-based line of off.
func lineAt(file *source.File, off uint32) int {
	start, _ := file.Resolve(source.At(file.ID, off))
	return int(start.Line) - 1
}

func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil || (parsed.Scheme != "" && parsed.Scheme != "file") {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	return filepath.FromSlash(path)
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

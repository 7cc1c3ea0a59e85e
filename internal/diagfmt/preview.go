package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"xfmt/internal/source"
)

type excerptLine struct {
	num  uint32
	text string // табы уже развёрнуты
}

// excerpt is the source shown under a diagnostic: context lines, the primary
// line, and where the underline goes on it.
type excerpt struct {
	lines    []excerptLine
	caretCol int // display column, 0-based
	caretLen int // display width, at least 1
}

func buildExcerpt(f *source.File, span source.Span, context int8, tabWidth int) excerpt {
	start, end := f.Resolve(span)
	if tabWidth <= 0 {
		tabWidth = 4
	}

	var ex excerpt
	first := start.Line
	if context > 0 {
		first = start.Line - min(start.Line-1, uint32(context))
	}
	for n := first; n < start.Line; n++ {
		ex.lines = append(ex.lines, excerptLine{num: n, text: expandTabs(f.GetLine(n), tabWidth)})
	}

	raw := f.GetLine(start.Line)
	ex.lines = append(ex.lines, excerptLine{num: start.Line, text: expandTabs(raw, tabWidth)})

	from := min(int(start.Col)-1, len(raw))
	to := len(raw)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(raw))
	}
	to = max(to, from)

	prefix := runewidth.StringWidth(expandTabs(raw[:from], tabWidth))
	ex.caretCol = prefix
	ex.caretLen = max(runewidth.StringWidth(expandTabs(raw[:to], tabWidth))-prefix, 1)
	return ex
}

func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

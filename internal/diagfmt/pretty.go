package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"xfmt/internal/diag"
	"xfmt/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, note    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		note:   mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста и подчёркивание ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		PrettyDiagnostic(w, d, fs, opts)
	}
}

// PrettyDiagnostic renders a single diagnostic.
func PrettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	sevColor := p.severity(d.Severity)
	head := fmt.Sprintf("%s %s: %s", sevColor.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)

	file := spanFile(fs, d)
	if file == nil {
		fmt.Fprintln(w, head)
	} else {
		start, _ := file.Resolve(d.Primary)
		loc := fmt.Sprintf("%s:%d:%d", displayPath(file.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col)
		fmt.Fprintf(w, "%s: %s\n", p.path.Sprint(loc), head)
		writeExcerpt(w, buildExcerpt(file, d.Primary, opts.Context, opts.TabWidth), p, sevColor)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("= note:"), n.Msg)
	}
}

// spanFile returns the file the primary span points into, or nil when the
// diagnostic has no location.
func spanFile(fs *source.FileSet, d diag.Diagnostic) *source.File {
	if fs == nil || d.Code == diag.ObsTimings {
		return nil
	}
	return fs.Get(d.Primary.File)
}

func writeExcerpt(w io.Writer, ex excerpt, p palette, mark *color.Color) {
	last := ex.lines[len(ex.lines)-1].num
	width := len(strconv.FormatUint(uint64(last), 10))
	pad := strings.Repeat(" ", width)

	for _, l := range ex.lines {
		num := fmt.Sprintf("%*d", width, l.num)
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprint(num+" |"), l.text)
	}
	underline := "^" + strings.Repeat("~", ex.caretLen-1)
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprint(pad+" |"), strings.Repeat(" ", ex.caretCol), mark.Sprint(underline))
}

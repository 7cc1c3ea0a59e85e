// Package testkit holds property checks over formatter output, shared by
// unit tests and fuzz targets.
package testkit

import (
	"fmt"
	"strings"

	"xfmt/internal/doc"
	"xfmt/internal/format"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

// CheckRoundTrip formats src and verifies idempotence and token preservation.
func CheckRoundTrip(src []byte, opt format.Options) error {
	fs := source.NewFileSet()
	return format.CheckRoundTrip(fs.Get(fs.AddVirtual("testkit.x", src)), opt)
}

// CheckWidth verifies no line of out is wider than maxWidth unless it holds
// a single unbreakable atom: no space outside string literals after the
// indentation, other than the one before an attached brace. Lines inside a
// multi-line string are not checked. Tabs count as tabWidth columns.
func CheckWidth(out []byte, maxWidth, tabWidth int) error {
	inString := false
	for i, line := range strings.Split(string(out), "\n") {
		started := inString
		var brk bool
		brk, inString = hasBreak(line, inString)
		if started {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		width := strings.Count(line[:indent], " ") + strings.Count(line[:indent], "\t")*tabWidth
		width += doc.TextWidth(line[indent:])
		if width > maxWidth && brk {
			return fmt.Errorf("line %d is %d columns wide (max %d): %q", i+1, width, maxWidth, line)
		}
	}
	return nil
}

// hasBreak reports a space outside string literals after the indentation of
// line, and whether a string literal is still open at its end. A space before
// '{' or '}' is not a break: braces stick to the atom before them.
func hasBreak(line string, inString bool) (bool, bool) {
	s := line
	if !inString {
		s = strings.TrimLeft(line, " \t")
	}
	brk, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case c == ' ' && !inString:
			if i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '}') {
				continue
			}
			brk = true
		}
	}
	return brk, inString
}

// CheckBalancedNesting verifies every '{' in out has a matching '}', and that
// a '}' starting a line is indented no deeper than the line following its
// opener.
func CheckBalancedNesting(out []byte) error {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("testkit.x", out))
	toks, err := lexer.Scan(sf, lexer.Options{})
	if err != nil {
		return fmt.Errorf("rescan output: %w", err)
	}

	type opener struct {
		line uint32
		next int // отступ следующей строки, -1 пока неизвестен
	}
	var stack []opener
	lastLine := uint32(0)
	for _, tok := range toks {
		pos, _ := sf.Resolve(tok.Span)
		firstOnLine := pos.Line != lastLine
		lastLine = pos.Line
		lineIndent := indentOf(sf.GetLine(pos.Line))

		// первая строка после открывающей скобки задаёт отступ тела
		if firstOnLine {
			for i := range stack {
				if stack[i].next < 0 && pos.Line > stack[i].line {
					stack[i].next = lineIndent
				}
			}
		}

		switch tok.Kind {
		case token.OpenBrace:
			stack = append(stack, opener{line: pos.Line, next: -1})
		case token.ClosedBrace:
			if len(stack) == 0 {
				return fmt.Errorf("line %d: '}' without an open block", pos.Line)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if firstOnLine && top.next >= 0 && lineIndent > top.next {
				return fmt.Errorf("line %d: '}' indented %d, body of block at line %d indented %d",
					pos.Line, lineIndent, top.line, top.next)
			}
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("line %d: '{' never closed", stack[len(stack)-1].line)
	}
	return nil
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// CheckAll formats src and runs every property. The width bound applies to
// the doc strategy only.
func CheckAll(src []byte, opt format.Options) error {
	out, err := format.Format(src, opt)
	if err != nil {
		return err
	}
	if err := CheckRoundTrip(src, opt); err != nil {
		return err
	}
	if err := CheckBalancedNesting(out); err != nil {
		return err
	}
	if opt.Strategy == format.StrategyDoc || opt.Strategy == "" {
		width := opt.MaxWidth
		if width == 0 {
			width = doc.DefaultMaxWidth
		}
		indent := opt.IndentWidth
		if indent == 0 {
			indent = doc.DefaultIndentWidth
		}
		return CheckWidth(out, width, indent)
	}
	return nil
}

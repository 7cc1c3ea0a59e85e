// Package repl is an interactive prompt that formats what you type.
// Input is buffered until braces and parentheses balance.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"xfmt/internal/diag"
	"xfmt/internal/format"
	"xfmt/internal/source"
)

const (
	Prompt             = "xfmt> "
	ContinuationPrompt = "...   "
)

// VirtualPath names REPL input in diagnostics.
const VirtualPath = "<repl>"

// RenderFunc prints one diagnostic. The file set resolves its spans.
type RenderFunc func(w io.Writer, fs *source.FileSet, d diag.Diagnostic)

type Config struct {
	Options     format.Options
	HistoryFile string // default $TMPDIR/.xfmt_history
	Render      RenderFunc
}

// Run reads from the terminal until Ctrl+D or `exit`.
func Run(out io.Writer, cfg Config) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	historyFile := cfg.HistoryFile
	if historyFile == "" {
		historyFile = filepath.Join(os.TempDir(), ".xfmt_history")
	}
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := NewSession(out, cfg)
	fmt.Fprintln(out, "xfmt repl: type source to format it, :help for commands, Ctrl+D to quit")
	for {
		input, err := line.Prompt(s.Prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				if s.Reset() {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		quit, entry := s.Feed(input)
		if entry != "" {
			line.AppendHistory(entry)
		}
		if quit {
			return nil
		}
	}
}

// Session holds the buffered input and the options of one REPL.
type Session struct {
	out    io.Writer
	opt    format.Options
	render RenderFunc
	buf    strings.Builder
}

func NewSession(out io.Writer, cfg Config) *Session {
	render := cfg.Render
	if render == nil {
		render = plainRender
	}
	return &Session{out: out, opt: cfg.Options, render: render}
}

func (s *Session) Prompt() string {
	if s.buf.Len() > 0 {
		return ContinuationPrompt
	}
	return Prompt
}

// Options returns the current formatting options.
func (s *Session) Options() format.Options { return s.opt }

// Reset drops buffered input and reports whether there was any.
func (s *Session) Reset() bool {
	had := s.buf.Len() > 0
	s.buf.Reset()
	return had
}

// Feed consumes one line. It returns quit on `exit`, and entry is the
// complete input worth keeping in history, if any.
func (s *Session) Feed(input string) (quit bool, entry string) {
	trimmed := strings.TrimSpace(input)
	if s.buf.Len() == 0 {
		switch {
		case trimmed == "exit" || trimmed == "quit":
			return true, ""
		case strings.HasPrefix(trimmed, ":"):
			s.command(trimmed)
			return false, trimmed
		case trimmed == "":
			return false, ""
		}
	}

	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(input)
	full := s.buf.String()
	if NeedsMoreInput(full, s.opt) {
		return false, ""
	}
	s.buf.Reset()
	s.format(full)
	return false, full
}

func (s *Session) format(src string) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(VirtualPath, []byte(src)))
	out, err := format.FormatFile(sf, s.opt)
	if err != nil {
		s.render(s.out, fs, format.Diagnose(err, sf))
		return
	}
	text := string(out)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	io.WriteString(s.out, text)
}

func plainRender(w io.Writer, _ *source.FileSet, d diag.Diagnostic) {
	fmt.Fprintf(w, "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
}

package repl

import (
	"fmt"
	"strconv"
	"strings"

	"xfmt/internal/format"
)

var commands = []string{":help", ":strategy", ":width", ":indent", ":commas", ":tabs", ":options"}

const helpText = `commands:
  :strategy doc|greedy   switch layout strategy
  :width N               max line width, 0 for the strategy default
  :indent N              indent width
  :commas on|off         trailing commas in wrapped lists
  :tabs on|off           indent with tabs
  :options               show current options
  exit, quit, Ctrl+D     leave`

func complete(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Session) command(input string) {
	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]
	next := s.opt
	var err error

	switch name {
	case ":help":
		fmt.Fprintln(s.out, helpText)
		return
	case ":options":
		fmt.Fprintln(s.out, s.opt.Fingerprint())
		return
	case ":strategy":
		if len(args) != 1 {
			err = fmt.Errorf("usage: :strategy doc|greedy")
			break
		}
		next.Strategy, err = format.ParseStrategy(args[0])
	case ":width":
		next.MaxWidth, err = intArg(args)
	case ":indent":
		next.IndentWidth, err = intArg(args)
	case ":commas":
		next.TrailingCommas, err = boolArg(args)
	case ":tabs":
		next.UseTabs, err = boolArg(args)
	default:
		err = fmt.Errorf("unknown command %s, try :help", name)
	}
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.opt = next
	fmt.Fprintln(s.out, "ok")
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	return strconv.Atoi(args[0])
}

func boolArg(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expected on or off")
	}
	switch args[0] {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args[0])
}

package layout

import (
	"xfmt/internal/source"
	"xfmt/internal/token"
)

// Greedy lays tokens out by local rewriting rules and a running column
// counter. It reads the input once and appends to a fresh output sequence;
// whitespace tokens in the input are dropped and re-derived.
//
// The counter counts emitted tokens, inserted Space and Tab included, not
// characters; a NewLine resets it. A long literal is one step like a short one.
//
// The output never holds two Space tokens in a row, never a Space before a
// NewLine, and never trailing whitespace.
func Greedy(toks []token.Token, opts Options) ([]token.Token, error) {
	g := &greedy{
		opts: opts.greedyDefaults(),
		out:  make([]token.Token, 0, len(toks)*2),
	}
	for _, tok := range toks {
		if err := g.step(tok); err != nil {
			return nil, err
		}
	}
	if len(g.open) > 0 {
		return nil, &LayoutError{
			Kind:  ErrUnbalancedBraces,
			Span:  g.open[len(g.open)-1],
			Depth: len(g.open),
			Msg:   "'{' is never closed",
		}
	}
	g.trimWhitespace()
	return g.out, nil
}

type greedy struct {
	opts Options
	out  []token.Token
	open []source.Span // spans of unclosed '{'; len(open) is the depth
	col  int // tokens since the last NewLine
}

func (g *greedy) depth() int { return len(g.open) }

func (g *greedy) step(tok token.Token) error {
	switch tok.Kind {
	case token.Space, token.Tab, token.NewLine, token.EOF:
		return nil
	case token.Literal, token.Operator, token.String, token.Keyword:
		g.word(tok)
	case token.OpenParen:
		g.emit(tok)
	case token.ClosedParen, token.Comma:
		g.trimWhitespace()
		g.emit(tok)
	case token.Semicolon:
		g.trimWhitespace()
		g.emit(tok)
		g.newline(g.depth())
	case token.OpenBrace:
		if !g.atLineStart() {
			g.emit(token.Make(token.Space))
		}
		g.emit(tok)
		g.open = append(g.open, tok.Span)
		g.newline(g.depth())
	case token.ClosedBrace:
		if g.depth() == 0 {
			return &LayoutError{Kind: ErrUnbalancedBraces, Span: tok.Span, Msg: "'}' without matching '{'"}
		}
		g.open = g.open[:len(g.open)-1]
		if g.atLineStart() {
			g.trimWhitespace()
			if len(g.out) > 0 {
				g.emit(token.Make(token.NewLine))
			}
			g.indent(g.depth())
		} else {
			g.newline(g.depth())
		}
		g.emit(tok)
		g.newline(g.depth())
	default:
		return &LayoutError{Kind: ErrUnexpectedToken, Span: tok.Span, Depth: g.depth(), Msg: tok.Kind.String()}
	}
	return nil
}

// word places an operator, literal, string or keyword.
func (g *greedy) word(tok token.Token) {
	lineStart := g.atLineStart()
	if !lineStart && g.col > g.opts.MaxWidth {
		g.trimWhitespace()
		g.newline(g.depth() + 1)
		lineStart = true
	}
	if !lineStart && g.last() != token.OpenParen {
		g.emit(token.Make(token.Space))
	}
	g.emit(tok)
}

func (g *greedy) emit(tok token.Token) {
	g.out = append(g.out, tok)
	g.col = advance(g.col, tok)
}

func (g *greedy) newline(depth int) {
	g.emit(token.Make(token.NewLine))
	g.indent(depth)
}

func (g *greedy) indent(depth int) {
	for range depth {
		g.emit(token.Make(token.Tab))
	}
}

// last returns the kind of the last non-whitespace output token.
func (g *greedy) last() token.Kind {
	for i := len(g.out) - 1; i >= 0; i-- {
		if !g.out[i].IsWhitespace() {
			return g.out[i].Kind
		}
	}
	return token.Invalid
}

// atLineStart reports whether nothing but indentation follows the last newline.
func (g *greedy) atLineStart() bool {
	for i := len(g.out) - 1; i >= 0; i-- {
		switch g.out[i].Kind {
		case token.Tab:
			continue
		case token.NewLine:
			return true
		default:
			return false
		}
	}
	return true
}

// trimWhitespace drops trailing Space, Tab and NewLine tokens and recounts the column.
func (g *greedy) trimWhitespace() {
	n := len(g.out)
	for n > 0 && g.out[n-1].IsWhitespace() {
		n--
	}
	g.out = g.out[:n]
	g.col = 0
	for i := n - 1; i >= 0 && g.out[i].Kind != token.NewLine; i-- {
		g.col++
	}
}

func advance(col int, tok token.Token) int {
	if tok.Kind == token.NewLine {
		return 0
	}
	return col + 1
}

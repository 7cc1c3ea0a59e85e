package layout

import (
	"xfmt/internal/doc"
	"xfmt/internal/source"
	"xfmt/internal/token"
)

// Build converts a token sequence into a document tree.
//
// A file is a sequence of statements separated by hard lines. A statement
// runs up to ';', a block, a '}' or the end of input, and is laid out as a
// word fill: atoms stay on one line while they fit and continue on indented
// lines otherwise. Punctuation sticks to the atom before it; a '(' list
// sticks to a preceding word or ')'.
func Build(toks []token.Token, opts Options) (doc.Node, error) {
	b := &builder{d: doc.NewBuilder(), opts: opts}
	b.toks = make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.IsWhitespace() || tok.Kind == token.EOF {
			continue
		}
		b.toks = append(b.toks, tok)
	}

	items, err := b.items(0)
	if err != nil {
		return nil, err
	}
	return doc.Join(doc.HardLine{}, items), nil
}

type builder struct {
	d    *doc.Builder
	opts Options
	toks []token.Token
	pos  int
	prev token.Kind // kind of the last consumed token
}

// atom is one unbreakable piece of a fill.
type atom []doc.Node

func (b *builder) eof() bool { return b.pos >= len(b.toks) }

func (b *builder) peek() token.Token { return b.toks[b.pos] }

func (b *builder) next() token.Token {
	tok := b.toks[b.pos]
	b.pos++
	b.prev = tok.Kind
	return tok
}

// items parses statements until '}' or the end of input. The closing brace is
// left for the caller.
func (b *builder) items(depth int) ([]doc.Node, error) {
	var out []doc.Node
	for !b.eof() {
		if tok := b.peek(); tok.Kind == token.ClosedBrace {
			if depth == 0 {
				return nil, &LayoutError{Kind: ErrUnbalancedBraces, Span: tok.Span, Msg: "'}' without matching '{'"}
			}
			return out, nil
		}
		item, err := b.statement(depth)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (b *builder) statement(depth int) (doc.Node, error) {
	var atoms []atom
	for !b.eof() {
		tok := b.peek()
		switch tok.Kind {
		case token.Semicolon:
			b.next()
			atoms = attach(atoms, ";")
			return b.fill(atoms), nil
		case token.Comma:
			b.next()
			atoms = attach(atoms, ",")
		case token.ClosedBrace:
			return b.fill(atoms), nil
		case token.OpenBrace:
			return b.block(atoms, depth)
		case token.OpenParen:
			glue := b.prev.IsWord() || b.prev == token.ClosedParen
			list, err := b.list(depth)
			if err != nil {
				return nil, err
			}
			if glue && len(atoms) > 0 {
				atoms[len(atoms)-1] = append(atoms[len(atoms)-1], list)
			} else {
				atoms = append(atoms, atom{list})
			}
		case token.ClosedParen:
			return nil, &LayoutError{Kind: ErrUnbalancedParens, Span: tok.Span, Depth: depth, Msg: "')' without matching '('"}
		default:
			text, err := b.word()
			if err != nil {
				return nil, err
			}
			atoms = append(atoms, atom{text})
		}
	}
	return b.fill(atoms), nil
}

// block parses '{' items '}' after the header atoms.
func (b *builder) block(header []atom, depth int) (doc.Node, error) {
	open := b.next()
	body, err := b.items(depth + 1)
	if err != nil {
		return nil, err
	}
	if b.eof() {
		return nil, &LayoutError{Kind: ErrUnbalancedBraces, Span: open.Span, Depth: depth + 1, Msg: "'{' is never closed"}
	}
	b.next()
	closing := "}"
	for !b.eof() {
		k := b.peek().Kind
		if k != token.Semicolon && k != token.Comma {
			break
		}
		closing += b.next().Lexeme()
	}

	if len(body) == 0 {
		return b.fill(attachBrace(header, "{"+closing)), nil
	}
	return doc.Nodes{
		b.fill(attachBrace(header, "{")),
		b.d.Group(
			doc.Indent{doc.HardLine{}, doc.Join(doc.HardLine{}, body)},
			doc.HardLine{},
			doc.Text(closing),
		),
	}, nil
}

// list parses a parenthesised, comma-separated list. Braces and ';' inside
// parentheses are ordinary text. A brace sticks to the atom before it, so a
// '}' never starts a line deeper than its '{'. Braces must balance within
// the list.
func (b *builder) list(depth int) (doc.Node, error) {
	open := b.next()
	var (
		items  []doc.Node
		cur    []atom
		braces []source.Span // unclosed '{' inside the list
		comma  bool          // the last consumed token was a separator
	)
	for {
		if b.eof() {
			return nil, &LayoutError{Kind: ErrUnbalancedParens, Span: open.Span, Depth: depth, Msg: "'(' is never closed"}
		}
		tok := b.peek()
		switch tok.Kind {
		case token.ClosedParen:
			if n := len(braces); n > 0 {
				return nil, &LayoutError{Kind: ErrUnbalancedBraces, Span: braces[n-1], Depth: depth + n, Msg: "'{' is never closed"}
			}
			b.next()
			switch {
			case len(cur) > 0:
				items = append(items, b.fill(cur))
			case comma && !b.opts.TrailingCommas:
				items[len(items)-1] = doc.Nodes{items[len(items)-1], doc.Text(",")}
			}
			return b.d.List("(", ")", items, b.opts.TrailingCommas), nil
		case token.Comma:
			b.next()
			items = append(items, b.fill(cur))
			cur = nil
			comma = true
			continue
		case token.OpenParen:
			glue := b.prev.IsWord() || b.prev == token.ClosedParen
			inner, err := b.list(depth)
			if err != nil {
				return nil, err
			}
			if glue && len(cur) > 0 {
				cur[len(cur)-1] = append(cur[len(cur)-1], inner)
			} else {
				cur = append(cur, atom{inner})
			}
		case token.Semicolon:
			b.next()
			cur = attach(cur, ";")
		case token.OpenBrace:
			b.next()
			braces = append(braces, tok.Span)
			cur = attachBrace(cur, "{")
		case token.ClosedBrace:
			if len(braces) == 0 {
				// '}' закрывает внешний блок: не закрыта '(' внутри него
				if depth > 0 {
					return nil, &LayoutError{Kind: ErrUnbalancedParens, Span: open.Span, Depth: depth, Msg: "'(' is never closed"}
				}
				return nil, &LayoutError{Kind: ErrUnbalancedBraces, Span: tok.Span, Msg: "'}' without matching '{'"}
			}
			empty := b.prev == token.OpenBrace
			b.next()
			braces = braces[:len(braces)-1]
			if empty {
				cur = attach(cur, "}")
			} else {
				cur = attachBrace(cur, "}")
			}
		default:
			text, err := b.word()
			if err != nil {
				return nil, err
			}
			cur = append(cur, atom{text})
		}
		comma = false
	}
}

func (b *builder) word() (doc.Node, error) {
	tok := b.next()
	if !tok.IsWord() {
		return nil, &LayoutError{Kind: ErrUnexpectedToken, Span: tok.Span, Msg: tok.Kind.String()}
	}
	return doc.Text(tok.Text), nil
}

// fill lays atoms out as Group[a0, Indent[Group[SpaceOrLine, a1], ...]].
func (b *builder) fill(atoms []atom) doc.Node {
	if len(atoms) == 0 {
		return doc.Nodes{}
	}
	first := doc.Nodes(atoms[0])
	if len(atoms) == 1 {
		return b.d.Group(first)
	}
	rest := make(doc.Indent, 0, len(atoms)-1)
	for _, a := range atoms[1:] {
		rest = append(rest, b.d.Group(doc.SpaceOrLine{}, doc.Nodes(a)))
	}
	return b.d.Group(first, rest)
}

func attach(atoms []atom, text string) []atom {
	if len(atoms) == 0 {
		return append(atoms, atom{doc.Text(text)})
	}
	atoms[len(atoms)-1] = append(atoms[len(atoms)-1], doc.Text(text))
	return atoms
}

// attachBrace sticks a brace to the last atom with one space before it.
func attachBrace(header []atom, text string) []atom {
	if len(header) == 0 {
		return attach(header, text)
	}
	return attach(header, " "+text)
}

package doc

// Builder hands out group ids. Ids start at 1, grow monotonically and are
// never reused by the same Builder.
type Builder struct {
	last int
}

func NewBuilder() *Builder {
	return &Builder{}
}

// NewID reserves the next group id.
func (b *Builder) NewID() int {
	b.last++
	return b.last
}

// Group creates a group with a fresh id.
func (b *Builder) Group(nodes ...Node) Group {
	return Group{ID: b.NewID(), Nodes: nodes}
}

// List builds a delimited, comma-separated list:
//
//	Group[open, Indent[Line, item, ",", SpaceOrLine, item, IfWrap(","), ], Line, close]
//
// Flat it renders as "(a, b)"; wrapped every item gets its own line.
// With trailingComma the last item is followed by a comma only when wrapped.
// An empty list renders as open+close.
func (b *Builder) List(open, close string, items []Node, trailingComma bool) Node {
	id := b.NewID()
	if len(items) == 0 {
		return Group{ID: id, Nodes: []Node{Text(open + close)}}
	}

	body := make([]Node, 0, 1+len(items)*3)
	body = append(body, Line{})
	for i, item := range items {
		body = append(body, item)
		if i < len(items)-1 {
			body = append(body, Text(","), SpaceOrLine{})
			continue
		}
		if trailingComma {
			body = append(body, IfWrap{ID: id, Node: Text(",")})
		}
	}

	return Group{ID: id, Nodes: []Node{
		Text(open),
		Indent(body),
		Line{},
		Text(close),
	}}
}

// Join interleaves sep between nodes.
func Join(sep Node, nodes []Node) Nodes {
	if len(nodes) == 0 {
		return nil
	}
	out := make(Nodes, 0, len(nodes)*2-1)
	for i, n := range nodes {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, n)
	}
	return out
}

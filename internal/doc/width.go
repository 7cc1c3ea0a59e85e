package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// measure is the flat width of a node. forced is set when the node contains a
// HardLine and therefore can never be laid out flat.
type measure struct {
	width  int
	forced bool
}

func (m measure) add(o measure) measure {
	return measure{width: m.width + o.width, forced: m.forced || o.forced}
}

// TextWidth is the display width of s up to its first newline.
func TextWidth(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return runewidth.StringWidth(s)
}

// Width reports the flat width of n and whether n contains a HardLine.
func Width(n Node) (int, bool) {
	m := (&Generator{}).measure(n)
	return m.width, m.forced
}

func (g *Generator) measure(n Node) measure {
	switch n := n.(type) {
	case nil:
		return measure{}
	case Text:
		return measure{width: TextWidth(string(n))}
	case Line, IfWrap:
		return measure{}
	case SpaceOrLine:
		return measure{width: 1}
	case HardLine:
		return measure{forced: true}
	case Indent:
		return g.measureAll(n)
	case Nodes:
		return g.measureAll(n)
	case Group:
		if g.widths != nil {
			if m, ok := g.widths[n.ID]; ok {
				return m
			}
		}
		m := g.measureAll(n.Nodes)
		if g.widths != nil {
			g.widths[n.ID] = m
		}
		return m
	default:
		return measure{}
	}
}

func (g *Generator) measureAll(nodes []Node) measure {
	var m measure
	for _, child := range nodes {
		m = m.add(g.measure(child))
	}
	return m
}

// lead reports the flat width of n up to its first Line, SpaceOrLine or
// HardLine, and whether n holds one.
func (g *Generator) lead(n Node) (int, bool) {
	switch n := n.(type) {
	case Text:
		return TextWidth(string(n)), strings.IndexByte(string(n), '\n') >= 0
	case Line, SpaceOrLine, HardLine:
		return 0, true
	case IfWrap:
		if g.Wrapped(n.ID) {
			return g.lead(n.Node)
		}
	case Indent:
		return g.leadAll(n)
	case Nodes:
		return g.leadAll(n)
	case Group:
		return g.leadAll(n.Nodes)
	}
	return 0, false
}

func (g *Generator) leadAll(nodes []Node) (int, bool) {
	width := 0
	for _, child := range nodes {
		w, stop := g.lead(child)
		width += w
		if stop {
			return width, true
		}
	}
	return width, false
}

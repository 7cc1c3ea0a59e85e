package doc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	DefaultIndentWidth = 3
	DefaultMaxWidth    = 80
)

// ErrDuplicateGroupID means the same group id was rendered twice in one pass.
var ErrDuplicateGroupID = errors.New("duplicate group id")

// ErrUnknownNode is returned for a Node implementation outside this package.
var ErrUnknownNode = errors.New("unknown document node")

type Options struct {
	IndentWidth int
	MaxWidth    int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	return o
}

type mode uint8

const (
	modeFlat mode = iota
	modeWrapped
)

// Generator renders one document. It is single-use.
type Generator struct {
	opts    Options
	buf     strings.Builder
	col     int
	depth   int
	wrapped map[int]struct{} // memo: группы, решённые как перенесённые
	seen    map[int]struct{}
	widths  map[int]measure

	// отложенные отступ и пробелы: пишутся только перед текстом,
	// поэтому строки никогда не заканчиваются пробелами
	pendingIndent bool
	indentDepth   int
	pendingSpaces int
}

func NewGenerator(opts Options) *Generator {
	return &Generator{
		opts:    opts.withDefaults(),
		wrapped: make(map[int]struct{}),
		seen:    make(map[int]struct{}),
		widths:  make(map[int]measure),
	}
}

// Render lays out root with a fresh Generator.
func Render(root Node, opts Options) (string, error) {
	return NewGenerator(opts).Render(root)
}

// Render lays out root and returns the text. The root itself is rendered in
// wrapped context, so top-level line breaks are real.
func (g *Generator) Render(root Node) (string, error) {
	if err := g.render(root, modeWrapped, 0); err != nil {
		return "", err
	}
	return g.buf.String(), nil
}

// Wrapped reports whether group id was decided wrapped during Render.
func (g *Generator) Wrapped(id int) bool {
	_, ok := g.wrapped[id]
	return ok
}

// render lays out n. trail is the width of the text that follows n up to the
// next possible line break; a group that would push it past MaxWidth wraps.
func (g *Generator) render(n Node, m mode, trail int) error {
	switch n := n.(type) {
	case nil:
		return nil
	case Text:
		g.text(string(n))
	case Line:
		if m == modeWrapped {
			g.newline()
		}
	case SpaceOrLine:
		if m == modeWrapped {
			g.newline()
		} else {
			g.pendingSpaces++
			g.col++
		}
	case HardLine:
		g.newline()
	case Indent:
		if m == modeWrapped {
			g.depth++
			defer func() { g.depth-- }()
		}
		return g.renderAll(n, m, trail)
	case Nodes:
		return g.renderAll(n, m, trail)
	case Group:
		return g.group(n, trail)
	case IfWrap:
		if g.Wrapped(n.ID) {
			return g.render(n.Node, m, trail)
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownNode, n)
	}
	return nil
}

func (g *Generator) renderAll(nodes []Node, m mode, trail int) error {
	// хвост каждого ребёнка: текст соседей справа до первого разрыва
	trails := make([]int, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		trails[i] = trail
		if i == 0 {
			break
		}
		w, stop := g.lead(nodes[i])
		if !stop {
			w += trail
		}
		trail = w
	}
	for i, child := range nodes {
		if err := g.render(child, m, trails[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) group(grp Group, trail int) error {
	if _, dup := g.seen[grp.ID]; dup {
		return fmt.Errorf("%w: %d", ErrDuplicateGroupID, grp.ID)
	}
	g.seen[grp.ID] = struct{}{}

	m := g.measure(grp)
	next := modeFlat
	if m.forced || g.col+m.width+trail > g.opts.MaxWidth {
		g.wrapped[grp.ID] = struct{}{}
		next = modeWrapped
	}
	return g.renderAll(grp.Nodes, next, trail)
}

func (g *Generator) text(s string) {
	if s == "" {
		return
	}
	if g.pendingIndent {
		g.writeIndent()
	}
	for ; g.pendingSpaces > 0; g.pendingSpaces-- {
		g.buf.WriteByte(' ')
	}
	g.buf.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		g.col = runewidth.StringWidth(s[i+1:])
		return
	}
	g.col += runewidth.StringWidth(s)
}

func (g *Generator) newline() {
	g.buf.WriteByte('\n')
	g.pendingSpaces = 0
	g.pendingIndent = true
	g.indentDepth = g.depth
	g.col = g.depth * g.opts.IndentWidth
}

func (g *Generator) writeIndent() {
	if g.opts.UseTabs {
		g.buf.WriteString(strings.Repeat("\t", g.indentDepth))
	} else {
		g.buf.WriteString(strings.Repeat(" ", g.indentDepth*g.opts.IndentWidth))
	}
	g.pendingIndent = false
}

package doc

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump prints the tree one node per line, children indented by two spaces.
func Dump(root Node) string {
	var b strings.Builder
	dump(&b, root, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString(Label(n))
	b.WriteByte('\n')
	for _, child := range Children(n) {
		dump(b, child, level+1)
	}
}

// Label is the one-line description used by Dump and DOT.
func Label(n Node) string {
	switch n := n.(type) {
	case Text:
		return "Text " + strconv.Quote(string(n))
	case Line:
		return "Line"
	case SpaceOrLine:
		return "SpaceOrLine"
	case HardLine:
		return "HardLine"
	case Indent:
		return "Indent"
	case Nodes:
		return "Nodes"
	case Group:
		return fmt.Sprintf("Group #%d", n.ID)
	case IfWrap:
		return fmt.Sprintf("IfWrap #%d", n.ID)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", n)
	}
}

// Children returns the direct children of container nodes.
func Children(n Node) []Node {
	switch n := n.(type) {
	case Indent:
		return n
	case Nodes:
		return n
	case Group:
		return n.Nodes
	case IfWrap:
		return []Node{n.Node}
	default:
		return nil
	}
}

// DOT renders the tree as a Graphviz digraph. Node names are n0, n1, ... in
// pre-order.
func DOT(root Node) string {
	var b strings.Builder
	b.WriteString("digraph doc {\n")
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	next := 0
	var walk func(n Node) int
	walk = func(n Node) int {
		id := next
		next++
		fmt.Fprintf(&b, "  n%d [label=%s];\n", id, strconv.Quote(Label(n)))
		for _, child := range Children(n) {
			cid := walk(child)
			fmt.Fprintf(&b, "  n%d -> n%d;\n", id, cid)
		}
		return id
	}
	walk(root)
	b.WriteString("}\n")
	return b.String()
}

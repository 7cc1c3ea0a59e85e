package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"

	"xfmt/internal/doc"
)

type DocNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ID       int             `json:"id,omitempty"`
	Children []DocNodeOutput `json:"children,omitempty"`
}

// FormatDocPretty prints the document tree with box-drawing connectors.
func FormatDocPretty(w io.Writer, root doc.Node) error {
	if _, err := fmt.Fprintln(w, doc.Label(root)); err != nil {
		return err
	}
	return formatDocChildren(w, doc.Children(root), "")
}

func formatDocChildren(w io.Writer, nodes []doc.Node, prefix string) error {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, doc.Label(n)); err != nil {
			return err
		}
		if err := formatDocChildren(w, doc.Children(n), prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatDocJSON writes the document tree as nested JSON objects.
func FormatDocJSON(w io.Writer, root doc.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(docToJSON(root))
}

func docToJSON(n doc.Node) DocNodeOutput {
	out := DocNodeOutput{}
	switch n := n.(type) {
	case doc.Text:
		out.Type, out.Text = "Text", string(n)
	case doc.Line:
		out.Type = "Line"
	case doc.SpaceOrLine:
		out.Type = "SpaceOrLine"
	case doc.HardLine:
		out.Type = "HardLine"
	case doc.Indent:
		out.Type = "Indent"
	case doc.Nodes:
		out.Type = "Nodes"
	case doc.Group:
		out.Type, out.ID = "Group", n.ID
	case doc.IfWrap:
		out.Type, out.ID = "IfWrap", n.ID
	default:
		out.Type = fmt.Sprintf("%T", n)
	}
	for _, c := range doc.Children(n) {
		out.Children = append(out.Children, docToJSON(c))
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

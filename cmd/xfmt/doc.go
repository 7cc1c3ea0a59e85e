package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xfmt/internal/diagfmt"
	"xfmt/internal/doc"
	"xfmt/internal/driver"
	"xfmt/internal/format"
	"xfmt/internal/source"
)

func newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc [flags] file.x",
		Short: "Dump the layout document built for a source file",
		Long: `Doc prints the document tree the doc strategy renders: groups, lines,
indentation and text. Use --format dot or svg to get a graph.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: runDoc,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|dot|svg)")
	addFormatFlags(cmd)
	return cmd
}

func runDoc(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch outFormat {
	case "tree", "json", "dot", "svg":
	default:
		return usageErrorf("doc: unknown format %q (expected tree|json|dot|svg)", outFormat)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return &driver.IOError{Op: "read", Path: path, Err: err}
	}
	sf := fs.Get(id)

	root, err := format.Document(sf, cfg.FormatOptions())
	if err != nil {
		opts, optsErr := prettyOpts(cmd, cmd.ErrOrStderr())
		if optsErr != nil {
			return optsErr
		}
		diagfmt.PrettyDiagnostic(cmd.ErrOrStderr(), format.Diagnose(err, sf), fs, opts)
		return silentExit(exitFailure)
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "json":
		return diagfmt.FormatDocJSON(out, root)
	case "dot":
		_, err = fmt.Fprint(out, doc.DOT(root))
		return err
	case "svg":
		svg, err := diagfmt.RenderSVG(cmd.Context(), doc.DOT(root))
		if err != nil {
			return err
		}
		_, err = out.Write(svg)
		return err
	default:
		return diagfmt.FormatDocPretty(out, root)
	}
}

package format

import (
	"fmt"
	"slices"
	"strings"

	"xfmt/internal/doc"
	"xfmt/internal/layout"
	"xfmt/internal/token"
)

// Strategy selects the layout engine.
type Strategy string

const (
	// StrategyDoc is the document-model pretty printer.
	StrategyDoc Strategy = "doc"
	// StrategyGreedy is token-stream rewriting with a column counter.
	StrategyGreedy Strategy = "greedy"
)

// ParseStrategy accepts "doc" or "greedy", case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "doc":
		return StrategyDoc, nil
	case "greedy":
		return StrategyGreedy, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want doc or greedy)", s)
	}
}

type Options struct {
	Strategy    Strategy
	IndentWidth int
	// MaxWidth 0 picks the strategy default: 80 for doc, 14 for greedy.
	MaxWidth         int
	UseTabs          bool
	TrailingCommas   bool
	FinalNewline     bool
	NormalizeUnicode bool
	MaxTokenLength   int
	Keywords         token.KeywordTable
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Strategy:     StrategyDoc,
		IndentWidth:  doc.DefaultIndentWidth,
		FinalNewline: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = StrategyDoc
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = doc.DefaultIndentWidth
	}
	return o
}

// Validate rejects values no layout can honour.
func (o Options) Validate() error {
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if o.IndentWidth < 0 {
		return fmt.Errorf("indent width must be positive, got %d", o.IndentWidth)
	}
	if o.MaxWidth < 0 {
		return fmt.Errorf("max width must be positive, got %d", o.MaxWidth)
	}
	if o.MaxTokenLength < 0 {
		return fmt.Errorf("max token length must not be negative, got %d", o.MaxTokenLength)
	}
	return nil
}

// Fingerprint is a stable description of every option that affects output.
func (o Options) Fingerprint() string {
	o = o.withDefaults()
	kw := make([]string, 0, len(o.Keywords))
	for w := range o.Keywords {
		kw = append(kw, w)
	}
	slices.Sort(kw)
	return fmt.Sprintf("s=%s;i=%d;w=%d;t=%t;c=%t;n=%t;u=%t;l=%d;k=%s",
		o.Strategy, o.IndentWidth, o.MaxWidth, o.UseTabs, o.TrailingCommas,
		o.FinalNewline, o.NormalizeUnicode, o.MaxTokenLength, strings.Join(kw, ","))
}

func (o Options) layoutOptions() layout.Options {
	return layout.Options{
		MaxWidth:       o.MaxWidth,
		TrailingCommas: o.TrailingCommas,
	}
}

func (o Options) docOptions() doc.Options {
	return doc.Options{
		IndentWidth: o.IndentWidth,
		MaxWidth:    o.MaxWidth,
		UseTabs:     o.UseTabs,
	}
}

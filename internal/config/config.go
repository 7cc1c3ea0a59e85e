// Package config loads formatter settings from xfmt.toml or xfmt.yaml,
// overlaid with XFMT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"xfmt/internal/format"
	"xfmt/internal/token"
)

var (
	// ErrInvalidValue: a setting is out of range.
	ErrInvalidValue = errors.New("invalid configuration value")
	// ErrUnknownFormat: the config file extension is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown configuration file format")
)

// Config is the merged result of defaults, file and environment.
type Config struct {
	Strategy         string   `toml:"strategy" yaml:"strategy" env:"XFMT_STRATEGY"`
	IndentWidth      int      `toml:"indent_width" yaml:"indent_width" env:"XFMT_INDENT_WIDTH"`
	MaxWidth         int      `toml:"max_width" yaml:"max_width" env:"XFMT_MAX_WIDTH"`
	UseTabs          bool     `toml:"use_tabs" yaml:"use_tabs" env:"XFMT_USE_TABS"`
	TrailingCommas   bool     `toml:"trailing_commas" yaml:"trailing_commas" env:"XFMT_TRAILING_COMMAS"`
	FinalNewline     bool     `toml:"final_newline" yaml:"final_newline" env:"XFMT_FINAL_NEWLINE"`
	NormalizeUnicode bool     `toml:"normalize_unicode" yaml:"normalize_unicode" env:"XFMT_NORMALIZE_UNICODE"`
	MaxTokenLength   int      `toml:"max_token_length" yaml:"max_token_length" env:"XFMT_MAX_TOKEN_LENGTH"`
	Keywords         []string `toml:"keywords" yaml:"keywords" env:"XFMT_KEYWORDS" envSeparator:","`

	Extensions []string `toml:"extensions" yaml:"extensions" env:"XFMT_EXTENSIONS" envSeparator:","`
	Exclude    []string `toml:"exclude" yaml:"exclude" env:"XFMT_EXCLUDE" envSeparator:","`
	Jobs       int      `toml:"jobs" yaml:"jobs" env:"XFMT_JOBS"`
	Cache      bool     `toml:"cache" yaml:"cache" env:"XFMT_CACHE"`
	CacheDir   string   `toml:"cache_dir" yaml:"cache_dir" env:"XFMT_CACHE_DIR"`

	// Path is the file the settings came from, empty when none was found.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	opt := format.DefaultOptions()
	return &Config{
		Strategy:     string(opt.Strategy),
		IndentWidth:  opt.IndentWidth,
		FinalNewline: opt.FinalNewline,
		Extensions:   []string{".x"},
		Jobs:         runtime.GOMAXPROCS(0),
	}
}

// Validate rejects settings no formatter run can honour.
func (c *Config) Validate() error {
	if _, err := format.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: strategy: %w", ErrInvalidValue, err)
	}
	if c.IndentWidth <= 0 {
		return fmt.Errorf("%w: indent_width must be positive, got %d", ErrInvalidValue, c.IndentWidth)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("%w: max_width must be positive or 0 for the strategy default, got %d", ErrInvalidValue, c.MaxWidth)
	}
	if c.MaxTokenLength < 0 {
		return fmt.Errorf("%w: max_token_length must not be negative, got %d", ErrInvalidValue, c.MaxTokenLength)
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("%w: jobs must be positive, got %d", ErrInvalidValue, c.Jobs)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions must not be empty", ErrInvalidValue)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with '.'", ErrInvalidValue, ext)
		}
	}
	return nil
}

// FormatOptions converts the settings for the format pipeline.
// The strategy is assumed valid; call Validate first.
func (c *Config) FormatOptions() format.Options {
	strategy, err := format.ParseStrategy(c.Strategy)
	if err != nil {
		strategy = format.StrategyDoc
	}
	var kw token.KeywordTable
	if len(c.Keywords) > 0 {
		kw = token.NewKeywordTable(c.Keywords...)
	}
	return format.Options{
		Strategy:         strategy,
		IndentWidth:      c.IndentWidth,
		MaxWidth:         c.MaxWidth,
		UseTabs:          c.UseTabs,
		TrailingCommas:   c.TrailingCommas,
		FinalNewline:     c.FinalNewline,
		NormalizeUnicode: c.NormalizeUnicode,
		MaxTokenLength:   c.MaxTokenLength,
		Keywords:         kw,
	}
}

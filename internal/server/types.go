package server

import (
	"fmt"

	"xfmt/internal/format"
)

type ReqFormat struct {
	Source  string      `json:"source"`
	Options *ReqOptions `json:"options,omitempty"`
}

// ReqOptions overrides the server defaults field by field; nil keeps the default.
type ReqOptions struct {
	Strategy         string `json:"strategy,omitempty"`
	IndentWidth      *int   `json:"indent_width,omitempty"`
	MaxWidth         *int   `json:"max_width,omitempty"`
	UseTabs          *bool  `json:"use_tabs,omitempty"`
	TrailingCommas   *bool  `json:"trailing_commas,omitempty"`
	FinalNewline     *bool  `json:"final_newline,omitempty"`
	NormalizeUnicode *bool  `json:"normalize_unicode,omitempty"`
}

type ResFormat struct {
	Formatted string `json:"formatted"`
	Changed   bool   `json:"changed"`
}

type ResError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Line  uint32 `json:"line,omitempty"`
	Col   uint32 `json:"col,omitempty"`
}

// ToFormat applies the request overrides on top of base.
func (o *ReqOptions) ToFormat(base format.Options) (format.Options, error) {
	opt := base
	if o == nil {
		return opt, nil
	}
	if o.Strategy != "" {
		s, err := format.ParseStrategy(o.Strategy)
		if err != nil {
			return opt, err
		}
		opt.Strategy = s
	}
	setInt(&opt.IndentWidth, o.IndentWidth)
	setInt(&opt.MaxWidth, o.MaxWidth)
	setBool(&opt.UseTabs, o.UseTabs)
	setBool(&opt.TrailingCommas, o.TrailingCommas)
	setBool(&opt.FinalNewline, o.FinalNewline)
	setBool(&opt.NormalizeUnicode, o.NormalizeUnicode)
	if err := opt.Validate(); err != nil {
		return opt, fmt.Errorf("options: %w", err)
	}
	return opt, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

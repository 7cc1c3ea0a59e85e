package lsp

import (
	"encoding/json"

	"xfmt/internal/format"
	"xfmt/internal/token"
)

// xfmtSettings is the "xfmt" section of the editor configuration.
// Absent keys keep the current value.
type xfmtSettings struct {
	Strategy       *string  `json:"strategy,omitempty"`
	IndentWidth    *int     `json:"indentWidth,omitempty"`
	MaxWidth       *int     `json:"maxWidth,omitempty"`
	UseTabs        *bool    `json:"useTabs,omitempty"`
	TrailingCommas *bool    `json:"trailingCommas,omitempty"`
	FinalNewline   *bool    `json:"finalNewline,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}

type lspSettings struct {
	Xfmt *xfmtSettings `json:"xfmt,omitempty"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if len(msg.Params) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.ignoreBadParams(msg, err)
	}
	if s.applySettings(params.Settings) {
		s.diagnoseAll()
	}
	return nil
}

// applySettings accepts either {"xfmt": {...}} or the bare section, as
// clients differ. Invalid combinations are logged and dropped whole.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var wrapped lspSettings
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		s.logger.Warn("lsp: ignoring settings", "err", err)
		return false
	}
	section := wrapped.Xfmt
	if section == nil {
		section = &xfmtSettings{}
		if err := json.Unmarshal(raw, section); err != nil {
			s.logger.Warn("lsp: ignoring settings", "err", err)
			return false
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := section.apply(s.opt)
	if err != nil {
		s.logger.Warn("lsp: ignoring settings", "err", err)
		return false
	}
	s.opt = next
	s.logger.Debug("lsp: settings applied", "fingerprint", next.Fingerprint())
	return true
}

func (c *xfmtSettings) apply(opt format.Options) (format.Options, error) {
	if c.Strategy != nil {
		st, err := format.ParseStrategy(*c.Strategy)
		if err != nil {
			return opt, err
		}
		opt.Strategy = st
	}
	if c.IndentWidth != nil {
		opt.IndentWidth = *c.IndentWidth
	}
	if c.MaxWidth != nil {
		opt.MaxWidth = *c.MaxWidth
	}
	if c.UseTabs != nil {
		opt.UseTabs = *c.UseTabs
	}
	if c.TrailingCommas != nil {
		opt.TrailingCommas = *c.TrailingCommas
	}
	if c.FinalNewline != nil {
		opt.FinalNewline = *c.FinalNewline
	}
	if c.Keywords != nil {
		opt.Keywords = token.NewKeywordTable(c.Keywords...)
	}
	return opt, opt.Validate()
}

package lsp

import (
	"encoding/json"

	"xfmt/internal/format"
)

// handleFormatting answers with one edit replacing the whole document, no
// edits when it is already formatted, and null when it cannot be formatted
// (the diagnostic explains why).
func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, _, opt, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	// tabSize is not honoured: indent width is a project setting
	if !params.Options.InsertSpaces {
		opt.UseTabs = true
	}

	edits, err := formatEdits(text, opt)
	if err != nil {
		s.logger.Debug("lsp: formatting failed", "uri", params.TextDocument.URI, "err", err)
		s.scheduleDiagnostics(params.TextDocument.URI)
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, edits)
}

func formatEdits(text string, opt format.Options) ([]textEdit, error) {
	out, err := format.Format([]byte(text), opt)
	if err != nil {
		return nil, err
	}
	if string(out) == text {
		return []textEdit{}, nil
	}
	return []textEdit{{
		Range:   lspRange{End: endPosition(text)},
		NewText: string(out),
	}}, nil
}

package lsp

import (
	"time"

	"xfmt/internal/diag"
	"xfmt/internal/format"
	"xfmt/internal/source"
)

// scheduleDiagnostics (re)arms the debounce timer of uri.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri)
	})
}

// runDiagnostics formats the current text of uri and publishes the error,
// if any. Stale runs publish for the version they saw; the next run
// replaces them.
func (s *Server) runDiagnostics(uri string) {
	text, version, opt, ok := s.snapshot(uri)
	if !ok {
		return
	}
	list := diagnoseText(uri, text, opt)

	s.mu.Lock()
	if _, open := s.docs[uri]; !open {
		s.mu.Unlock()
		return
	}
	_, had := s.published[uri]
	if len(list) > 0 {
		s.published[uri] = struct{}{}
	} else {
		delete(s.published, uri)
	}
	s.mu.Unlock()

	if len(list) == 0 && !had {
		return
	}
	if err := s.sendPublish(uri, &version, list); err != nil {
		s.logger.Warn("lsp: failed to publish diagnostics", "uri", uri, "err", err)
		return
	}
	s.logger.Debug("lsp: published diagnostics", "uri", uri, "version", version, "count", len(list))
}

// diagnoseAll re-checks every open document, e.g. after a settings change.
func (s *Server) diagnoseAll() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		s.scheduleDiagnostics(uri)
	}
}

// diagnoseText runs the formatter and turns its error into LSP form.
// Formatting stops at the first error, so there is at most one.
func diagnoseText(uri, text string, opt format.Options) []lspDiagnostic {
	fs := source.NewFileSet()
	name := uriToPath(uri)
	if name == "" {
		name = uri
	}
	sf := fs.Get(fs.AddVirtual(name, []byte(text)))
	_, err := format.FormatFile(sf, opt)
	if err == nil {
		return nil
	}
	d := format.Diagnose(err, sf)
	return []lspDiagnostic{{
		Range:    rangeForSpan(sf, d.Primary),
		Severity: lspSeverity(d.Severity),
		Code:     d.Code.ID(),
		Source:   "xfmt",
		Message:  d.Message,
	}}
}

func lspSeverity(sev diag.Severity) int {
	switch {
	case sev >= diag.SevError:
		return 1
	case sev >= diag.SevWarning:
		return 2
	default:
		return 3
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for uri := range prev {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logger.Warn("lsp: failed to clear diagnostics", "uri", uri, "err", err)
		}
	}
}

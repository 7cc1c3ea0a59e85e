package driver

import (
	"encoding/json"
	"fmt"

	"xfmt/internal/diag"
	"xfmt/internal/observ"
	"xfmt/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// TimingDiagnostic wraps a phase report into an informational diagnostic.
// The JSON payload rides in the single note.
func TimingDiagnostic(path string, r observ.Report) diag.Diagnostic {
	payload := timingPayload{Kind: "file", Path: path, TotalMS: r.TotalMS, Phases: r.Phases}
	if path == "" {
		payload.Kind = "run"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if path != "" {
		msg += ", " + path
	}

	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg)
	data, err := json.Marshal(payload)
	if err != nil {
		return d
	}
	return d.WithNote(source.Span{}, string(data))
}

// RunTimings merges per-file reports of a run.
func RunTimings(results []FormatResult) (observ.Report, bool) {
	var total observ.Report
	found := false
	for _, r := range results {
		if r.Timing == nil {
			continue
		}
		total = total.Merge(*r.Timing)
		found = true
	}
	return total, found
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"xfmt/internal/format"
	"xfmt/internal/source"
)

// MaxBodyBytes caps the request body.
const MaxBodyBytes = 4 << 20

// HandleFormat formats the posted source with the server defaults
// overridden by the request options.
func HandleFormat(logger *log.Logger, base format.Options) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, http.StatusBadRequest, ResError{Error: err.Error()})
			return
		}

		var req ReqFormat
		dec := json.NewDecoder(http.MaxBytesReader(rw, r.Body, MaxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			handleError(rw, logger, status, ResError{Error: err.Error()})
			return
		}

		opt, err := req.Options.ToFormat(base)
		if err != nil {
			handleError(rw, logger, http.StatusBadRequest, ResError{Error: err.Error()})
			return
		}

		fs := source.NewFileSet()
		sf := fs.Get(fs.AddVirtual(format.VirtualPath, []byte(req.Source)))
		out, err := format.FormatFile(sf, opt)
		if err != nil {
			d := format.Diagnose(err, sf)
			start, _ := sf.Resolve(d.Primary)
			handleError(rw, logger, http.StatusBadRequest, ResError{
				Error: d.Message,
				Code:  d.Code.ID(),
				Line:  start.Line,
				Col:   start.Col,
			})
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResFormat{
			Formatted: string(out),
			Changed:   string(out) != req.Source,
		})
	}
}

func HandleHealthReady() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	}
}

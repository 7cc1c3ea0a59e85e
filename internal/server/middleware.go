package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	gorilla "github.com/gorilla/handlers"
)

var errEmptyBody = errors.New("empty body")

func UseLogging(out io.Writer, h http.Handler) http.Handler {
	return gorilla.CombinedLoggingHandler(out, h)
}

func UseCompress(h http.Handler) http.Handler {
	return gorilla.CompressHandler(h)
}

func UseJson(h http.Handler) http.Handler {
	// only PUT, POST and PATCH are checked
	return gorilla.ContentTypeHandler(h, "application/json")
}

// handleError logs err and answers with a JSON error body.
func handleError(rw http.ResponseWriter, logger *log.Logger, status int, res ResError) {
	if logger != nil {
		logger.Debug("request failed", "status", status, "error", res.Error, "code", res.Code)
	}
	handleJsonResponse(rw, status, res)
}

func handleJsonResponse(rw http.ResponseWriter, status int, res any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(res)
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errEmptyBody
	}
	return nil
}

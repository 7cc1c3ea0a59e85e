package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"xfmt/internal/format"
)

func NewRouter(logger *log.Logger, base format.Options) http.Handler {
	r := mux.NewRouter()

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/health/ready", HandleHealthReady()).Methods(http.MethodGet)
	v1.HandleFunc("/format", HandleFormat(logger, base)).Methods(http.MethodPost)

	access := logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
	h := UseLogging(access.Writer(), r)
	h = UseCompress(h)
	h = UseJson(h)
	return h
}

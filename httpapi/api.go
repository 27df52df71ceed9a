// Package httpapi exposes a read-only JSON introspection surface over a
// command registry and an assistant's live status (spec §4.12,
// component C12). It carries no command-dispatch authority; it only
// renders snapshots.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/asticode/go-astilog"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// apiError is the JSON error envelope, mirroring the teacher's
// APIWriteError/APIError pair (api.go).
type apiError struct {
	Message string `json:"message"`
}

// APIWriteError writes a JSON error envelope and logs err via astilog,
// the teacher's own helper's exact shape (api.go).
func APIWriteError(rw http.ResponseWriter, code int, err error) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	astilog.Error(err)
	if encErr := json.NewEncoder(rw).Encode(apiError{Message: err.Error()}); encErr != nil {
		astilog.Error(errors.Wrap(encErr, "httpapi: marshaling error response failed"))
	}
}

// APIWriteData writes data as a JSON response body.
func APIWriteData(rw http.ResponseWriter, data interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(data); err != nil {
		APIWriteError(rw, http.StatusInternalServerError, errors.Wrap(err, "httpapi: json encoding failed"))
		return
	}
}

// Router returns an httprouter.Router with every route in this package
// registered against h.
func Router(h *Handler) *httprouter.Router {
	r := httprouter.New()
	r.GET("/commands", h.GetCommands)
	r.GET("/status", h.GetStatus)
	return r
}

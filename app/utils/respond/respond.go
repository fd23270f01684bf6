// Package respond reads JSON request bodies and writes JSON error bodies.
package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gsk-limited/storefront/app/services"
	"github.com/unrolled/render"
)

const InternalServerError = "Internal Server Error"

type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error maps err onto a status code and writes {error, fields?}. Unknown
// errors are logged under op and reported with a generic message.
func Error(rdr *render.Render, w http.ResponseWriter, op string, err error) {
	var verr *services.ValidationError
	var serr *services.Error

	switch {
	case errors.As(err, &verr):
		_ = rdr.JSON(w, http.StatusBadRequest, ErrorBody{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, services.ErrInvalidCredentials):
		_ = rdr.JSON(w, http.StatusUnauthorized, ErrorBody{Error: err.Error()})
	case errors.As(err, &serr):
		_ = rdr.JSON(w, statusFor(serr.Kind), ErrorBody{Error: serr.Message})
	default:
		log.Printf("%s: %v", op, err)
		_ = rdr.JSON(w, http.StatusInternalServerError, ErrorBody{Error: InternalServerError})
	}
}

func statusFor(kind error) int {
	switch kind {
	case services.ErrNotFound:
		return http.StatusNotFound
	case services.ErrConflict:
		return http.StatusConflict
	case services.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Message(rdr *render.Render, w http.ResponseWriter, status int, msg string) {
	_ = rdr.JSON(w, status, ErrorBody{Error: msg})
}

// DecodeJSON reads a JSON body of at most 1MB into dst. Malformed bodies
// come back as a validation error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &services.ValidationError{Fields: map[string]string{"body": "Request body must be valid JSON."}}
	}
	return nil
}

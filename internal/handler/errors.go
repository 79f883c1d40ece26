package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/knorii/tabiplan/internal/domain"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error onto the wire: 404 for missing resources,
// 422 for validation failures, 409 for the last-trip rule, 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrLastTrip):
		writeJSON(w, http.StatusConflict, errorResponse{errorDetail{Code: "last_trip", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrCorruptDocument):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "corrupt_document", Message: unwrapMessage(err)}})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{Code: "internal", Message: "internal server error"}})
	}
}

// writeRequestError rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required"
// → "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrNotFound.Error() + ": ",
		domain.ErrLastTrip.Error() + ": ",
		domain.ErrCorruptDocument.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	// No detail past the sentinel; strip the call-site prefixes instead.
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck — the status line is already gone; nothing to do.
		json.NewEncoder(w).Encode(v)
	}
}

// decodeBody parses the request body into v. A nil or malformed body is a
// request error, reported by the caller via writeRequestError.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("malformed request body")
	}
	return nil
}

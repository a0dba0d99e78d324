package handler

import (
	"net/http"
	"strings"
)

// ErrorResponse is the JSON body returned for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeNotFound writes a 404. The caller supplies the human-readable message
// (e.g. "trip not found") because the handler is the layer that knows what
// was being looked up.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{Code: "not_found", Message: message},
	})
}

// writeValidation writes a 422 for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func writeValidation(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
	})
}

// writeBadRequest writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// writeInternal writes a generic 500. Store failures and corrupted state are
// not display-safe, so no detail from the error leaks into the body.
func writeInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, "validation error: "); ok {
		return rest
	}
	return msg
}

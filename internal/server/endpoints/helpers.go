package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackzampolin/minutes/internal/extraction"
)

var (
	// errInvalidForm marks requests with missing or malformed form fields.
	errInvalidForm = errors.New("invalid form")

	// errNotConfigured is returned for well-formed transform requests while
	// no provider is configured.
	errNotConfigured = errors.New("extraction is not configured: set an API key and model")
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusFor maps a transform failure to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidForm), extraction.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, errNotConfigured),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case extraction.IsProviderError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

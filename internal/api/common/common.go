package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clevercanary/atlas-sync/internal/refresh"
)

// RetryAfterSeconds is the Retry-After value sent while mirrors are not ready
const RetryAfterSeconds = 30

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSONResponse writes a JSON response with the given data
func WriteJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteErrorResponse writes a standardized error response
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONResponse(w, ErrorResponse{Error: message}, statusCode)
}

// WriteServiceError writes err as a "try again shortly" response when it
// comes from a mirror without data, and as an internal error otherwise
func WriteServiceError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, refresh.ErrNotReady) {
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
		WriteErrorResponse(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	WriteErrorResponse(w, message, http.StatusInternalServerError)
}

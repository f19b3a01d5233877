package rest

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/services"
)

const (
	errCodeInvalidInput        = "INVALID_INPUT"
	errCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	errCodeQueueFull           = "QUEUE_FULL"
	errCodeInternal            = "INTERNAL"
)

// maxBodyBytes bounds decoded request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("WARN rest: failed to encode response (status %d): %v", status, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidInput)
	case errors.Is(err, services.ErrProviderUnavailable):
		writeErrorWithCode(w, http.StatusServiceUnavailable, err.Error(), errCodeProviderUnavailable)
	default:
		log.Printf("WARN rest: request failed: %v", err)
		writeErrorWithCode(w, http.StatusInternalServerError, err.Error(), errCodeInternal)
	}
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeJSON checks the content type and decodes the body into dst. It writes
// the error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, "Invalid request body", errCodeInvalidInput)
		return false
	}
	return true
}

package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/worker"
)

type syncResponse struct {
	JobID  string `json:"jobId"`
	UserID string `json:"userId"`
}

// RecordListening handles POST /users/{id}/listening
func (h *Handler) RecordListening(w http.ResponseWriter, r *http.Request) {
	var point domain.TimeSeriesPoint
	if !decodeJSON(w, r, &point) {
		return
	}
	if err := h.svc.RecordListening(r.Context(), r.PathValue("id"), point); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, point)
}

// ListeningStability handles GET /users/{id}/listening/stability
func (h *Handler) ListeningStability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	window, ok := intParam(w, query.Get("window"), "window")
	if !ok {
		return
	}
	trend, ok := intParam(w, query.Get("trend"), "trend")
	if !ok {
		return
	}

	report, err := h.svc.ListeningStability(r.Context(), r.PathValue("id"), query.Get("date"), window, trend)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// SyncListening handles POST /users/{id}/listening/sync
func (h *Handler) SyncListening(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		writeErrorWithCode(w, http.StatusBadRequest, "user id is required", errCodeInvalidInput)
		return
	}
	if h.jobs == nil {
		writeErrorWithCode(w, http.StatusServiceUnavailable, "listening sync is not configured", errCodeProviderUnavailable)
		return
	}

	job, err := h.jobs.Submit(userID)
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrStopped) {
			writeErrorWithCode(w, http.StatusServiceUnavailable, err.Error(), errCodeQueueFull)
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, syncResponse{JobID: job.ID, UserID: job.UserID})
}

// intParam parses an optional non-negative integer query parameter. Zero means
// the service default.
func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeErrorWithCode(w, http.StatusBadRequest, name+" must be a non-negative integer", errCodeInvalidInput)
		return 0, false
	}
	return n, true
}

package rest

import (
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

type screenTimeRequest struct {
	Seconds float64 `json:"seconds"`
}

type screenTimeResponse struct {
	UserID        string `json:"userId"`
	ActiveSeconds int64  `json:"activeSeconds"`
}

// RecordEmotion handles POST /users/{id}/emotions
func (h *Handler) RecordEmotion(w http.ResponseWriter, r *http.Request) {
	var sample domain.EmotionSample
	if !decodeJSON(w, r, &sample) {
		return
	}
	saved, err := h.svc.RecordEmotion(r.Context(), r.PathValue("id"), sample)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// EmotionStability handles GET /users/{id}/emotions/stability
func (h *Handler) EmotionStability(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.EmotionStability(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Wellbeing handles GET /users/{id}/wellbeing?activeSeconds=N
func (h *Handler) Wellbeing(w http.ResponseWriter, r *http.Request) {
	var active *float64
	if raw := r.URL.Query().Get("activeSeconds"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeErrorWithCode(w, http.StatusBadRequest, "activeSeconds must be a number", errCodeInvalidInput)
			return
		}
		active = &v
	}

	indicator, err := h.svc.Wellbeing(r.Context(), r.PathValue("id"), active)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, indicator)
}

// RecordScreenTime handles POST /users/{id}/screentime
func (h *Handler) RecordScreenTime(w http.ResponseWriter, r *http.Request) {
	var req screenTimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := r.PathValue("id")
	total, err := h.svc.RecordScreenTime(r.Context(), userID, req.Seconds)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, screenTimeResponse{UserID: userID, ActiveSeconds: total})
}

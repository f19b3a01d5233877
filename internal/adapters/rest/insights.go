package rest

import (
	"net/http"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/services"
)

type classifyRequest struct {
	Tracks []domain.Track `json:"tracks"`
}

type journalRequest struct {
	Content string `json:"content"`
}

type journalResponse struct {
	Mood domain.JournalMood `json:"mood"`
}

// ClassifyTracks handles POST /tracks/classify
func (h *Handler) ClassifyTracks(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Tracks) == 0 {
		writeErrorWithCode(w, http.StatusBadRequest, "tracks are required", errCodeInvalidInput)
		return
	}

	report, err := h.svc.ClassifyTracks(r.Context(), req.Tracks)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// AnalyzeJournal handles POST /journal/analyze
func (h *Handler) AnalyzeJournal(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	mood, err := h.svc.AnalyzeJournal(r.Context(), req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, journalResponse{Mood: mood})
}

// Categories handles POST /insights/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	var req services.CategoryInput
	if !decodeJSON(w, r, &req) {
		return
	}
	report, err := h.svc.Categories(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

package rest

import (
	"net/http"

	"github.com/ewilliams-labs/cognia/internal/core/services"
	"github.com/ewilliams-labs/cognia/internal/worker"
)

// SyncQueue accepts background listening syncs.
type SyncQueue interface {
	Submit(userID string) (worker.Job, error)
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Insights
	jobs   SyncQueue // nil when no listening provider is configured
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Insights, jobs SyncQueue) *Handler {
	h := &Handler{
		svc:    svc,
		jobs:   jobs,
		router: http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Listening time series
	h.router.HandleFunc("POST /users/{id}/listening", h.RecordListening)
	h.router.HandleFunc("GET /users/{id}/listening/stability", h.ListeningStability)
	h.router.HandleFunc("POST /users/{id}/listening/sync", h.SyncListening)

	// Emotions and wellbeing
	h.router.HandleFunc("POST /users/{id}/emotions", h.RecordEmotion)
	h.router.HandleFunc("GET /users/{id}/emotions/stability", h.EmotionStability)
	h.router.HandleFunc("GET /users/{id}/wellbeing", h.Wellbeing)
	h.router.HandleFunc("POST /users/{id}/screentime", h.RecordScreenTime)

	h.router.HandleFunc("POST /tracks/classify", h.ClassifyTracks)
	h.router.HandleFunc("POST /journal/analyze", h.AnalyzeJournal)
	h.router.HandleFunc("POST /insights/categories", h.Categories)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Cognia is live"})
}

package rest

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ewilliams-labs/cognia/internal/adapters/sqlite"
	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
	"github.com/ewilliams-labs/cognia/internal/core/services"
	"github.com/ewilliams-labs/cognia/internal/worker"
)

// --- Mocks ---

// The handler depends on the concrete *services.Insights, so tests build a
// real service over an in-memory store and mock only the outer collaborators.

var fixedNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

type mockQueue struct {
	err       error
	submitted []string
}

func (m *mockQueue) Submit(userID string) (worker.Job, error) {
	if m.err != nil {
		return worker.Job{}, m.err
	}
	m.submitted = append(m.submitted, userID)
	return worker.Job{ID: "job-1", UserID: userID, EnqueuedAt: fixedNow}, nil
}

type mockJournal struct {
	mood domain.JournalMood
	err  error
}

func (m *mockJournal) AnalyzeJournal(ctx context.Context, content string) (domain.JournalMood, error) {
	return m.mood, m.err
}

type fixture struct {
	store *sqlite.Adapter
	svc   *services.Insights
}

func newFixture(t *testing.T, journal *mockJournal) fixture {
	t.Helper()
	store, err := sqlite.NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var analyzer ports.JournalAnalyzer
	if journal != nil {
		analyzer = journal
	}
	svc := services.NewInsights(store, nil, nil, analyzer, nil, services.WithClock(func() time.Time { return fixedNow }))
	return fixture{store: store, svc: svc}
}

type request struct {
	method      string
	path        string
	body        string
	contentType string
}

func serve(h http.Handler, req request) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if req.body != "" {
		body = bytes.NewBufferString(req.body)
	} else {
		body = &bytes.Buffer{}
	}
	r := httptest.NewRequest(req.method, req.path, body)
	if req.method == http.MethodPost {
		ct := req.contentType
		if ct == "" {
			ct = "application/json"
		}
		r.Header.Set("Content-Type", ct)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func assertResponse(t *testing.T, rec *httptest.ResponseRecorder, status int, contains string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("expected status %d, got %d, body: %s", status, rec.Code, strings.TrimSpace(rec.Body.String()))
	}
	if contains != "" && !strings.Contains(rec.Body.String(), contains) {
		t.Errorf("expected body to contain %q, got %q", contains, rec.Body.String())
	}
}

// --- Tests ---

func TestHandler_HealthCheck(t *testing.T) {
	f := newFixture(t, nil)
	h := NewHandler(f.svc, nil)

	rec := serve(h, request{method: http.MethodGet, path: "/health"})
	assertResponse(t, rec, http.StatusOK, `"status":"ok"`)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}

func TestHandler_RecordListening(t *testing.T) {
	tests := []struct {
		name           string
		req            request
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success: stores point",
			req:            request{method: http.MethodPost, path: "/users/u1/listening", body: `{"date":"2024-03-10","totalDurationMinutes":95}`},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"totalDurationMinutes":95`,
		},
		{
			name:           "Bad Request: negative duration",
			req:            request{method: http.MethodPost, path: "/users/u1/listening", body: `{"date":"2024-03-10","totalDurationMinutes":-1}`},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"INVALID_INPUT"`,
		},
		{
			name:           "Bad Request: malformed json",
			req:            request{method: http.MethodPost, path: "/users/u1/listening", body: `{invalid-json`},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
		{
			name:           "Unsupported Media Type: plain text",
			req:            request{method: http.MethodPost, path: "/users/u1/listening", body: `{}`, contentType: "text/plain"},
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   "Content-Type must be application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			h := NewHandler(f.svc, nil)
			assertResponse(t, serve(h, tt.req), tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestHandler_RecordListening_ClosedDay(t *testing.T) {
	f := newFixture(t, nil)
	h := NewHandler(f.svc, nil)
	req := request{method: http.MethodPost, path: "/users/u1/listening", body: `{"date":"2024-03-01","totalDurationMinutes":40}`}

	assertResponse(t, serve(h, req), http.StatusCreated, "")
	assertResponse(t, serve(h, req), http.StatusBadRequest, "closed day")
}

func TestHandler_ListeningStability(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for i := 1; i <= 14; i++ {
		day := domain.Day(fixedNow.AddDate(0, 0, -i))
		if _, err := f.store.SavePoint(ctx, "u1", domain.StoredPoint{TimeSeriesPoint: domain.TimeSeriesPoint{Date: day, TotalDurationMinutes: float64(50 + i%5)}, Final: true}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := f.store.SavePoint(ctx, "u1", domain.StoredPoint{TimeSeriesPoint: domain.TimeSeriesPoint{Date: "2024-03-10", TotalDurationMinutes: 52}}); err != nil {
		t.Fatalf("seed current: %v", err)
	}
	h := NewHandler(f.svc, nil)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success: explicit date",
			path:           "/users/u1/listening/stability?date=2024-03-10&window=28&trend=3",
			expectedStatus: http.StatusOK,
			expectedBody:   `"historyPoints":14`,
		},
		{
			name:           "Success: date defaults to today",
			path:           "/users/u1/listening/stability",
			expectedStatus: http.StatusOK,
			expectedBody:   `"date":"2024-03-10"`,
		},
		{
			name:           "Bad Request: window not a number",
			path:           "/users/u1/listening/stability?window=abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "window must be a non-negative integer",
		},
		{
			name:           "Bad Request: malformed date",
			path:           "/users/u1/listening/stability?date=10-03-2024",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"INVALID_INPUT"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, request{method: http.MethodGet, path: tt.path})
			assertResponse(t, rec, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestHandler_SyncListening(t *testing.T) {
	tests := []struct {
		name           string
		queue          *mockQueue
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Accepted: job queued",
			queue:          &mockQueue{},
			expectedStatus: http.StatusAccepted,
			expectedBody:   `"jobId":"job-1"`,
		},
		{
			name:           "Unavailable: queue full",
			queue:          &mockQueue{err: worker.ErrQueueFull},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"code":"QUEUE_FULL"`,
		},
		{
			name:           "Unavailable: sync not configured",
			queue:          nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"code":"PROVIDER_UNAVAILABLE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			var h *Handler
			if tt.queue != nil {
				h = NewHandler(f.svc, tt.queue)
			} else {
				h = NewHandler(f.svc, nil)
			}
			rec := serve(h, request{method: http.MethodPost, path: "/users/u1/listening/sync", body: "{}"})
			assertResponse(t, rec, tt.expectedStatus, tt.expectedBody)
			if tt.queue != nil && tt.queue.err == nil && (len(tt.queue.submitted) != 1 || tt.queue.submitted[0] != "u1") {
				t.Errorf("expected u1 submitted, got %v", tt.queue.submitted)
			}
		})
	}
}

func TestHandler_Emotions(t *testing.T) {
	f := newFixture(t, nil)
	h := NewHandler(f.svc, nil)

	assertResponse(t, serve(h, request{method: http.MethodGet, path: "/users/u1/emotions/stability"}), http.StatusOK, "No data")

	for _, body := range []string{`{"label":"happy","confidence":0.9}`, `{"label":"happy","confidence":0.8}`} {
		assertResponse(t, serve(h, request{method: http.MethodPost, path: "/users/u1/emotions", body: body}), http.StatusCreated, `"label":"happy"`)
	}
	assertResponse(t, serve(h, request{method: http.MethodPost, path: "/users/u1/emotions", body: `{"label":"bored","confidence":0.5}`}), http.StatusBadRequest, `"code":"INVALID_INPUT"`)
	assertResponse(t, serve(h, request{method: http.MethodPost, path: "/users/u1/emotions", body: `{"label":"sad","confidence":1.5}`}), http.StatusBadRequest, `"code":"INVALID_INPUT"`)

	rec := serve(h, request{method: http.MethodGet, path: "/users/u1/emotions/stability"})
	assertResponse(t, rec, http.StatusOK, `"samples":2`)
	if !strings.Contains(rec.Body.String(), `"happy":100`) {
		t.Errorf("expected happy at 100%%, got %s", rec.Body.String())
	}
}

func TestHandler_Wellbeing(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success: stored screen time",
			path:           "/users/u1/wellbeing",
			expectedStatus: http.StatusOK,
			expectedBody:   `"trend":`,
		},
		{
			name:           "Success: explicit active seconds",
			path:           "/users/u1/wellbeing?activeSeconds=9000",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":`,
		},
		{
			name:           "Bad Request: not a number",
			path:           "/users/u1/wellbeing?activeSeconds=abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "activeSeconds must be a number",
		},
		{
			name:           "Bad Request: negative active seconds",
			path:           "/users/u1/wellbeing?activeSeconds=-5",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"INVALID_INPUT"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			h := NewHandler(f.svc, nil)
			assertResponse(t, serve(h, request{method: http.MethodGet, path: tt.path}), tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestHandler_RecordScreenTime(t *testing.T) {
	f := newFixture(t, nil)
	h := NewHandler(f.svc, nil)
	req := request{method: http.MethodPost, path: "/users/u1/screentime", body: `{"seconds":120}`}

	assertResponse(t, serve(h, req), http.StatusOK, `"activeSeconds":120`)
	assertResponse(t, serve(h, req), http.StatusOK, `"activeSeconds":240`)
	assertResponse(t, serve(h, request{method: http.MethodPost, path: "/users/u1/screentime", body: `{"seconds":-1}`}), http.StatusBadRequest, `"code":"INVALID_INPUT"`)
}

func TestHandler_ClassifyTracks(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success: features classify",
			body:           `{"tracks":[{"id":"t1","title":"Song One","artist":"Artist A","features":{"tempo":120,"energy":0.9,"valence":0.9,"acousticness":0.1,"instrumentalness":0.1}}]}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"moodSource":"features"`,
		},
		{
			name:           "Success: missing features fall back",
			body:           `{"tracks":[{"id":"t2","title":"Song Two","artist":"Artist B"}]}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"moodSource":"fallback"`,
		},
		{
			name:           "Bad Request: no tracks",
			body:           `{"tracks":[]}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "tracks are required",
		},
		{
			name:           "Bad Request: energy out of range",
			body:           `{"tracks":[{"title":"Song","artist":"A","features":{"tempo":120,"energy":1.5,"valence":0.5}}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `tracks[0].features`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			h := NewHandler(f.svc, nil)
			rec := serve(h, request{method: http.MethodPost, path: "/tracks/classify", body: tt.body})
			assertResponse(t, rec, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestHandler_AnalyzeJournal(t *testing.T) {
	tests := []struct {
		name         string
		journal      *mockJournal
		expectedBody string
	}{
		{name: "no analyzer configured", journal: nil, expectedBody: `"mood":"Stoic"`},
		{name: "analyzer answer", journal: &mockJournal{mood: domain.JournalJoy}, expectedBody: `"mood":"Joy"`},
		{name: "analyzer failure degrades", journal: &mockJournal{err: errors.New("ollama down")}, expectedBody: `"mood":"Stoic"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.journal)
			h := NewHandler(f.svc, nil)
			rec := serve(h, request{method: http.MethodPost, path: "/journal/analyze", body: `{"content":"Walked by the lake today."}`})
			assertResponse(t, rec, http.StatusOK, tt.expectedBody)
		})
	}
}

func TestHandler_Categories(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success: fitness and activity",
			body:           `{"fitness":{"recentSleepMinutes":480,"recentActiveMinutes":60},"activity":{"totalSeconds":3600,"apps":{"editor":1800,"browser":1800}}}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"overallScore":`,
		},
		{
			name:           "Success: no metrics",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			expectedBody:   "No data available",
		},
		{
			name:           "Bad Request: negative sleep",
			body:           `{"fitness":{"recentSleepMinutes":-10,"recentActiveMinutes":0}}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"INVALID_INPUT"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			h := NewHandler(f.svc, nil)
			rec := serve(h, request{method: http.MethodPost, path: "/insights/categories", body: tt.body})
			assertResponse(t, rec, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestHandler_UnknownRoute(t *testing.T) {
	f := newFixture(t, nil)
	h := NewHandler(f.svc, nil)
	rec := serve(h, request{method: http.MethodGet, path: "/playlists/p1"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

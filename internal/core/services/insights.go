package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
)

// ErrProviderUnavailable is returned when an operation needs a collaborator
// that was not configured.
var ErrProviderUnavailable = errors.New("service: provider not configured")

const (
	DefaultWindowDays  = 28
	DefaultTrendPoints = 3

	// modelTrackLimit bounds how many tracks per request are sent to the LLM.
	modelTrackLimit = 5
)

// Insights loads inputs through the ports, validates them and runs the
// scoring calculators. Only the store is required; nil collaborators disable
// the features that need them.
type Insights struct {
	store     ports.Store
	listening ports.ListeningProvider
	inferrer  ports.MoodInferrer
	journal   ports.JournalAnalyzer
	cache     ports.MoodCache

	emotionCapacity int
	loc             *time.Location
	now             func() time.Time
}

// Option configures an Insights service.
type Option func(*Insights)

// WithEmotionLogCapacity caps how many recent samples are scored per user.
func WithEmotionLogCapacity(n int) Option {
	return func(s *Insights) {
		s.emotionCapacity = n
	}
}

// WithLocation sets the timezone calendar days are cut in.
func WithLocation(loc *time.Location) Option {
	return func(s *Insights) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Insights) {
		if now != nil {
			s.now = now
		}
	}
}

// NewInsights constructs an Insights service.
func NewInsights(store ports.Store, listening ports.ListeningProvider, inferrer ports.MoodInferrer, journal ports.JournalAnalyzer, cache ports.MoodCache, opts ...Option) *Insights {
	s := &Insights{
		store:           store,
		listening:       listening,
		inferrer:        inferrer,
		journal:         journal,
		cache:           cache,
		emotionCapacity: domain.DefaultEmotionLogCapacity,
		loc:             time.UTC,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Insights) today() time.Time {
	return s.now().In(s.loc)
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &domain.InvalidInputError{Field: "userId", Reason: "is required"}
	}
	return nil
}

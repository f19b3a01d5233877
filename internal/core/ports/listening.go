package ports

import (
	"context"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

// ListeningProvider is the external source of listening events.
type ListeningProvider interface {
	RecentlyPlayed(ctx context.Context) ([]domain.Play, error)
	// AudioFeatures returns a vector per requested ID. IDs the provider has no
	// vector for map to nil; that is not an error.
	AudioFeatures(ctx context.Context, trackIDs []string) (map[string]*domain.AudioFeatures, error)
}

// MoodCache memoizes resolved track moods by normalized track key.
type MoodCache interface {
	Get(key string) (domain.Mood, bool)
	Set(key string, mood domain.Mood)
	Clear()
}

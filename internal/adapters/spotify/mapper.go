package spotify

import (
	"strings"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

func joinArtistNames(st spotifyTrack) string {
	names := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// mapPlayToDomain flattens a play history item into a domain.Play.
func mapPlayToDomain(item playHistoryItem) domain.Play {
	return domain.Play{
		TrackID:    item.Track.ID,
		Title:      item.Track.Name,
		Artist:     joinArtistNames(item.Track),
		DurationMs: item.Track.DurationMs,
		PlayedAt:   item.PlayedAt,
	}
}

// mapFeaturesToDomain returns nil for a missing or all-zero vector so callers
// take the feature-less path instead of classifying silence.
func mapFeaturesToDomain(f *spotifyAudioFeatures) *domain.AudioFeatures {
	if f == nil || allFeaturesZero(*f) {
		return nil
	}
	return &domain.AudioFeatures{
		Tempo:            f.Tempo,
		Energy:           f.Energy,
		Valence:          f.Valence,
		Acousticness:     f.Acousticness,
		Instrumentalness: f.Instrumentalness,
		Danceability:     f.Danceability,
	}
}

func allFeaturesZero(features spotifyAudioFeatures) bool {
	return features.Danceability == 0 &&
		features.Energy == 0 &&
		features.Valence == 0 &&
		features.Tempo == 0 &&
		features.Instrumentalness == 0 &&
		features.Acousticness == 0
}

package spotify

import "time"

type spotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// spotifyTrack is the track object embedded in play history items. Type is
// "track" for music and "episode" for podcasts.
type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	DurationMs int             `json:"duration_ms"`
	Artists    []spotifyArtist `json:"artists"`
}

type playHistoryItem struct {
	Track    spotifyTrack `json:"track"`
	PlayedAt time.Time    `json:"played_at"`
}

type recentlyPlayedResponse struct {
	Items []playHistoryItem `json:"items"`
}

type spotifyAudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Instrumentalness float64 `json:"instrumentalness"`
	Acousticness     float64 `json:"acousticness"`
}

// audioFeaturesResponse holds one entry per requested ID, null for unknown tracks.
type audioFeaturesResponse struct {
	AudioFeatures []*spotifyAudioFeatures `json:"audio_features"`
}

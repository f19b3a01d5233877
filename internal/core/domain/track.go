package domain

// AudioFeatures is the per-track vector supplied by the audio-feature source.
// Energy, Valence, Acousticness and Instrumentalness are in [0,1]; Tempo is BPM.
type AudioFeatures struct {
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Danceability     float64 `json:"danceability,omitempty"`
}

// Track represents a track to classify. Features is nil when the provider had none.
type Track struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Artist   string         `json:"artist"`
	Features *AudioFeatures `json:"features"`
}

// ClassifiedTrack is a Track with its resolved mood and descriptive text.
type ClassifiedTrack struct {
	Track
	Mood        Mood       `json:"mood"`
	MoodSource  MoodSource `json:"moodSource"`
	Signature   string     `json:"signature"`
	Description string     `json:"description"`
}

type TrackReport struct {
	Tracks       []ClassifiedTrack `json:"tracks"`
	Distribution map[Mood]int      `json:"moodDistribution"`
}

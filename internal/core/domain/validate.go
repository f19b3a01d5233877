package domain

import (
	"math"
	"time"
)

// Validate rejects points that would poison a baseline.
func (p TimeSeriesPoint) Validate() error {
	if _, err := time.Parse(DayLayout, p.Date); err != nil {
		return invalid("date", "must be YYYY-MM-DD")
	}
	if !finite(p.TotalDurationMinutes) {
		return invalid("totalDurationMinutes", "must be a finite number")
	}
	if p.TotalDurationMinutes < 0 {
		return invalid("totalDurationMinutes", "must not be negative")
	}
	return nil
}

func (f AudioFeatures) Validate() error {
	unit := []struct {
		name string
		v    float64
	}{
		{"energy", f.Energy},
		{"valence", f.Valence},
		{"acousticness", f.Acousticness},
		{"instrumentalness", f.Instrumentalness},
		{"danceability", f.Danceability},
	}
	for _, u := range unit {
		if !finite(u.v) || u.v < 0 || u.v > 1 {
			return invalid(u.name, "must be within [0,1]")
		}
	}
	if !finite(f.Tempo) || f.Tempo <= 0 {
		return invalid("tempo", "must be a positive BPM")
	}
	return nil
}

func (s EmotionSample) Validate() error {
	if !s.Label.Valid() {
		return invalid("label", "is not a known emotion")
	}
	if !finite(s.Confidence) || s.Confidence < 0 || s.Confidence > 1 {
		return invalid("confidence", "must be within [0,1]")
	}
	if s.Timestamp.IsZero() {
		return invalid("timestamp", "is required")
	}
	return nil
}

func (s WellbeingSample) Validate() error {
	return EmotionSample{Timestamp: s.Timestamp, Label: s.DominantEmotion, Confidence: s.Confidence}.Validate()
}

// ValidateActiveSeconds checks a screen-time counter.
func ValidateActiveSeconds(seconds float64) error {
	if !finite(seconds) || seconds < 0 {
		return invalid("activeSeconds", "must be a non-negative number")
	}
	return nil
}

func (m FitnessMetrics) Validate() error {
	if !finite(m.RecentSleepMinutes) || m.RecentSleepMinutes < 0 {
		return invalid("recentSleepMinutes", "must be a non-negative number")
	}
	if !finite(m.RecentActiveMinutes) || m.RecentActiveMinutes < 0 {
		return invalid("recentActiveMinutes", "must be a non-negative number")
	}
	return nil
}

func (a DigitalActivity) Validate() error {
	if !finite(a.TotalSeconds) || a.TotalSeconds < 0 {
		return invalid("totalSeconds", "must be a non-negative number")
	}
	for app, secs := range a.Apps {
		if !finite(secs) || secs < 0 {
			return invalid("apps."+app, "must be a non-negative number")
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

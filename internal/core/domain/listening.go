package domain

import "time"

// DayLayout is the calendar-day format used for TimeSeriesPoint dates.
const DayLayout = "2006-01-02"

// TimeSeriesPoint is one user's aggregated listening for a single calendar day.
type TimeSeriesPoint struct {
	Date                 string  `json:"date"`
	TotalDurationMinutes float64 `json:"totalDurationMinutes"`
}

// StoredPoint is a persisted TimeSeriesPoint. A final point was written after
// its day ended and is never overwritten.
type StoredPoint struct {
	TimeSeriesPoint
	Final bool `json:"final"`
}

// Baseline is the personal mean/stdDev derived from a history of points.
type Baseline struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

type StabilityResult struct {
	Score                int     `json:"score"`
	Confidence           int     `json:"confidence"`
	ZScore               float64 `json:"zScore"`
	Explanation          string  `json:"explanation"`
	IsDeviationSustained bool    `json:"isDeviationSustained"`
}

// StabilityReport wraps a StabilityResult with the inputs it was computed from.
type StabilityReport struct {
	UserID   string          `json:"userId"`
	Current  TimeSeriesPoint `json:"current"`
	Baseline *Baseline       `json:"baseline"`
	History  int             `json:"historyPoints"`
	Result   StabilityResult `json:"result"`
}

// Play is a single recently-played event from the listening source.
type Play struct {
	TrackID    string    `json:"trackId"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	DurationMs int       `json:"durationMs"`
	PlayedAt   time.Time `json:"playedAt"`
}

type TimeDistribution struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	LateNight int `json:"lateNight"`
}

// DailyListening is the full aggregate of one day's plays. Its Point() is what
// gets persisted for baseline analysis.
type DailyListening struct {
	Date                 string           `json:"date"`
	TotalDurationMinutes float64          `json:"totalDurationMinutes"`
	TimeDistribution     TimeDistribution `json:"timeDistribution"`
	HourlyDensity        [24]int          `json:"rhythmHistory"`
	AvgValence           float64          `json:"avgValence"`
	EmotionalStability   float64          `json:"emotionalStability"`
	DataConfidence       float64          `json:"dataConfidence"`
	HasAudioFeatures     bool             `json:"hasAudioFeatures"`
	MoodDistribution     map[Mood]int     `json:"moodDistribution,omitempty"`
}

func (d DailyListening) Point() TimeSeriesPoint {
	return TimeSeriesPoint{Date: d.Date, TotalDurationMinutes: d.TotalDurationMinutes}
}

// Day formats t as a calendar day in t's location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

package domain

import "time"

// Emotion is one of the seven labels produced by the facial-emotion model.
type Emotion string

const (
	EmotionAngry    Emotion = "angry"
	EmotionDisgust  Emotion = "disgust"
	EmotionFear     Emotion = "fear"
	EmotionHappy    Emotion = "happy"
	EmotionNeutral  Emotion = "neutral"
	EmotionSad      Emotion = "sad"
	EmotionSurprise Emotion = "surprise"
)

var Emotions = [...]Emotion{
	EmotionAngry,
	EmotionDisgust,
	EmotionFear,
	EmotionHappy,
	EmotionNeutral,
	EmotionSad,
	EmotionSurprise,
}

func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// EmotionSample is one detection tick.
type EmotionSample struct {
	ID         string    `json:"id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Label      Emotion   `json:"label"`
	Confidence float64   `json:"confidence"`
}

// WellbeingSample is the dominant emotion of a detection tick.
type WellbeingSample struct {
	Timestamp       time.Time `json:"timestamp"`
	DominantEmotion Emotion   `json:"dominantEmotion"`
	Confidence      float64   `json:"confidence"`
}

func (s EmotionSample) Wellbeing() WellbeingSample {
	return WellbeingSample{Timestamp: s.Timestamp, DominantEmotion: s.Label, Confidence: s.Confidence}
}

type WellbeingStatus string

const (
	StatusStable         WellbeingStatus = "Stable"
	StatusFluctuating    WellbeingStatus = "Fluctuating"
	StatusNeedsAttention WellbeingStatus = "Needs Attention"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type WellbeingIndicator struct {
	Status      WellbeingStatus `json:"status"`
	Score       int             `json:"score"`
	Trend       Trend           `json:"trend"`
	Explanation string          `json:"explanation"`
}

// EmotionReport is the day's emotion stability score with its label breakdown.
type EmotionReport struct {
	UserID      string          `json:"userId"`
	Samples     int             `json:"samples"`
	Score       int             `json:"score"`
	Percentages map[Emotion]int `json:"percentages"`
	Category    CategoryScore   `json:"category"`
}

// DefaultEmotionLogCapacity matches the retention of the monitoring client.
const DefaultEmotionLogCapacity = 1000

// EmotionLog is a capped, timestamp-ordered log; appending past capacity
// evicts the oldest sample. It is not safe for concurrent use.
type EmotionLog struct {
	capacity int
	samples  []EmotionSample
}

func NewEmotionLog(capacity int) *EmotionLog {
	if capacity < 1 {
		capacity = DefaultEmotionLogCapacity
	}
	return &EmotionLog{capacity: capacity}
}

func (l *EmotionLog) Append(samples ...EmotionSample) {
	l.samples = append(l.samples, samples...)
	if over := len(l.samples) - l.capacity; over > 0 {
		l.samples = append([]EmotionSample(nil), l.samples[over:]...)
	}
}

func (l *EmotionLog) Len() int {
	return len(l.samples)
}

// Samples returns a copy of the retained samples, oldest first.
func (l *EmotionLog) Samples() []EmotionSample {
	return append([]EmotionSample(nil), l.samples...)
}

// Since returns the samples at or after t.
func (l *EmotionLog) Since(t time.Time) []EmotionSample {
	out := make([]EmotionSample, 0, len(l.samples))
	for _, s := range l.samples {
		if !s.Timestamp.Before(t) {
			out = append(out, s)
		}
	}
	return out
}

// Today returns the samples from local midnight of now onward.
func (l *EmotionLog) Today(now time.Time) []EmotionSample {
	return l.Since(StartOfDay(now))
}

// WeekBefore is the start of the emotion lookback window ending at now.
func WeekBefore(now time.Time) time.Time {
	return now.Add(-7 * 24 * time.Hour)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

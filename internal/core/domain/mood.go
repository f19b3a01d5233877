package domain

import "strings"

// Mood is the closed audio mood/archetype set.
type Mood string

const (
	MoodChill       Mood = "Chill"
	MoodStoic       Mood = "Stoic"
	MoodPositive    Mood = "Positive"
	MoodMelancholic Mood = "Melancholic"
	MoodAggressive  Mood = "Aggressive"
	MoodPeaceful    Mood = "Peaceful"
	MoodEuphoric    Mood = "Euphoric"
	MoodIntense     Mood = "Intense"
)

// Moods is ordered; the hash fallback indexes into it, so the order is part of
// the output contract.
var Moods = [...]Mood{
	MoodChill,
	MoodStoic,
	MoodPositive,
	MoodMelancholic,
	MoodAggressive,
	MoodPeaceful,
	MoodEuphoric,
	MoodIntense,
}

// ParseMood matches s case-insensitively against the closed set.
func ParseMood(s string) (Mood, bool) {
	s = strings.TrimSpace(s)
	for _, m := range Moods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}

// MoodSource records which path produced a track's mood.
type MoodSource string

const (
	MoodSourceCache    MoodSource = "cache"
	MoodSourceModel    MoodSource = "model"
	MoodSourceFeatures MoodSource = "features"
	MoodSourceFallback MoodSource = "fallback"
)

// JournalMood is the closed label set for journal entry sentiment.
type JournalMood string

const (
	JournalCalm        JournalMood = "Calm"
	JournalJoy         JournalMood = "Joy"
	JournalFocus       JournalMood = "Focus"
	JournalNature      JournalMood = "Nature"
	JournalMelancholic JournalMood = "Melancholic"
	JournalIntense     JournalMood = "Intense"
	JournalStoic       JournalMood = "Stoic"
)

var JournalMoods = [...]JournalMood{
	JournalCalm,
	JournalJoy,
	JournalFocus,
	JournalNature,
	JournalMelancholic,
	JournalIntense,
	JournalStoic,
}

func ParseJournalMood(s string) (JournalMood, bool) {
	s = strings.TrimSpace(s)
	for _, m := range JournalMoods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}

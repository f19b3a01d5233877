package scoring

import "github.com/ewilliams-labs/cognia/internal/core/domain"

// Classify maps an audio feature vector to a mood. Branches are evaluated in
// order and the first match wins; the ranges overlap at their edges.
//
// With nil features the label is picked from domain.Moods by hashing
// fallbackSeed, so repeated calls for the same track agree.
func Classify(f *domain.AudioFeatures, fallbackSeed string) domain.Mood {
	if f == nil {
		return domain.Moods[seedHash(fallbackSeed)%uint32(len(domain.Moods))]
	}

	switch {
	case f.Valence > 0.75:
		if f.Energy > 0.6 {
			return domain.MoodEuphoric
		}
		return domain.MoodPeaceful
	case f.Valence < 0.35:
		if f.Energy > 0.7 {
			return domain.MoodAggressive
		}
		return domain.MoodMelancholic
	case f.Energy > 0.75:
		return domain.MoodIntense
	case f.Energy < 0.35:
		// low energy that is neither acoustic nor bright reads as dark, not chill
		if f.Acousticness > 0.5 || f.Valence > 0.6 {
			return domain.MoodChill
		}
		return domain.MoodMelancholic
	case f.Valence > 0.55:
		return domain.MoodPositive
	default:
		return domain.MoodStoic
	}
}

// ClassifyTrack classifies with the track and artist text as fallback seed.
func ClassifyTrack(f *domain.AudioFeatures, title, artist string) domain.Mood {
	return Classify(f, title+artist)
}

// MoodDistribution counts final per-track labels. Empty labels count as Stoic.
func MoodDistribution(labels []domain.Mood) map[domain.Mood]int {
	counts := make(map[domain.Mood]int, len(domain.Moods))
	for _, m := range labels {
		if m == "" {
			m = domain.MoodStoic
		}
		counts[m]++
	}
	return counts
}

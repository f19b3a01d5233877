package scoring

import (
	"math"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const (
	minEmotionSamples = 5
	positivityBonus   = 20.0
)

// EmotionStability scores how evenly a day's samples spread across labels,
// plus a bonus for the share of happy/neutral samples. Fewer than five samples
// returns 0, the insufficient-data sentinel.
func EmotionStability(samples []domain.EmotionSample) int {
	if len(samples) < minEmotionSamples {
		return 0
	}

	counts := countEmotions(samples)
	total := float64(len(samples))
	distinct := float64(len(counts))
	avgCount := total / distinct

	var variance float64
	for _, c := range counts {
		d := float64(c) - avgCount
		variance += d * d
	}
	variance /= distinct

	normalized := math.Min(variance/avgCount, 1)
	base := int(math.Round((1 - normalized) * 100))

	positive := counts[domain.EmotionHappy] + counts[domain.EmotionNeutral]
	bonus := int(math.Round(float64(positive) / total * positivityBonus))

	return min(base+bonus, 100)
}

// EmotionPercentages returns each label's rounded share of the samples.
func EmotionPercentages(samples []domain.EmotionSample) map[domain.Emotion]int {
	out := make(map[domain.Emotion]int)
	if len(samples) == 0 {
		return out
	}
	total := float64(len(samples))
	for label, c := range countEmotions(samples) {
		out[label] = int(math.Round(float64(c) / total * 100))
	}
	return out
}

func countEmotions(samples []domain.EmotionSample) map[domain.Emotion]int {
	counts := make(map[domain.Emotion]int, len(domain.Emotions))
	for _, s := range samples {
		counts[s.Label]++
	}
	return counts
}

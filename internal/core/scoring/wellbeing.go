package scoring

import (
	"math"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const (
	wellbeingWindow = 10

	// screenTimeLimit is two hours of active use. Exceeding it costs a flat
	// penalty regardless of how far over the limit the user is.
	screenTimeLimit   = 7200
	screenTimePenalty = 10.0

	needsAttentionBelow = 50.0
	fluctuatingBelow    = 60.0

	// trendDeadZone keeps small window-to-window noise from flipping the trend.
	trendDeadZone = 3.0

	unknownEmotionWeight = 50.0
)

// emotionWeights is a hand-tuned ordinal scale; it ignores sample confidence.
var emotionWeights = map[domain.Emotion]float64{
	domain.EmotionHappy:    95,
	domain.EmotionSurprise: 80,
	domain.EmotionNeutral:  70,
	domain.EmotionSad:      50,
	domain.EmotionFear:     40,
	domain.EmotionAngry:    35,
	domain.EmotionDisgust:  30,
}

const (
	ExplainWaitingForData     = "Waiting for data to analyze patterns."
	ExplainHoldingSteady      = "Your emotional baseline is holding steady."
	ExplainVolatile           = "Your emotional markers are showing some volatility today."
	ExplainDecline            = "We've noticed a persistent decline in your mood markers."
	ExplainBreakAdvised       = " A break is highly recommended."
	ExplainScreenTimeAdvisory = " Prolonged screen time detected. Consider a 15-minute eye rest."
)

// AggregateWellbeing averages the weights of the ten most recent samples,
// applies the screen-time penalty, and compares against the ten samples
// before them for a trend.
func AggregateWellbeing(history []domain.WellbeingSample, activeSeconds float64) domain.WellbeingIndicator {
	if len(history) == 0 {
		return domain.WellbeingIndicator{
			Status:      domain.StatusStable,
			Score:       100,
			Trend:       domain.TrendStable,
			Explanation: ExplainWaitingForData,
		}
	}

	recentStart := max(len(history)-wellbeingWindow, 0)
	average := averageWeight(history[recentStart:])

	advisory := ""
	if activeSeconds > screenTimeLimit {
		average -= screenTimePenalty
		advisory = ExplainScreenTimeAdvisory
	}
	average = clamp(average, 0, 100)

	status := domain.StatusStable
	explanation := ExplainHoldingSteady + advisory
	switch {
	case average < needsAttentionBelow:
		status = domain.StatusNeedsAttention
		explanation = ExplainDecline + advisory + ExplainBreakAdvised
	case average < fluctuatingBelow:
		status = domain.StatusFluctuating
		explanation = ExplainVolatile + advisory
	}

	trend := domain.TrendStable
	earlier := history[max(recentStart-wellbeingWindow, 0):recentStart]
	if len(earlier) > 0 {
		prior := averageWeight(earlier)
		switch {
		case average > prior+trendDeadZone:
			trend = domain.TrendImproving
		case average < prior-trendDeadZone:
			trend = domain.TrendDeclining
		}
	}

	return domain.WellbeingIndicator{
		Status:      status,
		Score:       int(math.Round(average)),
		Trend:       trend,
		Explanation: explanation,
	}
}

func averageWeight(samples []domain.WellbeingSample) float64 {
	var total float64
	for _, s := range samples {
		w, ok := emotionWeights[s.DominantEmotion]
		if !ok {
			w = unknownEmotionWeight
		}
		total += w
	}
	return total / float64(len(samples))
}

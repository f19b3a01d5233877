package scoring

import (
	"math"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const (
	// pointsPerSigma is how much score one standard deviation costs; five
	// sigmas saturate the score to zero.
	pointsPerSigma = 20.0

	significantZScore = 2.0
	sustainedZScore   = 1.5
	minSustainedRun   = 3

	// confidenceSaturation is the trend length (about three weeks of daily
	// points) at which confidence reaches 100.
	confidenceSaturation = 21.0
)

const (
	ExplainEstablishingBaseline = "Establishing your personal baseline. Keep listening to see insights."
	ExplainSignificantDeviation = "Your activity level has deviated significantly from your typical pattern today."
	ExplainSustainedShift       = "We've noticed a sustained shift in your listening rhythm over the past few days."
	ExplainConsistent           = "Your listening rhythm is consistent with your personal baseline."
)

// ComputeBaseline returns the mean and population standard deviation of the
// history's durations, or nil when there is no history.
func ComputeBaseline(history []domain.TimeSeriesPoint) *domain.Baseline {
	if len(history) == 0 {
		return nil
	}

	var sum float64
	for _, p := range history {
		sum += p.TotalDurationMinutes
	}
	mean := sum / float64(len(history))

	var squares float64
	for _, p := range history {
		d := p.TotalDurationMinutes - mean
		squares += d * d
	}

	return &domain.Baseline{
		Mean:   mean,
		StdDev: math.Sqrt(squares / float64(len(history))),
	}
}

// AnalyzeStability scores current against baseline. A nil baseline is the
// cold-start case and always yields score 100 with zero confidence.
func AnalyzeStability(current domain.TimeSeriesPoint, baseline *domain.Baseline, recentTrend []domain.TimeSeriesPoint) domain.StabilityResult {
	if baseline == nil {
		return domain.StabilityResult{
			Score:       100,
			Confidence:  0,
			Explanation: ExplainEstablishingBaseline,
		}
	}

	z := zScore(current.TotalDurationMinutes, *baseline)
	score := clamp(100-z*pointsPerSigma, 0, 100)
	sustained := isDeviationSustained(recentTrend, *baseline)

	explanation := ExplainConsistent
	switch {
	case z > significantZScore:
		explanation = ExplainSignificantDeviation
	case sustained:
		explanation = ExplainSustainedShift
	}

	return domain.StabilityResult{
		Score:                int(math.Round(score)),
		Confidence:           int(math.Round(math.Min(float64(len(recentTrend))/confidenceSaturation, 1) * 100)),
		ZScore:               z,
		Explanation:          explanation,
		IsDeviationSustained: sustained,
	}
}

// RecentTrend returns the last n-1 history points followed by current, the
// window AnalyzeStability checks for a sustained shift. Confidence grows with
// its length, so a short trend caps confidence no matter how deep history is.
func RecentTrend(history []domain.TimeSeriesPoint, current domain.TimeSeriesPoint, n int) []domain.TimeSeriesPoint {
	n = max(n, 1)
	recent := history[max(len(history)-(n-1), 0):]
	trend := make([]domain.TimeSeriesPoint, 0, len(recent)+1)
	trend = append(trend, recent...)
	return append(trend, current)
}

// isDeviationSustained requires an unbroken run: every point in the trend
// must exceed the threshold, and there must be at least minSustainedRun of them.
func isDeviationSustained(trend []domain.TimeSeriesPoint, baseline domain.Baseline) bool {
	if len(trend) < minSustainedRun {
		return false
	}
	for _, p := range trend {
		if zScore(p.TotalDurationMinutes, baseline) <= sustainedZScore {
			return false
		}
	}
	return true
}

func zScore(value float64, baseline domain.Baseline) float64 {
	if baseline.StdDev == 0 {
		return 0
	}
	return math.Abs(value-baseline.Mean) / baseline.StdDev
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

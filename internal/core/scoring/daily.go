package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const (
	// playsForFullConfidence is the number of plays in a day at which the
	// data-confidence volume term saturates.
	playsForFullConfidence = 40.0

	stabilityWeight = 0.6
	volumeWeight    = 0.4
)

// GroupPlaysByDay buckets plays by calendar day in loc, oldest day first.
func GroupPlaysByDay(plays []domain.Play, loc *time.Location) ([]string, map[string][]domain.Play) {
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[string][]domain.Play)
	for _, p := range plays {
		if p.PlayedAt.IsZero() {
			continue
		}
		day := domain.Day(p.PlayedAt.In(loc))
		byDay[day] = append(byDay[day], p)
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	return days, byDay
}

// AggregateDay summarizes one day of plays. features is keyed by track ID;
// a missing or nil entry means the provider had no vector for that track.
func AggregateDay(date string, plays []domain.Play, features map[string]*domain.AudioFeatures, loc *time.Location) domain.DailyListening {
	if loc == nil {
		loc = time.UTC
	}

	out := domain.DailyListening{Date: date}

	var totalMs int
	for _, p := range plays {
		totalMs += p.DurationMs
		if p.PlayedAt.IsZero() {
			continue
		}
		hour := p.PlayedAt.In(loc).Hour()
		out.HourlyDensity[hour]++
		switch {
		case hour >= 6 && hour < 12:
			out.TimeDistribution.Morning++
		case hour >= 12 && hour < 18:
			out.TimeDistribution.Afternoon++
		case hour >= 18:
			out.TimeDistribution.Evening++
		default:
			out.TimeDistribution.LateNight++
		}
	}
	out.TotalDurationMinutes = math.Round(float64(totalMs) / 60000)

	valences := make([]float64, 0, len(plays))
	for _, p := range plays {
		if f := features[p.TrackID]; f != nil {
			valences = append(valences, f.Valence)
		}
	}
	out.HasAudioFeatures = len(valences) > 0

	mean, stdDev := meanStdDev(valences)
	out.AvgValence = mean
	if !out.HasAudioFeatures {
		// without features the busiest hour stands in for mood intensity
		peak := 0
		for _, c := range out.HourlyDensity {
			peak = max(peak, c)
		}
		out.AvgValence = math.Min(float64(peak)/4, 1)
	}

	out.EmotionalStability = math.Max(0, 1-stdDev*2)
	volume := math.Min(float64(len(plays))/playsForFullConfidence, 1)
	out.DataConfidence = out.EmotionalStability*stabilityWeight + volume*volumeWeight

	return out
}

func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var squares float64
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(squares / float64(len(values)))
}

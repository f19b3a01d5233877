package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

// RecordListening stores a daily point. A point for a past day is final once
// written; a point for today stays open until the day ends.
func (s *Insights) RecordListening(ctx context.Context, userID string, p domain.TimeSeriesPoint) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	saved, err := s.store.SavePoint(ctx, userID, s.storedPoint(p))
	if err != nil {
		return fmt.Errorf("service: failed to save point: %w", err)
	}
	if !saved {
		return &domain.InvalidInputError{Field: "date", Reason: "is a closed day and already recorded"}
	}
	return nil
}

// ListeningStability scores the point stored for date against the baseline of
// the window days before it. A day without a point counts as zero minutes and
// an empty date means today.
func (s *Insights) ListeningStability(ctx context.Context, userID, date string, window, trend int) (domain.StabilityReport, error) {
	if err := requireUser(userID); err != nil {
		return domain.StabilityReport{}, err
	}
	if date == "" {
		date = domain.Day(s.today())
	}
	day, err := time.Parse(domain.DayLayout, date)
	if err != nil {
		return domain.StabilityReport{}, &domain.InvalidInputError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if window < 1 {
		window = DefaultWindowDays
	}
	if trend < 1 {
		trend = DefaultTrendPoints
	}

	from := domain.Day(day.AddDate(0, 0, -window))
	to := domain.Day(day.AddDate(0, 0, -1))
	history, err := s.store.LoadHistory(ctx, userID, from, to)
	if err != nil {
		return domain.StabilityReport{}, fmt.Errorf("service: failed to load history: %w", err)
	}

	current := domain.TimeSeriesPoint{Date: date}
	stored, err := s.store.LoadPoint(ctx, userID, date)
	switch {
	case err == nil:
		current = stored.TimeSeriesPoint
	case !errors.Is(err, domain.ErrNotFound):
		return domain.StabilityReport{}, fmt.Errorf("service: failed to load current point: %w", err)
	}

	baseline := scoring.ComputeBaseline(history)
	return domain.StabilityReport{
		UserID:   userID,
		Current:  current,
		Baseline: baseline,
		History:  len(history),
		Result:   scoring.AnalyzeStability(current, baseline, scoring.RecentTrend(history, current, trend)),
	}, nil
}

// SyncListening pulls recently played tracks, keeps them, and re-aggregates
// every open day they touch from all stored plays of that day. A day synced
// after it ended is saved as final and skipped from then on.
func (s *Insights) SyncListening(ctx context.Context, userID string) ([]domain.DailyListening, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if s.listening == nil {
		return nil, fmt.Errorf("service: listening sync: %w", ErrProviderUnavailable)
	}

	plays, err := s.listening.RecentlyPlayed(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch recently played: %w", err)
	}

	touched, grouped := scoring.GroupPlaysByDay(plays, s.loc)
	timed := make([]domain.Play, 0, len(plays))
	for _, date := range touched {
		timed = append(timed, grouped[date]...)
	}
	if err := s.store.SavePlays(ctx, userID, timed); err != nil {
		return nil, fmt.Errorf("service: failed to save plays: %w", err)
	}

	days := make([]string, 0, len(touched))
	byDay := make(map[string][]domain.Play, len(touched))
	seen := make(map[string]bool)
	ids := make([]string, 0, len(plays))
	for _, date := range touched {
		stored, err := s.store.LoadPoint(ctx, userID, date)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("service: failed to check day %s: %w", date, err)
		}
		if err == nil && stored.Final {
			log.Printf("DEBUG service: skipping closed day %s for %s", date, userID)
			continue
		}

		dayPlays, err := s.dayPlays(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, date)
		byDay[date] = dayPlays
		for _, p := range dayPlays {
			if p.TrackID != "" && !seen[p.TrackID] {
				seen[p.TrackID] = true
				ids = append(ids, p.TrackID)
			}
		}
	}

	features := map[string]*domain.AudioFeatures{}
	if len(ids) > 0 {
		features, err = s.listening.AudioFeatures(ctx, ids)
		if err != nil {
			// aggregates degrade to the feature-less path
			log.Printf("WARN service: audio features unavailable for %s: %v", userID, err)
			features = map[string]*domain.AudioFeatures{}
		}
	}

	out := make([]domain.DailyListening, 0, len(days))
	for _, date := range days {
		dayPlays := byDay[date]
		agg := scoring.AggregateDay(date, dayPlays, features, s.loc)

		moods := make([]domain.Mood, 0, len(dayPlays))
		for _, p := range dayPlays {
			moods = append(moods, scoring.ClassifyTrack(features[p.TrackID], p.Title, p.Artist))
		}
		agg.MoodDistribution = scoring.MoodDistribution(moods)
		out = append(out, agg)

		saved, err := s.store.SavePoint(ctx, userID, s.storedPoint(agg.Point()))
		if err != nil {
			return nil, fmt.Errorf("service: failed to save point for %s: %w", date, err)
		}
		if !saved {
			// finalized by a concurrent writer since the check above
			log.Printf("DEBUG service: day %s for %s was closed during sync", date, userID)
		}
	}
	return out, nil
}

// dayPlays loads every stored play within date's local calendar day.
func (s *Insights) dayPlays(ctx context.Context, userID, date string) ([]domain.Play, error) {
	start, err := time.ParseInLocation(domain.DayLayout, date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("service: bad day %s: %w", date, err)
	}
	plays, err := s.store.ListPlays(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("service: failed to list plays for %s: %w", date, err)
	}
	return plays, nil
}

// storedPoint marks p final when its day has already ended.
func (s *Insights) storedPoint(p domain.TimeSeriesPoint) domain.StoredPoint {
	return domain.StoredPoint{TimeSeriesPoint: p, Final: p.Date < domain.Day(s.today())}
}

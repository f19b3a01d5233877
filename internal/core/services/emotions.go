package services

import (
	"context"
	"fmt"
	"math"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

// RecordEmotion appends a detection sample. A zero timestamp means now.
func (s *Insights) RecordEmotion(ctx context.Context, userID string, sample domain.EmotionSample) (domain.EmotionSample, error) {
	if err := requireUser(userID); err != nil {
		return domain.EmotionSample{}, err
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = s.now()
	}
	if err := sample.Validate(); err != nil {
		return domain.EmotionSample{}, err
	}

	saved, err := s.store.AppendEmotion(ctx, userID, sample)
	if err != nil {
		return domain.EmotionSample{}, fmt.Errorf("service: failed to append emotion: %w", err)
	}
	return saved, nil
}

// EmotionStability scores today's samples.
func (s *Insights) EmotionStability(ctx context.Context, userID string) (domain.EmotionReport, error) {
	if err := requireUser(userID); err != nil {
		return domain.EmotionReport{}, err
	}
	emotionLog, err := s.recentEmotions(ctx, userID)
	if err != nil {
		return domain.EmotionReport{}, err
	}

	today := emotionLog.Today(s.today())
	score := scoring.EmotionStability(today)
	percentages := scoring.EmotionPercentages(today)
	return domain.EmotionReport{
		UserID:      userID,
		Samples:     len(today),
		Score:       score,
		Percentages: percentages,
		Category:    scoring.EmotionalStabilityCategory(score, percentages),
	}, nil
}

// Wellbeing aggregates the last week of samples. With activeSeconds nil the
// stored screen time for today is used.
func (s *Insights) Wellbeing(ctx context.Context, userID string, activeSeconds *float64) (domain.WellbeingIndicator, error) {
	if err := requireUser(userID); err != nil {
		return domain.WellbeingIndicator{}, err
	}

	var active float64
	if activeSeconds != nil {
		active = *activeSeconds
	} else {
		stored, err := s.store.ActiveSeconds(ctx, userID, domain.Day(s.today()))
		if err != nil {
			return domain.WellbeingIndicator{}, fmt.Errorf("service: failed to load screen time: %w", err)
		}
		active = float64(stored)
	}
	if err := domain.ValidateActiveSeconds(active); err != nil {
		return domain.WellbeingIndicator{}, err
	}

	emotionLog, err := s.recentEmotions(ctx, userID)
	if err != nil {
		return domain.WellbeingIndicator{}, err
	}
	samples := emotionLog.Samples()
	history := make([]domain.WellbeingSample, len(samples))
	for i, sample := range samples {
		history[i] = sample.Wellbeing()
	}
	return scoring.AggregateWellbeing(history, active), nil
}

// RecordScreenTime adds active seconds to today's counter and returns the total.
func (s *Insights) RecordScreenTime(ctx context.Context, userID string, seconds float64) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	if err := domain.ValidateActiveSeconds(seconds); err != nil {
		return 0, err
	}
	total, err := s.store.AddActiveSeconds(ctx, userID, domain.Day(s.today()), int64(math.Round(seconds)))
	if err != nil {
		return 0, fmt.Errorf("service: failed to add screen time: %w", err)
	}
	return total, nil
}

// recentEmotions loads the last week of samples into a capped log.
func (s *Insights) recentEmotions(ctx context.Context, userID string) (*domain.EmotionLog, error) {
	samples, err := s.store.ListEmotions(ctx, userID, domain.WeekBefore(s.today()))
	if err != nil {
		return nil, fmt.Errorf("service: failed to list emotions: %w", err)
	}
	emotionLog := domain.NewEmotionLog(s.emotionCapacity)
	emotionLog.Append(samples...)
	return emotionLog, nil
}

package services

import (
	"context"
	"log"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

// CategoryInput is what the analytics dashboard supplies for scoring.
type CategoryInput struct {
	UserID   string                  `json:"userId"`
	Fitness  *domain.FitnessMetrics  `json:"fitness"`
	Activity *domain.DigitalActivity `json:"activity"`
}

// Categories scores the dashboard tiles. The emotional tile comes from the
// user's stored samples when a user is given.
func (s *Insights) Categories(ctx context.Context, in CategoryInput) (domain.CategoryReport, error) {
	if in.Fitness != nil {
		if err := in.Fitness.Validate(); err != nil {
			return domain.CategoryReport{}, err
		}
	}
	if in.Activity != nil {
		if err := in.Activity.Validate(); err != nil {
			return domain.CategoryReport{}, err
		}
	}

	emotional := scoring.EmotionalStabilityCategory(0, nil)
	if in.UserID != "" {
		report, err := s.EmotionStability(ctx, in.UserID)
		if err != nil {
			return domain.CategoryReport{}, err
		}
		emotional = report.Category
	}

	physical := scoring.PhysicalWellness(in.Fitness)
	productivity := scoring.ProductivityBalance(in.Activity)
	return domain.CategoryReport{
		OverallScore:       scoring.OverallScore(productivity.Score, physical.Score, emotional.Score),
		EmotionalStability: emotional,
		Productivity:       productivity,
		PhysicalWellness:   physical,
	}, nil
}

// AnalyzeJournal labels a journal entry. Failures degrade to Stoic.
func (s *Insights) AnalyzeJournal(ctx context.Context, content string) (domain.JournalMood, error) {
	if s.journal == nil {
		return domain.JournalStoic, nil
	}
	mood, err := s.journal.AnalyzeJournal(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("WARN service: journal analysis failed: %v", err)
		return domain.JournalStoic, nil
	}
	return mood, nil
}

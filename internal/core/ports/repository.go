package ports

import (
	"context"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

// HistoryRepository stores one TimeSeriesPoint per user per day.
type HistoryRepository interface {
	// LoadHistory returns points with from <= date <= to, oldest first.
	LoadHistory(ctx context.Context, userID, from, to string) ([]domain.TimeSeriesPoint, error)
	// LoadPoint returns the point stored for date or domain.ErrNotFound.
	LoadPoint(ctx context.Context, userID, date string) (domain.StoredPoint, error)
	// SavePoint upserts p unless the stored point for its day is final, and
	// reports whether it wrote. The check and the write are one statement.
	SavePoint(ctx context.Context, userID string, p domain.StoredPoint) (bool, error)
}

// PlayRepository keeps the raw plays behind the daily points so a day can be
// re-aggregated after the provider's recent window has moved past them.
type PlayRepository interface {
	// SavePlays stores plays, ignoring any already stored at the same instant.
	SavePlays(ctx context.Context, userID string, plays []domain.Play) error
	// ListPlays returns plays with from <= PlayedAt < to, oldest first.
	ListPlays(ctx context.Context, userID string, from, to time.Time) ([]domain.Play, error)
}

type EmotionRepository interface {
	// AppendEmotion stores s, assigning an ID when it has none.
	AppendEmotion(ctx context.Context, userID string, s domain.EmotionSample) (domain.EmotionSample, error)
	// ListEmotions returns samples at or after since, oldest first.
	ListEmotions(ctx context.Context, userID string, since time.Time) ([]domain.EmotionSample, error)
}

type ScreenTimeRepository interface {
	AddActiveSeconds(ctx context.Context, userID, day string, seconds int64) (int64, error)
	ActiveSeconds(ctx context.Context, userID, day string) (int64, error)
}

// Store is the full persistence surface the Insights service needs.
type Store interface {
	HistoryRepository
	PlayRepository
	EmotionRepository
	ScreenTimeRepository
}

// Package sqlite provides a SQLite-backed implementation of the store ports.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements ports.Store for SQLite
type Adapter struct {
	db              *sql.DB
	emotionCapacity int
}

var _ ports.Store = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithEmotionCapacity caps how many emotion samples are retained per user.
// Older samples are pruned on append.
func WithEmotionCapacity(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.emotionCapacity = n
		}
	}
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string, opts ...Option) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db, emotionCapacity: domain.DefaultEmotionLogCapacity}
	for _, opt := range opts {
		opt(adapter)
	}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS listening_days (
		user_id TEXT NOT NULL,
		day TEXT NOT NULL,
		total_minutes REAL NOT NULL,
		final INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, day)
	);

	CREATE TABLE IF NOT EXISTS plays (
		user_id TEXT NOT NULL,
		played_at_ms INTEGER NOT NULL,
		track_id TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		PRIMARY KEY (user_id, played_at_ms)
	);

	CREATE TABLE IF NOT EXISTS emotion_samples (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ts_ms INTEGER NOT NULL,
		label TEXT NOT NULL,
		confidence REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_emotion_samples_user_ts ON emotion_samples (user_id, ts_ms);

	CREATE TABLE IF NOT EXISTS screen_time (
		user_id TEXT NOT NULL,
		day TEXT NOT NULL,
		active_seconds INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, day)
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	// columns added after the first release
	if _, err := a.db.Exec("ALTER TABLE listening_days ADD COLUMN final INTEGER NOT NULL DEFAULT 0"); err != nil {
		if !isDuplicateColumnError(err) {
			return err
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "duplicate column") || strings.Contains(err.Error(), "already exists"))
}

// LoadHistory returns the user's daily points with from <= day <= to.
func (a *Adapter) LoadHistory(ctx context.Context, userID, from, to string) ([]domain.TimeSeriesPoint, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT day, total_minutes
		FROM listening_days
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	points := []domain.TimeSeriesPoint{}
	for rows.Next() {
		var p domain.TimeSeriesPoint
		if err := rows.Scan(&p.Date, &p.TotalDurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan history point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return points, nil
}

// LoadPoint returns the user's point for date, or domain.ErrNotFound.
func (a *Adapter) LoadPoint(ctx context.Context, userID, date string) (domain.StoredPoint, error) {
	p := domain.StoredPoint{TimeSeriesPoint: domain.TimeSeriesPoint{Date: date}}
	err := a.db.QueryRowContext(ctx, `
		SELECT total_minutes, final
		FROM listening_days
		WHERE user_id = ? AND day = ?
	`, userID, date).Scan(&p.TotalDurationMinutes, &p.Final)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredPoint{}, fmt.Errorf("point %s: %w", date, domain.ErrNotFound)
	}
	if err != nil {
		return domain.StoredPoint{}, fmt.Errorf("failed to load point %s: %w", date, err)
	}
	return p, nil
}

// SavePoint upserts the user's point for p.Date. A stored final point is left
// untouched and SavePoint reports false.
func (a *Adapter) SavePoint(ctx context.Context, userID string, p domain.StoredPoint) (bool, error) {
	query := `
		INSERT INTO listening_days (user_id, day, total_minutes, final)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			total_minutes=excluded.total_minutes,
			final=excluded.final
		WHERE listening_days.final = 0;
	`
	res, err := a.db.ExecContext(ctx, query, userID, p.Date, p.TotalDurationMinutes, p.Final)
	if err != nil {
		return false, fmt.Errorf("failed to save point %s: %w", p.Date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected for %s: %w", p.Date, err)
	}
	return n > 0, nil
}

// SavePlays stores plays keyed by their instant; replays of a stored play are ignored.
func (a *Adapter) SavePlays(ctx context.Context, userID string, plays []domain.Play) error {
	if len(plays) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO plays (user_id, played_at_ms, track_id, title, artist, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare play insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plays {
		if _, err := stmt.ExecContext(ctx, userID, p.PlayedAt.UnixMilli(), p.TrackID, p.Title, p.Artist, p.DurationMs); err != nil {
			return fmt.Errorf("failed to insert play %s: %w", p.TrackID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// ListPlays returns the user's plays with from <= PlayedAt < to, oldest first.
func (a *Adapter) ListPlays(ctx context.Context, userID string, from, to time.Time) ([]domain.Play, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT played_at_ms, track_id, title, artist, duration_ms
		FROM plays
		WHERE user_id = ? AND played_at_ms >= ? AND played_at_ms < ?
		ORDER BY played_at_ms ASC
	`, userID, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list plays: %w", err)
	}
	defer rows.Close()

	plays := []domain.Play{}
	for rows.Next() {
		var (
			p    domain.Play
			atMs int64
		)
		if err := rows.Scan(&atMs, &p.TrackID, &p.Title, &p.Artist, &p.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		p.PlayedAt = time.UnixMilli(atMs).UTC()
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plays: %w", err)
	}
	return plays, nil
}

// AppendEmotion stores s and prunes the user's oldest samples past capacity.
func (a *Adapter) AppendEmotion(ctx context.Context, userID string, s domain.EmotionSample) (domain.EmotionSample, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.EmotionSample{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO emotion_samples (id, user_id, ts_ms, label, confidence)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, userID, s.Timestamp.UnixMilli(), string(s.Label), s.Confidence); err != nil {
		return domain.EmotionSample{}, fmt.Errorf("failed to insert emotion sample: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM emotion_samples
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM emotion_samples
			WHERE user_id = ?
			ORDER BY ts_ms DESC, rowid DESC
			LIMIT ?
		)
	`, userID, userID, a.emotionCapacity); err != nil {
		return domain.EmotionSample{}, fmt.Errorf("failed to prune emotion samples: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.EmotionSample{}, fmt.Errorf("transaction commit failed: %w", err)
	}
	return s, nil
}

// ListEmotions returns the user's samples at or after since, oldest first.
func (a *Adapter) ListEmotions(ctx context.Context, userID string, since time.Time) ([]domain.EmotionSample, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, ts_ms, label, confidence
		FROM emotion_samples
		WHERE user_id = ? AND ts_ms >= ?
		ORDER BY ts_ms ASC, rowid ASC
	`, userID, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list emotions: %w", err)
	}
	defer rows.Close()

	samples := []domain.EmotionSample{}
	for rows.Next() {
		var (
			s     domain.EmotionSample
			tsMs  int64
			label string
		)
		if err := rows.Scan(&s.ID, &tsMs, &label, &s.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan emotion sample: %w", err)
		}
		s.Timestamp = time.UnixMilli(tsMs).UTC()
		s.Label = domain.Emotion(label)
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emotions: %w", err)
	}
	return samples, nil
}

// AddActiveSeconds increments the user's counter for day and returns the new total.
func (a *Adapter) AddActiveSeconds(ctx context.Context, userID, day string, seconds int64) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO screen_time (user_id, day, active_seconds)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			active_seconds=active_seconds + excluded.active_seconds;
	`, userID, day, seconds); err != nil {
		return 0, fmt.Errorf("failed to add screen time: %w", err)
	}

	var total int64
	if err := tx.QueryRowContext(ctx, "SELECT active_seconds FROM screen_time WHERE user_id = ? AND day = ?", userID, day).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to read screen time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("transaction commit failed: %w", err)
	}
	return total, nil
}

// ActiveSeconds returns the user's counter for day, zero when none is stored.
func (a *Adapter) ActiveSeconds(ctx context.Context, userID, day string) (int64, error) {
	var total int64
	err := a.db.QueryRowContext(ctx, "SELECT active_seconds FROM screen_time WHERE user_id = ? AND day = ?", userID, day).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load screen time: %w", err)
	}
	return total, nil
}

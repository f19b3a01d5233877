package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
)

var _ ports.Store = (*Adapter)(nil)

func newTestAdapter(t *testing.T, opts ...Option) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:", opts...)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAdapter_LoadHistory(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		from, to string
		want     []domain.TimeSeriesPoint
	}{
		{
			name:   "returns range oldest first",
			userID: "u1",
			from:   "2024-03-01",
			to:     "2024-03-03",
			want: []domain.TimeSeriesPoint{
				{Date: "2024-03-01", TotalDurationMinutes: 30},
				{Date: "2024-03-02", TotalDurationMinutes: 45.5},
				{Date: "2024-03-03", TotalDurationMinutes: 0},
			},
		},
		{
			name:   "range bounds are inclusive",
			userID: "u1",
			from:   "2024-03-02",
			to:     "2024-03-02",
			want:   []domain.TimeSeriesPoint{{Date: "2024-03-02", TotalDurationMinutes: 45.5}},
		},
		{
			name:   "other users are isolated",
			userID: "u2",
			from:   "2024-01-01",
			to:     "2024-12-31",
			want:   []domain.TimeSeriesPoint{{Date: "2024-03-01", TotalDurationMinutes: 99}},
		},
		{
			name:   "empty range",
			userID: "u1",
			from:   "2025-01-01",
			to:     "2025-01-31",
			want:   []domain.TimeSeriesPoint{},
		},
	}

	a := newTestAdapter(t)
	ctx := context.Background()
	seed := map[string][]domain.TimeSeriesPoint{
		"u1": {
			{Date: "2024-03-03", TotalDurationMinutes: 0},
			{Date: "2024-03-01", TotalDurationMinutes: 30},
			{Date: "2024-03-02", TotalDurationMinutes: 45.5},
			{Date: "2024-03-04", TotalDurationMinutes: 80},
		},
		"u2": {{Date: "2024-03-01", TotalDurationMinutes: 99}},
	}
	for userID, points := range seed {
		for _, p := range points {
			if _, err := a.SavePoint(ctx, userID, domain.StoredPoint{TimeSeriesPoint: p}); err != nil {
				t.Fatalf("save point: %v", err)
			}
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.LoadHistory(ctx, tt.userID, tt.from, tt.to)
			if err != nil {
				t.Fatalf("load history: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d points, got %d (%+v)", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i].Date != tt.want[i].Date || !floatEquals(got[i].TotalDurationMinutes, tt.want[i].TotalDurationMinutes, 1e-9) {
					t.Fatalf("point %d: want %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestAdapter_SavePointUpserts(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	for _, minutes := range []float64{10, 25} {
		saved, err := a.SavePoint(ctx, "u1", domain.StoredPoint{TimeSeriesPoint: domain.TimeSeriesPoint{Date: "2024-03-01", TotalDurationMinutes: minutes}})
		if err != nil {
			t.Fatalf("save point: %v", err)
		}
		if !saved {
			t.Fatalf("expected open point %v to be written", minutes)
		}
	}
	got, err := a.LoadHistory(ctx, "u1", "2024-03-01", "2024-03-01")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(got) != 1 || got[0].TotalDurationMinutes != 25 {
		t.Fatalf("expected single updated point, got %+v", got)
	}
}

func TestAdapter_SavePointKeepsFinal(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	point := func(minutes float64, final bool) domain.StoredPoint {
		return domain.StoredPoint{TimeSeriesPoint: domain.TimeSeriesPoint{Date: "2024-03-09", TotalDurationMinutes: minutes}, Final: final}
	}

	steps := []struct {
		name      string
		point     domain.StoredPoint
		wantSaved bool
		want      domain.StoredPoint
	}{
		{"open point is written", point(60, false), true, point(60, false)},
		{"open point is finalized", point(150, true), true, point(150, true)},
		{"final point ignores open write", point(20, false), false, point(150, true)},
		{"final point ignores final write", point(30, true), false, point(150, true)},
	}
	for _, step := range steps {
		saved, err := a.SavePoint(ctx, "u1", step.point)
		if err != nil {
			t.Fatalf("%s: save point: %v", step.name, err)
		}
		if saved != step.wantSaved {
			t.Fatalf("%s: saved = %v, want %v", step.name, saved, step.wantSaved)
		}
		got, err := a.LoadPoint(ctx, "u1", "2024-03-09")
		if err != nil {
			t.Fatalf("%s: load point: %v", step.name, err)
		}
		if got != step.want {
			t.Fatalf("%s: got %+v, want %+v", step.name, got, step.want)
		}
	}
}

func TestAdapter_LoadPointMissing(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.LoadPoint(context.Background(), "u1", "2024-03-09")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdapter_Plays(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 9, 22, 0, 0, 0, time.UTC)

	first := []domain.Play{
		{TrackID: "t1", Title: "One", Artist: "A", DurationMs: 3_600_000, PlayedAt: base},
	}
	second := []domain.Play{
		{TrackID: "t1", Title: "One", Artist: "A", DurationMs: 3_600_000, PlayedAt: base},
		{TrackID: "t2", Title: "Two", Artist: "B", DurationMs: 5_400_000, PlayedAt: base.Add(time.Hour)},
		{TrackID: "t3", Title: "Three", Artist: "C", DurationMs: 60_000, PlayedAt: base.Add(3 * time.Hour)},
	}
	for _, batch := range [][]domain.Play{first, second, nil} {
		if err := a.SavePlays(ctx, "u1", batch); err != nil {
			t.Fatalf("save plays: %v", err)
		}
	}
	if err := a.SavePlays(ctx, "u2", first); err != nil {
		t.Fatalf("save plays for u2: %v", err)
	}

	got, err := a.ListPlays(ctx, "u1", base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("list plays: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 plays in range, got %+v", got)
	}
	if got[0].TrackID != "t1" || got[1].TrackID != "t2" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !got[1].PlayedAt.Equal(base.Add(time.Hour)) || got[1].DurationMs != 5_400_000 || got[1].Artist != "B" {
		t.Fatalf("play not round-tripped: %+v", got[1])
	}
}

func TestAdapter_Emotions(t *testing.T) {
	a := newTestAdapter(t, WithEmotionCapacity(3))
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	labels := []domain.Emotion{domain.EmotionHappy, domain.EmotionSad, domain.EmotionNeutral, domain.EmotionAngry}
	for i, label := range labels {
		saved, err := a.AppendEmotion(ctx, "u1", domain.EmotionSample{
			Timestamp:  start.Add(time.Duration(i) * time.Minute),
			Label:      label,
			Confidence: 0.75,
		})
		if err != nil {
			t.Fatalf("append emotion: %v", err)
		}
		if saved.ID == "" {
			t.Fatal("expected generated ID")
		}
	}
	if _, err := a.AppendEmotion(ctx, "u2", domain.EmotionSample{Timestamp: start, Label: domain.EmotionFear, Confidence: 1}); err != nil {
		t.Fatalf("append emotion: %v", err)
	}

	t.Run("oldest samples are evicted past capacity", func(t *testing.T) {
		got, err := a.ListEmotions(ctx, "u1", time.Time{})
		if err != nil {
			t.Fatalf("list emotions: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 samples, got %d", len(got))
		}
		if got[0].Label != domain.EmotionSad || got[2].Label != domain.EmotionAngry {
			t.Fatalf("unexpected order %+v", got)
		}
		if !got[0].Timestamp.Equal(start.Add(time.Minute)) || got[0].Confidence != 0.75 {
			t.Fatalf("unexpected sample %+v", got[0])
		}
	})

	t.Run("since filters inclusively", func(t *testing.T) {
		got, err := a.ListEmotions(ctx, "u1", start.Add(2*time.Minute))
		if err != nil {
			t.Fatalf("list emotions: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(got))
		}
	})

	t.Run("capacity is per user", func(t *testing.T) {
		got, err := a.ListEmotions(ctx, "u2", time.Time{})
		if err != nil {
			t.Fatalf("list emotions: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(got))
		}
	})
}

func TestAdapter_ScreenTime(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	got, err := a.ActiveSeconds(ctx, "u1", "2024-03-01")
	if err != nil || got != 0 {
		t.Fatalf("expected 0 for unknown day, got %d (%v)", got, err)
	}

	for _, add := range []int64{3600, 1200} {
		if _, err := a.AddActiveSeconds(ctx, "u1", "2024-03-01", add); err != nil {
			t.Fatalf("add active seconds: %v", err)
		}
	}
	total, err := a.AddActiveSeconds(ctx, "u1", "2024-03-01", 0)
	if err != nil || total != 4800 {
		t.Fatalf("expected total 4800, got %d (%v)", total, err)
	}

	got, err = a.ActiveSeconds(ctx, "u1", "2024-03-02")
	if err != nil || got != 0 {
		t.Fatalf("expected days to be separate, got %d (%v)", got, err)
	}
}

func TestAdapter_ReopenRunsMigrationsAgain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cognia.db")
	a, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if _, err := a.SavePoint(context.Background(), "u1", domain.StoredPoint{TimeSeriesPoint: domain.TimeSeriesPoint{Date: "2024-03-01", TotalDurationMinutes: 12}, Final: true}); err != nil {
		t.Fatalf("save point: %v", err)
	}
	a.Close()

	b, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("reopen adapter: %v", err)
	}
	defer b.Close()
	got, err := b.LoadPoint(context.Background(), "u1", "2024-03-01")
	if err != nil || got.TotalDurationMinutes != 12 || !got.Final {
		t.Fatalf("expected persisted final point, got %+v (%v)", got, err)
	}
}

func floatEquals(a, b, tol float64) bool {
	if a == b {
		return true
	}
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}

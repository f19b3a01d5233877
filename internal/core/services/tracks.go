package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

// ClassifyTracks resolves a mood for every track. The cache is consulted
// first, then the model for the first few tracks, then the feature classifier.
// A model answer of Stoic is treated as no answer.
func (s *Insights) ClassifyTracks(ctx context.Context, tracks []domain.Track) (domain.TrackReport, error) {
	for i, t := range tracks {
		if t.Features == nil {
			continue
		}
		if err := t.Features.Validate(); err != nil {
			var invalid *domain.InvalidInputError
			if errors.As(err, &invalid) {
				invalid.Field = fmt.Sprintf("tracks[%d].features.%s", i, invalid.Field)
			}
			return domain.TrackReport{}, err
		}
	}

	out := domain.TrackReport{Tracks: make([]domain.ClassifiedTrack, 0, len(tracks))}
	moods := make([]domain.Mood, 0, len(tracks))
	for i, t := range tracks {
		mood, source := s.resolveMood(ctx, i, t)
		out.Tracks = append(out.Tracks, domain.ClassifiedTrack{
			Track:       t,
			Mood:        mood,
			MoodSource:  source,
			Signature:   scoring.SonicSignature(t.Features, t.Title, t.Artist),
			Description: scoring.DescribeAudioFeatures(t.Features),
		})
		moods = append(moods, mood)
	}
	out.Distribution = scoring.MoodDistribution(moods)
	return out, nil
}

func (s *Insights) resolveMood(ctx context.Context, index int, t domain.Track) (domain.Mood, domain.MoodSource) {
	key := MoodKey(t.Title, t.Artist)
	if s.cache != nil {
		if mood, ok := s.cache.Get(key); ok {
			return mood, domain.MoodSourceCache
		}
	}

	if s.inferrer != nil && index < modelTrackLimit && ctx.Err() == nil {
		mood, err := s.inferrer.InferMood(ctx, t.Title, t.Artist)
		switch {
		case err != nil:
			log.Printf("WARN service: mood inference failed for %q: %v", key, err)
		case mood != domain.MoodStoic:
			if s.cache != nil {
				s.cache.Set(key, mood)
			}
			return mood, domain.MoodSourceModel
		}
	}

	source := domain.MoodSourceFeatures
	if t.Features == nil {
		source = domain.MoodSourceFallback
	}
	return scoring.ClassifyTrack(t.Features, t.Title, t.Artist), source
}

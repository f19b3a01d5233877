package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

// ErrUnrecognizedMood indicates a model answer outside the closed label set.
var ErrUnrecognizedMood = errors.New("unrecognized mood")

// UnrecognizedMoodError carries the raw model answer that failed to parse.
type UnrecognizedMoodError struct {
	Raw string
}

func (e UnrecognizedMoodError) Error() string {
	if e.Raw == "" {
		return ErrUnrecognizedMood.Error()
	}
	return fmt.Sprintf("unrecognized mood %q", e.Raw)
}

func (e UnrecognizedMoodError) Is(target error) bool {
	return target == ErrUnrecognizedMood
}

// MoodInferrer labels a track from its title and artist alone.
type MoodInferrer interface {
	InferMood(ctx context.Context, title, artist string) (domain.Mood, error)
}

// JournalAnalyzer labels the sentiment of a free-text journal entry.
type JournalAnalyzer interface {
	AnalyzeJournal(ctx context.Context, content string) (domain.JournalMood, error)
}

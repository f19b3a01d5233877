package ollama

import (
	"context"
	"os"
	"testing"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

// TestClient_Integration tests against a live Ollama instance.
// This test is skipped unless RUN_AI_TESTS=true is set.
func TestClient_Integration(t *testing.T) {
	if os.Getenv("RUN_AI_TESTS") != "true" {
		t.Skip("Skipping AI-dependent test (set RUN_AI_TESTS=true to enable)")
	}

	ollamaHost := os.Getenv("OLLAMA_HOST")
	if ollamaHost == "" {
		ollamaHost = "http://localhost:11434"
	}

	client := NewClient(ollamaHost, WithModel(os.Getenv("OLLAMA_MODEL")))

	t.Run("track mood", func(t *testing.T) {
		mood, err := client.InferMood(context.Background(), "Weightless", "Marconi Union")
		if err != nil {
			t.Fatalf("InferMood() error = %v", err)
		}
		if _, ok := domain.ParseMood(string(mood)); !ok {
			t.Errorf("mood %q outside the label set", mood)
		}
		t.Logf("Mood: %s", mood)
	})

	t.Run("journal sentiment", func(t *testing.T) {
		mood, err := client.AnalyzeJournal(context.Background(), "Spent the whole afternoon hiking along the ridge, the air was crisp.")
		if err != nil {
			t.Fatalf("AnalyzeJournal() error = %v", err)
		}
		if _, ok := domain.ParseJournalMood(string(mood)); !ok {
			t.Errorf("mood %q outside the label set", mood)
		}
		t.Logf("Journal mood: %s", mood)
	})
}

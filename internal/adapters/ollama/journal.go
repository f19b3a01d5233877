package ollama

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const (
	minJournalLength = 5
	maxJournalRunes  = 1000
)

const journalPromptTemplate = `You are a sensitive emotional intelligence assistant.
Analyze the following personal journal entry and determine the primary emotional resonance.

Journal Entry Snippet:
%q

Choose exactly one mood from this list:
- Calm (relaxed, peaceful, serene)
- Joy (happy, grateful, optimistic)
- Focus (productive, determined, thinking deeply)
- Nature (reflective of outdoors, growth, or groundedness)
- Melancholic (sad, lonely, low energy reflection)
- Intense (stressed, anxious, extremely excited, or angry)
- Stoic (neutral, factual, purely observational)

Return ONLY the single word from the list. No punctuation. No explanation.

Mood:`

var (
	htmlTag            = regexp.MustCompile(`<[^>]*>?`)
	journalAnswerNoise = strings.NewReplacer("#", "", ".", "", "_", "", "*", "")
)

// AnalyzeJournal labels a journal entry. Entries too short to read and
// answers outside the label set are Stoic.
func (c *Client) AnalyzeJournal(ctx context.Context, content string) (domain.JournalMood, error) {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < minJournalLength {
		return domain.JournalStoic, nil
	}

	raw, err := c.generate(ctx, fmt.Sprintf(journalPromptTemplate, prepareJournal(content)))
	if err != nil {
		return "", err
	}
	return parseJournalAnswer(raw), nil
}

// prepareJournal strips markup from editor output and bounds the prompt size.
func prepareJournal(content string) string {
	plain := htmlTag.ReplaceAllString(content, "")
	if utf8.RuneCountInString(plain) > maxJournalRunes {
		plain = string([]rune(plain)[:maxJournalRunes])
	}
	return plain
}

func parseJournalAnswer(raw string) domain.JournalMood {
	clean := journalAnswerNoise.Replace(strings.ToLower(strings.TrimSpace(raw)))
	for _, m := range domain.JournalMoods {
		if strings.Contains(clean, strings.ToLower(string(m))) {
			return m
		}
	}
	return domain.JournalStoic
}

package ollama

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
)

const moodPromptTemplate = `You are a Music Analyst for a well-being application.
Infer the dominant perceived mood of a track based on how it typically feels to listeners.

Track: %q by %q

Weigh these signals in order: energy and tempo, sonic texture, overall emotional tone,
and genre conventions only when the audio cues are ambiguous.

Choose exactly one mood from this list:
- Euphoric (high energy, expansive, uplifting, soaring)
- Peaceful (very calm, ambient, meditative)
- Aggressive (angry, heavy, confrontational)
- Melancholic (consistently sad, slow, emotionally heavy)
- Intense (fast, tense, dramatic, adrenaline-driven)
- Chill (laid-back, smooth, lo-fi, shoegaze, relaxed)
- Positive (upbeat, light, catchy, good-vibes)
- Stoic (emotionally neutral, restrained, serious)

Heavy does not mean sad. If several moods apply choose the one a casual listener feels first,
and between two prefer the higher-energy one.

Return ONLY the single mood word. No explanation, no punctuation.`

// moodPreference is the order answer tokens are matched in.
var moodPreference = []domain.Mood{
	domain.MoodEuphoric,
	domain.MoodPeaceful,
	domain.MoodAggressive,
	domain.MoodMelancholic,
	domain.MoodIntense,
	domain.MoodChill,
	domain.MoodPositive,
	domain.MoodStoic,
}

var moodAnswerNoise = strings.NewReplacer("*", " ", "_", " ", `"`, " ", "`", " ", ".", " ")

// InferMood asks the model for a track's mood. Answers outside the closed set
// return an error matching ports.ErrUnrecognizedMood.
func (c *Client) InferMood(ctx context.Context, title, artist string) (domain.Mood, error) {
	raw, err := c.generate(ctx, fmt.Sprintf(moodPromptTemplate, title, artist))
	if err != nil {
		return "", err
	}

	mood, ok := parseMoodAnswer(raw)
	if !ok {
		log.Printf("WARN ollama: could not parse mood from %q", strings.TrimSpace(raw))
		return "", fmt.Errorf("ollama: %w", ports.UnrecognizedMoodError{Raw: strings.TrimSpace(raw)})
	}
	return mood, nil
}

// parseMoodAnswer matches whole words only, so "unchill" is not Chill.
func parseMoodAnswer(raw string) (domain.Mood, bool) {
	tokens := strings.Fields(moodAnswerNoise.Replace(strings.ToLower(raw)))
	words := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		words[t] = true
	}
	for _, m := range moodPreference {
		if words[strings.ToLower(string(m))] {
			return m, true
		}
	}
	return "", false
}

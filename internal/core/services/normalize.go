package services

import (
	"strings"
	"unicode"
)

// noiseTokens are release-variant words that should not split the cache
// between versions of the same song.
var noiseTokens = map[string]struct{}{
	"clean":      {},
	"deluxe":     {},
	"edition":    {},
	"edit":       {},
	"explicit":   {},
	"feat":       {},
	"featuring":  {},
	"ft":         {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"stereo":     {},
	"version":    {},
}

// MoodKey is the mood cache key for a track: normalized "title-artist".
func MoodKey(title, artist string) string {
	return normalizeTrackText(title) + "-" + normalizeTrackText(artist)
}

// normalizeTrackText lowercases input, drops bracketed segments, punctuation
// and noise tokens. Input that normalizes to nothing is kept lowercased.
func normalizeTrackText(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	tokens := strings.Fields(cleanSeparators(stripBracketedSegments(lower)))

	cleaned := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, drop := noiseTokens[token]; drop {
			continue
		}
		cleaned = append(cleaned, token)
	}
	if len(cleaned) == 0 {
		return lower
	}
	return strings.Join(cleaned, " ")
}

func stripBracketedSegments(input string) string {
	var out strings.Builder
	depth := 0
	for _, r := range input {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

func cleanSeparators(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}
	return out.String()
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

func printHeader(w io.Writer, title string) {
	headerColor.Fprintf(w, "\n%s\n", title)
	dimColor.Fprintln(w, strings.Repeat("-", len(title)+2))
}

func printField(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "  %-14s", label+":")
	fmt.Fprintf(w, " %s\n", value)
}

func printFieldColored(w io.Writer, label, value string, c *color.Color) {
	labelColor.Fprintf(w, "  %-14s", label+":")
	fmt.Fprint(w, " ")
	c.Fprintln(w, value)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSONFile decodes path into dst; "-" reads stdin.
func readJSONFile(path string, stdin io.Reader, dst any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// scoreColor grades a 0-100 score.
func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= 60:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func wellbeingColor(status domain.WellbeingStatus) *color.Color {
	switch status {
	case domain.StatusStable:
		return color.New(color.FgGreen)
	case domain.StatusFluctuating:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func categoryColor(status domain.CategoryStatus) *color.Color {
	switch status {
	case domain.CategoryExcellent, domain.CategoryGood:
		return color.New(color.FgGreen)
	case domain.CategoryFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

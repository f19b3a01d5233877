package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

func newEmotionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "Score the stability of a set of emotion detections",
		Long: `Score emotion detections from a JSON array of
{"timestamp": RFC3339, "label": "happy", "confidence": 0.9}.`,
		RunE: runEmotions,
	}
	cmd.Flags().String("file", "", "Emotion samples JSON file (use '-' for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runEmotions(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	var samples []domain.EmotionSample
	if err := readJSONFile(path, cmd.InOrStdin(), &samples); err != nil {
		return err
	}
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("samples[%d]: %w", i, err)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Timestamp.Before(samples[j].Timestamp) })

	score := scoring.EmotionStability(samples)
	percentages := scoring.EmotionPercentages(samples)
	report := domain.EmotionReport{
		Samples:     len(samples),
		Score:       score,
		Percentages: percentages,
		Category:    scoring.EmotionalStabilityCategory(score, percentages),
	}

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return printJSON(out, report)
	}

	printHeader(out, "Emotional stability")
	printField(out, "Samples", fmt.Sprintf("%d", report.Samples))
	printFieldColored(out, "Score", fmt.Sprintf("%d", report.Score), scoreColor(report.Score))
	printFieldColored(out, "Status", string(report.Category.Status), categoryColor(report.Category.Status))

	labels := make([]string, 0, len(percentages))
	for label := range percentages {
		labels = append(labels, string(label))
	}
	sort.Strings(labels)
	for _, label := range labels {
		printField(out, label, fmt.Sprintf("%d%%", percentages[domain.Emotion(label)]))
	}
	fmt.Fprintln(out)
	return nil
}

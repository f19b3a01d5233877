package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

func newWellbeingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellbeing",
		Short: "Aggregate a wellbeing history into a status and trend",
		Long: `Aggregate a JSON array of
{"timestamp": RFC3339, "dominantEmotion": "sad", "confidence": 0.7}.`,
		RunE: runWellbeing,
	}
	cmd.Flags().String("file", "", "Wellbeing samples JSON file (use '-' for stdin)")
	cmd.Flags().Float64("active", 0, "Active screen time today, in seconds")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runWellbeing(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	active, _ := cmd.Flags().GetFloat64("active")
	if err := domain.ValidateActiveSeconds(active); err != nil {
		return err
	}

	var history []domain.WellbeingSample
	if err := readJSONFile(path, cmd.InOrStdin(), &history); err != nil {
		return err
	}
	for i, s := range history {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("history[%d]: %w", i, err)
		}
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Timestamp.Before(history[j].Timestamp) })

	indicator := scoring.AggregateWellbeing(history, active)

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return printJSON(out, indicator)
	}

	printHeader(out, "Wellbeing")
	printFieldColored(out, "Status", string(indicator.Status), wellbeingColor(indicator.Status))
	printFieldColored(out, "Score", fmt.Sprintf("%d", indicator.Score), scoreColor(indicator.Score))
	printField(out, "Trend", string(indicator.Trend))
	fmt.Fprintf(out, "\n  %s\n\n", indicator.Explanation)
	return nil
}

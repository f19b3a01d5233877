package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

func newListeningCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listening",
		Short: "Score today's listening time against a history of daily points",
		Long: `Score a day's listening minutes against the baseline of a history file.

The history file is a JSON array of {"date": "YYYY-MM-DD", "totalDurationMinutes": N}.
Points on or after --date are ignored.`,
		RunE: runListening,
	}
	cmd.Flags().String("history", "", "History JSON file (use '-' for stdin)")
	cmd.Flags().Float64("current", 0, "Minutes listened on --date")
	cmd.Flags().String("date", "", "Day being scored, YYYY-MM-DD (default today)")
	cmd.Flags().Int("trend", 3, "Points in the recent trend, including the current day")
	_ = cmd.MarkFlagRequired("history")
	return cmd
}

type listeningResult struct {
	Current  domain.TimeSeriesPoint `json:"current"`
	Baseline *domain.Baseline       `json:"baseline"`
	Result   domain.StabilityResult `json:"result"`
}

func runListening(cmd *cobra.Command, args []string) error {
	if err := requireFlag(cmd, "current"); err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("history")
	minutes, _ := cmd.Flags().GetFloat64("current")
	date, _ := cmd.Flags().GetString("date")
	trend, _ := cmd.Flags().GetInt("trend")
	if date == "" {
		date = domain.Day(time.Now())
	}
	if trend < 1 {
		return fmt.Errorf("--trend must be at least 1")
	}

	var points []domain.TimeSeriesPoint
	if err := readJSONFile(path, cmd.InOrStdin(), &points); err != nil {
		return err
	}
	current := domain.TimeSeriesPoint{Date: date, TotalDurationMinutes: minutes}
	if err := current.Validate(); err != nil {
		return err
	}

	history := make([]domain.TimeSeriesPoint, 0, len(points))
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("history[%d]: %w", i, err)
		}
		if p.Date < date {
			history = append(history, p)
		}
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })

	baseline := scoring.ComputeBaseline(history)
	res := listeningResult{
		Current:  current,
		Baseline: baseline,
		Result:   scoring.AnalyzeStability(current, baseline, scoring.RecentTrend(history, current, trend)),
	}

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return printJSON(out, res)
	}

	printHeader(out, "Listening stability "+date)
	printField(out, "Minutes", fmt.Sprintf("%.0f", minutes))
	if baseline != nil {
		printField(out, "Baseline", fmt.Sprintf("%.1f ± %.1f min over %d day(s)", baseline.Mean, baseline.StdDev, len(history)))
	} else {
		printField(out, "Baseline", "none yet")
	}
	printFieldColored(out, "Score", fmt.Sprintf("%d", res.Result.Score), scoreColor(res.Result.Score))
	printField(out, "Confidence", fmt.Sprintf("%d%%", res.Result.Confidence))
	printField(out, "Z-score", fmt.Sprintf("%.2f", res.Result.ZScore))
	printField(out, "Sustained", fmt.Sprintf("%v", res.Result.IsDeviationSustained))
	fmt.Fprintf(out, "\n  %s\n\n", res.Result.Explanation)
	return nil
}

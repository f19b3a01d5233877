package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/scoring"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a track's mood from its audio features",
		Long: `Classify a track's mood. Without --valence and --energy the mood is
derived from --track and --artist alone.`,
		RunE: runClassify,
	}
	cmd.Flags().Float64("valence", 0, "Valence in [0,1]")
	cmd.Flags().Float64("energy", 0, "Energy in [0,1]")
	cmd.Flags().Float64("tempo", 120, "Tempo in BPM")
	cmd.Flags().Float64("acousticness", 0, "Acousticness in [0,1]")
	cmd.Flags().Float64("instrumentalness", 0, "Instrumentalness in [0,1]")
	cmd.Flags().String("track", "", "Track title")
	cmd.Flags().String("artist", "", "Artist name")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("track")
	artist, _ := cmd.Flags().GetString("artist")

	var features *domain.AudioFeatures
	hasValence, hasEnergy := cmd.Flags().Changed("valence"), cmd.Flags().Changed("energy")
	switch {
	case hasValence && hasEnergy:
		f := domain.AudioFeatures{}
		f.Valence, _ = cmd.Flags().GetFloat64("valence")
		f.Energy, _ = cmd.Flags().GetFloat64("energy")
		f.Tempo, _ = cmd.Flags().GetFloat64("tempo")
		f.Acousticness, _ = cmd.Flags().GetFloat64("acousticness")
		f.Instrumentalness, _ = cmd.Flags().GetFloat64("instrumentalness")
		if err := f.Validate(); err != nil {
			return err
		}
		features = &f
	case hasValence || hasEnergy:
		return fmt.Errorf("--valence and --energy must be given together")
	case title == "" && artist == "":
		return fmt.Errorf("provide --valence and --energy, or --track and --artist")
	}

	source := domain.MoodSourceFeatures
	if features == nil {
		source = domain.MoodSourceFallback
	}
	result := domain.ClassifiedTrack{
		Track:       domain.Track{Title: title, Artist: artist, Features: features},
		Mood:        scoring.ClassifyTrack(features, title, artist),
		MoodSource:  source,
		Signature:   scoring.SonicSignature(features, title, artist),
		Description: scoring.DescribeAudioFeatures(features),
	}

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return printJSON(out, result)
	}

	printHeader(out, "Mood classification")
	if title != "" || artist != "" {
		printField(out, "Track", fmt.Sprintf("%s - %s", title, artist))
	}
	printFieldColored(out, "Mood", string(result.Mood), color.New(color.FgMagenta, color.Bold))
	printField(out, "Source", string(result.MoodSource))
	printField(out, "Signature", result.Signature)
	printField(out, "Description", result.Description)
	fmt.Fprintln(out)
	return nil
}

// Package cli implements the cognia command line, which scores JSON exports
// offline with the same calculators the API uses.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cognia",
		Short: "Behavioral scoring from listening, emotion and wellbeing exports",
		Long: `Score behavioral data offline.

Examples:
  cognia listening --history history.json --current 140
  cognia emotions --file emotions.json
  cognia wellbeing --file wellbeing.json --active 9000
  cognia classify --valence 0.8 --energy 0.9 --tempo 128`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().Bool("json", false, "Print the raw result as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	}

	rootCmd.AddCommand(newListeningCmd())
	rootCmd.AddCommand(newEmotionsCmd())
	rootCmd.AddCommand(newWellbeingCmd())
	rootCmd.AddCommand(newClassifyCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func requireFlag(cmd *cobra.Command, name string) error {
	if !cmd.Flags().Changed(name) {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

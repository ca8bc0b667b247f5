package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/betform/betform/internal/analysis"
)

// analyzeCmd implements the 'betform analyze' command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [dataset]",
	Short: "Analyze completed betting opportunities and propose rule improvements",
	Long: `Analyze a previously exported opportunities dataset.

Runs seven fixed win/loss analyses over the dataset (by rule, by team rank,
by confidence band, by opponent rank difference, by loss-streak length, and
the live-red-card and consecutive-draws rules overall), then applies the
recommendation thresholds and prints the findings.

The dataset defaults to the exporter's conventional output file.

Example usage:
  betform analyze                              # Analyze the default artifact
  betform analyze my_export.csv                # Analyze a specific file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	datasetPath := cfg.Analysis.DatasetPath
	if len(args) == 1 {
		datasetPath = args[0]
	}

	_, err = analysis.NewRunner(datasetPath, cmd.OutOrStdout()).Run()
	if errors.Is(err, analysis.ErrDatasetNotFound) {
		// Reported, not escalated: no dataset means nothing to analyze.
		log.Error().Str("dataset", datasetPath).Msg("Dataset file not found")
		return nil
	}
	return err
}

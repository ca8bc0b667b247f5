package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/betform/betform/internal/config"
)

const (
	appName = "betform"
	version = "v0.6.2"
)

var configPath string

// rootCmd is the base command for the betform CLI
var rootCmd = &cobra.Command{
	Use:   "betform",
	Short: "Retrospective betting-rule performance analyzer",
	Long: `betform analyzes the historical performance of heuristic betting rules.

It exports completed betting opportunities from the bot's database, computes
multi-dimensional win/loss statistics over them and emits threshold-driven
recommendations for tightening or loosening the triggering rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", appName, version)
		fmt.Println("Use 'betform analyze' to analyze an exported dataset")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
}

// loadConfig returns the defaults when no --config is given.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

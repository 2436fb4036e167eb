package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/blongho/cap5610-project/internal/config"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "papersum",
	Short: "Segment and summarize research papers",
	Long: `papersum extracts the text of a research paper, splits it into its
canonical sections (abstract, introduction, methods, ...) and asks an
OpenAI-compatible model for a baseline or chain-of-thought summary.

Settings come from the same environment variables as the server; a YAML
file passed with --config overrides them.

Examples:
  papersum sections paper.pdf
  papersum summarize paper.pdf --section results --cot
  papersum evaluate --summary out.txt --reference gold.txt -o json`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "YAML config file overriding environment settings",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "log progress to stderr",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := parseFormat(outputFormat); err != nil {
			return err
		}
		return nil
	}

	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(evaluateCmd)
}

// loadConfig reads the environment and the optional --config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

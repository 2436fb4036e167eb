package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blongho/cap5610-project/internal/evaluate"
)

var (
	summaryPath   string
	referencePath string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a summary against a reference with ROUGE and BLEU",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, _ := parseFormat(outputFormat)
		return runEvaluate(cmd.OutOrStdout(), summaryPath, referencePath, f)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&summaryPath, "summary", "", "file holding the generated summary")
	evaluateCmd.Flags().StringVar(&referencePath, "reference", "", "file holding the reference summary")
	evaluateCmd.MarkFlagRequired("summary")
	evaluateCmd.MarkFlagRequired("reference")
}

func runEvaluate(w io.Writer, summaryFile, referenceFile string, f format) error {
	system, err := os.ReadFile(summaryFile)
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}
	reference, err := os.ReadFile(referenceFile)
	if err != nil {
		return fmt.Errorf("read reference: %w", err)
	}
	return writeOutput(w, f, evaluate.Evaluate(string(system), string(reference)))
}

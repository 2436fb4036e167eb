package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blongho/cap5610-project/internal/config"
	"github.com/blongho/cap5610-project/internal/summarize"
)

var (
	summarySection string
	summaryCoT     bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a paper or one of its sections",
	Long: `Summarize sends the paper text, or the body of a single section when
--section is given, to the configured model. --cot switches to the
chain-of-thought prompt and splits the answer into citation, reasoning
trace and final summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateLLM(); err != nil {
			return err
		}
		log := newLogger()
		client := summarize.NewClient(cfg.Summarize(), log)
		defer client.Close()

		f, _ := parseFormat(outputFormat)
		return runSummarize(cmd.Context(), cmd.OutOrStdout(), args[0], summarySection, summaryCoT, cfg, client, f, log)
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarySection, "section", "", "summarize only this section (e.g. results)")
	summarizeCmd.Flags().BoolVar(&summaryCoT, "cot", false, "use chain-of-thought prompting")
}

func runSummarize(ctx context.Context, w io.Writer, path, section string, useCoT bool, cfg config.Config, sum summarize.Summarizer, f format, log *slog.Logger) error {
	doc, err := loadDocument(path, cfg, log)
	if err != nil {
		return err
	}

	// Section labels are canonical lower-case.
	section = strings.ToLower(strings.TrimSpace(section))
	text := doc.Text
	if section != "" {
		body, ok := doc.Sections.Get(section)
		if !ok {
			return fmt.Errorf("section %q not found (have %v)", section, doc.Sections.Labels())
		}
		text = body
	}

	res, err := sum.Summarize(ctx, summarize.Request{
		Text:        text,
		SectionName: section,
		Mode:        summarize.ModeFor(useCoT),
	})
	if err != nil {
		return err
	}
	return writeOutput(w, f, res)
}

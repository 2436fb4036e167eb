package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/blongho/cap5610-project/internal/config"
	"github.com/blongho/cap5610-project/internal/sections"
)

var showBodies bool

type sectionsOutput struct {
	Path      string             `json:"path" yaml:"path"`
	PageCount int                `json:"page_count" yaml:"page_count"`
	CharCount int                `json:"char_count" yaml:"char_count"`
	Labels    []string           `json:"sections" yaml:"sections"`
	Bodies    []sections.Section `json:"bodies,omitempty" yaml:"bodies,omitempty"`
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "List the canonical sections found in a paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f, _ := parseFormat(outputFormat)
		return runSections(cmd.OutOrStdout(), args[0], cfg, f, showBodies, newLogger())
	},
}

func init() {
	sectionsCmd.Flags().BoolVar(&showBodies, "bodies", false, "include section bodies")
}

func runSections(w io.Writer, path string, cfg config.Config, f format, bodies bool, log *slog.Logger) error {
	doc, err := loadDocument(path, cfg, log)
	if err != nil {
		return err
	}
	out := sectionsOutput{
		Path:      doc.Path,
		PageCount: doc.PageCount,
		CharCount: doc.CharCount,
		Labels:    doc.Sections.Labels(),
	}
	if bodies {
		out.Bodies = doc.Sections
	}
	return writeOutput(w, f, out)
}

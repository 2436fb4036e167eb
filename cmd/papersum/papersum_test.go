package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/blongho/cap5610-project/internal/config"
	"github.com/blongho/cap5610-project/internal/parser/parsertest"
	"github.com/blongho/cap5610-project/internal/summarize"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.Config {
	return config.Config{
		Port:                   "8000",
		SectionDuplicatePolicy: "overwrite",
		PDFValidate:            true,
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type fakeSummarizer struct {
	got summarize.Request
}

func (f *fakeSummarizer) Summarize(ctx context.Context, req summarize.Request) (summarize.Result, error) {
	f.got = req
	return summarize.Result{ID: "id-1", Text: "summary of " + req.Text, Mode: req.Mode, Model: "fake"}, nil
}

func (f *fakeSummarizer) Model() string { return "fake" }

func TestRunSectionsText(t *testing.T) {
	path := writeFile(t, "paper.txt", []byte("Title line\nAbstract\nShort abstract.\n2. Methods\nWe did it.\n"))

	var out bytes.Buffer
	if err := runSections(&out, path, testConfig(), formatJSON, true, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Path      string `json:"path"`
		PageCount int    `json:"page_count"`
		Sections  []string
		Bodies    []struct {
			Label string `json:"label"`
			Body  string `json:"body"`
		} `json:"bodies"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if strings.Join(got.Sections, ",") != "abstract,methods" {
		t.Errorf("expected abstract,methods, got %v", got.Sections)
	}
	if got.PageCount != 1 || got.Path != path {
		t.Errorf("unexpected document fields: %+v", got)
	}
	if len(got.Bodies) != 2 || got.Bodies[1].Body != "We did it." {
		t.Errorf("unexpected bodies %+v", got.Bodies)
	}
}

func TestRunSectionsPDFYAML(t *testing.T) {
	path := writeFile(t, "paper.pdf", parsertest.BuildTextPDF("Introduction", "Body text.", "References"))

	var out bytes.Buffer
	if err := runSections(&out, path, testConfig(), formatYAML, false, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got["page_count"] != 3 {
		t.Errorf("expected page_count 3, got %v", got["page_count"])
	}
	labels, _ := got["sections"].([]any)
	if len(labels) != 2 || labels[0] != "introduction" || labels[1] != "references" {
		t.Errorf("unexpected sections %v", got["sections"])
	}
	if _, ok := got["bodies"]; ok {
		t.Error("bodies should be omitted without --bodies")
	}
}

func TestRunSectionsErrors(t *testing.T) {
	if err := runSections(io.Discard, "paper.xyz", testConfig(), formatJSON, false, discardLogger()); err == nil {
		t.Error("expected error for unknown extension")
	}
	if err := runSections(io.Discard, filepath.Join(t.TempDir(), "missing.pdf"), testConfig(), formatJSON, false, discardLogger()); err == nil {
		t.Error("expected error for missing file")
	}
	bad := writeFile(t, "bad.pdf", []byte("not a pdf"))
	if err := runSections(io.Discard, bad, testConfig(), formatJSON, false, discardLogger()); err == nil {
		t.Error("expected error for invalid pdf")
	}
}

func TestRunSummarize(t *testing.T) {
	path := writeFile(t, "paper.md", []byte("# Abstract\n\nShort abstract.\n\n# Results\n\nIt works.\n"))

	fake := &fakeSummarizer{}
	var out bytes.Buffer
	if err := runSummarize(context.Background(), &out, path, "results", true, testConfig(), fake, formatJSON, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.Text != "It works." || fake.got.SectionName != "results" || fake.got.Mode != summarize.ChainOfThought {
		t.Errorf("unexpected request %+v", fake.got)
	}
	var res summarize.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Text != "summary of It works." {
		t.Errorf("unexpected text %q", res.Text)
	}

	if err := runSummarize(context.Background(), io.Discard, path, " Results ", false, testConfig(), fake, formatJSON, discardLogger()); err != nil {
		t.Fatalf("mixed-case section: %v", err)
	}
	if fake.got.Text != "It works." || fake.got.SectionName != "results" || fake.got.Mode != summarize.Baseline {
		t.Errorf("unexpected request for mixed-case section %+v", fake.got)
	}

	if err := runSummarize(context.Background(), io.Discard, path, "discussion", false, testConfig(), fake, formatJSON, discardLogger()); err == nil {
		t.Error("expected error for missing section")
	}
}

func TestRunEvaluate(t *testing.T) {
	sys := writeFile(t, "sys.txt", []byte("the cat sat on the mat"))
	ref := writeFile(t, "ref.txt", []byte("the cat sat on the mat"))

	var out bytes.Buffer
	if err := runEvaluate(&out, sys, ref, formatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]float64
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got["rouge1"] != 1 || got["bleu"] < 99.999 {
		t.Errorf("unexpected scores %v", got)
	}

	if err := runEvaluate(io.Discard, filepath.Join(t.TempDir(), "nope"), ref, formatJSON); err == nil {
		t.Error("expected error for missing summary file")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    format
		wantErr bool
	}{
		{"yaml", formatYAML, false},
		{"yml", formatYAML, false},
		{"json", formatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

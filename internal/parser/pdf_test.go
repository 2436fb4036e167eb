package parser

import (
	"strings"
	"testing"

	"github.com/blongho/cap5610-project/internal/parser/parsertest"
)

func TestPDFParser_PagesInOrder(t *testing.T) {
	raw := parsertest.BuildTextPDF("Alpha", "", "Gamma")
	p := &PDFParser{}
	pages, err := p.Pages(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d: %q", len(pages), pages)
	}
	if !strings.Contains(pages[0], "Alpha") {
		t.Errorf("page 1: expected %q, got %q", "Alpha", pages[0])
	}
	if strings.TrimSpace(pages[1]) != "" {
		t.Errorf("page 2: expected empty page, got %q", pages[1])
	}
	if !strings.Contains(pages[2], "Gamma") {
		t.Errorf("page 3: expected %q, got %q", "Gamma", pages[2])
	}
}

func TestExtractText_RealPDF(t *testing.T) {
	raw := parsertest.BuildTextPDF("Introduction", "Results")
	text, err := ExtractText(&PDFParser{}, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intro := strings.Index(text, "Introduction")
	results := strings.Index(text, "Results")
	if intro < 0 || results < 0 {
		t.Fatalf("expected both page texts, got %q", text)
	}
	if intro > results {
		t.Errorf("expected page 1 text before page 2 text, got %q", text)
	}
	if !strings.Contains(text[intro:results], "\n") {
		t.Errorf("expected a newline between pages, got %q", text)
	}
}

func TestPDFParser_Malformed(t *testing.T) {
	inputs := map[string][]byte{
		"garbage":   []byte("this is not a pdf at all"),
		"header":    []byte("%PDF-1.4\n"),
		"truncated": parsertest.BuildTextPDF("Hello")[:60],
		"empty":     nil,
	}
	p := &PDFParser{}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			pages, err := p.Pages(raw)
			if err == nil {
				t.Fatalf("expected error, got pages %q", pages)
			}
			if pages != nil {
				t.Errorf("expected no partial result, got %q", pages)
			}
			if !IsExtractionError(err) {
				t.Errorf("expected ExtractionError, got %T: %v", err, err)
			}
		})
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"one", []string{"one"}},
		{"one\f", []string{"one"}},
		{"one\ftwo\f", []string{"one", "two"}},
		{"one\f\ftwo\f", []string{"one", "", "two"}},
	}
	for _, tc := range tests {
		got := splitPages(tc.in)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
			t.Errorf("splitPages(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

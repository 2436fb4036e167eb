package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser reads the text layer of a PDF with ledongthuc/pdf.
type PDFParser struct{}

// Pages returns one entry per page, in page order. A page without a page
// object yields an empty string; any page that fails to decode fails the
// whole document.
func (p *PDFParser) Pages(data []byte) (pages []string, err error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Source: "pdf", Err: errors.New("empty document")}
	}

	// The library panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &ExtractionError{Source: "pdf", Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Source: "pdf", Err: err}
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &ExtractionError{Source: "pdf", Err: fmt.Errorf("page %d: %w", i, err)}
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// PdftotextParser shells out to poppler's pdftotext, which copes with some
// files the pure-Go reader rejects.
type PdftotextParser struct {
	// Binary defaults to "pdftotext" on PATH.
	Binary string
}

func (p *PdftotextParser) Pages(data []byte) ([]string, error) {
	// pdftotext only reads from a file.
	tmp, err := os.CreateTemp("", "papersum-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	bin := p.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	cmd := exec.Command(bin, "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, &ExtractionError{Source: "pdftotext", Err: err}
	}
	return splitPages(string(out)), nil
}

// FallbackParser tries Primary and, if it cannot parse the document, Secondary.
type FallbackParser struct {
	Primary   PageSource
	Secondary PageSource
}

func (p *FallbackParser) Pages(data []byte) ([]string, error) {
	pages, err := ExtractPages(p.Primary, data)
	if err == nil {
		return pages, nil
	}
	return ExtractPages(p.Secondary, data)
}

// splitPages splits on form feeds. pdftotext terminates every page with one,
// so a single trailing empty entry is dropped.
func splitPages(text string) []string {
	pages := strings.Split(text, "\f")
	if len(pages) > 1 && pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

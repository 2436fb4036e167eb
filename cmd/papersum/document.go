package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blongho/cap5610-project/internal/config"
	"github.com/blongho/cap5610-project/internal/parser"
	"github.com/blongho/cap5610-project/internal/sections"
)

var contentTypeByExt = map[string]string{
	".pdf":      parser.ContentTypePDF,
	".docx":     parser.ContentTypeDOCX,
	".html":     parser.ContentTypeHTML,
	".htm":      parser.ContentTypeHTML,
	".md":       parser.ContentTypeMarkdown,
	".markdown": parser.ContentTypeMarkdown,
	".txt":      parser.ContentTypeText,
}

// document is a paper read from disk and split into sections.
type document struct {
	Path      string
	PageCount int
	CharCount int
	Text      string
	Sections  sections.Sections
}

func loadDocument(path string, cfg config.Config, log *slog.Logger) (*document, error) {
	contentType, ok := contentTypeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
	opts := cfg.Parser()
	// Local files are trusted; every known format is allowed.
	opts.ExtraFormats = true
	src, err := parser.ForContentType(contentType, opts)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	pageCount := -1
	if contentType == parser.ContentTypePDF && cfg.PDFValidate {
		if pageCount, err = parser.ValidatePDF(data); err != nil {
			return nil, fmt.Errorf("validate %s: %w", path, err)
		}
	}

	pages, err := parser.ExtractPages(src, data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	if pageCount < 0 {
		pageCount = len(pages)
	}
	text := strings.Join(pages, "\n")
	secs := sections.SplitWith(text, cfg.Policy())

	log.Info("document loaded", "path", path, "pages", pageCount, "sections", secs.Labels())
	return &document{
		Path:      path,
		PageCount: pageCount,
		CharCount: len([]rune(text)),
		Text:      text,
		Sections:  secs,
	}, nil
}

package parser

import (
	"errors"
	"fmt"
	"mime"
	"strings"
)

// PageSource turns raw document bytes into per-page plain text, in page order.
type PageSource interface {
	Pages(data []byte) ([]string, error)
}

// Content types accepted at the upload boundary.
const (
	ContentTypePDF      = "application/pdf"
	ContentTypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeHTML     = "text/html"
	ContentTypeMarkdown = "text/markdown"
	ContentTypeText     = "text/plain"
)

// Options selects which sources ForContentType may hand out.
type Options struct {
	// PdftotextFallback retries failed PDFs with the poppler pdftotext binary.
	PdftotextFallback bool
	// ExtraFormats enables DOCX, HTML, Markdown and plain text uploads.
	ExtraFormats bool
}

// ExtractionError reports a document that could not be parsed.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err is, or wraps, an *ExtractionError.
func IsExtractionError(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}

// ExtractPages runs src over data. Every failure comes back as an *ExtractionError
// and no pages are returned alongside an error.
func ExtractPages(src PageSource, data []byte) ([]string, error) {
	pages, err := src.Pages(data)
	if err != nil {
		if IsExtractionError(err) {
			return nil, err
		}
		return nil, &ExtractionError{Source: sourceName(src), Err: err}
	}
	return pages, nil
}

// ExtractText returns the document text: page texts joined by a single newline.
// Empty pages are kept, so two empty pages in a row leave a lone newline.
func ExtractText(src PageSource, data []byte) (string, error) {
	pages, err := ExtractPages(src, data)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

// ForContentType returns the page source for an upload's declared content type.
func ForContentType(contentType string, opts Options) (PageSource, error) {
	mediaType := normalizeContentType(contentType)
	if mediaType == ContentTypePDF {
		var src PageSource = &PDFParser{}
		if opts.PdftotextFallback {
			src = &FallbackParser{Primary: src, Secondary: &PdftotextParser{}}
		}
		return src, nil
	}
	if !opts.ExtraFormats {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
	switch mediaType {
	case ContentTypeDOCX:
		return &DOCXParser{}, nil
	case ContentTypeHTML:
		return &HTMLParser{}, nil
	case ContentTypeMarkdown, "text/x-markdown":
		return &MarkdownParser{}, nil
	case ContentTypeText:
		return &TextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// SupportedContentTypes lists the media types ForContentType accepts under opts.
func SupportedContentTypes(opts Options) []string {
	types := []string{ContentTypePDF}
	if opts.ExtraFormats {
		types = append(types, ContentTypeDOCX, ContentTypeHTML, ContentTypeMarkdown, ContentTypeText)
	}
	return types
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func sourceName(src PageSource) string {
	switch src.(type) {
	case *PDFParser:
		return "pdf"
	case *PdftotextParser:
		return "pdftotext"
	case *FallbackParser:
		return "pdf"
	case *DOCXParser:
		return "docx"
	case *HTMLParser:
		return "html"
	case *MarkdownParser:
		return "markdown"
	case *TextParser:
		return "text"
	default:
		return "document"
	}
}

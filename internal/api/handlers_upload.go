package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/blongho/cap5610-project/internal/parser"
	"github.com/blongho/cap5610-project/internal/sections"
)

type uploadResponse struct {
	Sections      []string          `json:"sections"`
	TextPreview   string            `json:"text_preview"`
	PageCount     int               `json:"page_count"`
	CharCount     int               `json:"char_count"`
	SectionBodies sections.Sections `json:"section_bodies"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; the extra 1MB covers form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	contentType := header.Header.Get("Content-Type")
	src, err := parser.ForContentType(contentType, s.parserOpts)
	if err != nil {
		msg := "File must be a PDF"
		if s.parserOpts.ExtraFormats {
			msg = fmt.Sprintf("unsupported file type: %s (accepted: %s)",
				contentType, strings.Join(parser.SupportedContentTypes(s.parserOpts), ", "))
		}
		jsonError(w, msg, http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	log := s.log.With("filename", filename, "content_type", contentType, "bytes", len(data))

	pageCount := -1
	if s.cfg.PDFValidate && isPDF(src) {
		pageCount, err = parser.ValidatePDF(data)
		if err != nil {
			log.Warn("pdf validation failed", "error", err)
			jsonError(w, "invalid PDF: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	pages, err := parser.ExtractPages(src, data)
	if err != nil {
		log.Warn("text extraction failed", "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if pageCount < 0 {
		pageCount = len(pages)
	}
	text := strings.Join(pages, "\n")
	secs := sections.SplitWith(text, s.policy)

	log.Info("document segmented",
		"pages", pageCount,
		"chars", utf8.RuneCountInString(text),
		"sections", len(secs),
	)

	writeJSON(w, http.StatusOK, uploadResponse{
		Sections:      secs.Labels(),
		TextPreview:   preview(text, s.cfg.PreviewChars),
		PageCount:     pageCount,
		CharCount:     utf8.RuneCountInString(text),
		SectionBodies: secs,
	})
}

func isPDF(src parser.PageSource) bool {
	switch src.(type) {
	case *parser.PDFParser, *parser.FallbackParser:
		return true
	}
	return false
}

// preview returns at most n runes of text.
func preview(text string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}

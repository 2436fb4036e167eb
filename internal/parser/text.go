package parser

import (
	"errors"
	"unicode/utf8"
)

// TextParser handles plain text. Form feeds, if present, separate pages.
type TextParser struct{}

func (p *TextParser) Pages(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, &ExtractionError{Source: "text", Err: errors.New("input is not valid UTF-8")}
	}
	return splitPages(string(data)), nil
}

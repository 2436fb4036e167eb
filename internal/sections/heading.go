// Package sections partitions extracted paper text into labelled sections
// by finding standard research-paper headings on their own lines.
package sections

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FullKey labels the single section returned when no heading is found.
const FullKey = "full"

var vocabulary = []string{
	"abstract",
	"introduction",
	"related work",
	"methodology",
	"methods",
	"experiments",
	"results",
	"discussion",
	"conclusion",
}

var vocabularySet = func() map[string]bool {
	m := make(map[string]bool, len(vocabulary))
	for _, v := range vocabulary {
		m[v] = true
	}
	return m
}()

// Vocabulary returns the recognised heading phrases in canonical spelling.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Heading is one heading line found in a document.
type Heading struct {
	Label string // canonical vocabulary phrase
	Start int    // byte offset of the first byte of the line
	End   int    // byte offset of the line's newline, or len(text)
}

// FindHeadings scans text once, front to back, and returns every line that is
// a heading: an optional numeric prefix ("3", "3.") followed by whitespace, then
// a vocabulary phrase and nothing else. Case and surrounding whitespace are
// ignored.
func FindHeadings(text string) []Heading {
	var headings []Heading
	pos := 0
	for {
		end := len(text)
		nl := strings.IndexByte(text[pos:], '\n')
		if nl >= 0 {
			end = pos + nl
		}
		if label, ok := matchHeading(text[pos:end]); ok {
			headings = append(headings, Heading{Label: label, Start: pos, End: end})
		}
		if nl < 0 {
			return headings
		}
		pos = end + 1
	}
}

// matchHeading reports whether a single line is a heading and, if so, its label.
func matchHeading(line string) (string, bool) {
	s := strings.TrimFunc(line, unicode.IsSpace)
	if s == "" {
		return "", false
	}

	rest, ok := stripNumericPrefix(s)
	if !ok {
		return "", false
	}

	// Collapse runs of inner whitespace so "Related   Work" still matches.
	label := strings.ToLower(strings.Join(strings.Fields(rest), " "))
	if !vocabularySet[label] {
		return "", false
	}
	return label, true
}

// stripNumericPrefix removes a leading "<digits>[.]<whitespace>" from s. A line
// that starts with digits not followed by that shape cannot be a heading.
func stripNumericPrefix(s string) (string, bool) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	if i == 0 {
		return s, true
	}

	if i < len(s) && s[i] == '.' {
		i++
	}
	j := i
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(r) {
			break
		}
		j += size
	}
	if j == i {
		return "", false
	}
	return s[j:], true
}

package sections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Policy decides what happens when the same heading label occurs twice,
// e.g. a "Results" running header repeated on every page.
type Policy int

const (
	// Overwrite keeps only the body of the last occurrence.
	Overwrite Policy = iota
	// Append joins every occurrence's body with a blank line.
	Append
	// FirstWins keeps only the body of the first occurrence.
	FirstWins
)

func (p Policy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Append:
		return "append"
	case FirstWins:
		return "first-wins"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses a policy name. The empty string selects Overwrite.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite", "last-wins", "last_wins":
		return Overwrite, nil
	case "append":
		return Append, nil
	case "first-wins", "first_wins":
		return FirstWins, nil
	}
	return Overwrite, fmt.Errorf("unknown duplicate section policy %q (want overwrite, append or first-wins)", s)
}

// Section is one labelled slice of a document.
type Section struct {
	Label string `json:"label" yaml:"label"`
	Body  string `json:"body" yaml:"body"`
}

// Sections is an ordered label→body mapping; order is the order in which each
// label first appears in the document. Labels are unique.
type Sections []Section

// Labels returns the section labels in document order.
func (s Sections) Labels() []string {
	labels := make([]string, len(s))
	for i, sec := range s {
		labels[i] = sec.Label
	}
	return labels
}

// Get returns the body stored under label.
func (s Sections) Get(label string) (string, bool) {
	for _, sec := range s {
		if sec.Label == label {
			return sec.Body, true
		}
	}
	return "", false
}

// Map returns the sections as an unordered map.
func (s Sections) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, sec := range s {
		m[sec.Label] = sec.Body
	}
	return m
}

// MarshalJSON encodes the sections as a JSON object whose keys keep document order.
func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sec.Body)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Split partitions text with the Overwrite policy.
func Split(text string) Sections {
	return SplitWith(text, Overwrite)
}

// SplitWith partitions text at its heading lines. Each body runs from the end
// of its heading line to the start of the next heading line, or to the end of
// text, and is trimmed. Text before the first heading belongs to no section.
// If there are no headings the result is exactly {FullKey: text}.
func SplitWith(text string, policy Policy) Sections {
	headings := FindHeadings(text)
	if len(headings) == 0 {
		return Sections{{Label: FullKey, Body: text}}
	}

	out := make(Sections, 0, len(headings))
	index := make(map[string]int, len(headings))
	for i, h := range headings {
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1].Start
		}
		body := strings.TrimSpace(text[h.End:end])

		at, seen := index[h.Label]
		if !seen {
			index[h.Label] = len(out)
			out = append(out, Section{Label: h.Label, Body: body})
			continue
		}
		switch policy {
		case Append:
			out[at].Body = appendBody(out[at].Body, body)
		case FirstWins:
		default:
			out[at].Body = body
		}
	}
	return out
}

func appendBody(existing, body string) string {
	if existing == "" {
		return body
	}
	if body == "" {
		return existing
	}
	return existing + "\n\n" + body
}

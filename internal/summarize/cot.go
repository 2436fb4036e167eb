package summarize

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parsed is a chain-of-thought answer split into its parts.
type Parsed struct {
	Citation     string `json:"citation,omitempty" yaml:"citation,omitempty"`
	Reasoning    string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	FinalSummary string `json:"final_summary" yaml:"final_summary"`
}

type cotPart int

const (
	partNone cotPart = iota
	partCitation
	partReasoning
	partFinal
)

// ParseChainOfThought splits a model answer into citation, reasoning trace and
// final summary. Part labels may be Markdown headings ("## Final Summary") or
// plain lines ("FINAL SUMMARY", "Citation (IEEE Format):"), since models follow
// the formatting instructions loosely. An answer with no recognisable labels is
// returned whole as the final summary.
func ParseChainOfThought(answer string) Parsed {
	src := []byte(answer)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	parts := map[cotPart][]string{}
	current := partNone
	found := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if p := partForLabel(string(headingText(h, src))); p != partNone {
				current = p
				found = true
			}
			continue
		}

		lines := strings.Split(rawText(n, src), "\n")
		var body []string
		for _, line := range lines {
			if p := partForLabel(line); p != partNone {
				if len(body) > 0 {
					parts[current] = append(parts[current], strings.Join(body, "\n"))
					body = nil
				}
				current = p
				found = true
				continue
			}
			body = append(body, line)
		}
		if b := strings.TrimSpace(strings.Join(body, "\n")); b != "" {
			parts[current] = append(parts[current], b)
		}
	}

	if !found {
		return Parsed{FinalSummary: strings.TrimSpace(answer)}
	}
	return Parsed{
		Citation:     joinPart(parts[partCitation]),
		Reasoning:    joinPart(parts[partReasoning]),
		FinalSummary: joinPart(parts[partFinal]),
	}
}

func joinPart(blocks []string) string {
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// partForLabel recognises a line that is only a part label.
func partForLabel(line string) cotPart {
	l := strings.TrimSpace(line)
	l = strings.Trim(l, "#*_: \t")
	l = strings.ToLower(strings.Join(strings.Fields(l), " "))
	switch l {
	case "citation", "citation (ieee format)", "citation (ieee)", "ieee citation":
		return partCitation
	case "reasoning trace", "reasoning", "analysis", "step-by-step analysis":
		return partReasoning
	case "final summary", "summary":
		return partFinal
	}
	return partNone
}

func headingText(h *ast.Heading, src []byte) []byte {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.Bytes()
}

// rawText returns the source lines of a block, keeping list markers so the
// reasoning trace reads the way the model wrote it.
func rawText(n ast.Node, src []byte) string {
	if lines := n.Lines(); lines.Len() > 0 {
		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimRight(buf.String(), "\n")
	}

	list, ordered := n.(*ast.List)
	ordered = ordered && list.IsOrdered()
	var out []string
	item := 0
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t := rawText(c, src)
		if t == "" {
			continue
		}
		if _, ok := c.(*ast.ListItem); ok {
			if ordered {
				t = strconv.Itoa(list.Start+item) + ". " + t
			} else {
				t = "- " + t
			}
			item++
		}
		out = append(out, t)
	}
	return strings.Join(out, "\n")
}

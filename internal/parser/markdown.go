package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown using goldmark. Heading markers are
// dropped so "## 2. Methods" comes out as the bare line "2. Methods".
type MarkdownParser struct{}

func (p *MarkdownParser) Pages(data []byte) ([]string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var t string
		if heading, ok := n.(*ast.Heading); ok {
			t = strings.TrimSpace(string(inlineText(heading, data)))
		} else {
			t = blockText(n, data)
		}
		if t != "" {
			blocks = append(blocks, t)
		}
	}
	return []string{strings.Join(blocks, "\n\n")}, nil
}

// blockText gets the text content of a goldmark block node. Leaf blocks such
// as code blocks carry their text in Lines; everything else in its children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock {
			if t := blockText(c, src); t != "" {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(t)
			}
			continue
		}
		buf.Write(inlineText(c, src))
	}
	return strings.TrimSpace(buf.String())
}

// inlineText concatenates the text segments below an inline (or heading) node.
func inlineText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	if t, ok := n.(*ast.Text); ok {
		buf.Write(t.Segment.Value(src))
		if t.HardLineBreak() || t.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return buf.Bytes()
	}
	if s, ok := n.(*ast.String); ok {
		return s.Value
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.Write(inlineText(c, src))
	}
	return buf.Bytes()
}

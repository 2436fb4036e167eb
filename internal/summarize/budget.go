package summarize

import "strings"

// EstimateTokens gives a rough token count at ~1.33 tokens per English word.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// ClipToTokens trims text to roughly maxTokens, cutting at a paragraph
// boundary when one fits and at a word boundary otherwise. It reports whether
// anything was dropped. maxTokens <= 0 disables clipping.
func ClipToTokens(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text, false
	}

	var kept []string
	used := 0
	for _, para := range strings.Split(text, "\n\n") {
		t := EstimateTokens(para)
		if used+t > maxTokens {
			break
		}
		kept = append(kept, para)
		used += t
	}
	if len(kept) > 0 {
		return strings.TrimSpace(strings.Join(kept, "\n\n")), true
	}

	words := strings.Fields(text)
	n := int(float64(maxTokens) / 1.33)
	if n < 1 {
		n = 1
	}
	if n > len(words) {
		n = len(words)
	}
	return strings.Join(words[:n], " "), true
}

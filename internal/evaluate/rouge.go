// Package evaluate scores a generated summary against a reference summary.
package evaluate

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// Scores holds ROUGE F-measures in [0,1].
type Scores struct {
	Rouge1 float64 `json:"rouge1" yaml:"rouge1"`
	Rouge2 float64 `json:"rouge2" yaml:"rouge2"`
	RougeL float64 `json:"rougeL" yaml:"rougeL"`
}

// ROUGE computes ROUGE-1, ROUGE-2 and ROUGE-L between system and reference.
// Tokens are lower-cased ASCII alphanumerics; tokens longer than three
// characters are Porter-stemmed.
func ROUGE(system, reference string) Scores {
	sys := rougeTokens(system)
	ref := rougeTokens(reference)
	return Scores{
		Rouge1: ngramF1(sys, ref, 1),
		Rouge2: ngramF1(sys, ref, 2),
		RougeL: lcsF1(sys, ref),
	}
}

func rougeTokens(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for i, w := range words {
		if len(w) > 3 {
			words[i] = porterstemmer.StemString(w)
		}
	}
	return words
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

func ngramF1(sys, ref []string, n int) float64 {
	sysCounts := ngramCounts(sys, n)
	refCounts := ngramCounts(ref, n)
	sysTotal := len(sys) - n + 1
	refTotal := len(ref) - n + 1
	if sysTotal <= 0 || refTotal <= 0 {
		return 0
	}
	overlap := 0
	for gram, c := range sysCounts {
		overlap += min(c, refCounts[gram])
	}
	return fmeasure(float64(overlap)/float64(sysTotal), float64(overlap)/float64(refTotal))
}

func lcsF1(sys, ref []string) float64 {
	if len(sys) == 0 || len(ref) == 0 {
		return 0
	}
	lcs := lcsLength(sys, ref)
	return fmeasure(float64(lcs)/float64(len(sys)), float64(lcs)/float64(len(ref)))
}

// lcsLength keeps two rows of the dynamic-programming table.
func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func fmeasure(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

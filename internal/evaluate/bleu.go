package evaluate

import (
	"math"
	"regexp"
	"strings"
)

const maxNgramOrder = 4

var (
	reSymbols      = regexp.MustCompile("([{-~\\[-` -&(-+:-@/])")
	rePeriodAfter  = regexp.MustCompile(`([^0-9])([.,])`)
	rePeriodBefore = regexp.MustCompile(`([.,])([^0-9])`)
	reDashDigit    = regexp.MustCompile(`([0-9])(-)`)
)

// tokenize13a follows the mteval-v13a tokenizer: punctuation and symbols are
// split off, except periods and commas inside numbers.
func tokenize13a(line string) []string {
	line = strings.ReplaceAll(line, "<skipped>", "")
	line = strings.ReplaceAll(line, "-\n", "")
	line = strings.ReplaceAll(line, "\n", " ")
	if strings.Contains(line, "&") {
		line = strings.NewReplacer("&quot;", `"`, "&amp;", "&", "&lt;", "<", "&gt;", ">").Replace(line)
	}
	line = " " + line + " "
	line = reSymbols.ReplaceAllString(line, " ${1} ")
	line = rePeriodAfter.ReplaceAllString(line, "${1} ${2} ")
	line = rePeriodBefore.ReplaceAllString(line, " ${1} ${2}")
	line = reDashDigit.ReplaceAllString(line, "${1} ${2} ")
	return strings.Fields(line)
}

// BLEU returns the BLEU score of system against a single reference on a
// 0-100 scale. Zero n-gram matches are smoothed exponentially. A system
// sharing no unigram with the reference, or shorter than the n-gram order,
// scores 0.
func BLEU(system, reference string) float64 {
	sys := tokenize13a(system)
	ref := tokenize13a(reference)
	if len(sys) == 0 {
		return 0
	}

	var matches, totals [maxNgramOrder]int
	anyMatch := false
	for n := 1; n <= maxNgramOrder; n++ {
		totals[n-1] = len(sys) - n + 1
		if totals[n-1] <= 0 {
			break
		}
		sysCounts := ngramCounts(sys, n)
		refCounts := ngramCounts(ref, n)
		for gram, c := range sysCounts {
			matches[n-1] += min(c, refCounts[gram])
		}
		anyMatch = anyMatch || matches[n-1] > 0
	}
	if !anyMatch {
		return 0
	}

	var precisions [maxNgramOrder]float64
	smooth := 1.0
	for i := range precisions {
		if totals[i] <= 0 {
			break
		}
		if matches[i] == 0 {
			smooth *= 2
			precisions[i] = 100 / (smooth * float64(totals[i]))
			continue
		}
		precisions[i] = 100 * float64(matches[i]) / float64(totals[i])
	}

	var logSum float64
	for _, p := range precisions {
		if p == 0 {
			return 0
		}
		logSum += math.Log(p / 100)
	}

	bp := 1.0
	if len(sys) < len(ref) {
		bp = math.Exp(1 - float64(len(ref))/float64(len(sys)))
	}
	return 100 * bp * math.Exp(logSum/maxNgramOrder)
}

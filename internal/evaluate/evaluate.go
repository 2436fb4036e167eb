package evaluate

import "strings"

// Report is the full score set for one summary.
type Report struct {
	Scores `yaml:",inline"`
	BLEU   float64 `json:"bleu" yaml:"bleu"`
}

// Evaluate scores system against reference. Empty inputs score zero.
func Evaluate(system, reference string) Report {
	if strings.TrimSpace(system) == "" || strings.TrimSpace(reference) == "" {
		return Report{}
	}
	return Report{
		Scores: ROUGE(system, reference),
		BLEU:   BLEU(system, reference),
	}
}

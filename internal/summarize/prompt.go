package summarize

import (
	"fmt"
	"strings"
)

// Mode selects the prompting strategy.
type Mode string

const (
	Baseline       Mode = "baseline"
	ChainOfThought Mode = "cot"
)

// ModeFor maps the API's use_cot flag to a Mode.
func ModeFor(useCoT bool) Mode {
	if useCoT {
		return ChainOfThought
	}
	return Baseline
}

// generation parameters per mode
type generation struct {
	temperature float64
	maxTokens   int64
}

var generationByMode = map[Mode]generation{
	Baseline:       {temperature: 0.3, maxTokens: 600},
	ChainOfThought: {temperature: 0.3, maxTokens: 900},
}

const baselinePrompt = `You are an expert research assistant.

Summarize the following research paper text%s clearly and concisely.
Focus on the key ideas, contributions, and main findings.

Text:
%s
`

const chainOfThoughtPrompt = `You are an expert research assistant using Chain-of-Thought reasoning.

**TASK:** Analyze the provided text%s. Your total response must not exceed 500 words and contains no markdown formatting. Separate sections by headings (ALL CAPS) and empty lines.

**INSTRUCTIONS:**
First extract the citation of the paper as in the IEEE format. Then, provide a detailed reasoning trace as defined below.
1.  First, conduct a step-by-step internal analysis. Think about:
    - The core topic, claim, or contribution.
    - The key evidence, methods, or arguments used.
    - The strengths and any limitations or assumptions.
    - The broader context and implications.
2.  Then, produce a final, concise summary that synthesizes your analysis.

Structure your final output clearly as follows:

Citation (IEEE Format):
[Extracted citation in IEEE format]

## Reasoning Trace
[Your step-by-step analysis here. Be thorough but concise.]

## Final Summary
[A coherent, 3-4 sentence summary integrating your key findings.]

Text:
%s

Begin. Remember the 500-word limit for your entire response.
`

// BuildPrompt renders the user prompt for mode. sectionName, when set, is
// woven into the instruction ("... for the results section").
func BuildPrompt(mode Mode, text, sectionName string) string {
	if mode == ChainOfThought {
		return fmt.Sprintf(chainOfThoughtPrompt, sectionInfo(sectionName), text)
	}
	return fmt.Sprintf(baselinePrompt, sectionInfo(sectionName), text)
}

func sectionInfo(sectionName string) string {
	sectionName = strings.TrimSpace(sectionName)
	if sectionName == "" {
		return ""
	}
	return fmt.Sprintf(" for the %s section", sectionName)
}

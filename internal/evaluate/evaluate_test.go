package evaluate

import (
	"math"
	"reflect"
	"testing"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s: expected %.6f, got %.6f", name, want, got)
	}
}

func TestROUGE(t *testing.T) {
	got := ROUGE("the cat was found under the bed", "the cat was under the bed")
	approx(t, "rouge1", got.Rouge1, 12.0/13.0)
	approx(t, "rouge2", got.Rouge2, 8.0/11.0)
	approx(t, "rougeL", got.RougeL, 12.0/13.0)
}

func TestROUGE_Identical(t *testing.T) {
	got := ROUGE("Section splitting works.", "section splitting works")
	approx(t, "rouge1", got.Rouge1, 1)
	approx(t, "rouge2", got.Rouge2, 1)
	approx(t, "rougeL", got.RougeL, 1)
}

func TestROUGE_Stemming(t *testing.T) {
	tests := []struct {
		sys, ref string
		want     float64
	}{
		{"running dogs", "runs dog", 1},
		// generously and generate share the stem "gener" under Porter's rules.
		{"generously", "generate", 1},
		// Porter keeps the "li" of an adverb.
		{"quickly", "quick", 0},
	}
	for _, tt := range tests {
		t.Run(tt.sys, func(t *testing.T) {
			approx(t, "rouge1", ROUGE(tt.sys, tt.ref).Rouge1, tt.want)
		})
	}
}

func TestROUGE_Disjoint(t *testing.T) {
	got := ROUGE("alpha beta", "gamma delta")
	if got != (Scores{}) {
		t.Errorf("expected zero scores, got %+v", got)
	}
}

func TestROUGE_SingleToken(t *testing.T) {
	got := ROUGE("cat", "cat")
	approx(t, "rouge1", got.Rouge1, 1)
	approx(t, "rouge2", got.Rouge2, 0)
}

func TestTokenize13a(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello, world.", []string{"Hello", ",", "world", "."}},
		{"pi is 3.14", []string{"pi", "is", "3.14"}},
		{"1,000 items", []string{"1,000", "items"}},
		{"a (b) c!", []string{"a", "(", "b", ")", "c", "!"}},
		{"fish &amp; chips", []string{"fish", "&", "chips"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := tokenize13a(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBLEU(t *testing.T) {
	tests := []struct {
		name     string
		sys, ref string
		want     float64
	}{
		{"identical", "the cat sat on the mat", "the cat sat on the mat", 100},
		{"partial", "the cat sat on the mat", "the cat sat on a mat", 100 * math.Pow(5.0/6*3.0/5*1.0/2*1.0/3, 0.25)},
		{"smoothed", "a b c d", "a b x y", 100 * math.Pow(0.5*(1.0/3)*0.25*0.25, 0.25)},
		{"brevity", "the cat sat on the", "the cat sat on the mat", 100 * math.Exp(1-6.0/5)},
		{"too short", "the cat", "the cat sat on the mat", 0},
		{"empty", "", "the cat", 0},
		{"disjoint", "a b c d", "e f g h", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approx(t, "bleu", BLEU(tt.sys, tt.ref), tt.want)
		})
	}
}

func TestEvaluate(t *testing.T) {
	r := Evaluate("the cat sat on the mat", "the cat sat on the mat")
	approx(t, "rouge1", r.Rouge1, 1)
	approx(t, "rougeL", r.RougeL, 1)
	approx(t, "bleu", r.BLEU, 100)

	if got := Evaluate("   ", "reference"); got != (Report{}) {
		t.Errorf("expected zero report for empty summary, got %+v", got)
	}
}

package metricscalculator

import (
	"errors"
	"math"
	"testing"

	"transcription-qa-platform/internal/coreengine/textnormalizer"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestCalculateWER(t *testing.T) {
	norm := textnormalizer.NewDefault()

	tests := []struct {
		name string
		ref  string
		hyp  string
		want float64
	}{
		{name: "identical", ref: "the cat sat on the mat", hyp: "the cat sat on the mat", want: 0.0},
		{name: "one deletion in five words", ref: "the weather is nice today", hyp: "the weather nice today", want: 0.2},
		{name: "single differing token", ref: "colour", hyp: "color", want: 1.0},
		{name: "empty hypothesis", ref: "one two three four", hyp: "", want: 1.0},
		{name: "both empty", ref: "", hyp: "", want: 0.0},
		{name: "insertions can push above one", ref: "hi", hyp: "hi there general kenobi", want: 3.0},
		{name: "case and punctuation ignored", ref: "Hello, World!", hyp: "hello world", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateWER(norm, tt.ref, tt.hyp)
			if err != nil {
				t.Fatalf("CalculateWER(%q, %q) returned error: %v", tt.ref, tt.hyp, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateWER(%q, %q) = %v, want %v", tt.ref, tt.hyp, got, tt.want)
			}
		})
	}
}

func TestCalculateWEREmptyReference(t *testing.T) {
	norm := textnormalizer.NewDefault()
	_, err := CalculateWER(norm, "", "some recognized text")
	if !errors.Is(err, ErrEmptyReference) {
		t.Errorf("CalculateWER with empty reference: err = %v, want ErrEmptyReference", err)
	}

	// Punctuation-only references normalize to empty and are equally
	// undefined.
	_, err = CalculateWER(norm, "?!", "words")
	if !errors.Is(err, ErrEmptyReference) {
		t.Errorf("CalculateWER with punctuation-only reference: err = %v, want ErrEmptyReference", err)
	}
}

func TestCalculateCER(t *testing.T) {
	norm := textnormalizer.NewDefault()

	tests := []struct {
		name string
		ref  string
		hyp  string
		want float64
	}{
		{name: "identical", ref: "the weather is nice", hyp: "the weather is nice", want: 0.0},
		// "colour" -> "color": one deletion across 6 reference characters.
		{name: "colour vs color", ref: "colour", hyp: "color", want: 1.0 / 6.0},
		// Reference normalizes to 25 characters (spaces included); dropping
		// "is " costs 3 character deletions: 3/25.
		{name: "missing word costs its characters plus space", ref: "the weather is nice today", hyp: "the weather nice today", want: 0.12},
		{name: "empty hypothesis", ref: "abcde", hyp: "", want: 1.0},
		{name: "both empty", ref: "", hyp: "", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCER(norm, tt.ref, tt.hyp)
			if err != nil {
				t.Fatalf("CalculateCER(%q, %q) returned error: %v", tt.ref, tt.hyp, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateCER(%q, %q) = %v, want %v", tt.ref, tt.hyp, got, tt.want)
			}
		})
	}
}

func TestCalculateCEREmptyReference(t *testing.T) {
	norm := textnormalizer.NewDefault()
	_, err := CalculateCER(norm, "", "anything")
	if !errors.Is(err, ErrEmptyReference) {
		t.Errorf("CalculateCER with empty reference: err = %v, want ErrEmptyReference", err)
	}
}

func TestErrorRatesAreNonnegative(t *testing.T) {
	norm := textnormalizer.NewDefault()
	pairs := [][2]string{
		{"a b c", "c b a"},
		{"short", "a much longer hypothesis entirely"},
		{"the same text", "the same text"},
	}
	for _, pair := range pairs {
		wer, err := CalculateWER(norm, pair[0], pair[1])
		if err != nil || wer < 0 {
			t.Errorf("CalculateWER(%q, %q) = %v, %v; want nonnegative, nil", pair[0], pair[1], wer, err)
		}
		cer, err := CalculateCER(norm, pair[0], pair[1])
		if err != nil || cer < 0 {
			t.Errorf("CalculateCER(%q, %q) = %v, %v; want nonnegative, nil", pair[0], pair[1], cer, err)
		}
	}
}

func TestCalculateLevenshteinSimilarity(t *testing.T) {
	norm := textnormalizer.NewDefault()

	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "same text", b: "same text", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "abcd", b: "", want: 0.0},
		// distance 1 over max length 6.
		{name: "colour vs color", a: "colour", b: "color", want: 1.0 - 1.0/6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevenshteinSimilarity(norm, tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateLevenshteinSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Normalizing by the longer sequence makes this symmetric.
			if rev := CalculateLevenshteinSimilarity(norm, tt.b, tt.a); !almostEqual(got, rev) {
				t.Errorf("similarity not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestCalculateJaccardSimilarity(t *testing.T) {
	norm := textnormalizer.NewDefault()

	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical sets", a: "the cat", b: "cat the", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "words here", b: "", want: 0.0},
		{name: "disjoint", a: "alpha beta", b: "gamma delta", want: 0.0},
		// intersection {cat, mat}, union {the, cat, mat, a} -> 2/4.
		{name: "partial overlap", a: "the cat mat", b: "a cat mat", want: 0.5},
		// repetition does not change the sets.
		{name: "repetition ignored", a: "go go go", b: "go", want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateJaccardSimilarity(norm, tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateJaccardSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

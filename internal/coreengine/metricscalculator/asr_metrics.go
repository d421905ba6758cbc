package metricscalculator

import (
	"errors"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"transcription-qa-platform/internal/coreengine/textnormalizer"
)

// ErrEmptyReference signals that the reference side of a comparison is empty
// after normalization, which makes a rate of the form errors/refLength
// undefined. Callers are expected to mark the metric as not evaluated for
// that transcript instead of reporting 0 or +Inf.
var ErrEmptyReference = errors.New("reference is empty, error rate is undefined")

// CalculateWER calculates the Word Error Rate (WER).
// WER = (Substitutions + Insertions + Deletions) / Number of words in reference.
// The result has no upper bound: it exceeds 1.0 when insertions dominate.
func CalculateWER(norm *textnormalizer.Normalizer, groundTruth, recognizedText string) (float64, error) {
	refTokens := norm.Tokens(groundTruth)
	hypTokens := norm.Tokens(recognizedText)

	if len(refTokens) == 0 {
		if len(hypTokens) == 0 {
			return 0.0, nil // Both empty, 0 errors.
		}
		return 0.0, ErrEmptyReference
	}

	a := AlignWords(refTokens, hypTokens)
	return float64(a.Distance()) / float64(a.RefLength), nil
}

// CalculateCER calculates the Character Error Rate (CER).
// CER = (Substitutions + Insertions + Deletions) / Number of characters in
// reference. Characters are the runes of the normalized text, spaces
// included (see textnormalizer.Chars).
func CalculateCER(norm *textnormalizer.Normalizer, groundTruth, recognizedText string) (float64, error) {
	refChars := norm.Chars(groundTruth)
	hypChars := norm.Chars(recognizedText)

	if len(refChars) == 0 {
		if len(hypChars) == 0 {
			return 0.0, nil
		}
		return 0.0, ErrEmptyReference
	}

	a := AlignChars(refChars, hypChars)
	return float64(a.Distance()) / float64(a.RefLength), nil
}

// CalculateLevenshteinSimilarity computes a normalized character-level
// similarity in [0, 1]: 1 - distance/max(len). Two empty texts are
// considered identical (1.0). Unlike CER this is symmetric in its
// arguments, because the distance is normalized by the longer of the two
// sequences rather than by the reference.
func CalculateLevenshteinSimilarity(norm *textnormalizer.Normalizer, text1, text2 string) float64 {
	a := norm.Chars(text1)
	b := norm.Chars(text2)

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshtein.DistanceForStrings(a, b, unitCosts)
	return 1.0 - float64(dist)/float64(maxLen)
}

// CalculateJaccardSimilarity computes the Jaccard index of the two texts'
// token sets: |intersection| / |union|. Word order and repetition are
// ignored. Both empty -> 1.0, exactly one empty -> 0.0.
func CalculateJaccardSimilarity(norm *textnormalizer.Normalizer, text1, text2 string) float64 {
	set1 := tokenSet(norm.Tokens(text1))
	set2 := tokenSet(norm.Tokens(text2))

	if len(set1) == 0 && len(set2) == 0 {
		return 1.0
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range set1 {
		if _, ok := set2[tok]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// Package similarityengine computes the TF-IDF cosine similarity between a
// reference transcript and a hypothesis transcript. The corpus is exactly
// the two documents being compared; the weighting follows the smoothed
// scheme idf(t) = ln((1+N)/(1+df(t))) + 1, which never divides by zero and
// keeps terms appearing in both documents at weight 1.
package similarityengine

import (
	"math"
	"sort"

	"transcription-qa-platform/internal/coreengine/textnormalizer"
)

// TFIDFCosineSimilarity vectorizes the two texts over the vocabulary of
// tokens appearing in either one and returns the cosine of the angle
// between the weighted vectors: (A.B) / (|A|*|B|).
//
// Term frequency is the raw token count in the document. The result is in
// [0, 1] because all weights are nonnegative. When either vector is the
// zero vector (empty text), the similarity is defined as 0.0 rather than a
// division-by-zero fault.
//
// The dot product and both squared norms are accumulated over the sorted
// vocabulary in a single pass, so identical texts share every intermediate
// rounding and score exactly 1.0. The denominator is the single square root
// of the product, which IEEE arithmetic evaluates to exactly S for
// sqrt(S*S); splitting it into two roots can lose a ulp and fail an
// equality gate at threshold 1.0.
func TFIDFCosineSimilarity(norm *textnormalizer.Normalizer, reference, hypothesis string) float64 {
	refCounts := termCounts(norm.Tokens(reference))
	hypCounts := termCounts(norm.Tokens(hypothesis))

	if len(refCounts) == 0 || len(hypCounts) == 0 {
		return 0.0
	}

	vocab := make([]string, 0, len(refCounts)+len(hypCounts))
	for term := range refCounts {
		vocab = append(vocab, term)
	}
	for term := range hypCounts {
		if _, ok := refCounts[term]; !ok {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)

	// Document frequencies over the two-document corpus: df is 1 or 2.
	const corpusSize = 2.0
	var dot, refNormSq, hypNormSq float64
	for _, term := range vocab {
		refCount, inRef := refCounts[term]
		hypCount, inHyp := hypCounts[term]

		df := 0.0
		if inRef {
			df++
		}
		if inHyp {
			df++
		}
		idf := math.Log((1.0+corpusSize)/(1.0+df)) + 1.0

		refW := float64(refCount) * idf
		hypW := float64(hypCount) * idf
		dot += refW * hypW
		refNormSq += refW * refW
		hypNormSq += hypW * hypW
	}

	if refNormSq == 0 || hypNormSq == 0 {
		return 0.0
	}

	sim := dot / math.Sqrt(refNormSq*hypNormSq)
	// Guard against floating-point drift just above 1.0.
	if sim > 1.0 {
		sim = 1.0
	}
	return sim
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

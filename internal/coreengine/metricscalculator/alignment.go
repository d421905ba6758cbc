package metricscalculator

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Alignment holds the minimum-cost edit operation counts that transform a
// reference sequence into a hypothesis sequence, plus the reference length
// used to normalize error rates.
type Alignment struct {
	Substitutions int `json:"substitutions"`
	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
	RefLength     int `json:"ref_length"`
}

// Distance returns the total edit distance (S + I + D) for unit costs.
func (a Alignment) Distance() int {
	return a.Substitutions + a.Insertions + a.Deletions
}

// unitCosts are the Levenshtein options used for WER/CER: every operation
// costs 1, so a substitution is always preferred over an insertion plus a
// deletion. The library's backtrace is deterministic, so repeated runs on
// identical input produce identical counts.
var unitCosts = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// AlignChars computes the character-level alignment between a reference and
// a hypothesis rune sequence.
func AlignChars(reference, hypothesis []rune) Alignment {
	return alignRunes(reference, hypothesis)
}

// AlignWords computes the word-level alignment between a reference and a
// hypothesis token sequence. The rune-based Levenshtein engine is reused by
// interning each distinct token as a synthetic rune; only equality between
// items matters to the alignment, not their spelling.
func AlignWords(reference, hypothesis []string) Alignment {
	vocab := make(map[string]rune, len(reference)+len(hypothesis))
	intern := func(tokens []string) []rune {
		runes := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := vocab[tok]
			if !ok {
				r = rune(len(vocab))
				vocab[tok] = r
			}
			runes[i] = r
		}
		return runes
	}
	refRunes := intern(reference)
	hypRunes := intern(hypothesis)

	a := alignRunes(refRunes, hypRunes)
	a.RefLength = len(reference)
	return a
}

func alignRunes(reference, hypothesis []rune) Alignment {
	a := Alignment{RefLength: len(reference)}

	// Degenerate cases do not need a matrix: an empty reference makes every
	// hypothesis item an insertion, an empty hypothesis makes every
	// reference item a deletion.
	if len(reference) == 0 {
		a.Insertions = len(hypothesis)
		return a
	}
	if len(hypothesis) == 0 {
		a.Deletions = len(reference)
		return a
	}

	matrix := levenshtein.MatrixForStrings(reference, hypothesis, unitCosts)
	script := levenshtein.EditScriptForMatrix(matrix, unitCosts)
	for _, op := range script {
		switch op {
		case levenshtein.Sub:
			a.Substitutions++
		case levenshtein.Ins:
			a.Insertions++
		case levenshtein.Del:
			a.Deletions++
		}
	}
	return a
}

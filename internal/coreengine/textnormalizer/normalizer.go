package textnormalizer

import (
	"strings"
	"unicode"
)

// Normalizer canonicalizes raw transcript text before any metric is computed.
// Both the error-rate metrics and the similarity metrics must see the exact
// same canonical form, otherwise WER/CER and TF-IDF would silently disagree
// about what a "word" is.
type Normalizer struct {
	// StripPunctuation removes Unicode punctuation and symbol characters
	// before tokenization. Enabled by default (matches the usual ASR
	// evaluation convention of comparing bare words).
	StripPunctuation bool
}

// NewDefault returns a Normalizer with the standard cleaning rules:
// lower-casing, punctuation stripping, and whitespace collapsing.
func NewDefault() *Normalizer {
	return &Normalizer{StripPunctuation: true}
}

// Normalize returns the canonical form of text: lower-cased, punctuation
// stripped (if configured), runs of whitespace collapsed to a single space,
// and leading/trailing whitespace trimmed. Pure function of its input.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)

	if n.StripPunctuation {
		text = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, text)
	}

	// Collapse all whitespace runs (tabs, newlines, multiple spaces) into
	// single spaces. strings.Fields also drops leading/trailing whitespace.
	return strings.Join(strings.Fields(text), " ")
}

// Tokens returns the normalized word sequence for word-level alignment.
// Empty tokens never occur (Fields discards them).
func (n *Normalizer) Tokens(text string) []string {
	return strings.Fields(n.Normalize(text))
}

// Chars returns the normalized character sequence for character-level
// alignment. Spaces are kept as regular characters so that word boundaries
// still participate in the alignment (a missing word costs its characters
// plus the surrounding space).
func (n *Normalizer) Chars(text string) []rune {
	return []rune(n.Normalize(text))
}

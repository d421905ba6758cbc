package metricscalculator

import (
	"reflect"
	"strings"
	"testing"
)

func TestAlignWords(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		hyp  string
		want Alignment
	}{
		{
			name: "identical",
			ref:  "the cat sat",
			hyp:  "the cat sat",
			want: Alignment{RefLength: 3},
		},
		{
			name: "single deletion",
			ref:  "the weather is nice today",
			hyp:  "the weather nice today",
			want: Alignment{Deletions: 1, RefLength: 5},
		},
		{
			name: "single insertion",
			ref:  "the weather nice today",
			hyp:  "the weather is nice today",
			want: Alignment{Insertions: 1, RefLength: 4},
		},
		{
			name: "single substitution",
			ref:  "the cat sat",
			hyp:  "the dog sat",
			want: Alignment{Substitutions: 1, RefLength: 3},
		},
		{
			name: "empty reference all insertions",
			ref:  "",
			hyp:  "one two three",
			want: Alignment{Insertions: 3, RefLength: 0},
		},
		{
			name: "empty hypothesis all deletions",
			ref:  "one two",
			hyp:  "",
			want: Alignment{Deletions: 2, RefLength: 2},
		},
		{
			name: "both empty",
			ref:  "",
			hyp:  "",
			want: Alignment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignWords(strings.Fields(tt.ref), strings.Fields(tt.hyp))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AlignWords(%q, %q) = %+v, want %+v", tt.ref, tt.hyp, got, tt.want)
			}
		})
	}
}

func TestAlignChars(t *testing.T) {
	got := AlignChars([]rune("colour"), []rune("color"))
	if got.Distance() != 1 || got.RefLength != 6 {
		t.Errorf("AlignChars(colour, color) = %+v, want distance 1 over 6", got)
	}

	// A perfect match aligns with zero operations regardless of length.
	self := AlignChars([]rune("abc def"), []rune("abc def"))
	if self.Distance() != 0 {
		t.Errorf("AlignChars of identical input = %+v, want zero operations", self)
	}
}

// Swapping the sequences swaps insertions and deletions but leaves the
// substitution count and the total operation count unchanged.
func TestAlignSwapSymmetry(t *testing.T) {
	ref := strings.Fields("the quick brown fox jumps over the lazy dog")
	hyp := strings.Fields("a quick fox jumped over that lazy dog today")

	forward := AlignWords(ref, hyp)
	backward := AlignWords(hyp, ref)

	if forward.Distance() != backward.Distance() {
		t.Errorf("total operations differ: %d vs %d", forward.Distance(), backward.Distance())
	}
	if forward.Substitutions != backward.Substitutions {
		t.Errorf("substitutions differ: %d vs %d", forward.Substitutions, backward.Substitutions)
	}
	if forward.Insertions != backward.Deletions || forward.Deletions != backward.Insertions {
		t.Errorf("insertions/deletions not swapped: %+v vs %+v", forward, backward)
	}
}

// The alignment must be bit-identical across repeated runs on the same
// input, including when multiple minimal alignments exist.
func TestAlignDeterministic(t *testing.T) {
	ref := strings.Fields("a b c d")
	hyp := strings.Fields("b c d e")

	first := AlignWords(ref, hyp)
	for i := 0; i < 10; i++ {
		if got := AlignWords(ref, hyp); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, got, first)
		}
	}
}

// label.go generates Pep/9 assembly labels. vslc's own util/label.go hands
// out labels to concurrent worker threads over a channel; this compiler
// generates one compile unit at a time on a single goroutine (spec.md §5),
// so the channel/select plumbing is replaced by a plain counter plus a
// pure function from counter to label string, exactly the representation
// spec.md §9 ("Design Notes") recommends for a language-neutral label
// generator.
//
// Two independent generators keep the identifier namespace and the
// branch/function-label namespace apart: identifiers walk the alphabet
// forwards (A, B, …, Z, AA, AB, …); branches and functions walk it
// backwards starting at two letters (ZZ, ZY, …). See NewBranchLabels for
// how far that separation holds.

package util

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// LabelGenerator produces an infinite, deterministic sequence of distinct
// uppercase-letter labels, shortest first.
type LabelGenerator struct {
	next    int
	reverse bool
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewIdentifierLabels returns a generator producing the forward sequence
// A, B, …, Z, AA, AB, … used for identifier labels.
func NewIdentifierLabels() *LabelGenerator {
	return &LabelGenerator{}
}

// NewBranchLabels returns a generator producing the reverse sequence
// ZZ, ZY, …, used for branch and function labels. It starts 26 places
// into the sequence rather than at Z, so every label it ever produces is
// at least two letters long; identifier labels only reach two letters
// after their 26th draw (AA onward). Single-letter labels are therefore
// reserved to identifiers, which rules out a collision between the two
// namespaces for any program with fewer than several hundred labels of
// each kind — the two sequences still overlap in the limit (they both
// enumerate every finite string over the alphabet eventually), so this
// is a practical guarantee, not a structural one.
func NewBranchLabels() *LabelGenerator {
	return &LabelGenerator{next: 26, reverse: true}
}

// Next returns the next label in the sequence and advances the generator.
func (g *LabelGenerator) Next() string {
	s := bijectiveBase26(g.next, g.reverse)
	g.next++
	return s
}

// bijectiveBase26 renders n (0-indexed) as a bijective base-26 numeral
// over the alphabet, in natural or reversed letter order. This is the
// standard "spreadsheet column name" encoding: 0->A, 25->Z, 26->AA,
// 27->AB, ... (or the mirrored sequence when reverse is set).
func bijectiveBase26(n int, reverse bool) string {
	var buf []byte
	for {
		d := n % 26
		var c byte
		if reverse {
			c = 'Z' - byte(d)
		} else {
			c = 'A' + byte(d)
		}
		buf = append([]byte{c}, buf...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf)
}

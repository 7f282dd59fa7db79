package util

import "testing"

func TestIdentifierLabelsForwardSequence(t *testing.T) {
	gen := NewIdentifierLabels()
	want := []string{"A", "B", "C"}
	for _, w := range want {
		if got := gen.Next(); got != w {
			t.Fatalf("Next() = %q, want %q", got, w)
		}
	}
}

func TestIdentifierLabelsWrapsToDoubleLetters(t *testing.T) {
	gen := NewIdentifierLabels()
	for i := 0; i < 26; i++ {
		gen.Next() // consume A..Z
	}
	if got := gen.Next(); got != "AA" {
		t.Fatalf("Next() after Z = %q, want %q", got, "AA")
	}
	if got := gen.Next(); got != "AB" {
		t.Fatalf("Next() after AA = %q, want %q", got, "AB")
	}
}

func TestBranchLabelsAreNeverSingleLetter(t *testing.T) {
	gen := NewBranchLabels()
	for i := 0; i < 200; i++ {
		if l := gen.Next(); len(l) < 2 {
			t.Fatalf("branch label %q has fewer than 2 letters", l)
		}
	}
}

func TestBranchLabelsAreUnique(t *testing.T) {
	gen := NewBranchLabels()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		l := gen.Next()
		if seen[l] {
			t.Fatalf("branch label %q repeated", l)
		}
		seen[l] = true
	}
}

func TestIdentifierAndBranchLabelsDoNotCollideForModestPrograms(t *testing.T) {
	idents := NewIdentifierLabels()
	branches := NewBranchLabels()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[idents.Next()] = true
	}
	for i := 0; i < 100; i++ {
		l := branches.Next()
		if seen[l] {
			t.Fatalf("branch label %q collides with an identifier label", l)
		}
	}
}

package ir

import (
	"testing"

	"pep9c/src/util"
)

func TestSymbolTableLookupOrCreateIsIdempotent(t *testing.T) {
	st := NewSymbolTable(util.NewIdentifierLabels())
	a := st.LookupOrCreate("x")
	b := st.LookupOrCreate("x")
	if a != b {
		t.Fatalf("LookupOrCreate(x) = %q then %q, want stable label", a, b)
	}
	if c := st.LookupOrCreate("y"); c == a {
		t.Fatalf("LookupOrCreate(y) = %q, want distinct from x's %q", c, a)
	}
}

func TestSymbolTableSetRejectsDuplicateBinding(t *testing.T) {
	st := NewSymbolTable(util.NewIdentifierLabels())
	if err := st.Set("x", "A"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := st.Set("x", "B"); err == nil {
		t.Fatal("expected error rebinding an already-declared identifier")
	}
}

func TestSymbolTableGetAndHas(t *testing.T) {
	st := NewSymbolTable(util.NewIdentifierLabels())
	if _, ok := st.Get("x"); ok {
		t.Fatal("Get(x) found a binding before any was made")
	}
	if st.Has("x") {
		t.Fatal("Has(x) = true before any binding")
	}
	label := st.LookupOrCreate("x")
	got, ok := st.Get("x")
	if !ok || got != label {
		t.Fatalf("Get(x) = (%q, %v), want (%q, true)", got, ok, label)
	}
	if !st.Has("x") {
		t.Fatal("Has(x) = false after binding")
	}
}

func TestSymbolTableNewLabelDoesNotBind(t *testing.T) {
	st := NewSymbolTable(util.NewIdentifierLabels())
	fresh := st.NewLabel()
	if st.Has(fresh) {
		t.Fatal("NewLabel() should not register its draw under any name")
	}
	// Drawing again must not repeat the same label.
	if second := st.NewLabel(); second == fresh {
		t.Fatalf("NewLabel() repeated %q", fresh)
	}
}

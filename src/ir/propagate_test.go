package ir

import (
	"testing"

	"pep9c/src/ast"
)

func constNode(v int) *ast.Node { return &ast.Node{Typ: ast.Constant, Data: v} }
func nameNode(s string) *ast.Node { return &ast.Node{Typ: ast.Name, Data: s} }

func TestConstantPropagatorFoldsLiteral(t *testing.T) {
	cp := NewConstantPropagator()
	ok, _, v, err := cp.AddAssign("x", constNode(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || v != 5 {
		t.Fatalf("AddAssign() = (%v, %d), want (true, 5)", ok, v)
	}
}

func TestConstantPropagatorFoldsAddSubChain(t *testing.T) {
	cp := NewConstantPropagator()
	if _, _, _, err := cp.AddAssign("a", constNode(3)); err != nil {
		t.Fatal(err)
	}
	expr := &ast.Node{
		Typ:   ast.BinOp,
		Op:    ast.Sub,
		Left:  &ast.Node{Typ: ast.BinOp, Op: ast.Add, Left: nameNode("a"), Right: constNode(4)},
		Right: constNode(2),
	}
	ok, _, v, err := cp.AddAssign("b", expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || v != 5 {
		t.Fatalf("AddAssign() = (%v, %d), want (true, 5)", ok, v)
	}
}

func TestConstantPropagatorNeverFoldsCall(t *testing.T) {
	cp := NewConstantPropagator()
	call := &ast.Node{Typ: ast.Call, Data: "input"}
	ok, _, _, err := cp.AddAssign("x", call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("AddAssign() folded a call node")
	}
}

func TestConstantPropagatorTracksReassignment(t *testing.T) {
	cp := NewConstantPropagator()
	if cp.Seen("x") {
		t.Fatal("Seen(x) = true before any assignment")
	}
	if _, _, _, err := cp.AddAssign("x", constNode(1)); err != nil {
		t.Fatal(err)
	}
	if !cp.Seen("x") {
		t.Fatal("Seen(x) = false after assignment")
	}
	// Reassigning to something unfoldable should clear the propagated value
	// and leave a Name reference to x reporting it was reassigned.
	if _, _, _, err := cp.AddAssign("x", &ast.Node{Typ: ast.Call, Data: "input"}); err != nil {
		t.Fatal(err)
	}
	_, usedReassigned, _, err := cp.TryPropagateConstant(nameNode("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !usedReassigned {
		t.Fatal("TryPropagateConstant() did not report x as reassigned")
	}
}

func TestConstantPropagatorRejectsNonIntConstant(t *testing.T) {
	cp := NewConstantPropagator()
	bad := &ast.Node{Typ: ast.Constant, Data: "not an int"}
	if _, _, _, err := cp.TryPropagateConstant(bad); err == nil {
		t.Fatal("expected error for non-integer constant")
	}
}

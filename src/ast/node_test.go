package ast

import "testing"

func TestNodeTypeString(t *testing.T) {
	if got := Module.String(); got != "Module" {
		t.Fatalf("Module.String() = %q", got)
	}
	if got := NodeType(999).String(); got != "NodeType(999)" {
		t.Fatalf("NodeType(999).String() = %q", got)
	}
}

func TestOpString(t *testing.T) {
	if got := Add.String(); got != "+" {
		t.Fatalf("Add.String() = %q", got)
	}
	if got := Op(999).String(); got != "Op(999)" {
		t.Fatalf("Op(999).String() = %q", got)
	}
}

func TestNodeStringVariantsByKind(t *testing.T) {
	n := &Node{Typ: Name, Data: "x"}
	if got := n.String(); got != "Name(x)" {
		t.Fatalf("Name node String() = %q", got)
	}
	c := &Node{Typ: Constant, Data: 5}
	if got := c.String(); got != "Constant(5)" {
		t.Fatalf("Constant node String() = %q", got)
	}
	call := &Node{Typ: Call, Data: "f", Args: []*Node{{Typ: Constant, Data: 1}}}
	if got := call.String(); got != "Call(f, nargs=1)" {
		t.Fatalf("Call node String() = %q", got)
	}
	fn := &Node{Typ: FunctionDef, Data: "f", Params: []string{"n"}}
	if got := fn.String(); got != "FunctionDef(f, params=[n])" {
		t.Fatalf("FunctionDef node String() = %q", got)
	}
}

func TestNodeStringHandlesNil(t *testing.T) {
	var n *Node
	if got := n.String(); got != "<nil>" {
		t.Fatalf("nil Node.String() = %q", got)
	}
}

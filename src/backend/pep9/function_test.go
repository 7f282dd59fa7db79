package pep9

import (
	"strings"
	"testing"

	"pep9c/src/ast"
	"pep9c/src/ir"
	"pep9c/src/util"
)

func newTestFunctionEmitter(name string) *FunctionEmitter {
	globalSymbols := ir.NewSymbolTable(util.NewIdentifierLabels())
	branchLabels := ir.NewSymbolTable(util.NewBranchLabels())
	return NewFunctionEmitter(name, globalSymbols, branchLabels)
}

func TestFunctionEmitterAllocatesParameterBeforeLocals(t *testing.T) {
	fe := newTestFunctionEmitter("f")
	fn := &ast.Node{
		Typ:    ast.FunctionDef,
		Data:   "f",
		Params: []string{"n"},
		Body: []*ast.Node{
			assign(ident("total"), num(0)),
			{Typ: ast.Return, Value: ident("total")},
		},
	}
	if err := fe.Run(fn); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fe.Frame().Order[0] != "n" {
		t.Fatalf("Frame().Order = %v, want param n allocated first", fe.Frame().Order)
	}
	if fe.Frame().StackSpace != 4 {
		t.Fatalf("Frame().StackSpace = %d, want 4 (two scalars)", fe.Frame().StackSpace)
	}
}

func TestFunctionEmitterRejectsNestedFunctionDef(t *testing.T) {
	fe := newTestFunctionEmitter("outer")
	nested := &ast.Node{Typ: ast.FunctionDef, Data: "inner", Body: nil}
	fn := &ast.Node{
		Typ:  ast.FunctionDef,
		Data: "outer",
		Body: []*ast.Node{nested},
	}
	if err := fe.Run(fn); err == nil {
		t.Fatal("expected error for nested function definition")
	}
}

func TestFunctionEmitterAllocatesLocalArray(t *testing.T) {
	fe := newTestFunctionEmitter("f")
	arrayInit := &ast.Node{
		Typ:  ast.BinOp,
		Op:   ast.Mul,
		Left: &ast.Node{Typ: ast.ListLiteral, Elts: []*ast.Node{num(0)}},
		Right: num(3),
	}
	fn := &ast.Node{
		Typ:  ast.FunctionDef,
		Data: "f",
		Body: []*ast.Node{
			assign(ident("nums_"), arrayInit),
			assign(&ast.Node{Typ: ast.Subscript, Object: ident("nums_"), Index: num(0)}, num(1)),
		},
	}
	if err := fe.Run(fn); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lv, ok := fe.Frame().Locals["nums_"]
	if !ok || lv.Words != 3 {
		t.Fatalf("Frame().Locals[nums_] = %+v, ok=%v, want Words=3", lv, ok)
	}
	out := FormatProgram(fe.Finalize())
	if !strings.Contains(out, "ASLX") {
		t.Fatalf("output missing indexed-store addressing for local array:\n%s", out)
	}
}

func TestFunctionEmitterEmitsEpilogueWithoutExplicitReturn(t *testing.T) {
	fe := newTestFunctionEmitter("f")
	fn := &ast.Node{
		Typ:  ast.FunctionDef,
		Data: "f",
		Body: []*ast.Node{
			assign(ident("x"), num(1)),
		},
	}
	if err := fe.Run(fn); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := FormatProgram(fe.Finalize())
	if !strings.Contains(out, "RET") {
		t.Fatalf("output missing implicit epilogue RET:\n%s", out)
	}
}

func TestFunctionEmitterReadsGlobalItNeverAssigns(t *testing.T) {
	globalSymbols := ir.NewSymbolTable(util.NewIdentifierLabels())
	globalSymbols.LookupOrCreate("g")
	branchLabels := ir.NewSymbolTable(util.NewBranchLabels())
	fe := NewFunctionEmitter("f", globalSymbols, branchLabels)
	fe.seedGlobalNames(globalSymbols.Names())

	fn := &ast.Node{
		Typ:  ast.FunctionDef,
		Data: "f",
		Body: []*ast.Node{
			{Typ: ast.ExprStmt, Value: &ast.Node{
				Typ: ast.Call, Data: "print", Args: []*ast.Node{ident("g")},
			}},
		},
	}
	if err := fe.Run(fn); err != nil {
		t.Fatalf("Run() error = %v, want a function to read a global it never assigns", err)
	}
	out := FormatProgram(fe.Finalize())
	if !strings.Contains(out, "DECO") {
		t.Fatalf("output missing print of the global:\n%s", out)
	}
}

func TestFunctionEmitterRejectsAugAssignOnUndeclaredIdentifier(t *testing.T) {
	fe := newTestFunctionEmitter("f")
	fn := &ast.Node{
		Typ:  ast.FunctionDef,
		Data: "f",
		Body: []*ast.Node{
			{Typ: ast.AugAssign, Target: ident("missing"), AugOp: ast.Add, Value: num(1)},
		},
	}
	if err := fe.Run(fn); err == nil {
		t.Fatal("expected error referencing an undeclared identifier via AugAssign")
	}
}

package pep9

import (
	"testing"

	"pep9c/src/ir"
	"pep9c/src/util"
)

func TestGenerateStaticMemoryEmitsEquateWordAndBlock(t *testing.T) {
	symbols := ir.NewSymbolTable(util.NewIdentifierLabels())
	symbols.LookupOrCreate("_MAX")
	symbols.LookupOrCreate("count")
	symbols.LookupOrCreate("nums_")

	globals := []ir.GlobalVariable{
		{Ident: "_MAX", Kind: ir.Equate, Size: 10},
		{Ident: "count", Kind: ir.Word, Size: 3},
		{Ident: "nums_", Kind: ir.Block, Size: 8},
	}
	out := GenerateStaticMemory(symbols, globals)

	if len(out) != 3 {
		t.Fatalf("got %d instructions, want 3 (one line per global, trailing comment): %+v", len(out), out)
	}
	if out[0].Instr != ".EQUATE 10 ; global variable _MAX #2d" {
		t.Fatalf("out[0] = %+v, want .EQUATE with trailing comment", out[0])
	}
	if out[1].Instr != ".WORD 3 ; global variable count #2d" {
		t.Fatalf("out[1] = %+v, want .WORD with trailing comment", out[1])
	}
	if out[2].Instr != ".BLOCK 8 ; global variable nums_ #2d[4a]" {
		t.Fatalf("out[2] = %+v, want .BLOCK with trailing comment", out[2])
	}
	label, _ := symbols.Get("nums_")
	if out[2].Label != label {
		t.Fatalf("out[2].Label = %q, want %q", out[2].Label, label)
	}
}

func TestGenerateLocalMemoryComputesEquateArithmetic(t *testing.T) {
	frame := ir.NewCallFrame()
	frame.Allocate("a", "Fa", 1)
	frame.Allocate("b", "Fb", 1)

	out := GenerateLocalMemory(frame)
	if len(out) != 2 {
		t.Fatalf("got %d instructions, want 2 (one line per local, trailing comment): %+v", len(out), out)
	}
	// a was allocated first at offset 0; b second at offset 2; StackSpace = 4.
	// equate(a) = 4 - 0 - 2 = 2; equate(b) = 4 - 2 - 2 = 0.
	if out[0].Instr != ".EQUATE 2 ; local var a #2d" || out[0].Label != "Fa" {
		t.Fatalf("out[0] = %+v, want .EQUATE 2 labeled Fa with trailing comment", out[0])
	}
	if out[1].Instr != ".EQUATE 0 ; local var b #2d" || out[1].Label != "Fb" {
		t.Fatalf("out[1] = %+v, want .EQUATE 0 labeled Fb with trailing comment", out[1])
	}
}

func TestSizeCommentFormatsScalarAndArray(t *testing.T) {
	if got := sizeComment("local var", "x", 1); got != "; local var x #2d" {
		t.Fatalf("sizeComment() = %q", got)
	}
	if got := sizeComment("global variable", "nums_", 4); got != "; global variable nums_ #2d[4a]" {
		t.Fatalf("sizeComment() = %q", got)
	}
}

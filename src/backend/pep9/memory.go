// memory.go generates the static (global) and local memory directive
// blocks, grounded on the original Python compiler's
// generators/StaticMemoryAllocation.py and generators/LocalMemoryAllocation.py
// and spec.md §4.8.
package pep9

import (
	"fmt"

	"pep9c/src/ir"
)

// GenerateStaticMemory renders globals (in the order the global extractor
// discovered them) into their .EQUATE / .WORD / .BLOCK directives, each
// followed by a trailing "; global variable <name> #2d[...]" comment,
// resolving each identifier's label through symbols.
func GenerateStaticMemory(symbols *ir.SymbolTable, globals []ir.GlobalVariable) []ir.LabeledInstruction {
	var out []ir.LabeledInstruction
	for _, g := range globals {
		label, _ := symbols.Get(g.Ident)
		switch g.Kind {
		case ir.Equate:
			out = append(out, ir.LabeledInstruction{Label: label, Instr: fmt.Sprintf(".EQUATE %d %s", g.Size, sizeComment("global variable", g.Ident, 1))})
		case ir.Word:
			out = append(out, ir.LabeledInstruction{Label: label, Instr: fmt.Sprintf(".WORD %d %s", g.Size, sizeComment("global variable", g.Ident, 1))})
		case ir.Block:
			words := g.Size / 2
			out = append(out, ir.LabeledInstruction{Label: label, Instr: fmt.Sprintf(".BLOCK %d %s", g.Size, sizeComment("global variable", g.Ident, words))})
		}
	}
	return out
}

// GenerateLocalMemory renders every local in frame (parameters included,
// in allocation order) into the stack-relative .EQUATE a function's body
// addresses its own locals through, each followed by a trailing
// "; local var <name> #2d[...]" comment.
func GenerateLocalMemory(frame *ir.CallFrame) []ir.LabeledInstruction {
	var out []ir.LabeledInstruction
	for _, ident := range frame.Order {
		lv := frame.Locals[ident]
		equate := frame.StackSpace - lv.Offset - 2*lv.Words
		out = append(out, ir.LabeledInstruction{Label: lv.Label, Instr: fmt.Sprintf(".EQUATE %d %s", equate, sizeComment("local var", ident, lv.Words))})
	}
	return out
}

func sizeComment(kind, ident string, words int) string {
	if words > 1 {
		return fmt.Sprintf("; %s %s #2d[%da]", kind, ident, words)
	}
	return fmt.Sprintf("; %s %s #2d", kind, ident)
}

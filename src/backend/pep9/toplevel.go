// toplevel.go implements the top-level emitter, grounded on the original
// Python compiler's visitors/TopLevelProgram.py and spec.md §4.6. It walks
// every top-level statement except function bodies, emitting the
// instructions that run before any user function is reached, and
// suppresses the store half of an assignment whenever the value is
// already captured by a static data directive (an EQUATE, a zeroed
// BLOCK array, or a WORD's initializer).
package pep9

import (
	"pep9c/src/ast"
	"pep9c/src/ir"
	"pep9c/src/util"
)

// TopLevelEmitter emits the instructions for every module-level statement
// outside of function bodies.
type TopLevelEmitter struct {
	base

	symbols *ir.SymbolTable
	kinds   map[string]ir.InitKind

	wordSeeded map[string]bool
	arraySeen  map[string]bool
}

// NewTopLevelEmitter returns an emitter that resolves global identifiers
// through symbols and already knows the storage kind the global extractor
// chose for each of globals.
func NewTopLevelEmitter(symbols *ir.SymbolTable, branchLabels *ir.SymbolTable, globals []ir.GlobalVariable) *TopLevelEmitter {
	e := &TopLevelEmitter{
		symbols:    symbols,
		kinds:      make(map[string]ir.InitKind),
		wordSeeded: make(map[string]bool),
		arraySeen:  make(map[string]bool),
	}
	e.base = newBase(branchLabels, e)
	for _, g := range globals {
		e.kinds[g.Ident] = g.Kind
	}
	return e
}

// Run visits every top-level statement in module, recording function
// arities along the way but never descending into a function body.
func (e *TopLevelEmitter) Run(module *ast.Node) error {
	for _, stmt := range module.Body {
		if err := e.Visit(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *TopLevelEmitter) accessMemory(node *ast.Node, instr, label string) error {
	return e.emitGlobalAccess(node, instr, label, e.symbols)
}

func (e *TopLevelEmitter) visitFunctionDef(node *ast.Node) error {
	return e.defaultVisitFunctionDef(node)
}

func (e *TopLevelEmitter) visitReturn(node *ast.Node) error {
	return e.defaultVisitReturn(node)
}

// visitAssign suppresses the runtime store for any global whose value is
// already embedded in the static data section: compile-time constants
// (always), array declarations (the BLOCK starts zeroed and is filled in
// only by later subscript stores), and the single occurrence of a scalar
// whose value the global extractor folded into its WORD initializer.
func (e *TopLevelEmitter) visitAssign(node *ast.Node) error {
	ident, target, subscript, err := e.parseAssign(node)
	if err != nil {
		return err
	}

	if subscript != nil {
		return e.assignStore(node, ident, target, subscript)
	}

	if util.IsConstantIdent(ident) {
		e.varNames[ident] = true
		e.currentTarget = nil
		return nil
	}

	if util.IsArrayIdent(ident) {
		e.varNames[ident] = true
		e.arraySeen[ident] = true
		e.currentTarget = nil
		return nil
	}

	if e.scopeDepth == 0 && e.kinds[ident] == ir.Word && !e.wordSeeded[ident] {
		e.wordSeeded[ident] = true
		e.varNames[ident] = true
		e.currentTarget = nil
		return nil
	}

	return e.assignStore(node, ident, target, subscript)
}

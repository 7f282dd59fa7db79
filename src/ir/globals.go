// globals.go implements the global variable extractor, grounded on the
// original Python compiler's visitors/GlobalVariables.py and spec.md §4.4.
// It walks the module top level (skipping function definitions and
// subscript assignment targets) and classifies every top-level assignment
// target as EQUATE, WORD, or BLOCK.

package ir

import (
	"pep9c/src/ast"
	"pep9c/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// GlobalExtractor walks a module's top level and produces the ordered set
// of GlobalVariable records, plus the identifier symbol table every later
// pass resolves global labels through.
type GlobalExtractor struct {
	Symbols *SymbolTable
	Results []GlobalVariable

	propagator *ConstantPropagator
	seenArrays map[string]bool
	scratch    map[string]bool // identifiers already recorded with a Block/Word entry
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewGlobalExtractor returns an extractor whose labels are drawn from gen.
func NewGlobalExtractor(gen *util.LabelGenerator) *GlobalExtractor {
	return &GlobalExtractor{
		Symbols:    NewSymbolTable(gen),
		propagator: NewConstantPropagator(),
		seenArrays: make(map[string]bool),
		scratch:    make(map[string]bool),
	}
}

// Visit walks module (an ast.Module node), recording one GlobalVariable
// per distinct top-level target in first-appearance order.
func (g *GlobalExtractor) Visit(module *ast.Node) error {
	for _, stmt := range module.Body {
		if stmt.Typ == ast.FunctionDef {
			// Function definitions are not global by definition.
			continue
		}
		if stmt.Typ != ast.Assign {
			continue
		}
		if err := g.visitAssign(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *GlobalExtractor) visitAssign(node *ast.Node) error {
	if err := util.EnsureAssign(node); err != nil {
		return err
	}
	target := node.Targets[0]
	if target.Typ == ast.Subscript {
		// Subscript assignment targets an already-declared array; it
		// introduces no new global.
		return nil
	}

	ident := target.Data.(string)
	g.Symbols.LookupOrCreate(ident)

	if util.IsConstantIdent(ident) {
		firstSeen := !g.propagator.Seen(ident)
		ok, _, value, err := g.propagator.AddAssign(ident, node.Value)
		if err != nil {
			return err
		}
		if !firstSeen {
			return util.Report(node.Line, node.Col, "Cannot reassign constant %q", ident)
		}
		if !ok {
			return util.Report(node.Line, node.Col, "Constant %q must be initialized with a compile-time constant expression", ident)
		}
		g.Results = append(g.Results, GlobalVariable{Ident: ident, Kind: Equate, Size: value})
		g.scratch[ident] = true
		return nil
	}

	if util.IsArrayIdent(ident) {
		if g.seenArrays[ident] {
			return nil // Covered by the BLOCK already recorded on first sight.
		}
		n, err := util.EnsureArray(node.Value)
		if err != nil {
			return err
		}
		g.seenArrays[ident] = true
		g.Results = append(g.Results, GlobalVariable{Ident: ident, Kind: Block, Size: 2 * n})
		return nil
	}

	firstSeenNow := !g.propagator.Seen(ident)
	ok, _, value, err := g.propagator.AddAssign(ident, node.Value)
	if err != nil {
		return err
	}

	if g.scratch[ident] {
		// Already has a record (WORD or BLOCK); reassignment adds none.
		return nil
	}

	if firstSeenNow && ok {
		g.Results = append(g.Results, GlobalVariable{Ident: ident, Kind: Word, Size: value})
	} else {
		g.Results = append(g.Results, GlobalVariable{Ident: ident, Kind: Block, Size: 2})
	}
	g.scratch[ident] = true
	return nil
}

// function.go implements the function emitter, grounded on the original
// Python compiler's visitors/FunctionDefinition.py and spec.md §4.7. Each
// function gets its own FunctionEmitter, which the compiler driver creates
// and runs once per top-level FunctionDef; the top-level emitter itself only
// records each function's arity and never recurses into its body.
package pep9

import (
	"fmt"

	"pep9c/src/ast"
	"pep9c/src/ir"
	"pep9c/src/util"
)

// FunctionEmitter emits the prologue, body and epilogue for a single
// function definition, resolving its own locals through a CallFrame and
// falling back to global addressing for anything that isn't one of them.
type FunctionEmitter struct {
	base

	name          string
	globalSymbols *ir.SymbolTable
	frame         *ir.CallFrame
	returned      bool // whether the body's last statement was an explicit return
}

// NewFunctionEmitter returns an emitter for the function named name,
// resolving global references through globalSymbols and local references
// through its own frame.
func NewFunctionEmitter(name string, globalSymbols *ir.SymbolTable, branchLabels *ir.SymbolTable) *FunctionEmitter {
	e := &FunctionEmitter{
		name:          name,
		globalSymbols: globalSymbols,
		frame:         ir.NewCallFrame(),
	}
	e.base = newBase(branchLabels, e)
	return e
}

// Frame exposes the planned call frame, consumed by the local memory
// generator to emit each local's .EQUATE directive.
func (e *FunctionEmitter) Frame() *ir.CallFrame {
	return e.frame
}

// seedGlobalNames marks every module-level identifier as already declared,
// mirroring FunctionDefinition.py's `self._variable_names =
// self.__global_names.copy()`: a function body may read any global it
// never itself assigns (spec.md §4.7 step 3), and checkDeclared otherwise
// has no way to know the name is legitimate before accessMemory falls back
// to global addressing for it.
func (e *FunctionEmitter) seedGlobalNames(names []string) {
	for _, n := range names {
		e.varNames[n] = true
	}
}

// planFrame walks node's parameters and body to assign every local (and
// parameter) a slot in the call frame before a single instruction is
// emitted, the way FunctionDefinition.py's allocation pass precedes code
// generation. Parameters are allocated first, in declaration order.
func (e *FunctionEmitter) planFrame(node *ast.Node) error {
	for _, p := range node.Params {
		e.frame.Allocate(p, e.localLabel(p), 1)
		e.varNames[p] = true
	}
	return e.planFrameBody(node.Body)
}

func (e *FunctionEmitter) planFrameBody(stmts []*ast.Node) error {
	for _, stmt := range stmts {
		switch stmt.Typ {
		case ast.Assign:
			target := stmt.Targets[0]
			if target.Typ != ast.Name {
				continue
			}
			ident := target.Data.(string)
			if e.frame.Has(ident) {
				continue
			}
			words := 1
			if util.IsArrayIdent(ident) {
				n, err := util.EnsureArray(stmt.Value)
				if err != nil {
					return err
				}
				words = n
			}
			e.frame.Allocate(ident, e.localLabel(ident), words)

		case ast.AugAssign:
			if stmt.Target.Typ != ast.Name {
				continue
			}
			ident := stmt.Target.Data.(string)
			if !e.frame.Has(ident) {
				e.frame.Allocate(ident, e.localLabel(ident), 1)
			}

		case ast.If:
			if err := e.planFrameBody(stmt.Body); err != nil {
				return err
			}
			if err := e.planFrameBody(stmt.Orelse); err != nil {
				return err
			}

		case ast.While:
			if err := e.planFrameBody(stmt.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// localLabel is the textual EQUATE symbol a local gets: the function name
// followed by the identifier, so that two functions can each have a local
// named the same thing without colliding in Pep/9's single flat namespace.
func (e *FunctionEmitter) localLabel(ident string) string {
	return e.name + ident
}

// Run plans the frame, then emits the prologue, body and epilogue.
func (e *FunctionEmitter) Run(node *ast.Node) error {
	if err := e.planFrame(node); err != nil {
		return err
	}

	funcLabel := e.branchLabels.LookupOrCreate(e.name)

	e.record(fmt.Sprintf("SUBSP %d,i", e.frame.StackSpace), funcLabel)
	for _, ident := range e.frame.Order {
		e.record(fmt.Sprintf("; push #%s", ident), "")
	}

	e.returned = false
	for _, stmt := range node.Body {
		if err := e.Visit(stmt); err != nil {
			return err
		}
	}

	e.returned = len(node.Body) > 0 && node.Body[len(node.Body)-1].Typ == ast.Return
	if !e.returned {
		e.emitEpilogue()
	}
	return nil
}

func (e *FunctionEmitter) emitEpilogue() {
	for _, ident := range e.frame.Order {
		e.record(fmt.Sprintf("; pop #%s", ident), "")
	}
	e.record(fmt.Sprintf("ADDSP %d,i", e.frame.StackSpace), "")
	e.record("RET", "")
}

// accessMemory resolves node through the local frame when it names one of
// this function's own locals (or an element of one of its local arrays),
// and falls back to global addressing otherwise.
func (e *FunctionEmitter) accessMemory(node *ast.Node, instr, label string) error {
	switch node.Typ {
	case ast.Name:
		if err := e.checkDeclared(node); err != nil {
			return err
		}
		if lv, ok := e.frame.Locals[node.Data.(string)]; ok {
			e.record(fmt.Sprintf("%s %d,s", instr, e.equateValue(lv)), label)
			return nil
		}
	case ast.Subscript:
		if err := e.checkDeclared(node.Object); err != nil {
			return err
		}
		if lv, ok := e.frame.Locals[node.Object.Data.(string)]; ok {
			return e.emitLocalIndexedAccess(node.Index, e.equateValue(lv), instr, label)
		}
	}
	return e.emitGlobalAccess(node, instr, label, e.globalSymbols)
}

// equateValue is the stack-relative offset a local's .EQUATE directive
// resolves to: the distance from the current stack pointer back up to the
// start of the local's storage (spec.md §4.8's equate arithmetic).
func (e *FunctionEmitter) equateValue(lv ir.LocalVariable) int {
	return e.frame.StackSpace - lv.Offset - 2*lv.Words
}

func (e *FunctionEmitter) emitLocalIndexedAccess(index *ast.Node, arrayEquate int, instr, label string) error {
	pending := label
	emit := func(s string) {
		e.record(s, pending)
		pending = ""
	}
	switch index.Typ {
	case ast.Constant:
		emit(fmt.Sprintf("LDWX %d,i", index.Data.(int)))
	case ast.Name:
		if lv, ok := e.frame.Locals[index.Data.(string)]; ok {
			emit(fmt.Sprintf("LDWX %d,s", e.equateValue(lv)))
		} else {
			if err := e.checkDeclared(index); err != nil {
				return err
			}
			lbl := e.globalSymbols.LookupOrCreate(index.Data.(string))
			emit(fmt.Sprintf("LDWX %s,d", lbl))
		}
	default:
		return util.Report(index.Line, index.Col, "Array index must be a variable or constant")
	}
	emit("ASLX")
	emit(fmt.Sprintf("%s %d,sx", instr, arrayEquate))
	return nil
}

func (e *FunctionEmitter) visitFunctionDef(node *ast.Node) error {
	return util.Report(node.Line, node.Col, "Nested function definitions are not supported")
}

func (e *FunctionEmitter) visitReturn(node *ast.Node) error {
	e.returned = true
	if node.Value != nil {
		if err := e.Visit(node.Value); err != nil {
			return err
		}
	}
	for _, ident := range e.frame.Order {
		e.record(fmt.Sprintf("; pop #%s", ident), "")
	}
	e.record(fmt.Sprintf("ADDSP %d,i", e.frame.StackSpace), "")
	e.record("RET", "")
	return nil
}

// visitAssign stores directly into whichever slot parseAssign resolved,
// whether that's one of this function's own locals or a global. A local
// array's own declaration (`name_ = [0] * N`) is suppressed exactly like
// a global one: planFrame already reserved its stack slots, and `[0] * N`
// is not an expression there is any instruction for.
func (e *FunctionEmitter) visitAssign(node *ast.Node) error {
	ident, target, subscript, err := e.parseAssign(node)
	if err != nil {
		return err
	}
	if subscript == nil && util.IsArrayIdent(ident) {
		e.varNames[ident] = true
		e.currentTarget = nil
		return nil
	}
	return e.assignStore(node, ident, target, subscript)
}

// base.go implements the procedural instruction base shared by the
// top-level emitter and the function emitter: expressions, calls,
// conditionals and loops (spec.md §4.5). It is grounded on the original
// Python compiler's visitors/ProceduralInstructions.py.
//
// The original is an abstract base class with an abstract _access_memory
// method, subclassed by TopLevelProgram and FunctionDefinition. Go has no
// subclassing; this is realized the way spec.md §9's design notes suggest
// ("an interface ... with two implementations"): base holds a visitor
// interface value pointing back at whichever concrete emitter embeds it,
// and dispatches addressing-mode-sensitive work (accessMemory) and the
// handful of behaviors each emitter must specialize (assignment storage,
// function definitions) through it.
package pep9

import (
	"fmt"

	"pep9c/src/ast"
	"pep9c/src/ir"
	"pep9c/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// visitor is the specialization contract a concrete emitter (top-level or
// function) must implement.
type visitor interface {
	// accessMemory emits the addressing-mode-appropriate instruction for
	// reading or writing node's storage location using mnemonic instr,
	// attaching label to the first emitted instruction (if any).
	accessMemory(node *ast.Node, instr, label string) error
	// visitAssign handles a fully-parsed assignment: whether to suppress
	// the store (static initialization, array declaration, input()) and
	// where to finally store the computed value.
	visitAssign(node *ast.Node) error
	// visitFunctionDef handles a function definition. The base's default
	// (used by the top-level emitter) only records the function's arity.
	visitFunctionDef(node *ast.Node) error
	// visitReturn handles a return statement. Only meaningful inside a
	// function body; the base default rejects it.
	visitReturn(node *ast.Node) error
}

// base carries the state and behavior common to every procedural visitor:
// the instruction buffer, the assignment-in-progress bookkeeping, scope
// depth, the shared branch/function label generator, and the set of
// identifiers declared so far.
type base struct {
	instructions []ir.LabeledInstruction

	shouldSave       bool
	currentTarget    *ast.Node // the Name being assigned (array name, for a Subscript target)
	currentSubscript *ast.Node // non-nil when currentTarget is being subscripted

	scopeDepth int

	branchLabels *ir.SymbolTable        // shared forward/reverse-disjoint generator for branches and functions
	funcDefs     map[string]int         // function name -> declared parameter count
	varNames     map[string]bool        // identifiers declared so far, in the current visiting context

	v visitor
}

// invComparisons maps each supported comparison operator to the mnemonic
// branching around the body when the source condition is false.
var invComparisons = map[ast.Op]string{
	ast.Lt:    "BRGE",
	ast.LtE:   "BRGT",
	ast.Gt:    "BRLE",
	ast.GtE:   "BRLT",
	ast.Eq:    "BRNE",
	ast.NotEq: "BREQ",
}

// ---------------------
// ----- Functions -----
// ---------------------

func newBase(branchLabels *ir.SymbolTable, v visitor) base {
	return base{
		shouldSave:   true,
		branchLabels: branchLabels,
		funcDefs:     make(map[string]int),
		varNames:     make(map[string]bool),
		v:            v,
	}
}

// record appends a new instruction to the buffer.
func (b *base) record(instr, label string) {
	b.instructions = append(b.instructions, ir.LabeledInstruction{Label: label, Instr: instr})
}

// checkDeclared is the part of _access_memory every concrete emitter
// shares: a bare Name reference must already be declared.
func (b *base) checkDeclared(node *ast.Node) error {
	if node.Typ == ast.Name {
		name := node.Data.(string)
		if !b.varNames[name] {
			return util.Report(node.Line, node.Col, "Use of undeclared identifier %q", name)
		}
	}
	return nil
}

// Finalize returns the accumulated instruction stream.
func (b *base) Finalize() []ir.LabeledInstruction {
	return b.instructions
}

// seedFunctionArities pre-registers every function's declared parameter
// count, so that a call site can validate a forward reference (or, from
// inside a function body, a call to any sibling function) without having
// visited that function's definition first.
func (b *base) seedFunctionArities(arities map[string]int) {
	for name, n := range arities {
		b.funcDefs[name] = n
	}
}

// Visit dispatches a single AST node to its handler. Any node kind
// outside the supported set is a compile error (spec.md §4.5).
func (b *base) Visit(node *ast.Node) error {
	switch node.Typ {
	case ast.Constant, ast.Name, ast.Subscript:
		return b.v.accessMemory(node, "LDWA", "")
	case ast.BinOp:
		return b.visitBinOp(node)
	case ast.Call:
		return b.visitCall(node)
	case ast.ExprStmt:
		return b.Visit(node.Value)
	case ast.Assign:
		return b.v.visitAssign(node)
	case ast.AugAssign:
		return b.v.visitAssign(assignFromAugAssign(node))
	case ast.If:
		return b.visitIf(node)
	case ast.While:
		return b.visitWhile(node)
	case ast.Return:
		return b.v.visitReturn(node)
	case ast.FunctionDef:
		return b.v.visitFunctionDef(node)
	default:
		return util.Report(node.Line, node.Col, "Unsupported AST node kind %q", node.Typ)
	}
}

func (b *base) visitBinOp(node *ast.Node) error {
	if err := b.v.accessMemory(node.Left, "LDWA", ""); err != nil {
		return err
	}
	switch node.Op {
	case ast.Add:
		return b.v.accessMemory(node.Right, "ADDA", "")
	case ast.Sub:
		return b.v.accessMemory(node.Right, "SUBA", "")
	default:
		return util.Report(node.Line, node.Col, "Unsupported binary operator %q", node.Op)
	}
}

func (b *base) visitCall(node *ast.Node) error {
	name, _ := node.Data.(string)
	switch name {
	case "exit":
		if err := util.EnsureArgs(node, 0); err != nil {
			return err
		}
		b.record("STOP", "")
		return nil

	case "int":
		if err := util.EnsureArgs(node, 1); err != nil {
			return err
		}
		return b.Visit(node.Args[0])

	case "input":
		if err := util.EnsureArgs(node, 0); err != nil {
			return err
		}
		if b.currentTarget == nil || b.currentTarget.Typ != ast.Name {
			return util.Report(node.Line, node.Col, "input() may only be assigned directly to a variable")
		}
		b.varNames[b.currentTarget.Data.(string)] = true
		if err := b.v.accessMemory(b.currentTarget, "DECI", ""); err != nil {
			return err
		}
		b.shouldSave = false
		return nil

	case "print":
		if err := util.EnsureArgs(node, 1); err != nil {
			return err
		}
		return b.v.accessMemory(node.Args[0], "DECO", "")

	default:
		arity, declared := b.funcDefs[name]
		if !declared {
			return util.Report(node.Line, node.Col, "Unsupported function call: %s", name)
		}
		if err := util.EnsureArgs(node, arity); err != nil {
			return err
		}
		for idx, arg := range node.Args {
			if err := b.v.accessMemory(arg, "LDWA", ""); err != nil {
				return err
			}
			offset := -4 - 2*idx
			b.record(fmt.Sprintf("STWA %d,s", offset), "")
		}
		label := b.branchLabels.LookupOrCreate(name)
		b.record(fmt.Sprintf("CALL %s", label), "")
		return nil
	}
}

// branchCompare emits the shared comparison/branch sequence used by both
// If and While: load the left operand (tagged with entryLabel, if any),
// compare against the right operand, then branch to exitLabel when the
// source condition does not hold.
func (b *base) branchCompare(test *ast.Node, entryLabel, exitLabel string) error {
	if err := util.EnsureCondition(test); err != nil {
		return err
	}
	lhs := test.Left
	rhs := test.Comparators[0]
	if err := b.v.accessMemory(lhs, "LDWA", entryLabel); err != nil {
		return err
	}
	if err := b.v.accessMemory(rhs, "CPWA", ""); err != nil {
		return err
	}
	op := test.Ops[0]
	mnemonic, ok := invComparisons[op]
	if !ok {
		return util.Report(test.Line, test.Col, "Unsupported comparison %q", op)
	}
	b.record(fmt.Sprintf("%s %s", mnemonic, exitLabel), "")
	return nil
}

func (b *base) visitIf(node *ast.Node) error {
	b.scopeDepth++
	defer func() { b.scopeDepth-- }()

	elseLabel := b.branchLabels.NewLabel()
	fiLabel := b.branchLabels.NewLabel()
	hasElse := len(node.Orelse) > 0

	exitLabel := fiLabel
	if hasElse {
		exitLabel = elseLabel
	}
	if err := b.branchCompare(node.Test, "", exitLabel); err != nil {
		return err
	}

	for _, stmt := range node.Body {
		if err := b.Visit(stmt); err != nil {
			return err
		}
	}

	if hasElse {
		b.record(fmt.Sprintf("BR %s", fiLabel), "")
		b.record("NOP1", elseLabel)
		for _, stmt := range node.Orelse {
			if err := b.Visit(stmt); err != nil {
				return err
			}
		}
	}

	b.record("NOP1", fiLabel)
	return nil
}

func (b *base) visitWhile(node *ast.Node) error {
	b.scopeDepth++
	defer func() { b.scopeDepth-- }()

	testLabel := b.branchLabels.NewLabel()
	endLabel := b.branchLabels.NewLabel()

	if err := b.branchCompare(node.Test, testLabel, endLabel); err != nil {
		return err
	}

	for _, stmt := range node.Body {
		if err := b.Visit(stmt); err != nil {
			return err
		}
	}
	b.record(fmt.Sprintf("BR %s", testLabel), "")
	b.record("NOP1", endLabel)
	return nil
}

// defaultVisitFunctionDef records name -> arity for later call-site
// validation, without visiting the body. This is the behavior the
// top-level emitter wants (spec.md §4.6 "Skips function definitions");
// the function emitter overrides visitFunctionDef entirely.
func (b *base) defaultVisitFunctionDef(node *ast.Node) error {
	b.funcDefs[node.Data.(string)] = len(node.Params)
	return nil
}

// defaultVisitReturn rejects a return statement outside of a function
// body; the function emitter overrides visitReturn with real semantics.
func (b *base) defaultVisitReturn(node *ast.Node) error {
	return util.Report(node.Line, node.Col, "Return statement outside of function body")
}

// parseAssign implements the shared shape of spec.md §4.5's visit_Assign:
// it validates the assignment, extracts the lvalue, and records the
// current assignment target (and subscript, if any) for the benefit of
// anything visited while computing the right-hand side (e.g. input()).
// It returns the target identifier, the raw target node, and the
// subscript index expression (nil for a plain scalar/array-name target).
func (b *base) parseAssign(node *ast.Node) (ident string, target *ast.Node, subscript *ast.Node, err error) {
	if err = util.EnsureAssign(node); err != nil {
		return "", nil, nil, err
	}
	t := node.Targets[0]
	if t.Typ == ast.Subscript {
		b.currentTarget = t.Object
		b.currentSubscript = t.Index
		ident = t.Object.Data.(string)
		return ident, t, t.Index, nil
	}
	b.currentTarget = t
	b.currentSubscript = nil
	ident = t.Data.(string)
	return ident, t, nil, nil
}

// assignStore computes node.Value and, unless an intervening input() call
// already stored it, stores the result into target (and subscript, if
// given) via accessMemory. ident is added to the declared-identifier set.
func (b *base) assignStore(node *ast.Node, ident string, target, subscript *ast.Node) error {
	if err := b.Visit(node.Value); err != nil {
		return err
	}
	b.varNames[ident] = true

	if b.shouldSave {
		if err := b.v.accessMemory(target, "STWA", ""); err != nil {
			return err
		}
	} else {
		b.shouldSave = true
	}

	b.currentTarget = nil
	b.currentSubscript = nil
	return nil
}

// emitGlobalAccess is the addressing-mode logic shared by both emitters
// for any operand that resolves through a global label (immediate
// constants, plain globals, and array-element access): spec.md §4.6/§4.7's
// d/i/x addressing modes. The function emitter falls back to this for any
// identifier that is not one of its own locals.
func (b *base) emitGlobalAccess(node *ast.Node, instr, label string, symbols *ir.SymbolTable) error {
	pending := label
	emit := func(s string) {
		b.record(s, pending)
		pending = ""
	}
	switch node.Typ {
	case ast.Constant:
		emit(fmt.Sprintf("%s %d,i", instr, node.Data.(int)))
		return nil

	case ast.Name:
		if err := b.checkDeclared(node); err != nil {
			return err
		}
		name := node.Data.(string)
		lbl := symbols.LookupOrCreate(name)
		if util.IsConstantIdent(name) {
			emit(fmt.Sprintf("%s %s,i", instr, lbl))
			return nil
		}
		emit(fmt.Sprintf("%s %s,d", instr, lbl))
		return nil

	case ast.Subscript:
		if err := b.checkDeclared(node.Object); err != nil {
			return err
		}
		arrLabel := symbols.LookupOrCreate(node.Object.Data.(string))
		idx := node.Index
		switch idx.Typ {
		case ast.Constant:
			emit(fmt.Sprintf("LDWX %d,i", idx.Data.(int)))
		case ast.Name:
			if err := b.checkDeclared(idx); err != nil {
				return err
			}
			ilbl := symbols.LookupOrCreate(idx.Data.(string))
			emit(fmt.Sprintf("LDWX %s,d", ilbl))
		default:
			return util.Report(idx.Line, idx.Col, "Array index must be a variable or constant")
		}
		emit("ASLX")
		emit(fmt.Sprintf("%s %s,x", instr, arrLabel))
		return nil

	default:
		return util.Report(node.Line, node.Col, "Unsupported operand kind %q in memory access", node.Typ)
	}
}

// assignFromAugAssign rewrites `target OP= value` into the equivalent
// `target = target OP value`, mirroring the original compiler's
// assign_from_augassign (common/Utils.py).
func assignFromAugAssign(node *ast.Node) *ast.Node {
	return &ast.Node{
		Typ:  ast.Assign,
		Line: node.Line,
		Col:  node.Col,
		Targets: []*ast.Node{node.Target},
		Value: &ast.Node{
			Typ:   ast.BinOp,
			Line:  node.Line,
			Col:   node.Col,
			Op:    node.AugOp,
			Left:  node.Target,
			Right: node.Value,
		},
	}
}

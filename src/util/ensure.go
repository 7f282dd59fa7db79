// ensure.go implements the shape-validating helpers of the error reporter
// (spec.md §4.1), grounded on the original Python compiler's
// ensure_args/ensure_condition/ensure_assign (original_source/rbs/common/
// Errors.py) and ensure_array, which spec.md §4.1 names but whose source
// snapshot did not survive retrieval; it is implemented directly from
// spec.md's textual description of the `[0] * N` shape.

package util

import "pep9c/src/ast"

// EnsureArgs rejects a call whose argument count, keyword arguments, star
// arguments, or argument node kinds don't match what the caller requires.
func EnsureArgs(call *ast.Node, n int) error {
	if len(call.Args) != n {
		return Report(call.Line, call.Col, "Expected %d arguments, got %d", n, len(call.Args))
	}
	if call.Starred {
		return Report(call.Line, call.Col, "Star arguments are not supported")
	}
	if call.Keywords != 0 {
		return Report(call.Line, call.Col, "Keyword arguments are not supported")
	}
	for _, a := range call.Args {
		switch a.Typ {
		case ast.Name, ast.Constant, ast.Subscript:
		case ast.Call:
			if name, ok := a.Data.(string); !ok || name != "input" {
				return Report(a.Line, a.Col, "Unnamed expressions are not supported as arguments")
			}
		default:
			return Report(a.Line, a.Col, "Unnamed expressions are not supported as arguments")
		}
	}
	return nil
}

// EnsureCondition requires a single comparison operator and comparator.
func EnsureCondition(cond *ast.Node) error {
	if cond.Typ != ast.Compare {
		return Report(cond.Line, cond.Col, "Conditional must be a comparison")
	}
	if len(cond.Ops) != 1 || len(cond.Comparators) != 1 {
		return Report(cond.Line, cond.Col, "Multiple comparisons are not supported")
	}
	return nil
}

// EnsureAssign requires exactly one target that is a Name or Subscript.
func EnsureAssign(assign *ast.Node) error {
	if len(assign.Targets) != 1 {
		return Report(assign.Line, assign.Col, "Only unary assignments are supported")
	}
	target := assign.Targets[0]
	switch target.Typ {
	case ast.Name:
	case ast.Subscript:
		if target.IsSlice {
			return Report(target.Line, target.Col, "Array slicing is not supported")
		}
		if target.Index == nil || (target.Index.Typ != ast.Name && target.Index.Typ != ast.Constant) {
			return Report(target.Line, target.Col, "Unnamed expressions in array subscript are not supported")
		}
		if target.Object == nil || target.Object.Typ != ast.Name {
			return Report(target.Line, target.Col, "Cannot index into non-array object")
		}
	default:
		return Report(target.Line, target.Col, "Unsupported assignment target")
	}
	return nil
}

// EnsureArray validates that rhs has the shape `[0] * N`, a literal
// single-element zero list repeated N times, and returns N. This is the
// only array initializer form the language supports (spec.md §4.1, §8
// "Array-shape").
func EnsureArray(rhs *ast.Node) (int, error) {
	if rhs.Typ != ast.BinOp || rhs.Op != ast.Mul {
		return 0, Report(rhs.Line, rhs.Col, "Array initializer must be of the form [0] * N")
	}
	list := rhs.Left
	count := rhs.Right
	if list == nil || list.Typ != ast.ListLiteral || len(list.Elts) != 1 ||
		list.Elts[0].Typ != ast.Constant {
		return 0, Report(rhs.Line, rhs.Col, "Array initializer must be of the form [0] * N")
	}
	if zero, ok := list.Elts[0].Data.(int); !ok || zero != 0 {
		return 0, Report(list.Line, list.Col, "Array initializer must be zero-filled")
	}
	if count == nil || count.Typ != ast.Constant {
		return 0, Report(rhs.Line, rhs.Col, "Array size must be an integer constant")
	}
	n, ok := count.Data.(int)
	if !ok {
		return 0, Report(count.Line, count.Col, "Array size must be an integer constant")
	}
	if n < 0 {
		return 0, Report(count.Line, count.Col, "Array size must not be negative")
	}
	return n, nil
}

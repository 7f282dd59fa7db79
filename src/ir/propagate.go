// propagate.go implements compile-time constant folding across a chain of
// assignments, grounded on the original Python compiler's
// visitors/ConstantPropagator.py and spec.md §3/§4.3.

package ir

import "pep9c/src/ast"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// ConstantPropagator tracks, per identifier, whether its most recent
// assignment folded to a compile-time integer, and whether the identifier
// has ever been reassigned. The three informational sets spec.md §3
// describes (propagated, reassigned, seen) are kept as three maps/sets
// rather than merged into one tri-state map, to mirror the original
// implementation's three independent collections exactly.
type ConstantPropagator struct {
	propagated map[string]int
	reassigned map[string]bool
	seen       map[string]bool
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewConstantPropagator returns an empty ConstantPropagator.
func NewConstantPropagator() *ConstantPropagator {
	return &ConstantPropagator{
		propagated: make(map[string]int),
		reassigned: make(map[string]bool),
		seen:       make(map[string]bool),
	}
}

// TryPropagateConstant recursively attempts to fold node to a compile-time
// integer. It returns whether folding succeeded, whether any name folded
// along the way had been reassigned since it was first seen, and the
// folded value (valid only when ok is true).
func (cp *ConstantPropagator) TryPropagateConstant(node *ast.Node) (ok bool, usedReassigned bool, value int, err error) {
	switch node.Typ {
	case ast.BinOp:
		if node.Op != ast.Add && node.Op != ast.Sub {
			return false, false, 0, nil
		}
		ok1, r1, lhs, err := cp.TryPropagateConstant(node.Left)
		if err != nil {
			return false, false, 0, err
		}
		ok2, r2, rhs, err := cp.TryPropagateConstant(node.Right)
		if err != nil {
			return false, false, 0, err
		}
		reassigned := r1 || r2
		if !ok1 || !ok2 {
			return false, reassigned, 0, nil
		}
		if node.Op == ast.Add {
			return true, reassigned, lhs + rhs, nil
		}
		return true, reassigned, lhs - rhs, nil

	case ast.Constant:
		n, isInt := node.Data.(int)
		if !isInt {
			return false, false, 0, errUnsupportedConstant(node)
		}
		return true, false, n, nil

	case ast.Name:
		name := node.Data.(string)
		wasReassigned := cp.reassigned[name]
		v, ok := cp.propagated[name]
		if !ok {
			return false, wasReassigned, 0, nil
		}
		return true, wasReassigned, v, nil

	case ast.Call:
		// A function call can never be folded at compile time.
		return false, false, 0, nil

	default:
		return false, false, 0, errUnsupportedExpr(node)
	}
}

// AddAssign records that identifier is being assigned the value of node,
// updating propagated/reassigned/seen accordingly, and returns whether the
// assignment folded to a compile-time constant.
func (cp *ConstantPropagator) AddAssign(identifier string, node *ast.Node) (ok bool, usedReassigned bool, value int, err error) {
	ok, usedReassigned, value, err = cp.TryPropagateConstant(node)
	if err != nil {
		return false, false, 0, err
	}

	if ok {
		cp.propagated[identifier] = value
	} else {
		delete(cp.propagated, identifier)
	}

	if cp.seen[identifier] {
		cp.reassigned[identifier] = true
	}
	cp.seen[identifier] = true

	return ok, usedReassigned, value, nil
}

// Seen reports whether identifier has ever been assigned.
func (cp *ConstantPropagator) Seen(identifier string) bool {
	return cp.seen[identifier]
}

// errors.go collects the small error constructors shared across the ir
// package's visitors, keeping each visit_* method's error path to a single
// line the way the original Python compiler's compile_error call sites do.

package ir

import (
	"pep9c/src/ast"
	"pep9c/src/util"
)

func errUnsupportedConstant(n *ast.Node) error {
	return util.Report(n.Line, n.Col, "Unsupported constant type in expression")
}

func errUnsupportedExpr(n *ast.Node) error {
	return util.Report(n.Line, n.Col, "Unsupported type %s in expression", n.Typ)
}

func errUnsupportedNode(n *ast.Node) error {
	return util.Report(n.Line, n.Col, "Unsupported AST node kind %q", n.Typ)
}

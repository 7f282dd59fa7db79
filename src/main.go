package main

import (
	"fmt"
	"os"

	"pep9c/src/ast"
	"pep9c/src/backend/pep9"
	"pep9c/src/util"
)

// run reads the serialized input AST, optionally dumps it, and otherwise
// compiles it to Pep/9 assembler text, writing the result to opt.Out.
func run(opt util.Options) error {
	src, err := util.ReadSource(opt)
	if err != nil {
		return fmt.Errorf("could not read input AST: %w", err)
	}

	module, err := ast.Decode(src)
	if err != nil {
		return fmt.Errorf("malformed input AST: %w", err)
	}

	if opt.ASTDump {
		dumpTree(module, 0)
		return nil
	}

	out, err := pep9.Compile(module, opt)
	if err != nil {
		return fmt.Errorf("compile error: %w", err)
	}

	dst, err := util.OpenOutput(opt.Out)
	if err != nil {
		return fmt.Errorf("could not open output: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write([]byte(out)); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "pep9c: wrote %d bytes\n", len(out))
	}
	return nil
}

// dumpTree prints module's node tree, one line per node, to stdout.
func dumpTree(node *ast.Node, depth int) {
	if node == nil {
		return
	}
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	fmt.Println(node)
	for _, child := range childrenOf(node) {
		dumpTree(child, depth+1)
	}
}

// childrenOf gathers every direct child node, in source order, across all
// of the field groups a node kind might populate.
func childrenOf(node *ast.Node) []*ast.Node {
	var out []*ast.Node
	out = append(out, node.Args...)
	out = append(out, node.Targets...)
	if node.Target != nil {
		out = append(out, node.Target)
	}
	if node.Value != nil {
		out = append(out, node.Value)
	}
	if node.Left != nil {
		out = append(out, node.Left)
	}
	if node.Right != nil {
		out = append(out, node.Right)
	}
	out = append(out, node.Comparators...)
	if node.Object != nil {
		out = append(out, node.Object)
	}
	if node.Index != nil {
		out = append(out, node.Index)
	}
	out = append(out, node.Elts...)
	if node.Test != nil {
		out = append(out, node.Test)
	}
	out = append(out, node.Body...)
	out = append(out, node.Orelse...)
	return out
}

func main() {
	opt, err := util.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Command line argument error: %s\n", err)
		os.Exit(1)
	}

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

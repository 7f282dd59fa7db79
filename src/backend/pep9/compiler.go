// compiler.go is the driver that composes the global extractor, the
// top-level and function emitters, the memory generators, the optimizer
// and the entry-point formatter into the finished Pep/9 assembler text,
// grounded on the original Python compiler's rbs/Compiler.py and spec.md
// §4/§5/§6.
package pep9

import (
	"fmt"

	"pep9c/src/ast"
	"pep9c/src/ir"
	"pep9c/src/util"
)

// Compile translates module (an ast.Module node) into Pep/9 assembler
// source text under the given options.
func Compile(module *ast.Node, options util.Options) (string, error) {
	identGen := util.NewIdentifierLabels()
	branchGen := util.NewBranchLabels()
	branchLabels := ir.NewSymbolTable(branchGen)

	extractor := ir.NewGlobalExtractor(identGen)
	if err := extractor.Visit(module); err != nil {
		return "", err
	}
	symbols := extractor.Symbols

	var funcDefs []*ast.Node
	arities := make(map[string]int)
	for _, stmt := range module.Body {
		if stmt.Typ == ast.FunctionDef {
			funcDefs = append(funcDefs, stmt)
			arities[stmt.Data.(string)] = len(stmt.Params)
		}
	}

	entry := options.Entry
	if entry == "" {
		entry = "main"
	}

	top := NewTopLevelEmitter(symbols, branchLabels, extractor.Results)
	top.seedFunctionArities(arities)
	if err := top.Run(module); err != nil {
		return "", err
	}

	var localEquates []ir.LabeledInstruction
	var funcBodies []ir.LabeledInstruction
	for _, fd := range funcDefs {
		name := fd.Data.(string)
		fe := NewFunctionEmitter(name, symbols, branchLabels)
		fe.seedFunctionArities(arities)
		fe.seedGlobalNames(symbols.Names())
		if err := fe.Run(fd); err != nil {
			return "", err
		}
		localEquates = append(localEquates, Banner(fmt.Sprintf("%s locals", name)))
		localEquates = append(localEquates, GenerateLocalMemory(fe.Frame())...)
		funcBodies = append(funcBodies, fe.Finalize()...)
	}

	topInstrs := append([]ir.LabeledInstruction{{Label: entry, Instr: "NOP1"}}, top.Finalize()...)

	var program []ir.LabeledInstruction
	program = append(program, ir.LabeledInstruction{Instr: fmt.Sprintf("BR %s", entry)})
	program = append(program, Banner("Global variables"))
	program = append(program, GenerateStaticMemory(symbols, extractor.Results)...)
	program = append(program, localEquates...)
	program = append(program, funcBodies...)
	program = append(program, Banner("Top Level instructions"))
	program = append(program, topInstrs...)
	program = append(program, ir.LabeledInstruction{Instr: ".END"})

	program = NewOptimizer().Optimize(program)

	return FormatProgram(program), nil
}

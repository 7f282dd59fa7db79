// entrypoint.go formats a finished instruction stream into Pep/9 assembler
// source text, grounded on the original Python compiler's
// generators/EntryPoint.py and spec.md §4.9.
package pep9

import (
	"fmt"
	"strings"

	"pep9c/src/ir"
)

const labelColumnWidth = 9

// FormatProgram renders instrs as Pep/9 assembler text: a labeled line is
// "<label>:" padded to labelColumnWidth columns, a tab, then the mnemonic;
// an unlabeled line is two tabs then the mnemonic.
func FormatProgram(instrs []ir.LabeledInstruction) string {
	var sb strings.Builder
	for _, li := range instrs {
		if li.Label != "" {
			tag := li.Label + ":"
			fmt.Fprintf(&sb, "%-*s\t%s\n", labelColumnWidth, tag, li.Instr)
		} else {
			fmt.Fprintf(&sb, "\t\t%s\n", li.Instr)
		}
	}
	return sb.String()
}

// Banner returns a comment-only pseudo-instruction, used to separate the
// sections of the finished program (static data, per-function locals,
// function bodies, top-level body).
func Banner(text string) ir.LabeledInstruction {
	return ir.LabeledInstruction{Instr: "; " + text}
}

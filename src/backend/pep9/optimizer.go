// optimizer.go implements the peephole optimization passes, grounded on
// the original Python compiler's optimizers/Optimizer.py and
// optimizers/passes/Peephole.py, and spec.md §4.10.
package pep9

import (
	"strings"

	"pep9c/src/ir"
)

// Optimizer runs a fixed pipeline of passes over a finished instruction
// stream, each consuming the previous pass's output.
type Optimizer struct {
	passes []ir.OptimizationPass
}

// NewOptimizer returns the standard two-pass pipeline: redundant-load
// elimination, then NOP absorption. Order matters — absorption must run
// last so it sees the final label set after any loads it might otherwise
// have had to drag labels across are gone.
func NewOptimizer() *Optimizer {
	return &Optimizer{passes: []ir.OptimizationPass{
		eliminateRedundantLoads,
		absorbNops,
	}}
}

// Optimize folds instrs through every pass in order.
func (o *Optimizer) Optimize(instrs []ir.LabeledInstruction) []ir.LabeledInstruction {
	for _, pass := range o.passes {
		instrs = pass(instrs)
	}
	return instrs
}

// splitMnemonic separates an already-formatted instruction into its
// mnemonic and operand (the text after the first space, if any).
func splitMnemonic(instr string) (mnemonic, operand string) {
	i := strings.IndexByte(instr, ' ')
	if i < 0 {
		return instr, ""
	}
	return instr[:i], instr[i+1:]
}

// eliminateRedundantLoads drops an unlabeled LDWA/LDWX whose operand is
// already known to be sitting in the accumulator/index register, tracking
// that knowledge as two plain "what does this register currently hold"
// variables rather than folding mnemonic and operand into one composite
// string key — ASLX and an intervening arithmetic/store instruction each
// invalidate the relevant piece of state on their own terms. Any labeled
// instruction or CALL starts a new basic block and clears all of it,
// since a jump or a callee can arrive with either register holding
// anything.
func eliminateRedundantLoads(instrs []ir.LabeledInstruction) []ir.LabeledInstruction {
	var out []ir.LabeledInstruction
	var accHolds, idxHolds string
	var idxShifted bool

	reset := func() {
		accHolds = ""
		idxHolds = ""
		idxShifted = false
	}
	// An indexed load's value depends on X, so changing X forgets it.
	forgetIndexedAcc := func() {
		if strings.HasSuffix(accHolds, ",x") || strings.HasSuffix(accHolds, ",sx") {
			accHolds = ""
		}
	}

	for _, li := range instrs {
		if li.Label != "" {
			reset()
		}
		mnemonic, operand := splitMnemonic(li.Instr)

		switch mnemonic {
		case "LDWA":
			if li.Label == "" && operand == accHolds && accHolds != "" {
				continue
			}
			out = append(out, li)
			accHolds = operand
			continue

		case "LDWX":
			if li.Label == "" && operand == idxHolds && idxHolds != "" && !idxShifted {
				continue
			}
			out = append(out, li)
			idxHolds = operand
			idxShifted = false
			forgetIndexedAcc()
			continue

		case "ASLX":
			idxShifted = true
			forgetIndexedAcc()

		case "CALL":
			out = append(out, li)
			reset()
			continue

		default:
			accHolds = ""
		}

		out = append(out, li)
	}
	return out
}

// absorbNops removes NOP1 placeholders. An unlabeled NOP is dropped; a
// labeled NOP hands its label to the next instruction when that one has no
// label of its own, and otherwise stays in place (as NOP1) with its label.
func absorbNops(instrs []ir.LabeledInstruction) []ir.LabeledInstruction {
	var out []ir.LabeledInstruction
	pending := ""
	for _, li := range instrs {
		if pending != "" && li.Label != "" {
			out = append(out, ir.LabeledInstruction{Label: pending, Instr: "NOP1"})
			pending = ""
		}
		mnemonic, _ := splitMnemonic(li.Instr)
		if mnemonic == "NOP1" || mnemonic == "NOP0" {
			if pending == "" {
				pending = li.Label
			}
			continue
		}
		label := li.Label
		if pending != "" {
			if label == "" {
				label = pending
			}
			pending = ""
		}
		out = append(out, ir.LabeledInstruction{Label: label, Instr: li.Instr})
	}
	if pending != "" {
		out = append(out, ir.LabeledInstruction{Label: pending, Instr: "NOP1"})
	}
	return out
}

// args.go parses the command line for the pep9c driver. The CLI surface is
// an external collaborator (spec.md §1, §6), but a complete repository
// still ships the hand-rolled-loop-over-os.Args style vslc's own
// util/args.go uses — no flag-parsing library appears anywhere in the
// retrieved pack, so this ambient piece stays on the standard library,
// matching the teacher exactly.

package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options controls the behaviour of the pep9c driver.
type Options struct {
	Src     string // Path to the serialized input AST document.
	Out     string // Path to the output assembly file; empty means stdout.
	Entry   string // Entry point label (spec.md §4.6 "default main").
	ASTDump bool   // Pretty-print the decoded AST and exit, skip codegen.
	Verbose bool   // Print the number of bytes written to stderr.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "pep9c 1.0"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses command line arguments.
func ParseArgs(args []string) (Options, error) {
	opt := Options{Entry: "main"}
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-f", "-o", "-entry":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected argument for %s, got new flag %s", args[i1], args[i1+1])
			}
			switch args[i1] {
			case "-f":
				opt.Src = args[i1+1]
			case "-o":
				opt.Out = args[i1+1]
			case "-entry":
				opt.Entry = args[i1+1]
			}
			i1++
		case "-ast-dump":
			opt.ASTDump = true
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-vb":
			opt.Verbose = true
		default:
			return opt, fmt.Errorf("unexpected flag: %s", args[i1])
		}
	}
	return opt, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "-f\tPath to the serialized input AST document.")
	_, _ = fmt.Fprintln(w, "-o\tPath and name of the output assembly file. Defaults to stdout.")
	_, _ = fmt.Fprintln(w, "-entry\tEntry point label. Defaults to 'main'.")
	_, _ = fmt.Fprintln(w, "-ast-dump\tPretty-print the decoded AST and exit without generating code.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print the number of bytes written to stderr.")
	_ = w.Flush()
}

// perror.go provides the compiler's single-error sink: the first detected
// error aborts translation. This is a synchronous simplification of
// vslc's util/perror.go perror struct, which buffered errors reported from
// parallel worker threads behind a channel and a mutex; per spec.md §5
// this compiler is single-threaded and batch, so there is exactly one
// error to carry rather than a buffer of them.

package util

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// CompileError is a terminal compiler error carrying source coordinates.
// Formatting matches the original Python compiler's compile_error.
type CompileError struct {
	Line int
	Col  int
	Msg  string
}

// ---------------------
// ----- functions -----
// ---------------------

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("Error at Ln %d, Col %d: %s", e.Line, e.Col+1, e.Msg)
}

// Report builds a *CompileError at the given source position.
func Report(line, col int, format string, args ...interface{}) error {
	return &CompileError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// symtab.go provides the identifier-to-label symbol table, grounded on
// the original Python compiler's common/SymbolTable.py (lookup_or_create,
// __set__, __getitem__) and spec.md §3/§4.2.

package ir

import "pep9c/src/util"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// SymbolTable maps source identifiers to their generated assembly labels.
// Labels are drawn from the associated generator on first creation and
// are stable for the rest of compilation.
type SymbolTable struct {
	gen   *util.LabelGenerator
	names map[string]string
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewSymbolTable returns a SymbolTable backed by gen.
func NewSymbolTable(gen *util.LabelGenerator) *SymbolTable {
	return &SymbolTable{gen: gen, names: make(map[string]string)}
}

// LookupOrCreate returns the label bound to name, allocating one from the
// generator on first use. Idempotent.
func (st *SymbolTable) LookupOrCreate(name string) string {
	if label, ok := st.names[name]; ok {
		return label
	}
	label := st.gen.Next()
	st.names[name] = label
	return label
}

// Set explicitly binds name to label. It fails if name is already bound.
func (st *SymbolTable) Set(name, label string) error {
	if _, ok := st.names[name]; ok {
		return util.Report(0, 0, "identifier %q already declared", name)
	}
	st.names[name] = label
	return nil
}

// Get returns the label bound to name, and whether it was found.
func (st *SymbolTable) Get(name string) (string, bool) {
	label, ok := st.names[name]
	return label, ok
}

// Has reports whether name is bound in the table.
func (st *SymbolTable) Has(name string) bool {
	_, ok := st.names[name]
	return ok
}

// NewLabel draws a fresh label from the generator without binding it to
// any name. Used for branch targets (if/while), which are never looked
// up by identifier the way function and global labels are.
func (st *SymbolTable) NewLabel() string {
	return st.gen.Next()
}

// Names returns every identifier currently bound, in no particular order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.names))
	for name := range st.names {
		names = append(names, name)
	}
	return names
}

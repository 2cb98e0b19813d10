// Package sym defines the symbol representation shared by the binder (which
// creates and populates symbols) and the emitter (which reads them back off
// AST leaves to decide addressing). Kept as its own package, grounded on the
// teacher's split between the jack AST package and its scope table, so that
// pkg/ast can hold a *Symbol back-reference without importing pkg/bind.
package sym

// Kind identifies what a Symbol denotes. VSL has one flat namespace per scope
// kind: functions and globals live in the global table; parameters and locals
// live in a function's local table, keyed differently (see Symbol.Locals).
type Kind int

const (
	GlobalVariable Kind = iota
	FunctionSym
	Parameter
	LocalVariable
)

func (k Kind) String() string {
	switch k {
	case GlobalVariable:
		return "global_variable"
	case FunctionSym:
		return "function"
	case Parameter:
		return "parameter"
	case LocalVariable:
		return "local_variable"
	default:
		return "unknown_symbol_kind"
	}
}

// Symbol is one entry in the global table or in a function's local table.
//
// Seq's meaning depends on Kind: declaration order for functions, parameter
// index for parameters, local-slot index within the function for locals,
// unused (zero) for globals. NParms and Locals are populated for function
// symbols only. A function's body is not stored on its Symbol (that would
// require sym to import ast, which ast already depends on for Symbol
// back-references) - see bind.Binder.bodies / emit.Emitter.bodies.
type Symbol struct {
	Name   string
	Kind   Kind
	Seq    int
	NParms int

	Locals *LocalTable // function symbols only
}

// LocalTable is a function symbol's owned mapping from name to local symbol.
// Parameters are keyed by name; locals are additionally indexable by slot via
// Ordered, which is filled in declaration-visit order as the binder allocates
// slots (spec.md §4.2's "flat local index").
type LocalTable struct {
	byName  map[string]*Symbol
	Ordered []*Symbol // index i is the symbol with slot i, once bound
}

func NewLocalTable() *LocalTable {
	return &LocalTable{byName: make(map[string]*Symbol)}
}

// Lookup finds a parameter by name in this function's table. Locals are not
// keyed by name (see InsertLocal), so they are never found here.
func (t *LocalTable) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// InsertParameter registers a parameter symbol keyed by its name.
func (t *LocalTable) InsertParameter(s *Symbol) { t.byName[s.Name] = s }

// InsertLocal registers a local_variable symbol by slot only, not by name:
// the reference binder keys a function's local table by slot index for
// locals (only parameters are keyed by name there), so a direct Lookup by
// name on this table finds parameters but never locals - locals are only
// reachable through the lexical scope stack while they're in scope.
func (t *LocalTable) InsertLocal(s *Symbol) {
	t.Ordered = append(t.Ordered, s)
}

// LocalCount returns the number of local_variable symbols allocated so far,
// excluding parameters - this is the next free slot index.
func (t *LocalTable) LocalCount() int { return len(t.Ordered) }

// Table is the global symbol table: function and global_variable symbols,
// keyed by name in one flat namespace (spec.md invariant: function names and
// global variable names share a namespace and must be mutually unique).
type Table struct {
	byName    map[string]*Symbol
	Functions []*Symbol // in declaration order, Seq == index
	Globals   []*Symbol // in declaration order
}

func NewTable() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Lookup finds a function or global variable symbol by name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Has reports whether name is already bound at global scope, regardless of kind.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// InsertFunction registers a function symbol and tracks it in declaration order.
func (t *Table) InsertFunction(s *Symbol) {
	t.byName[s.Name] = s
	t.Functions = append(t.Functions, s)
}

// InsertGlobal registers a global_variable symbol and tracks it in declaration order.
func (t *Table) InsertGlobal(s *Symbol) {
	t.byName[s.Name] = s
	t.Globals = append(t.Globals, s)
}

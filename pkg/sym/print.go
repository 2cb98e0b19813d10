package sym

import (
	"fmt"
	"strings"
)

// Dump renders the global symbol table (functions and globals, each
// function followed by its parameters and locals) in declaration order, in
// the style of original_source/ps4/src/ir.c's print_symbol_table. Used by
// pkg/sym's tests and behind cmd/vslc's --dump-symbols flag; it has no
// effect on the emitted assembly.
func (t *Table) Dump() string {
	var b strings.Builder

	for _, fn := range t.Functions {
		fmt.Fprintf(&b, "function %s (seq=%d, nparms=%d)\n", fn.Name, fn.Seq, fn.NParms)
		for _, param := range orderedParameters(fn.Locals) {
			fmt.Fprintf(&b, "\tparameter %s (seq=%d)\n", param.Name, param.Seq)
		}
		for _, local := range fn.Locals.Ordered {
			fmt.Fprintf(&b, "\tlocal_variable %s (seq=%d)\n", local.Name, local.Seq)
		}
	}

	for _, g := range t.Globals {
		fmt.Fprintf(&b, "global_variable %s\n", g.Name)
	}

	return b.String()
}

// orderedParameters returns a function's parameter symbols in index order.
// LocalTable keys parameters by name only (see InsertParameter), so Dump
// recovers declaration order here rather than relying on map iteration.
func orderedParameters(locals *LocalTable) []*Symbol {
	out := make([]*Symbol, len(locals.byName))
	for _, s := range locals.byName {
		if s.Kind == Parameter && s.Seq < len(out) {
			out[s.Seq] = s
		}
	}
	return out
}

package sym_test

import (
	"strings"
	"testing"

	"vslc.dev/compiler/pkg/sym"
)

func TestLocalTableKeysParametersByNameOnly(t *testing.T) {
	locals := sym.NewLocalTable()
	locals.InsertParameter(&sym.Symbol{Name: "p", Kind: sym.Parameter, Seq: 0})
	locals.InsertLocal(&sym.Symbol{Name: "l", Kind: sym.LocalVariable, Seq: 0})

	if _, ok := locals.Lookup("p"); !ok {
		t.Errorf("expected to find parameter 'p' by name")
	}
	if _, ok := locals.Lookup("l"); ok {
		t.Errorf("expected local 'l' to NOT be findable by name (only via slot/scope)")
	}
	if locals.LocalCount() != 1 {
		t.Errorf("expected 1 local slot, got %d", locals.LocalCount())
	}
}

func TestTableTracksDeclarationOrder(t *testing.T) {
	table := sym.NewTable()
	table.InsertGlobal(&sym.Symbol{Name: "g1", Kind: sym.GlobalVariable})
	table.InsertFunction(&sym.Symbol{Name: "f1", Kind: sym.FunctionSym, Seq: 0})
	table.InsertGlobal(&sym.Symbol{Name: "g2", Kind: sym.GlobalVariable})

	if len(table.Globals) != 2 || table.Globals[0].Name != "g1" || table.Globals[1].Name != "g2" {
		t.Fatalf("expected globals in declaration order, got %+v", table.Globals)
	}
	if !table.Has("f1") || !table.Has("g1") {
		t.Errorf("expected Has to find both functions and globals in the shared namespace")
	}
}

func TestDumpListsFunctionsThenGlobals(t *testing.T) {
	table := sym.NewTable()
	fn := &sym.Symbol{Name: "main", Kind: sym.FunctionSym, Seq: 0, NParms: 1, Locals: sym.NewLocalTable()}
	fn.Locals.InsertParameter(&sym.Symbol{Name: "argc", Kind: sym.Parameter, Seq: 0})
	fn.Locals.InsertLocal(&sym.Symbol{Name: "total", Kind: sym.LocalVariable, Seq: 0})
	table.InsertFunction(fn)
	table.InsertGlobal(&sym.Symbol{Name: "counter", Kind: sym.GlobalVariable})

	dump := table.Dump()
	for _, want := range []string{"function main", "parameter argc", "local_variable total", "global_variable counter"} {
		if !strings.Contains(dump, want) {
			t.Errorf("expected dump to contain %q, got:\n%s", want, dump)
		}
	}
}

package bind_test

import (
	"strings"
	"testing"

	"vslc.dev/compiler/pkg/ast"
	"vslc.dev/compiler/pkg/bind"
)

// declareFunction builds a function node with the given name, a
// parameter_list of the given parameter names, and the given body.
func declareFunction(name string, params []string, body *ast.Node) *ast.Node {
	paramNodes := make([]*ast.Node, len(params))
	for i, p := range params {
		paramNodes[i] = ast.NewText(ast.IdentifierData, p)
	}
	return ast.New(ast.Function, ast.NewText(ast.IdentifierData, name), ast.New(ast.ParameterList, paramNodes...), body)
}

func declareGlobal(names ...string) *ast.Node {
	vars := make([]*ast.Node, len(names))
	for i, n := range names {
		vars[i] = ast.NewText(ast.IdentifierData, n)
	}
	return ast.New(ast.Declaration, ast.New(ast.VariableList, vars...))
}

func localDecl(names ...string) *ast.Node {
	vars := make([]*ast.Node, len(names))
	for i, n := range names {
		vars[i] = ast.NewText(ast.IdentifierData, n)
	}
	return ast.New(ast.Declaration, ast.New(ast.VariableList, vars...))
}

func ident(name string) *ast.Node { return ast.NewText(ast.IdentifierData, name) }

func TestBindResolvesGlobalFromNestedScope(t *testing.T) {
	body := ast.New(ast.Block,
		ast.New(ast.AssignmentStatement, ident("g"), ident("g")),
	)
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		declareGlobal("g"),
		declareFunction("main", nil, body),
	))

	table, _, err := bind.New().Bind(program)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}

	assign := body.Child(0)
	use := assign.Child(1)
	if use.Symbol == nil || use.Symbol.Kind.String() != "global_variable" {
		t.Fatalf("expected 'g' reference to resolve to the global, got %+v", use.Symbol)
	}
	if len(table.Globals) != 1 || table.Globals[0].Name != "g" {
		t.Fatalf("expected one global named 'g', got %+v", table.Globals)
	}
}

func TestBindShadowsParameterWithLocal(t *testing.T) {
	body := ast.New(ast.Block,
		localDecl("a"),
		ast.New(ast.AssignmentStatement, ident("a"), ast.NewNumber(1)),
	)
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		declareFunction("f", []string{"a"}, body),
	))

	table, _, err := bind.New().Bind(program)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}

	assign := body.Child(1)
	use := assign.Child(0)
	fn := table.Functions[0]
	if use.Symbol == nil || use.Symbol.Kind.String() != "local_variable" {
		t.Fatalf("expected the block-scope local to shadow the parameter, got %+v", use.Symbol)
	}
	if fn.NParms != 1 {
		t.Fatalf("expected 1 parameter, got %d", fn.NParms)
	}
}

func TestBindLocalOutOfScopeFallsBackOrFails(t *testing.T) {
	inner := ast.New(ast.Block, localDecl("c"))
	body := ast.New(ast.Block,
		inner,
		ast.New(ast.AssignmentStatement, ident("c"), ast.NewNumber(1)),
	)
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		declareFunction("main", nil, body),
	))

	_, _, err := bind.New().Bind(program)
	if err == nil {
		t.Fatalf("expected binding failure: 'c' is out of scope at the outer assignment")
	}
	if !strings.Contains(err.Error(), "c") {
		t.Fatalf("expected error to mention 'c', got: %v", err)
	}
}

func TestBindCountsParameterCollapsedBySimplify(t *testing.T) {
	// Mirrors the tree simplify.Simplify would hand the binder for a
	// single-parameter function: the parameter_list has already collapsed
	// to its bare identifier (spec.md §4.1), not a one-child list.
	body := ast.New(ast.Block, ast.New(ast.ReturnStatement, ident("a")))
	fn := ast.New(ast.Function, ident("solo"), ident("a"), body)
	program := ast.New(ast.Program, ast.New(ast.GlobalList, fn))

	table, _, err := bind.New().Bind(program)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}
	if table.Functions[0].NParms != 1 {
		t.Fatalf("expected the collapsed parameter_list to still count as 1 parameter, got %d", table.Functions[0].NParms)
	}
}

func TestBindDuplicateGlobalNameFails(t *testing.T) {
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		declareGlobal("x"),
		declareFunction("x", nil, ast.New(ast.Block)),
	))

	_, _, err := bind.New().Bind(program)
	if err == nil {
		t.Fatalf("expected a duplicate-name binding failure")
	}
}

func TestBindInternsStringLiteralsInOrder(t *testing.T) {
	body := ast.New(ast.Block,
		ast.New(ast.PrintStatement, ast.NewText(ast.StringData, `"hello"`), ast.NewText(ast.StringData, `"world"`)),
	)
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		declareFunction("main", nil, body),
	))

	_, pool, err := bind.New().Bind(program)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}
	if len(pool.Strings) != 2 || pool.Strings[0] != `"hello"` || pool.Strings[1] != `"world"` {
		t.Fatalf("expected pool [\"hello\" \"world\"], got %v", pool.Strings)
	}

	printStmt := body.Child(0)
	if printStmt.Child(0).StrIndex != 0 || printStmt.Child(1).StrIndex != 1 {
		t.Fatalf("expected string_data leaves annotated with pool indices in order")
	}
}

func TestLocalSlotsAreFlatAcrossNestedBlocks(t *testing.T) {
	body := ast.New(ast.Block,
		localDecl("a"),
		ast.New(ast.Block, localDecl("b")),
		localDecl("c"),
	)
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		declareFunction("main", nil, body),
	))

	table, _, err := bind.New().Bind(program)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}

	fn := table.Functions[0]
	if fn.Locals.LocalCount() != 3 {
		t.Fatalf("expected 3 flat local slots, got %d", fn.Locals.LocalCount())
	}
	for i, local := range fn.Locals.Ordered {
		if local.Seq != i {
			t.Errorf("expected slot %d to have Seq %d, got %d", i, i, local.Seq)
		}
	}
}

package emit_test

import (
	"strings"
	"testing"

	"vslc.dev/compiler/pkg/ast"
)

func TestParameterAddressingSpillsPastSixToCallerStack(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	body := ast.New(ast.Block, ast.New(ast.ReturnStatement, ast.NewText(ast.IdentifierData, "h")))
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		ast.New(ast.Function, ident("many"), paramList(names...), body),
	))

	out := compile(t, program)

	// The 8th parameter (index 7, the second caller-stack slot) must be
	// addressed at 8 + 8*(7-5) = 24(%rbp).
	if !strings.Contains(out, "24(%rbp)") {
		t.Fatalf("expected the 8th parameter to be addressed via 24(%%rbp), got:\n%s", out)
	}
}

func TestLocalAddressingAccountsForSpilledParameters(t *testing.T) {
	body := ast.New(ast.Block,
		ast.New(ast.Declaration, ast.New(ast.VariableList, ident("x"))),
		ast.New(ast.ReturnStatement, ast.NewText(ast.IdentifierData, "x")),
	)
	program := ast.New(ast.Program, ast.New(ast.GlobalList,
		ast.New(ast.Function, ident("f"), paramList("a", "b"), body),
	))

	out := compile(t, program)

	// argument_offset = -8*min(6,2) = -16; local slot 0 -> -8*(0+1) + (-16) = -24.
	if !strings.Contains(out, "-24(%rbp)") {
		t.Fatalf("expected the local to be addressed at -24(%%rbp), got:\n%s", out)
	}
}

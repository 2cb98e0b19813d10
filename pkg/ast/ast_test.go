package ast_test

import (
	"strings"
	"testing"

	"vslc.dev/compiler/pkg/ast"
)

func TestKindStringRoundTrips(t *testing.T) {
	cases := map[ast.Kind]string{
		ast.Program:    "program",
		ast.Function:   "function",
		ast.Expression: "expression",
		ast.NumberData: "number_data",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestIsListCoversTheEightListKinds(t *testing.T) {
	lists := []ast.Kind{
		ast.GlobalList, ast.StatementList, ast.PrintList, ast.ExpressionList,
		ast.VariableList, ast.ArgumentList, ast.ParameterList, ast.DeclarationList,
	}
	for _, k := range lists {
		if !ast.IsList(k) {
			t.Errorf("expected %s to be a list kind", k)
		}
	}
	if ast.IsList(ast.Expression) {
		t.Errorf("expression should not be a list kind")
	}
}

func TestDumpFlatIndentsByDepth(t *testing.T) {
	tree := ast.New(ast.Block, ast.New(ast.ReturnStatement, ast.NewNumber(1)))
	out := tree.DumpFlat()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (block, return_statement, number_data), got %d:\n%s", len(lines), out)
	}
	if strings.HasPrefix(lines[0], "\t") {
		t.Errorf("expected the root line to have no indent, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "\t\t") {
		t.Errorf("expected the number leaf to be indented two levels, got %q", lines[2])
	}
}

func TestDumpTreeUsesBoxDrawingConnectors(t *testing.T) {
	tree := ast.New(ast.Block, ast.New(ast.ReturnStatement, ast.NewNumber(1)))
	out := tree.DumpTree()
	if !strings.Contains(out, "└── ") {
		t.Errorf("expected a box-drawing connector, got:\n%s", out)
	}
}

func TestChildOutOfRangeReturnsNil(t *testing.T) {
	leaf := ast.NewNumber(1)
	if leaf.Child(0) != nil {
		t.Errorf("expected a leaf's Child(0) to be nil")
	}
}

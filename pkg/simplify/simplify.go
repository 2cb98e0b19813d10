// Package simplify implements the VSL AST simplifier: the post-order
// prune/fold/flatten pass that turns a raw parse tree into the canonical,
// compact AST the binder and emitter expect.
//
// Grounded on original_source/ps3/src/tree.c's simplify_tree/prune_children/
// resolve_constant_expressions/flatten, restructured into one function per
// rule the way pkg/jack/lowering.go dispatches one Handle method per node
// shape in the teacher repo.
package simplify

import "vslc.dev/compiler/pkg/ast"

// Simplifier holds no state across nodes; every rewrite is a pure function of
// the subtree rooted at the node being visited.
type Simplifier struct{}

func New() Simplifier { return Simplifier{} }

// Simplify runs prune, fold and flatten over root in post-order and returns
// the (possibly different) node that should replace root in its parent.
// Running it twice on an already-simplified tree is a no-op: every rule
// becomes inapplicable once it has fired.
func (s Simplifier) Simplify(root *ast.Node) *ast.Node {
	return s.visit(root)
}

func (s Simplifier) visit(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}

	for i, child := range n.Children {
		n.Children[i] = s.visit(child)
	}

	n = prune(n)
	fold(n)
	flatten(n)
	return n
}

// prune applies the structural-collapse rules of spec.md §4.1, by node kind.
func prune(n *ast.Node) *ast.Node {
	switch n.Kind {
	case ast.Program:
		pruneProgramGlobals(n)
		return n
	case ast.PrintStatement:
		return prunePrintStatement(n)
	case ast.Statement, ast.ParameterList, ast.ArgumentList:
		if len(n.Children) == 1 {
			return n.Children[0]
		}
		return n
	case ast.Expression:
		if len(n.Children) == 1 && !n.HasText && n.Children[0].Kind == ast.IdentifierData {
			return n.Children[0]
		}
		return n
	default:
		return n
	}
}

// prunePrintStatement replaces the statement's single print_list child with
// the list's own (already-simplified) items, per spec.md §4.1.
func prunePrintStatement(n *ast.Node) *ast.Node {
	list := n.Child(0)
	if list == nil {
		n.Children = nil
		return n
	}
	if list.Kind != ast.PrintList {
		// Already pruned: the children are the items themselves.
		return n
	}
	n.Children = list.Children
	return n
}

// pruneProgramGlobals implements spec.md §4.1's program rule: global_list's
// children are unwrapped once if wrapped in the grammar's generic
// single-child statement node. This parser's own convertGlobal (pkg/ast
// parsing.go) emits function/declaration nodes directly as global_list's
// children without that wrapper, so this is a no-op on this front end's
// output; it is kept so the rule holds for any tree shaped per its literal
// grammar precondition. In the post-order walk a single-child statement
// wrapper has already been collapsed by the generic statement rule before
// this runs, so on such a tree the loop below also finds nothing to unwrap.
func pruneProgramGlobals(program *ast.Node) {
	list := program.Child(0)
	if list == nil {
		return
	}
	for i, child := range list.Children {
		if child.Kind == ast.Statement && len(child.Children) == 1 {
			list.Children[i] = child.Children[0]
		}
	}
}

// fold performs constant folding on expression nodes whose children are all
// number_data leaves, per spec.md §4.1. On success n is mutated in place into
// a number_data leaf; former children are simply dropped (Go's GC reclaims
// them, unlike the reference's explicit destroy_subtree).
func fold(n *ast.Node) {
	if n.Kind != ast.Expression {
		return
	}

	for _, child := range n.Children {
		if child.Kind != ast.NumberData {
			return
		}
	}

	var value int64
	switch {
	case !n.HasText && len(n.Children) == 1:
		value = n.Children[0].Number
	case n.Text == "+" && len(n.Children) == 2:
		value = n.Children[0].Number + n.Children[1].Number
	case n.Text == "-" && len(n.Children) == 1:
		value = -n.Children[0].Number
	case n.Text == "-" && len(n.Children) == 2:
		value = n.Children[0].Number - n.Children[1].Number
	case n.Text == "*" && len(n.Children) == 2:
		value = n.Children[0].Number * n.Children[1].Number
	case n.Text == "/" && len(n.Children) == 2:
		value = n.Children[0].Number / n.Children[1].Number
	default:
		return
	}

	n.Kind = ast.NumberData
	n.Number = value
	n.Text = ""
	n.HasText = false
	n.Children = nil
}

// flatten restructures a right-recursive list-node chain into a single flat
// N-ary list in source order, per spec.md §4.1. It fires at most once per
// node (the first child, if any, is never itself a list of the same kind
// after a prior flatten of that child during the post-order walk that
// already reached it).
func flatten(n *ast.Node) {
	if !ast.IsList(n.Kind) || len(n.Children) == 0 {
		return
	}

	first := n.Children[0]
	if first.Kind != n.Kind {
		return
	}

	n.Children = append(first.Children, n.Children[1:]...)
}

// Package bind implements the VSL two-pass binder: global symbol table
// construction, per-function local-slot allocation, lexical scope
// resolution, and string-literal interning (spec.md §4.2).
//
// Grounded on pkg/jack/scopes.go's ScopeTable (push/pop scopes kept as a
// stack, RegisterVariable/ResolveVariable searching innermost-to-outermost)
// generalized from Jack's four variable kinds to VSL's parameter/local/
// global kinds, and on original_source/ps4/src/ir.c's find_globals/
// bind_names for the exact pass-1/pass-2 semantics and slot-numbering rule.
package bind

import (
	"errors"
	"fmt"

	"vslc.dev/compiler/pkg/ast"
	"vslc.dev/compiler/pkg/sym"
)

// ErrInternal marks an internal-compiler-error condition (spec.md §7): an
// AST shape the binder should never see in a well-formed tree.
var ErrInternal = errors.New("internal compiler error")

// StringPool is the ordered sequence of interned string literals. Index i is
// the literal text carried by the i'th string_data leaf bound so far.
type StringPool struct {
	Strings []string
}

// Intern appends s and returns its pool index.
func (p *StringPool) Intern(s string) int {
	p.Strings = append(p.Strings, s)
	return len(p.Strings) - 1
}

// Binder runs the two passes over a simplified AST, producing a global
// symbol table and a string pool, and annotating the tree in place.
//
// bodies holds each function symbol's body node for pass 2; it lives here
// rather than on sym.Symbol to avoid an import cycle (ast.Node already holds
// a *sym.Symbol back-reference, so sym cannot import ast back).
type Binder struct {
	globals *sym.Table
	pool    *StringPool
	bodies  map[*sym.Symbol]*ast.Node
}

func New() *Binder {
	return &Binder{globals: sym.NewTable(), pool: &StringPool{}, bodies: map[*sym.Symbol]*ast.Node{}}
}

// Bind runs pass 1 (globals) then pass 2 (function bodies) over root, which
// must be a program node whose sole child is a (flattened) global_list.
// It returns the populated global table and string pool, or the first
// binding failure encountered.
func (b *Binder) Bind(root *ast.Node) (*sym.Table, *StringPool, error) {
	globalList := root.Child(0)
	if globalList == nil {
		return nil, nil, fmt.Errorf("%w: program node has no global_list child", ErrInternal)
	}

	if err := b.bindGlobals(globalList); err != nil {
		return nil, nil, err
	}

	for _, fn := range b.globals.Functions {
		scopes := newScopeStack()
		if err := b.bindBody(fn, b.bodies[fn], scopes); err != nil {
			return nil, nil, err
		}
	}

	return b.globals, b.pool, nil
}

// bindGlobals is pass 1: walk the children of global_list, registering
// function and global_variable symbols. Duplicate names at global scope are
// a binding failure.
func (b *Binder) bindGlobals(globalList *ast.Node) error {
	for _, global := range globalList.Children {
		switch global.Kind {
		case ast.Function:
			name := global.Child(0).Text
			if b.globals.Has(name) {
				return fmt.Errorf("identifier '%s' redeclared at global scope", name)
			}

			params := global.Child(1)
			paramNodes := params.Items(ast.ParameterList)

			fn := &sym.Symbol{
				Name:   name,
				Kind:   sym.FunctionSym,
				Seq:    len(b.globals.Functions),
				NParms: len(paramNodes),
				Locals: sym.NewLocalTable(),
			}

			for i, p := range paramNodes {
				fn.Locals.InsertParameter(&sym.Symbol{Name: p.Text, Kind: sym.Parameter, Seq: i})
			}

			b.globals.InsertFunction(fn)
			b.bodies[fn] = global.Child(2)

		case ast.Declaration:
			varList := global.Child(0)
			for _, id := range varList.Children {
				name := id.Text
				if b.globals.Has(name) {
					return fmt.Errorf("identifier '%s' redeclared at global scope", name)
				}
				b.globals.InsertGlobal(&sym.Symbol{Name: name, Kind: sym.GlobalVariable})
			}

		default:
			return fmt.Errorf("%w: unexpected global-scope node kind %s", ErrInternal, global.Kind)
		}
	}

	return nil
}

// bindBody is pass 2 for a single function: walk its body maintaining a
// lexical scope stack, allocating local slots, resolving identifiers, and
// interning strings (spec.md §4.2's per-kind rules).
func (b *Binder) bindBody(fn *sym.Symbol, node *ast.Node, scopes *scopeStack) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case ast.Block:
		scopes.push()
		for _, child := range node.Children {
			if err := b.bindBody(fn, child, scopes); err != nil {
				return err
			}
		}
		scopes.pop()
		return nil

	case ast.Declaration:
		varList := node.Child(0)
		for _, id := range varList.Children {
			local := &sym.Symbol{Name: id.Text, Kind: sym.LocalVariable, Seq: fn.Locals.LocalCount()}
			fn.Locals.InsertLocal(local)
			scopes.register(local)
		}
		return nil

	case ast.IdentifierData:
		resolved, ok := scopes.resolve(node.Text)
		if !ok {
			resolved, ok = fn.Locals.Lookup(node.Text)
		}
		if !ok {
			resolved, ok = b.globals.Lookup(node.Text)
		}
		if !ok {
			return fmt.Errorf("identifier '%s' was not found", node.Text)
		}
		node.Symbol = resolved
		return nil

	case ast.StringData:
		node.StrIndex = b.pool.Intern(node.Text)
		node.Text = ""
		node.HasText = false
		return nil

	default:
		for _, child := range node.Children {
			if err := b.bindBody(fn, child, scopes); err != nil {
				return err
			}
		}
		return nil
	}
}

// Package emit implements the VSL code generator: a tree-walking emitter
// that writes GAS-syntax x86-64 System V assembly for a bound, simplified
// AST (spec.md §4.3).
//
// Grounded on pkg/vm/codegen.go's CodeGenerator (one Generate<Kind> method
// per operation/node kind, top-level Generate type-switches and
// concatenates), adapted from a VM-instruction target to a real ISA target
// using the exact instruction sequences in
// original_source/ps5/src/generator.c and ps6/src/generator.c.
package emit

import (
	"errors"
	"fmt"
	"strings"

	"vslc.dev/compiler/pkg/ast"
	"vslc.dev/compiler/pkg/bind"
	"vslc.dev/compiler/pkg/sym"
)

// ErrInternal marks an internal-compiler-error condition (spec.md §7): an
// AST shape or operator the emitter should never see in a bound tree.
var ErrInternal = errors.New("internal compiler error")

// record lists the SysV integer argument registers, in order, used both for
// reading a function's own first six parameters and for passing a callee's
// first six arguments.
var record = [6]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// Emitter writes assembly text to an internal buffer one section at a time:
// rodata from the string pool, data from the global table, then text from
// the function bodies. ifCount/whileCount are
// monotonically increasing counters shared across the whole translation
// unit (spec.md §4.3.7); parentWhile tracks the innermost enclosing loop
// for `continue`, saved and restored across nested loops.
type Emitter struct {
	out *strings.Builder

	table *sym.Table
	pool  *bind.StringPool
	// bodies maps a function symbol's name to its (simplified, bound) body
	// node. Kept here rather than on sym.Symbol to avoid an ast<->sym import
	// cycle, mirroring pkg/bind.Binder.bodies.
	bodies map[string]*ast.Node

	currentFunction *sym.Symbol
	ifCount         int
	whileCount      int
	parentWhile     int
}

// New constructs an Emitter for one compilation unit.
func New(table *sym.Table, pool *bind.StringPool) *Emitter {
	return &Emitter{out: &strings.Builder{}, table: table, pool: pool, bodies: map[string]*ast.Node{}}
}

// Generate walks root (a program node, already simplified and bound) and
// returns the emitted assembly text, or the first error encountered: an
// arity failure at a call site (checked here, not by the binder), or an
// internal compiler error for an AST shape it has no rule for.
func (e *Emitter) Generate(root *ast.Node) (string, error) {
	globalList := root.Child(0)
	if globalList == nil {
		return "", fmt.Errorf("%w: program node has no global_list child", ErrInternal)
	}
	for _, global := range globalList.Children {
		if global.Kind == ast.Function {
			e.bodies[global.Child(0).Text] = global.Child(2)
		}
	}

	entry, err := e.selectEntry()
	if err != nil {
		return "", err
	}

	e.emitStringTable()
	e.emitGlobalVariables()
	e.emitMain(entry)

	for _, fn := range e.table.Functions {
		if err := e.emitFunction(fn); err != nil {
			return "", err
		}
	}

	return e.out.String(), nil
}

// selectEntry implements spec.md §4.3.8's entry-function selection: the
// symbol named exactly "main" if present, else the function with sequence
// number 0.
func (e *Emitter) selectEntry() (*sym.Symbol, error) {
	if len(e.table.Functions) == 0 {
		return nil, fmt.Errorf("%w: program defines no functions", ErrInternal)
	}
	if main, ok := e.table.Lookup("main"); ok && main.Kind == sym.FunctionSym {
		return main, nil
	}
	for _, fn := range e.table.Functions {
		if fn.Seq == 0 {
			return fn, nil
		}
	}
	return e.table.Functions[0], nil
}

func (e *Emitter) writeln(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
	e.out.WriteByte('\n')
}

func (e *Emitter) raw(line string) {
	e.out.WriteString(line)
	e.out.WriteByte('\n')
}

// ----------------------------------------------------------------------------
// Sections

// emitStringTable writes the .rodata section: the three fixed format
// strings plus one .STR<i> label per pooled literal (spec.md §6).
func (e *Emitter) emitStringTable() {
	e.raw(".section .rodata")
	e.raw(`.intout: .string "%ld "`)
	e.raw(`.strout: .string "%s "`)
	e.raw(`.errout: .string "Wrong number of arguments"`)
	for i, literal := range e.pool.Strings {
		e.writeln(".STR%d: .string %s", i, literal)
	}
}

// emitGlobalVariables writes the .data section: one zeroed 8-byte cell per
// global variable (spec.md §9's canonical .data/.zero 8 choice).
func (e *Emitter) emitGlobalVariables() {
	e.writeln(".section .data")
	for _, g := range e.table.Globals {
		e.writeln("._%s: .zero 8", g.Name)
	}
}

package emit

import (
	"fmt"

	"vslc.dev/compiler/pkg/sym"
)

// emitFunction writes one function's full prologue/body/epilogue, per
// spec.md §4.3.2. Grounded on original_source/ps6/src/generator.c's
// generate_function: push %rbp, copy the stack pointer, spill up to six
// incoming argument registers into their parameter slots, reserve stack
// space for locals (padded to keep the frame 16-byte aligned at call
// boundaries when the count of pushed parameters, min(6, NParms), plus
// locals is odd), walk the body, then
// a fixed epilogue.
func (e *Emitter) emitFunction(fn *sym.Symbol) error {
	body := e.bodies[fn.Name]

	saved := e.currentFunction
	e.currentFunction = fn
	defer func() { e.currentFunction = saved }()

	e.writeln("_%s:", fn.Name)
	e.raw("\tpushq\t%rbp")
	e.raw("\tmovq\t%rsp, %rbp")

	spilled := min6(fn.NParms)
	for i := 0; i < spilled; i++ {
		e.writeln("\tpushq\t%s", record[i])
	}

	locals := fn.Locals.LocalCount()
	slots := spilled + locals
	if slots%2 != 0 {
		e.raw("\tsubq\t$8, %rsp")
	}
	if locals > 0 {
		e.writeln("\tsubq\t$%d, %%rsp", 8*locals)
	}

	if body != nil {
		if err := e.emitStatement(body); err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}

	e.raw("\tmovq\t%rbp, %rsp")
	e.raw("\tmovq\t$0, %rax")
	e.raw("\tpopq\t%rbp")
	e.raw("\tret")
	return nil
}

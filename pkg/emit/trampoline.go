package emit

import "vslc.dev/compiler/pkg/sym"

// emitMain writes the process entry point, spec.md §4.3.8. The real `main`
// is a fixed trampoline, not a user-visible VSL function: it checks argc
// against the entry function's declared parameter count, parses each argv
// string to an integer with strtol, places the results in the calling
// convention's argument slots, calls the selected entry function and exits
// with its return value. Grounded on
// original_source/ps6/src/generator.c's generate_main.
func (e *Emitter) emitMain(entry *sym.Symbol) {
	e.raw(".section .text")
	e.raw(".globl main")
	e.raw("main:")
	e.raw("\tpushq\t%rbp")
	e.raw("\tmovq\t%rsp, %rbp")

	e.writeln("\tcmpq\t$%d, %%rdi", entry.NParms+1)
	e.raw("\tjne\tABORT")

	// %r12 = argv (callee-saved, survives the strtol calls below). Every
	// argv[i] for i = NParms..1 is parsed and pushed, in that decreasing
	// order, before anything is placed in an argument register: strtol
	// itself clobbers the SysV caller-saved registers, so an argument
	// register loaded before the last strtol call would be stomped by it.
	// Parsing high-to-low leaves the first parameter's value on top of the
	// stack, so the pop loop below lifts the first six straight into
	// record[0..5] in order.
	e.raw("\tmovq\t%rsi, %r12")

	for i := entry.NParms; i >= 1; i-- {
		e.writeln("\tmovq\t$%d, %%rax", i)
		e.raw("\tmovq\t(%r12,%rax,8), %rdi")
		e.raw("\tmovq\t$10, %rsi")
		e.raw("\tmovq\t$0, %rdx")
		e.raw("\tcall\tstrtol")
		e.raw("\tpushq\t%rax")
	}

	for i := 0; i < min6(entry.NParms); i++ {
		e.writeln("\tpopq\t%s", record[i])
	}

	e.writeln("\tcall\t_%s", entry.Name)
	e.raw("\tmovq\t%rax, %rdi")
	e.raw("\tcall\texit")

	e.raw("ABORT:")
	e.raw("\tleaq\t.errout(%rip), %rdi")
	e.raw("\tcall\tputs")
	e.raw("\tmovq\t$1, %rdi")
	e.raw("\tcall\texit")
}

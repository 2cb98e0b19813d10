package emit

import (
	"fmt"

	"vslc.dev/compiler/pkg/sym"
)

// min6 returns min(6, n) - the number of parameters passed in registers
// rather than on the caller's stack, per the SysV convention this emitter
// implements (spec.md §4.3.2).
func min6(n int) int {
	if n < 6 {
		return n
	}
	return 6
}

// operand returns the GAS operand text addressing symbol s, per spec.md
// §4.3.2's three addressing rules. It requires e.currentFunction to be set
// when s is a parameter or local_variable, to compute the local
// argument_offset.
func (e *Emitter) operand(s *sym.Symbol) (string, error) {
	switch s.Kind {
	case sym.GlobalVariable:
		return fmt.Sprintf("._%s", s.Name), nil

	case sym.Parameter:
		if s.Seq >= 6 {
			return fmt.Sprintf("%d(%%rbp)", 8+8*(s.Seq-5)), nil
		}
		return fmt.Sprintf("%d(%%rbp)", -8*(s.Seq+1)), nil

	case sym.LocalVariable:
		if e.currentFunction == nil {
			return "", fmt.Errorf("%w: local variable addressed outside a function", ErrInternal)
		}
		argumentOffset := -8 * min6(e.currentFunction.NParms)
		return fmt.Sprintf("%d(%%rbp)", -8*(s.Seq+1)+argumentOffset), nil

	default:
		return "", fmt.Errorf("%w: invalid identifier kind %s", ErrInternal, s.Kind)
	}
}

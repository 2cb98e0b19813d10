package emit

import (
	"fmt"

	"vslc.dev/compiler/pkg/ast"
	"vslc.dev/compiler/pkg/sym"
)

// emitExpression implements spec.md §4.3.3's recursive expression-evaluation
// rules, leaving the result in %rax. Grounded verbatim on
// original_source/ps6/src/generator.c's generate_expression, including the
// `*`/`/` double-`popq %rdx` sequence (spec.md §9), reproduced rather than
// rewritten to pop into a scratch register. Each of those sequences pushes
// twice (%rdx, then the right operand) and pops twice, so the stack stays
// balanced and %rdx ends up restored.
func (e *Emitter) emitExpression(expr *ast.Node) error {
	switch expr.Kind {
	case ast.IdentifierData:
		operand, err := e.operand(expr.Symbol)
		if err != nil {
			return err
		}
		e.writeln("\tmovq\t%s, %%rax", operand)
		return nil

	case ast.NumberData:
		e.writeln("\tmovq\t$%d, %%rax", expr.Number)
		return nil

	case ast.Expression:
		switch len(expr.Children) {
		case 1:
			return e.emitUnary(expr)
		case 2:
			if expr.HasText {
				return e.emitBinary(expr)
			}
			return e.emitFunctionCall(expr)
		default:
			return fmt.Errorf("%w: expression with %d children", ErrInternal, len(expr.Children))
		}

	default:
		return fmt.Errorf("%w: unexpected node kind %s in expression position", ErrInternal, expr.Kind)
	}
}

func (e *Emitter) emitUnary(expr *ast.Node) error {
	if err := e.emitExpression(expr.Child(0)); err != nil {
		return err
	}
	switch expr.Text {
	case "-":
		e.raw("\tnegq\t%rax")
	case "~":
		e.raw("\tnotq\t%rax")
	default:
		return fmt.Errorf("%w: unknown unary operator %q", ErrInternal, expr.Text)
	}
	return nil
}

func (e *Emitter) emitBinary(expr *ast.Node) error {
	lhs, rhs := expr.Child(0), expr.Child(1)

	switch expr.Text {
	case "+", "-", "|", "^", "&":
		if err := e.emitExpression(lhs); err != nil {
			return err
		}
		e.raw("\tpushq\t%rax")
		if err := e.emitExpression(rhs); err != nil {
			return err
		}
		e.writeln("\t%sq\t%%rax, (%%rsp)", binaryMnemonic[expr.Text])
		e.raw("\tpopq\t%rax")
		return nil

	case "*":
		e.raw("\tpushq\t%rdx")
		if err := e.emitExpression(rhs); err != nil {
			return err
		}
		e.raw("\tpushq\t%rax")
		if err := e.emitExpression(lhs); err != nil {
			return err
		}
		e.raw("\tmulq\t(%rsp)")
		// Reference sequence (spec.md §9): both pops target %rdx. The first
		// discards the pushed right operand, the second restores %rdx.
		e.raw("\tpopq\t%rdx")
		e.raw("\tpopq\t%rdx")
		return nil

	case "/":
		e.raw("\tpushq\t%rdx")
		if err := e.emitExpression(rhs); err != nil {
			return err
		}
		e.raw("\tpushq\t%rax")
		if err := e.emitExpression(lhs); err != nil {
			return err
		}
		e.raw("\tcqo")
		e.raw("\tidivq\t(%rsp)")
		e.raw("\tpopq\t%rdx")
		e.raw("\tpopq\t%rdx")
		return nil

	default:
		return fmt.Errorf("%w: unknown binary operator %q", ErrInternal, expr.Text)
	}
}

var binaryMnemonic = map[string]string{
	"+": "add",
	"-": "sub",
	"|": "or",
	"^": "xor",
	"&": "and",
}

// emitFunctionCall implements spec.md §4.3.5: arguments evaluated in
// reverse source order, extras (index > 5) pushed, the rest moved into
// argument registers, then `call`. The caller never reclaims stack space
// used by extra arguments (spec.md §9's known limitation, preserved).
func (e *Emitter) emitFunctionCall(call *ast.Node) error {
	callee := call.Child(0)
	function, ok := e.table.Lookup(callee.Text)
	if !ok {
		return fmt.Errorf("identifier '%s' was not found", callee.Text)
	}
	if function.Kind != sym.FunctionSym {
		return fmt.Errorf("%w: call target %q is not a function", ErrInternal, callee.Text)
	}

	arguments := call.Child(1).Items(ast.ArgumentList)

	if len(arguments) != function.NParms {
		return fmt.Errorf("function %s has %d parameters, called with %d arguments", callee.Text, function.NParms, len(arguments))
	}

	for i := len(arguments) - 1; i >= 0; i-- {
		if err := e.emitExpression(arguments[i]); err != nil {
			return err
		}
		if i > 5 {
			e.raw("\tpushq\t%rax")
		} else {
			e.writeln("\tmovq\t%%rax, %s", record[i])
		}
	}

	e.writeln("\tcall\t_%s", callee.Text)
	return nil
}

package emit

import (
	"fmt"

	"vslc.dev/compiler/pkg/ast"
)

// emitStatement dispatches a single statement node, per spec.md §4.3's
// per-kind rules. Grounded on original_source/ps6/src/generator.c's
// generate_node dispatcher.
func (e *Emitter) emitStatement(n *ast.Node) error {
	switch n.Kind {
	case ast.Block:
		for _, child := range n.Children {
			if err := e.emitStatement(child); err != nil {
				return err
			}
		}
		return nil

	case ast.Declaration:
		return nil

	case ast.AssignmentStatement:
		return e.emitAssignment(n, "")
	case ast.AddStatement:
		return e.emitAssignment(n, "+")
	case ast.SubtractStatement:
		return e.emitAssignment(n, "-")
	case ast.MultiplyStatement:
		return e.emitAssignment(n, "*")
	case ast.DivideStatement:
		return e.emitAssignment(n, "/")

	case ast.PrintStatement:
		return e.emitPrint(n)

	case ast.ReturnStatement:
		return e.emitReturn(n)

	case ast.IfStatement:
		return e.emitIf(n)

	case ast.WhileStatement:
		return e.emitWhile(n)

	case ast.NullStatement:
		e.writeln("\tjmp .WHILE_%d", e.parentWhile)
		return nil

	default:
		return fmt.Errorf("%w: unexpected node kind %s in statement position", ErrInternal, n.Kind)
	}
}

// emitAssignment implements spec.md §4.3.4's assignment family. op == "" is
// plain ':=' (store only); it and '+='/'-=' operate directly against the
// destination's memory operand (no %rdx save/restore — unlike the
// expression-level '*'/'/', the reference never tries to preserve %rdx
// here). '*=' uses the one-operand `mulq`, multiplying the evaluated
// right-hand side (in %rax) by the destination. '/=' swaps the right-hand
// side into the destination and the destination's old value into %rax with
// one xchgq, divides, then swaps the quotient back in with a second xchgq —
// never touching the stack. Grounded on
// original_source/ps6/src/generator.c's generate_assignment_statement.
func (e *Emitter) emitAssignment(n *ast.Node, op string) error {
	dest := n.Child(0)
	rhs := n.Child(1)

	operand, err := e.operand(dest.Symbol)
	if err != nil {
		return err
	}

	if err := e.emitExpression(rhs); err != nil {
		return err
	}

	switch op {
	case "":
		e.writeln("\tmovq\t%%rax, %s", operand)

	case "+":
		e.writeln("\taddq\t%%rax, %s", operand)

	case "-":
		e.writeln("\tsubq\t%%rax, %s", operand)

	case "*":
		e.writeln("\tmulq\t%s", operand)
		e.writeln("\tmovq\t%%rax, %s", operand)

	case "/":
		e.writeln("\txchgq\t%%rax, %s", operand)
		e.raw("\tcqo")
		e.writeln("\tidivq\t%s", operand)
		e.writeln("\txchgq\t%%rax, %s", operand)

	default:
		return fmt.Errorf("%w: unknown assignment operator %q", ErrInternal, op)
	}

	return nil
}

// emitPrint implements spec.md §4.3.6: each item is evaluated, then printed
// with %strout (string_data leaves) or %intout (everything else), and a
// trailing newline is written once after the whole list.
func (e *Emitter) emitPrint(n *ast.Node) error {
	for _, item := range n.Children {
		if item.Kind == ast.StringData {
			e.writeln("\tleaq\t.STR%d(%%rip), %%rsi", item.StrIndex)
			e.raw("\tleaq\t.strout(%rip), %rdi")
			e.raw("\tmovq\t$0, %rax")
			e.raw("\tcall\tprintf")
			continue
		}

		if err := e.emitExpression(item); err != nil {
			return err
		}
		e.raw("\tmovq\t%rax, %rsi")
		e.raw("\tleaq\t.intout(%rip), %rdi")
		e.raw("\tmovq\t$0, %rax")
		e.raw("\tcall\tprintf")
	}
	e.raw("\tmovq\t$10, %rdi")
	e.raw("\tcall\tputchar")
	return nil
}

// emitReturn implements spec.md §4.3's return statement: evaluate the
// (optional) expression into %rax, then return at once with its own
// leave/ret rather than falling through to the function's epilogue.
func (e *Emitter) emitReturn(n *ast.Node) error {
	if value := n.Child(0); value != nil {
		if err := e.emitExpression(value); err != nil {
			return err
		}
	}
	e.raw("\tleave")
	e.raw("\tret")
	return nil
}

// emitIf implements spec.md §4.3.7: a relation followed by a two- or
// three-way branch, with globally unique labels numbered by ifCount.
func (e *Emitter) emitIf(n *ast.Node) error {
	id := e.ifCount
	e.ifCount++

	hasElse := len(n.Children) == 3
	elseLabel := fmt.Sprintf(".ENDIF_%d", id)
	if hasElse {
		elseLabel = fmt.Sprintf(".ELSE_%d", id)
	}

	if err := e.emitRelation(n.Child(0), elseLabel); err != nil {
		return err
	}
	if err := e.emitStatement(n.Child(1)); err != nil {
		return err
	}

	if hasElse {
		e.writeln("\tjmp .ENDIF_%d", id)
		e.writeln(".ELSE_%d:", id)
		if err := e.emitStatement(n.Child(2)); err != nil {
			return err
		}
	}

	e.writeln(".ENDIF_%d:", id)
	return nil
}

// emitWhile implements spec.md §4.3.7: whileCount numbers the labels,
// parentWhile is saved/restored around the body so a nested `continue`
// (null_statement) always targets its own innermost loop.
func (e *Emitter) emitWhile(n *ast.Node) error {
	id := e.whileCount
	e.whileCount++

	saved := e.parentWhile
	e.parentWhile = id
	defer func() { e.parentWhile = saved }()

	e.writeln(".WHILE_%d:", id)
	if err := e.emitRelation(n.Child(0), fmt.Sprintf(".ENDWHILE_%d", id)); err != nil {
		return err
	}
	if err := e.emitStatement(n.Child(1)); err != nil {
		return err
	}
	e.writeln("\tjmp .WHILE_%d", id)
	e.writeln(".ENDWHILE_%d:", id)
	return nil
}

// relationJump maps a relation operator to the conditional jump that must
// fire to skip the guarded body, i.e. the negation of the relation.
var relationJump = map[string]string{
	"<": "jge",
	">": "jle",
	"=": "jne",
}

// emitRelation evaluates both sides of a relation and jumps to falseLabel
// when the relation does not hold.
func (e *Emitter) emitRelation(rel *ast.Node, falseLabel string) error {
	if rel.Kind != ast.Relation {
		return fmt.Errorf("%w: expected relation node, got %s", ErrInternal, rel.Kind)
	}

	jump, ok := relationJump[rel.Text]
	if !ok {
		return fmt.Errorf("%w: unknown relation operator %q", ErrInternal, rel.Text)
	}

	if err := e.emitExpression(rel.Child(0)); err != nil {
		return err
	}
	e.raw("\tpushq\t%rax")
	if err := e.emitExpression(rel.Child(1)); err != nil {
		return err
	}
	e.raw("\tpopq\t%rdx")
	e.raw("\tcmpq\t%rax, %rdx")
	e.writeln("\t%s\t%s", jump, falseLabel)
	return nil
}

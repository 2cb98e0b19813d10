package ast

import (
	"fmt"
	"io"
	"os"
	"strconv"

	pc "github.com/prataprc/goparsec"
)

// ----------------------------------------------------------------------------
// Grammar
//
// Grounded on pkg/jack/parsing.go's use of goparsec: a package-level
// pc.NewAST root, productions built from And/OrdChoice/Kleene/Many/Maybe and
// terminals from Atom/Token/Int. The jack grammar's own expression parser
// was a stub (a single literal alternative); VSL's expression grammar below
// is a real precedence-climbing grammar (additive/bitwise family '+' '-'
// '|' '^' '&' over multiplicative '*' '/' over unary over atom) expressed the same way,
// since goparsec's combinators cannot encode left recursion directly.

var grammar = pc.NewAST("vsl_program", 100)

var (
	pProgram = grammar.Many("program", nil, pGlobal)
	pGlobal  = grammar.OrdChoice("global", nil, pFunction, pDeclStatement)

	pFunction = grammar.And("function", nil,
		pc.Atom("func", "FUNC"), pIdent, pLParen, pParameterList, pRParen, pStatement,
	)

	pParameterList = grammar.Kleene("parameter_list", nil, pIdent, pComma)

	pIdentList = grammar.Many("ident_list", nil, pIdent, pComma)

	pDeclStatement = grammar.And("declaration", nil, pc.Atom("var", "VAR"), pIdentList, pSemi)
)

var (
	pStatement = grammar.OrdChoice("statement", nil,
		pBlock, pPrintStmt, pReturnStmt, pIfStmt, pWhileStmt, pContinueStmt, pDeclStatement, pAssignStmt,
	)

	pStatementList = grammar.Kleene("statement_list", nil, pStatement)
	pBlock         = grammar.And("block", nil, pLBrace, pStatementList, pRBrace)

	pPrintItem = grammar.OrdChoice("print_item", nil, pString, pExpr)
	pPrintList = grammar.Many("print_list", nil, pPrintItem, pComma)
	pPrintStmt = grammar.And("print_stmt", nil, pc.Atom("print", "PRINT"), pPrintList, pSemi)

	pReturnStmt = grammar.And("return_stmt", nil, pc.Atom("return", "RETURN"), pc.Maybe(nil, pExpr), pSemi)

	pElseClause = grammar.And("else_clause", nil, pc.Atom("else", "ELSE"), pStatement)
	pIfStmt     = grammar.And("if_stmt", nil,
		pc.Atom("if", "IF"), pLParen, pRelation, pRParen, pStatement, pc.Maybe(nil, pElseClause),
	)

	pWhileStmt = grammar.And("while_stmt", nil,
		pc.Atom("while", "WHILE"), pLParen, pRelation, pRParen, pStatement,
	)

	pContinueStmt = grammar.And("continue_stmt", nil, pc.Atom("continue", "CONTINUE"), pSemi)

	pAssignOp = grammar.OrdChoice("assign_op", nil,
		pc.Atom(":=", ":="), pc.Atom("+=", "+="), pc.Atom("-=", "-="), pc.Atom("*=", "*="), pc.Atom("/=", "/="),
	)
	pAssignStmt = grammar.And("assign_stmt", nil, pIdent, pAssignOp, pExpr, pSemi)

	pRelOp    = grammar.OrdChoice("rel_op", nil, pc.Atom("<", "<"), pc.Atom(">", ">"), pc.Atom("=", "="))
	pRelation = grammar.And("relation", nil, pExpr, pRelOp, pExpr)
)

var (
	// pExpr -> pTerm ( ('+'|'-'|'|'|'^'|'&') pTerm )*
	pExpr     = grammar.And("expression", nil, pTerm, grammar.Kleene("expr_tail", nil, pAddOp))
	pAddOp    = grammar.And("add_op", nil, pAddSym, pTerm)
	pAddSym   = grammar.OrdChoice("add_sym", nil, pc.Atom("+", "+"), pc.Atom("-", "-"), pc.Atom("|", "|"), pc.Atom("^", "^"), pc.Atom("&", "&"))

	// pTerm -> pUnary ( ('*'|'/') pUnary )*
	pTerm     = grammar.And("term", nil, pUnary, grammar.Kleene("term_tail", nil, pMulOp))
	pMulOp    = grammar.And("mul_op", nil, pMulSym, pUnary)
	pMulSym   = grammar.OrdChoice("mul_sym", nil, pc.Atom("*", "*"), pc.Atom("/", "/"))

	// pUnary -> ('-'|'~')? pAtom
	pUnary = grammar.And("unary", nil, pc.Maybe(nil, pUnarySym), pAtom)
	pUnarySym = grammar.OrdChoice("unary_sym", nil, pc.Atom("-", "-"), pc.Atom("~", "~"))

	pAtom = grammar.OrdChoice("atom", nil, pCall, pParenExpr, pNumber, pIdent)

	pCall     = grammar.And("call", nil, pIdent, pLParen, pArgumentList, pRParen)
	pArgumentList = grammar.Kleene("argument_list", nil, pExpr, pComma)

	pParenExpr = grammar.And("paren_expr", nil, pLParen, pExpr, pRParen)
)

var (
	pIdent  = pc.Token(`[A-Za-z_][0-9a-zA-Z_]*`, "IDENT")
	pNumber = pc.Int()
	pString = pc.Token(`"(?:\\.|[^"\\])*"`, "STRING")

	pComma  = pc.Atom(",", "COMMA")
	pSemi   = pc.Atom(";", "SEMI")
	pLBrace = pc.Atom("{", "LBRACE")
	pRBrace = pc.Atom("}", "RBRACE")
	pLParen = pc.Atom("(", "LPAREN")
	pRParen = pc.Atom(")", "RPAREN")
)

// ----------------------------------------------------------------------------
// Parser
//
// Grounded on pkg/jack/parsing.go's Parser/NewParser/FromSource shape,
// completing the AST conversion step the teacher's own jack.Parser.Parse
// left unimplemented ("Parser.Parse not implemented yet").
type Parser struct{ reader io.Reader }

func NewParser(r io.Reader) Parser {
	return Parser{reader: r}
}

// Parse reads the full source, parses it with the VSL grammar, and converts
// the resulting goparsec tree into a program ast.Node using the same
// node-constructor contract (New/NewText/NewNumber) the rest of the
// compiler treats as parsing's upstream interface (spec.md §6).
func (p *Parser) Parse() (*Node, error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read from source: %w", err)
	}

	root, ok := p.FromSource(content)
	if !ok {
		return nil, fmt.Errorf("failed to parse VSL source")
	}

	globalList := New(GlobalList)
	for _, child := range nonTerminalChildren(root) {
		globalList.Children = append(globalList.Children, convertGlobal(child))
	}
	return New(Program, globalList), nil
}

// FromSource runs the grammar over raw source bytes and returns the
// goparsec parse tree, mirroring jack.Parser.FromSource's debug-flag
// plumbing (PARSEC_DEBUG / EXPORT_AST / PRINT_AST).
func (p *Parser) FromSource(source []byte) (pc.ParsecNode, bool) {
	if os.Getenv("PARSEC_DEBUG") != "" {
		grammar.SetDebug()
	}

	root, _ := grammar.Parsewith(pProgram, pc.NewScanner(source))

	if os.Getenv("EXPORT_AST") != "" {
		if file, err := os.Create(fmt.Sprintf("%s/debug.ast.dot", os.Getenv("DEBUG_FOLDER"))); err == nil {
			defer file.Close()
			file.Write([]byte(grammar.Dotstring("\"VSL AST\"")))
		}
	}
	if os.Getenv("PRINT_AST") != "" {
		grammar.Prettyprint()
	}

	return root, root != nil
}

// ----------------------------------------------------------------------------
// Conversion: goparsec tree -> ast.Node

func nonTerminalChildren(n pc.ParsecNode) []pc.ParsecNode {
	if nt, ok := n.(*pc.NonTerminal); ok {
		return nt.Children
	}
	return nil
}

func terminalValue(n pc.ParsecNode) (string, bool) {
	t, ok := n.(*pc.Terminal)
	if !ok {
		return "", false
	}
	return t.Value, true
}

func named(n pc.ParsecNode, name string) (pc.ParsecNode, bool) {
	switch v := n.(type) {
	case *pc.NonTerminal:
		if v.Name == name {
			return v, true
		}
	case *pc.Terminal:
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

func convertGlobal(n pc.ParsecNode) *Node {
	children := nonTerminalChildren(n)
	if len(children) == 0 {
		return New(NullStatement)
	}
	if _, ok := named(children[0], "FUNC"); ok {
		return convertFunction(n)
	}
	return convertDeclaration(n)
}

// convertFunction converts a "function" non-terminal: FUNC ident ( params ) body.
func convertFunction(n pc.ParsecNode) *Node {
	children := nonTerminalChildren(n)
	name, _ := terminalValue(children[1])
	params := convertIdentList(children[3], IdentifierData)
	body := convertStatement(children[5])
	return New(Function, NewText(IdentifierData, name), New(ParameterList, params...), body)
}

// convertDeclaration converts a "declaration" non-terminal: VAR ident_list ;
func convertDeclaration(n pc.ParsecNode) *Node {
	children := nonTerminalChildren(n)
	idents := convertIdentList(children[1], IdentifierData)
	return New(Declaration, New(VariableList, idents...))
}

func convertIdentList(n pc.ParsecNode, kind Kind) []*Node {
	var out []*Node
	for _, child := range nonTerminalChildren(n) {
		if text, ok := terminalValue(child); ok {
			out = append(out, NewText(kind, text))
		}
	}
	return out
}

// convertStatement dispatches on the matched alternative's production name,
// mirroring the teacher's OrdChoice-then-inspect pattern.
func convertStatement(n pc.ParsecNode) *Node {
	nt, ok := n.(*pc.NonTerminal)
	if !ok {
		return New(NullStatement)
	}

	switch nt.Name {
	case "block":
		return convertBlock(nt)
	case "print_stmt":
		return convertPrint(nt)
	case "return_stmt":
		return convertReturn(nt)
	case "if_stmt":
		return convertIf(nt)
	case "while_stmt":
		return convertWhile(nt)
	case "continue_stmt":
		return New(NullStatement)
	case "declaration":
		return convertDeclaration(nt)
	case "assign_stmt":
		return convertAssign(nt)
	default:
		return New(NullStatement)
	}
}

func convertBlock(n *pc.NonTerminal) *Node {
	children := n.Children
	list := New(StatementList)
	for _, stmt := range nonTerminalChildren(children[1]) {
		list.Children = append(list.Children, convertStatement(stmt))
	}
	return New(Block, list)
}

func convertPrint(n *pc.NonTerminal) *Node {
	children := n.Children
	list := New(PrintList)
	for _, item := range nonTerminalChildren(children[1]) {
		list.Children = append(list.Children, convertPrintItem(item))
	}
	return New(PrintStatement, list)
}

func convertPrintItem(n pc.ParsecNode) *Node {
	if text, ok := terminalValue(n); ok && len(text) > 0 && text[0] == '"' {
		return NewText(StringData, text)
	}
	return convertExpr(n)
}

func convertReturn(n *pc.NonTerminal) *Node {
	children := n.Children
	if len(children) > 1 {
		if expr, ok := children[1].(*pc.NonTerminal); ok {
			return New(ReturnStatement, convertExpr(expr))
		}
	}
	return New(ReturnStatement)
}

func convertIf(n *pc.NonTerminal) *Node {
	children := n.Children
	relation := convertRelation(children[2])
	then := convertStatement(children[4])
	if len(children) > 5 {
		if elseClause, ok := children[5].(*pc.NonTerminal); ok {
			elseChildren := elseClause.Children
			return New(IfStatement, relation, then, convertStatement(elseChildren[1]))
		}
	}
	return New(IfStatement, relation, then)
}

func convertWhile(n *pc.NonTerminal) *Node {
	children := n.Children
	relation := convertRelation(children[2])
	body := convertStatement(children[4])
	return New(WhileStatement, relation, body)
}

func convertAssign(n *pc.NonTerminal) *Node {
	children := n.Children
	name, _ := terminalValue(children[0])
	op, _ := terminalValue(children[1])
	rhs := convertExpr(children[2])

	dest := NewText(IdentifierData, name)
	switch op {
	case ":=":
		return New(AssignmentStatement, dest, rhs)
	case "+=":
		return New(AddStatement, dest, rhs)
	case "-=":
		return New(SubtractStatement, dest, rhs)
	case "*=":
		return New(MultiplyStatement, dest, rhs)
	case "/=":
		return New(DivideStatement, dest, rhs)
	default:
		return New(AssignmentStatement, dest, rhs)
	}
}

func convertRelation(n pc.ParsecNode) *Node {
	nt, ok := n.(*pc.NonTerminal)
	if !ok {
		return NewText(Relation, "=")
	}
	children := nt.Children
	lhs := convertExpr(children[0])
	op, _ := terminalValue(children[1])
	rhs := convertExpr(children[2])
	return NewText(Relation, op, lhs, rhs)
}

// convertExpr walks the precedence-climbing "expression"/"term" shape and
// builds a left-associative chain of binary expression nodes, since
// spec.md's expression node carries exactly one operator per node.
func convertExpr(n pc.ParsecNode) *Node {
	nt, ok := n.(*pc.NonTerminal)
	if !ok {
		return convertAtom(n)
	}

	switch nt.Name {
	case "expression":
		left := convertTerm(nt.Children[0])
		for _, tail := range nonTerminalChildren(nt.Children[1]) {
			tailChildren := nonTerminalChildren(tail)
			op, _ := terminalValue(tailChildren[0])
			right := convertTerm(tailChildren[1])
			left = NewText(Expression, op, left, right)
		}
		return left

	case "term":
		return convertTerm(nt)

	default:
		return convertTerm(nt)
	}
}

func convertTerm(n pc.ParsecNode) *Node {
	nt, ok := n.(*pc.NonTerminal)
	if !ok {
		return convertAtom(n)
	}

	left := convertUnary(nt.Children[0])
	for _, tail := range nonTerminalChildren(nt.Children[1]) {
		tailChildren := nonTerminalChildren(tail)
		op, _ := terminalValue(tailChildren[0])
		right := convertUnary(tailChildren[1])
		left = NewText(Expression, op, left, right)
	}
	return left
}

func convertUnary(n pc.ParsecNode) *Node {
	nt, ok := n.(*pc.NonTerminal)
	if !ok {
		return convertAtom(n)
	}

	children := nt.Children
	if len(children) == 2 {
		if sym, ok := children[0].(*pc.NonTerminal); ok && len(sym.Children) > 0 {
			op, _ := terminalValue(sym.Children[0])
			return NewText(Expression, op, convertAtom(children[1]))
		}
	}
	return convertAtom(children[len(children)-1])
}

func convertAtom(n pc.ParsecNode) *Node {
	nt, ok := n.(*pc.NonTerminal)
	if !ok {
		if text, valueOk := terminalValue(n); valueOk {
			if value, err := strconv.ParseInt(text, 10, 64); err == nil {
				return NewNumber(value)
			}
			return NewText(IdentifierData, text)
		}
		return New(NullStatement)
	}

	switch nt.Name {
	case "call":
		name, _ := terminalValue(nt.Children[0])
		args := New(ArgumentList)
		for _, arg := range nonTerminalChildren(nt.Children[2]) {
			args.Children = append(args.Children, convertExpr(arg))
		}
		return New(Expression, NewText(IdentifierData, name), args)

	case "paren_expr":
		return convertExpr(nt.Children[1])

	default:
		return convertExpr(nt)
	}
}

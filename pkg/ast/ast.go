package ast

import "vslc.dev/compiler/pkg/sym"

// ----------------------------------------------------------------------------
// General information

// This section contains some general information about the VSL abstract syntax tree.
//
// A VSL program is parsed into a single tree rooted at a 'program' node. Every node
// carries a Kind from a closed set, an optional payload (string, number or pooled
// string index, depending on Kind) and an ordered list of owned children. Nodes are
// created by the parser, rewritten in place or replaced wholesale by the simplifier,
// and annotated (symbol back-reference, string index) by the binder. After binding
// the tree is read-only and is walked once more by the emitter.

// Kind identifies the shape of a Node. The set is closed. The emitter, and the binder
// at global scope, treat a Kind they have no rule for in that position as an internal
// compiler error; the simplifier and the binder's body walk pass such nodes through
// or recurse into their children.
type Kind int

const (
	Program Kind = iota
	GlobalList
	Function
	Declaration
	DeclarationList
	ParameterList
	VariableList
	Statement
	StatementList
	PrintList
	ExpressionList
	ArgumentList
	Block
	AssignmentStatement
	AddStatement
	SubtractStatement
	MultiplyStatement
	DivideStatement
	PrintStatement
	ReturnStatement
	IfStatement
	WhileStatement
	NullStatement
	Relation
	Expression
	IdentifierData
	NumberData
	StringData
)

var kindNames = [...]string{
	Program:             "program",
	GlobalList:          "global_list",
	Function:            "function",
	Declaration:         "declaration",
	DeclarationList:     "declaration_list",
	ParameterList:       "parameter_list",
	VariableList:        "variable_list",
	Statement:           "statement",
	StatementList:       "statement_list",
	PrintList:           "print_list",
	ExpressionList:      "expression_list",
	ArgumentList:        "argument_list",
	Block:               "block",
	AssignmentStatement: "assignment_statement",
	AddStatement:        "add_statement",
	SubtractStatement:   "subtract_statement",
	MultiplyStatement:   "multiply_statement",
	DivideStatement:     "divide_statement",
	PrintStatement:      "print_statement",
	ReturnStatement:     "return_statement",
	IfStatement:         "if_statement",
	WhileStatement:      "while_statement",
	NullStatement:       "null_statement",
	Relation:            "relation",
	Expression:          "expression",
	IdentifierData:      "identifier_data",
	NumberData:          "number_data",
	StringData:          "string_data",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown_kind"
	}
	return kindNames[k]
}

// listKinds is the closed set of list node kinds the simplifier's flatten pass acts on.
var listKinds = map[Kind]bool{
	GlobalList:      true,
	StatementList:   true,
	PrintList:       true,
	ExpressionList:  true,
	VariableList:    true,
	ArgumentList:    true,
	ParameterList:   true,
	DeclarationList: true,
}

// IsList reports whether k is one of the eight list kinds the simplifier flattens.
func IsList(k Kind) bool { return listKinds[k] }

// ----------------------------------------------------------------------------
// Node

// Node is a single AST node. It is exclusively owned by its parent; the root is owned
// by the compilation unit. Payload holds at most one of: a string (identifier name,
// operator/relation text, raw string literal text before binding), an int64 (number
// literal value), or a pooled string index (string literal after binding) - callers
// know which is valid from Kind, so no tag is stored separately.
type Node struct {
	Kind     Kind
	Text     string  // identifier/operator/relation payload, and raw string literal text pre-binding
	Number   int64   // number_data payload
	StrIndex int     // string_data payload, valid only after binding
	HasText  bool    // distinguishes "" payload from "no payload" (e.g. plain '+', "(" grouping)
	Symbol   *sym.Symbol
	Children []*Node
}

// New is the node-constructor function used by the parser (spec.md §6's upstream
// boundary): it builds a node of the given kind with the given children, in order.
func New(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// NewText builds a leaf or operator-bearing node carrying a string payload.
func NewText(kind Kind, text string, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, HasText: true, Children: children}
}

// NewNumber builds a number_data leaf.
func NewNumber(value int64) *Node {
	return &Node{Kind: NumberData, Number: value}
}

// Child returns the i'th child, or nil if out of range - convenience for the many
// fixed-arity accesses the binder and emitter perform (e.g. statement.Children[0]).
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Items returns the elements of a list-shaped node of the given kind, tolerating
// the simplifier's single-child identity collapse (spec.md §4.1): a one-element
// parameter_list/argument_list is replaced by its sole child, so callers that
// need the list's arity (binder's parameter count, emitter's argument count)
// must treat that lone surviving node as a one-element list rather than
// descending into its own children.
func (n *Node) Items(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n.Children
	}
	return []*Node{n}
}

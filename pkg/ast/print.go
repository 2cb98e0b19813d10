package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DumpFlat renders the tree as one indented line per node, each line
// prefixed with as many tab stops as its depth, in the style of
// original_source/ps3/src/tree.c's node_print. This is the dump style
// selected when the --tree flag is NOT combined with --new-print-style.
func (n *Node) DumpFlat() string {
	var b strings.Builder
	n.dumpFlat(&b, 0)
	return b.String()
}

func (n *Node) dumpFlat(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteString(n.label())
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.dumpFlat(b, depth+1)
	}
}

// DumpTree renders the tree using box-drawing connectors, in the style of
// original_source/ps3/src/tree.c's tree_print. Selected by --tree combined
// with --new-print-style.
func (n *Node) DumpTree() string {
	var b strings.Builder
	n.dumpTree(&b, "", true)
	return b.String()
}

func (n *Node) dumpTree(b *strings.Builder, prefix string, last bool) {
	if n == nil {
		return
	}

	connector := "├── "
	nextPrefix := prefix + "│   "
	if last {
		connector = "└── "
		nextPrefix = prefix + "    "
	}

	b.WriteString(prefix)
	b.WriteString(connector)
	b.WriteString(n.label())
	b.WriteByte('\n')

	for i, child := range n.Children {
		child.dumpTree(b, nextPrefix, i == len(n.Children)-1)
	}
}

// label formats a single node's own payload, independent of its children:
// kind name plus whatever of text/number/string-index/symbol is present.
func (n *Node) label() string {
	switch {
	case n.Kind == NumberData:
		return fmt.Sprintf("%s(%d)", n.Kind, n.Number)
	case n.Kind == StringData && n.Symbol == nil && n.HasText:
		return fmt.Sprintf("%s(%s)", n.Kind, strconv.Quote(n.Text))
	case n.Kind == StringData:
		return fmt.Sprintf("%s(.STR%d)", n.Kind, n.StrIndex)
	case n.Symbol != nil:
		return fmt.Sprintf("%s(%s: %s)", n.Kind, n.Symbol.Name, n.Symbol.Kind)
	case n.HasText:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Text)
	default:
		return n.Kind.String()
	}
}

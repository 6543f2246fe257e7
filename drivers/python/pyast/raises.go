package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// RaiseSite is a raise statement with a resolvable exception class.
type RaiseSite struct {
	Class  string
	Line   int // 1-based
	Column int // 0-based, matching editor column conventions
}

// Raises returns every raise statement in the function whose operand
// resolves to a class name, in source order, including raises in nested
// blocks and nested function definitions. Bare re-raises (raise with no
// operand) signal propagation of an existing exception and are skipped.
func Raises(fn Function) []RaiseSite {
	src := fn.File.Source

	var out []RaiseSite
	walk(fn.node, func(n *sitter.Node) {
		if n.Type() != "raise_statement" {
			return
		}

		expr := raiseOperand(n)
		if expr == nil {
			return
		}

		cls := RaisedClass(expr, src)
		if cls == "" {
			return
		}

		out = append(out, RaiseSite{
			Class:  cls,
			Line:   int(n.StartPoint().Row) + 1,
			Column: int(n.StartPoint().Column),
		})
	})
	return out
}

// CallNames returns the resolvable callee name of every call expression
// in the function, in source order. Duplicates are preserved: each call
// site is a separate traversal edge.
func CallNames(fn Function) []string {
	src := fn.File.Source

	var out []string
	walk(fn.node, func(n *sitter.Node) {
		if n.Type() != "call" {
			return
		}
		if name := CalleeName(n, src); name != "" {
			out = append(out, name)
		}
	})
	return out
}

// raiseOperand returns the raised expression of a raise statement, or nil
// for a bare re-raise. For "raise X from Y" the operand is X; the cause
// is irrelevant to exception-flow analysis.
func raiseOperand(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		return child
	}
	return nil
}

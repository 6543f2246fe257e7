package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// RenderName converts a name-shaped expression to its dotted string form.
// This is the single name-rendering rule for the package: identifiers
// render as themselves, attribute chains render outermost qualifier first
// ("module.ErrorKind"). An attribute chain rooted in something that is not
// an identifier (a call, a subscript) contributes only the attribute parts.
// Any other expression shape renders as "".
func RenderName(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "identifier":
		return n.Content(src)

	case "attribute":
		var parts []string
		cur := n
		for cur.Type() == "attribute" {
			attr := cur.ChildByFieldName("attribute")
			if attr == nil {
				return ""
			}
			parts = append(parts, attr.Content(src))
			cur = cur.ChildByFieldName("object")
			if cur == nil {
				break
			}
		}
		if cur != nil && cur.Type() == "identifier" {
			parts = append(parts, cur.Content(src))
		}
		reverse(parts)
		return strings.Join(parts, ".")
	}

	return ""
}

// CalleeName resolves a call expression to the bare name the registry is
// keyed on. Method calls resolve to the attribute name only, receiver
// ignored: obj.method() resolves as "method".
func CalleeName(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return fn.Content(src)
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr == nil {
			return ""
		}
		return attr.Content(src)
	}
	return ""
}

// RaisedClass resolves the operand of a raise statement to an exception
// class name. A raise of a call expression resolves by the callee's full
// dotted name; a raise of a bare or dotted name resolves by that name.
func RaisedClass(expr *sitter.Node, src []byte) string {
	if expr.Type() == "call" {
		fn := expr.ChildByFieldName("function")
		if fn == nil {
			return ""
		}
		return RenderName(fn, src)
	}
	return RenderName(expr, src)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// unquote strips string prefixes (r, b, f, u and combinations) and the
// surrounding quotes from a Python string literal's source text.
func unquote(text string) string {
	trimmed := strings.TrimLeft(text, "rbfuRBFU")
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(trimmed, q) && strings.HasSuffix(trimmed, q) && len(trimmed) >= 2*len(q) {
			return trimmed[len(q) : len(trimmed)-len(q)]
		}
	}
	return trimmed
}

package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hail-kang/faex/core/report"
)

// httpMethods are the decorator tokens recognized as route registrations,
// matching the FastAPI router/app method set.
var httpMethods = map[string]bool{
	"get":     true,
	"post":    true,
	"put":     true,
	"delete":  true,
	"patch":   true,
	"head":    true,
	"options": true,
	"trace":   true,
}

// Endpoint inspects the function's decorators for a route registration
// call such as @router.get("/path", exceptions=[...]) or @get(...).
// Only the first matching decorator is used; subsequent matching
// decorators on the same function are ignored. Returns false when the
// function is not an endpoint.
func (fn Function) Endpoint() (report.Endpoint, bool) {
	src := fn.File.Source

	for _, dec := range fn.decorators() {
		call := decoratorCall(dec)
		if call == nil {
			continue
		}

		method := httpMethod(call, src)
		if method == "" {
			continue
		}

		return report.Endpoint{
			File:     fn.File.Path,
			Line:     fn.Line(),
			Function: fn.Name(),
			Method:   strings.ToUpper(method),
			Path:     routePath(call, src),
			Declared: declaredExceptions(call, src),
		}, true
	}

	return report.Endpoint{}, false
}

// decoratorCall returns the call expression of a decorator, or nil when
// the decorator is not a call (e.g. @staticmethod).
func decoratorCall(dec *sitter.Node) *sitter.Node {
	for i := 0; i < int(dec.NamedChildCount()); i++ {
		child := dec.NamedChild(i)
		if child.Type() == "call" {
			return child
		}
	}
	return nil
}

// httpMethod extracts the HTTP method token from a decorator call, or ""
// when the callee is not one of the recognized method tokens. Both
// @router.get(...) and a directly imported @get(...) match.
func httpMethod(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}

	switch fn.Type() {
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr != nil && httpMethods[attr.Content(src)] {
			return attr.Content(src)
		}
	case "identifier":
		if httpMethods[fn.Content(src)] {
			return fn.Content(src)
		}
	}
	return ""
}

// routePath extracts the first positional argument as the route path when
// it is a literal; otherwise the endpoint has no recorded path.
func routePath(call *sitter.Node, src []byte) string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
			continue
		case "keyword_argument":
			// Keyword arguments end the positional section.
			return ""
		case "string":
			return unquote(arg.Content(src))
		case "integer", "float", "true", "false", "none":
			return arg.Content(src)
		default:
			// First positional argument is not a literal.
			return ""
		}
	}
	return ""
}

// declaredExceptions extracts the class names from an exceptions=[...]
// keyword argument, in declaration order. Elements that are neither bare
// identifiers nor dotted attribute chains are skipped.
func declaredExceptions(call *sitter.Node, src []byte) []string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "keyword_argument" {
			continue
		}

		name := arg.ChildByFieldName("name")
		value := arg.ChildByFieldName("value")
		if name == nil || value == nil || name.Content(src) != "exceptions" {
			continue
		}
		if value.Type() != "list" {
			return nil
		}

		var declared []string
		for j := 0; j < int(value.NamedChildCount()); j++ {
			if cls := RenderName(value.NamedChild(j), src); cls != "" {
				declared = append(declared, cls)
			}
		}
		return declared
	}
	return nil
}

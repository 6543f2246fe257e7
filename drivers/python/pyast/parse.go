// Package pyast wraps tree-sitter parsing of Python source files and
// exposes the syntactic shapes the exception analysis needs: function
// definitions, route decorators, raise statements, and call expressions.
package pyast

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var (
	// ErrSyntax marks source that tree-sitter could not parse cleanly.
	ErrSyntax = errors.New("syntax error")

	// ErrEncoding marks source that is not valid UTF-8.
	ErrEncoding = errors.New("encoding error")
)

// File is a parsed Python source file.
type File struct {
	Path   string
	Source []byte
	tree   *sitter.Tree
}

// Function is a function definition (def or async def) within a File.
type Function struct {
	File *File
	node *sitter.Node
}

// ParseFile reads and parses the Python file at path.
func ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(ctx, path, src)
}

// Parse parses src as Python. Undecodable bytes return ErrEncoding and
// malformed source returns ErrSyntax, so callers can record per-file
// errors without aborting a scan.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w in %s: source is not valid UTF-8", ErrEncoding, path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if tree.RootNode().HasError() {
		return nil, fmt.Errorf("%w in %s", ErrSyntax, path)
	}

	return &File{Path: path, Source: src, tree: tree}, nil
}

// Functions returns every function definition in the file, in source
// order, including async functions, methods, and nested functions.
func (f *File) Functions() []Function {
	var out []Function
	walk(f.tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			out = append(out, Function{File: f, node: n})
		}
	})
	return out
}

// Name returns the function's bare name.
func (fn Function) Name() string {
	name := fn.node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Content(fn.File.Source)
}

// Line returns the 1-based line of the def keyword (decorators excluded).
func (fn Function) Line() int {
	return int(fn.node.StartPoint().Row) + 1
}

// decorators returns the decorator nodes attached to the function, in
// source order, or nil if the definition is undecorated.
func (fn Function) decorators() []*sitter.Node {
	parent := fn.node.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}

	var out []*sitter.Node
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if child.Type() == "decorator" {
			out = append(out, child)
		}
	}
	return out
}

// walk visits n and every named descendant in pre-order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visit)
	}
}

// Package excflow implements the transitive exception-flow analysis:
// a bare-name function registry over parsed source files and a
// depth-bounded, memoized walk of the call graph reachable from an
// endpoint body.
package excflow

import (
	"context"

	"github.com/hail-kang/faex/drivers/python/pyast"
)

// Registry indexes function definitions across source files by bare name.
//
// Resolution is deliberately name-only: no scoping, no receiver types.
// When functions in different files share a name, the last registration
// wins. This approximation is inherited from the tool's design and is
// asserted as current behavior by tests; callers must not rely on which
// definition wins beyond registration order.
type Registry struct {
	funcs  map[string]pyast.Function
	parsed map[string]bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs:  make(map[string]pyast.Function),
		parsed: make(map[string]bool),
	}
}

// RegisterFile parses the file at path and indexes every function
// definition found in it. Repeated registrations of the same path are
// no-ops. Parse failures are silently skipped: the scan driver reports
// per-file errors separately, and a file that fails to parse simply
// contributes no resolvable functions.
func (r *Registry) RegisterFile(ctx context.Context, path string) {
	if r.parsed[path] {
		return
	}

	file, err := pyast.ParseFile(ctx, path)
	if err != nil {
		return
	}
	r.Register(file)
}

// Register indexes every function definition in an already-parsed file,
// route handlers and helpers alike, so the transitive analyzer can
// resolve calls into any of them.
func (r *Registry) Register(file *pyast.File) {
	if r.parsed[file.Path] {
		return
	}
	r.parsed[file.Path] = true

	for _, fn := range file.Functions() {
		r.funcs[fn.Name()] = fn
	}
}

// Lookup returns the most recently registered function with the given
// bare name.
func (r *Registry) Lookup(name string) (pyast.Function, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

package report

import "fmt"

// Occurrence records a single raise site discovered during analysis.
type Occurrence struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Class  string `json:"class"`
	// InFunction is empty for a raise found directly in the endpoint body.
	// For transitive raises it names the called function the raise was
	// attributed to.
	InFunction string `json:"in_function,omitempty"`
}

// String renders the occurrence the way the text formatter reports it.
func (o Occurrence) String() string {
	if o.InFunction != "" {
		return fmt.Sprintf("%s (raised in %s at %s:%d)", o.Class, o.InFunction, o.File, o.Line)
	}
	return fmt.Sprintf("%s (raised at line %d)", o.Class, o.Line)
}

// Endpoint describes one recognized route handler and the exceptions
// declared on it versus those detected in its reachable call graph.
type Endpoint struct {
	File     string       `json:"file"`
	Line     int          `json:"line"`
	Function string       `json:"function"`
	Method   string       `json:"method"`
	Path     string       `json:"path,omitempty"`
	Declared []string     `json:"declared_exceptions"`
	Detected []Occurrence `json:"detected_exceptions"`
}

// Undeclared returns detected occurrences whose class is not declared.
func (e Endpoint) Undeclared() []Occurrence {
	declared := make(map[string]bool, len(e.Declared))
	for _, name := range e.Declared {
		declared[name] = true
	}

	var out []Occurrence
	for _, occ := range e.Detected {
		if !declared[occ.Class] {
			out = append(out, occ)
		}
	}
	return out
}

// UnusedDeclarations returns declared classes never detected as raised,
// in declaration order.
func (e Endpoint) UnusedDeclarations() []string {
	detected := make(map[string]bool, len(e.Detected))
	for _, occ := range e.Detected {
		detected[occ.Class] = true
	}

	var out []string
	for _, name := range e.Declared {
		if !detected[name] {
			out = append(out, name)
		}
	}
	return out
}

// Result is the full outcome of analyzing a file or directory.
type Result struct {
	Endpoints []Endpoint `json:"endpoints"`
	// Errors holds one message per file that could not be parsed.
	// File errors are never fatal to the run.
	Errors []string `json:"errors"`
}

// HasIssues reports whether any endpoint has an undeclared exception.
func (r Result) HasIssues() bool {
	for _, ep := range r.Endpoints {
		if len(ep.Undeclared()) > 0 {
			return true
		}
	}
	return false
}

// TotalUndeclared is the sum of undeclared exception counts across endpoints.
func (r Result) TotalUndeclared() int {
	total := 0
	for _, ep := range r.Endpoints {
		total += len(ep.Undeclared())
	}
	return total
}

// WithIssues returns the endpoints that have at least one undeclared exception.
func (r Result) WithIssues() []Endpoint {
	var out []Endpoint
	for _, ep := range r.Endpoints {
		if len(ep.Undeclared()) > 0 {
			out = append(out, ep)
		}
	}
	return out
}

// HasUnused reports whether any endpoint declares an exception that is
// never detected. Consulted by strict mode.
func (r Result) HasUnused() bool {
	for _, ep := range r.Endpoints {
		if len(ep.UnusedDeclarations()) > 0 {
			return true
		}
	}
	return false
}

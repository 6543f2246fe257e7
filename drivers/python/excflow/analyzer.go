package excflow

import (
	"github.com/hail-kang/faex/core/report"
	"github.com/hail-kang/faex/drivers/python/pyast"
)

// cacheKey memoizes traversal results per (bare function name, depth).
//
// The cached occurrences are reused verbatim across call paths even
// though the ancestor visited set may differ between them. That trades a
// small attribution approximation for collapsing repeated visits to the
// same function at the same depth across sibling call sites.
type cacheKey struct {
	name  string
	depth int
}

// Analyzer walks the call graph reachable from an endpoint body and
// collects every raise site it can see, up to a configured depth.
//
// An Analyzer is owned by exactly one analysis run. The cache is shared
// across endpoints of that run and must never be shared between runs.
type Analyzer struct {
	registry *Registry
	maxDepth int
	cache    map[cacheKey][]report.Occurrence
}

// NewAnalyzer creates an Analyzer resolving call targets through registry.
// A maxDepth of 0 disables transitive analysis entirely.
func NewAnalyzer(registry *Registry, maxDepth int) *Analyzer {
	return &Analyzer{
		registry: registry,
		maxDepth: maxDepth,
		cache:    make(map[cacheKey][]report.Occurrence),
	}
}

// Analyze returns every exception occurrence reachable from fn's body.
// Occurrences found directly in fn carry no InFunction; occurrences found
// through a call are attributed to the name of the called function.
func (a *Analyzer) Analyze(fn pyast.Function) []report.Occurrence {
	return a.analyze(fn, 0, map[string]bool{})
}

func (a *Analyzer) analyze(fn pyast.Function, depth int, visited map[string]bool) []report.Occurrence {
	name := fn.Name()
	if visited[name] {
		return nil
	}
	visited[name] = true

	var results []report.Occurrence
	for _, site := range pyast.Raises(fn) {
		results = append(results, report.Occurrence{
			File:   fn.File.Path,
			Line:   site.Line,
			Column: site.Column,
			Class:  site.Class,
		})
	}

	if depth >= a.maxDepth {
		return results
	}

	for _, callee := range pyast.CallNames(fn) {
		if visited[callee] {
			continue
		}

		key := cacheKey{name: callee, depth: depth + 1}
		if cached, ok := a.cache[key]; ok {
			results = append(results, cached...)
			continue
		}

		target, ok := a.registry.Lookup(callee)
		if !ok {
			// Most unresolved calls target library code outside the
			// scanned tree; they contribute no further exceptions.
			continue
		}

		// The visited set is copied, not shared, so sibling branches of
		// the call graph do not poison each other's cycle guard: only
		// ancestors on the current path block revisitation.
		sub := a.analyze(target, depth+1, copyVisited(visited))
		for i := range sub {
			if sub[i].InFunction == "" {
				sub[i].InFunction = callee
			}
		}
		a.cache[key] = sub
		results = append(results, sub...)
	}

	return results
}

func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited)+1)
	for name := range visited {
		out[name] = true
	}
	return out
}

package driver

import (
	"context"

	"github.com/hail-kang/faex/core/report"
)

// Options configures an analysis run.
type Options struct {
	// MaxDepth bounds transitive call-graph traversal. 0 reports only
	// raises directly in the endpoint body.
	MaxDepth int

	// Ignore lists exception class names (exact match, dotted form
	// included) removed from detected sets before attachment.
	Ignore []string
}

// DefaultMaxDepth is the transitive traversal bound used when no depth
// is configured.
const DefaultMaxDepth = 3

// RouteAnalyzer is the interface each web-framework driver must implement
// to support endpoint exception analysis.
type RouteAnalyzer interface {
	// Analyze scans path (a source file or a directory tree) for route
	// handlers and returns the declared/detected exception sets per
	// endpoint. Per-file parse failures are recorded in the result, not
	// returned as an error; the returned error covers only failures that
	// prevent the scan itself (unreadable root, canceled context).
	Analyze(ctx context.Context, path string, opts Options) (report.Result, error)
}

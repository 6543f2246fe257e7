// Package python implements the FastAPI route-handler driver: it walks a
// source tree, extracts endpoints from router decorators, and runs the
// transitive exception-flow analysis on each one.
package python

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hail-kang/faex/core/driver"
	"github.com/hail-kang/faex/core/report"
	"github.com/hail-kang/faex/drivers/python/excflow"
	"github.com/hail-kang/faex/drivers/python/pyast"
)

var _ driver.RouteAnalyzer = (*Driver)(nil)

// Driver implements driver.RouteAnalyzer for Python source trees using
// FastAPI-style route decorators.
type Driver struct{}

// NewDriver creates a Driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Analyze scans path (a .py file or a directory) and returns per-endpoint
// declared versus detected exceptions. Files that fail to parse are
// recorded as result errors and skipped; they never fail the run.
func (d *Driver) Analyze(ctx context.Context, path string, opts driver.Options) (report.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return report.Result{}, fmt.Errorf("accessing %s: %w", path, err)
	}

	var result report.Result

	paths := []string{path}
	if info.IsDir() {
		paths, err = collectSourceFiles(ctx, path)
		if err != nil {
			return report.Result{}, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	// Register every file before analyzing any endpoint, so call targets
	// resolve identically no matter which file an endpoint lives in.
	registry := excflow.NewRegistry()
	var files []*pyast.File
	for _, p := range paths {
		file, err := pyast.ParseFile(ctx, p)
		if err != nil {
			result.Errors = append(result.Errors, fileError(p, err))
			continue
		}
		registry.Register(file)
		files = append(files, file)
	}

	analyzer := excflow.NewAnalyzer(registry, opts.MaxDepth)
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = true
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report.Result{}, err
		}

		for _, fn := range file.Functions() {
			endpoint, ok := fn.Endpoint()
			if !ok {
				continue
			}

			for _, occ := range analyzer.Analyze(fn) {
				if ignore[occ.Class] {
					continue
				}
				endpoint.Detected = append(endpoint.Detected, occ)
			}

			result.Endpoints = append(result.Endpoints, endpoint)
		}
	}

	return result, nil
}

// collectSourceFiles returns every .py file beneath root in walk order.
func collectSourceFiles(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		// Skip symlinks to prevent symlink-based path escapes.
		if entry.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if strings.HasSuffix(p, ".py") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// fileError renders a non-fatal per-file failure the way the result
// reports it.
func fileError(path string, err error) string {
	switch {
	case errors.Is(err, pyast.ErrSyntax):
		return fmt.Sprintf("syntax error in %s", path)
	case errors.Is(err, pyast.ErrEncoding):
		return fmt.Sprintf("encoding error in %s", path)
	default:
		return fmt.Sprintf("cannot read %s: %v", path, err)
	}
}

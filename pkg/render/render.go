// Package render formats analysis results for terminals, CI logs, and
// machine consumers.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hail-kang/faex/core/report"
)

// Formatter renders an analysis result to a string.
type Formatter interface {
	Format(result report.Result, verbose bool) string
}

// New returns the formatter for the given format name: "text", "json",
// or "github".
func New(format string) (Formatter, error) {
	switch format {
	case "text":
		return TextFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "github":
		return GitHubFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextFormatter renders plain text focused on endpoints with issues.
type TextFormatter struct{}

func (TextFormatter) Format(result report.Result, verbose bool) string {
	if len(result.Endpoints) == 0 {
		return "No FastAPI endpoints found."
	}

	withIssues := result.WithIssues()
	if len(withIssues) == 0 {
		var lines []string
		if verbose {
			lines = append(lines, fmt.Sprintf("Analyzed %d endpoints.", len(result.Endpoints)))
		}
		lines = append(lines, "No undeclared exceptions found.")
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, ep := range withIssues {
		lines = append(lines, formatEndpointText(ep, verbose))
	}

	total := result.TotalUndeclared()
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Found %d undeclared exception%s in %d endpoint%s.",
		total, plural(total), len(withIssues), plural(len(withIssues))))

	return strings.Join(lines, "\n")
}

func formatEndpointText(ep report.Endpoint, verbose bool) string {
	var lines []string

	header := fmt.Sprintf("%s:%d - %s", ep.File, ep.Line, ep.Function)
	if ep.Path != "" {
		header = fmt.Sprintf("%s:%d - %s %s (%s)", ep.File, ep.Line, ep.Method, ep.Path, ep.Function)
	}
	lines = append(lines, header)

	lines = append(lines, "  Undeclared exceptions:")
	for _, occ := range ep.Undeclared() {
		if occ.InFunction != "" {
			lines = append(lines, fmt.Sprintf("    - %s (raised in %s at %s:%d)",
				occ.Class, occ.InFunction, occ.File, occ.Line))
		} else {
			lines = append(lines, fmt.Sprintf("    - %s (raised at line %d)", occ.Class, occ.Line))
		}
	}

	if verbose && len(ep.Declared) > 0 {
		lines = append(lines, "  Declared exceptions:")
		for _, cls := range ep.Declared {
			lines = append(lines, "    - "+cls)
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// JSONFormatter renders a machine-readable summary. Endpoints without
// issues are included only in verbose mode.
type JSONFormatter struct{}

type jsonSummary struct {
	TotalEndpoints      int `json:"total_endpoints"`
	EndpointsWithIssues int `json:"endpoints_with_issues"`
	TotalUndeclared     int `json:"total_undeclared"`
}

type jsonOccurrence struct {
	Class      string `json:"class"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	InFunction string `json:"in_function,omitempty"`
}

type jsonEndpoint struct {
	File       string           `json:"file"`
	Line       int              `json:"line"`
	Function   string           `json:"function"`
	Method     string           `json:"method"`
	Path       string           `json:"path,omitempty"`
	Declared   []string         `json:"declared_exceptions"`
	Undeclared []jsonOccurrence `json:"undeclared_exceptions"`
}

type jsonReport struct {
	Summary   jsonSummary    `json:"summary"`
	Endpoints []jsonEndpoint `json:"endpoints"`
	Errors    []string       `json:"errors"`
}

func (JSONFormatter) Format(result report.Result, verbose bool) string {
	out := jsonReport{
		Summary: jsonSummary{
			TotalEndpoints:      len(result.Endpoints),
			EndpointsWithIssues: len(result.WithIssues()),
			TotalUndeclared:     result.TotalUndeclared(),
		},
		Endpoints: []jsonEndpoint{},
		Errors:    []string{},
	}
	out.Errors = append(out.Errors, result.Errors...)

	for _, ep := range result.Endpoints {
		undeclared := ep.Undeclared()
		if !verbose && len(undeclared) == 0 {
			continue
		}

		je := jsonEndpoint{
			File:       ep.File,
			Line:       ep.Line,
			Function:   ep.Function,
			Method:     ep.Method,
			Path:       ep.Path,
			Declared:   append([]string{}, ep.Declared...),
			Undeclared: []jsonOccurrence{},
		}
		for _, occ := range undeclared {
			je.Undeclared = append(je.Undeclared, jsonOccurrence{
				Class:      occ.Class,
				File:       occ.File,
				Line:       occ.Line,
				InFunction: occ.InFunction,
			})
		}
		out.Endpoints = append(out.Endpoints, je)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// GitHubFormatter emits GitHub Actions workflow error annotations, one
// per undeclared exception.
type GitHubFormatter struct{}

func (GitHubFormatter) Format(result report.Result, verbose bool) string {
	var lines []string
	for _, ep := range result.WithIssues() {
		for _, occ := range ep.Undeclared() {
			message := fmt.Sprintf("Undeclared exception '%s'", occ.Class)
			if occ.InFunction != "" {
				message = fmt.Sprintf("Undeclared exception '%s' raised in %s", occ.Class, occ.InFunction)
			}
			lines = append(lines, fmt.Sprintf("::error file=%s,line=%d,title=Undeclared Exception::%s",
				ep.File, ep.Line, message))
		}
	}
	return strings.Join(lines, "\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hail-kang/faex/core/report"
)

var (
	styleFile    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleLine    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleMethod  = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleBad     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// ColorFormatter is the TTY variant of TextFormatter.
type ColorFormatter struct{}

func (ColorFormatter) Format(result report.Result, verbose bool) string {
	if len(result.Endpoints) == 0 {
		return styleWarn.Render("No FastAPI endpoints found.")
	}

	withIssues := result.WithIssues()
	if len(withIssues) == 0 {
		var lines []string
		if verbose {
			lines = append(lines, styleDim.Render(fmt.Sprintf("Analyzed %d endpoints.", len(result.Endpoints))))
		}
		lines = append(lines, styleSuccess.Render("✓ No undeclared exceptions found."))
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, ep := range withIssues {
		lines = append(lines, endpointHeader(ep))
		lines = append(lines, "  Undeclared exceptions:")
		for _, occ := range ep.Undeclared() {
			detail := fmt.Sprintf("(raised at line %d)", occ.Line)
			if occ.InFunction != "" {
				detail = fmt.Sprintf("(raised in %s at %s:%d)", occ.InFunction, occ.File, occ.Line)
			}
			lines = append(lines, fmt.Sprintf("    %s %s %s",
				styleBad.Render("✗"), occ.Class, styleDim.Render(detail)))
		}
		if verbose && len(ep.Declared) > 0 {
			lines = append(lines, "  Declared exceptions:")
			for _, cls := range ep.Declared {
				lines = append(lines, fmt.Sprintf("    %s %s", styleOK.Render("✓"), cls))
			}
		}
		lines = append(lines, "")
	}

	total := result.TotalUndeclared()
	lines = append(lines, styleBad.Render(fmt.Sprintf("Found %d undeclared exception%s in %d endpoint%s.",
		total, plural(total), len(withIssues), plural(len(withIssues)))))

	return strings.Join(lines, "\n")
}

// List renders the per-endpoint declared/detected listing used by
// "faex list".
func List(result report.Result) string {
	if len(result.Endpoints) == 0 {
		return styleWarn.Render("No FastAPI endpoints found.")
	}

	var lines []string
	for _, ep := range result.Endpoints {
		lines = append(lines, "")
		lines = append(lines, endpointHeader(ep))

		if len(ep.Declared) > 0 {
			lines = append(lines, "  "+styleOK.Render("Declared:"))
			for _, cls := range ep.Declared {
				lines = append(lines, fmt.Sprintf("    %s %s", styleOK.Render("✓"), cls))
			}
		} else {
			lines = append(lines, "  "+styleDim.Render("Declared: (none)"))
		}

		if len(ep.Detected) > 0 {
			lines = append(lines, "  Detected:")
			declared := make(map[string]bool, len(ep.Declared))
			for _, cls := range ep.Declared {
				declared[cls] = true
			}
			for _, occ := range ep.Detected {
				mark := styleBad.Render("✗")
				if declared[occ.Class] {
					mark = styleOK.Render("✓")
				}
				detail := fmt.Sprintf("(line %d)", occ.Line)
				if occ.InFunction != "" {
					detail = fmt.Sprintf("(in %s at line %d)", occ.InFunction, occ.Line)
				}
				lines = append(lines, fmt.Sprintf("    %s %s %s", mark, occ.Class, styleDim.Render(detail)))
			}
		} else {
			lines = append(lines, "  "+styleDim.Render("Detected: (none)"))
		}
	}

	lines = append(lines, "")
	lines = append(lines, styleDim.Render(fmt.Sprintf("Total endpoints: %d", len(result.Endpoints))))
	return strings.Join(lines, "\n")
}

func endpointHeader(ep report.Endpoint) string {
	location := fmt.Sprintf("%s:%s", styleFile.Render(ep.File), styleLine.Render(fmt.Sprintf("%d", ep.Line)))
	if ep.Path != "" {
		return fmt.Sprintf("%s - %s %s %s", location,
			styleMethod.Render(ep.Method), ep.Path, styleDim.Render("("+ep.Function+")"))
	}
	return fmt.Sprintf("%s - %s", location, styleMethod.Render(ep.Function))
}

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hail-kang/faex/core/report"
)

// Suggestions renders a suggested exceptions=[...] declaration for each
// endpoint with undeclared exceptions: the sorted union of declared and
// detected classes. When diff is true the output uses -/+ lines showing
// the declaration change.
func Suggestions(result report.Result, diff bool) string {
	withIssues := result.WithIssues()
	if len(withIssues) == 0 {
		return styleSuccess.Render("✓ All exceptions are properly declared.")
	}

	var lines []string
	for _, ep := range withIssues {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%s - %s",
			styleFile.Render(fmt.Sprintf("%s:%d", ep.File, ep.Line)),
			styleMethod.Render(ep.Function)))

		suggested := suggestedClasses(ep)

		if diff {
			lines = append(lines, "  "+styleBad.Render(fmt.Sprintf("- exceptions=[%s]", strings.Join(ep.Declared, ", "))))
			lines = append(lines, "  "+styleOK.Render(fmt.Sprintf("+ exceptions=[%s]", strings.Join(suggested, ", "))))
			continue
		}

		lines = append(lines, "  "+styleWarn.Render("Suggested:"))
		lines = append(lines, fmt.Sprintf("    exceptions=[%s]", strings.Join(suggested, ", ")))

		var added []string
		for _, occ := range ep.Undeclared() {
			added = append(added, occ.Class)
		}
		if len(added) > 0 {
			lines = append(lines, "  "+styleDim.Render("Adding: "+strings.Join(added, ", ")))
		}
	}

	return strings.Join(lines, "\n")
}

// suggestedClasses is the sorted union of declared and detected classes.
func suggestedClasses(ep report.Endpoint) []string {
	seen := make(map[string]bool, len(ep.Declared)+len(ep.Detected))
	for _, cls := range ep.Declared {
		seen[cls] = true
	}
	for _, occ := range ep.Detected {
		seen[occ.Class] = true
	}

	out := make([]string, 0, len(seen))
	for cls := range seen {
		out = append(out, cls)
	}
	sort.Strings(out)
	return out
}

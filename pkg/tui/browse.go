// Package tui implements the interactive endpoint browser behind
// "faex browse".
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hail-kang/faex/core/report"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Browse runs the interactive endpoint browser over an analysis result.
func Browse(result report.Result) error {
	p := tea.NewProgram(newModel(result))
	_, err := p.Run()
	return err
}

type model struct {
	endpoints []report.Endpoint
	visible   []int // indices into endpoints matching the current filter
	cursor    int
	filter    textinput.Model
	filtering bool
	detail    bool
}

func newModel(result report.Result) model {
	ti := textinput.New()
	ti.Placeholder = "filter by path or function"
	ti.CharLimit = 128

	m := model{
		endpoints: result.Endpoints,
		filter:    ti,
	}
	m.applyFilter()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter, tea.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.detail {
			m.detail = false
			return m, nil
		}
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.visible) > 0 {
			m.detail = true
		}
	case "/":
		m.detail = false
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m *model) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.visible = nil
	for i, ep := range m.endpoints {
		if query == "" ||
			strings.Contains(strings.ToLower(ep.Path), query) ||
			strings.Contains(strings.ToLower(ep.Function), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("faex — %d endpoints", len(m.endpoints))))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString("filter: " + m.filter.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("no endpoints match") + "\n")
	}

	for pos, idx := range m.visible {
		ep := m.endpoints[idx]

		prefix := "  "
		if pos == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		status := okStyle.Render("✓")
		if n := len(ep.Undeclared()); n > 0 {
			status = badStyle.Render(fmt.Sprintf("✗ %d undeclared", n))
		}

		label := ep.Function
		if ep.Path != "" {
			label = fmt.Sprintf("%s %s %s", ep.Method, ep.Path, dimStyle.Render("("+ep.Function+")"))
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", prefix, label, status))

		if m.detail && pos == m.cursor {
			b.WriteString(m.detailView(ep))
		}
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ move · enter detail · / filter · q quit") + "\n")
	return b.String()
}

func (m model) detailView(ep report.Endpoint) string {
	var b strings.Builder

	b.WriteString("    " + locationStyle.Render(fmt.Sprintf("%s:%d", ep.File, ep.Line)) + "\n")

	if len(ep.Declared) > 0 {
		b.WriteString("    declared:\n")
		for _, cls := range ep.Declared {
			b.WriteString("      " + okStyle.Render("✓") + " " + cls + "\n")
		}
	} else {
		b.WriteString("    " + dimStyle.Render("declared: (none)") + "\n")
	}

	if len(ep.Detected) > 0 {
		declared := make(map[string]bool, len(ep.Declared))
		for _, cls := range ep.Declared {
			declared[cls] = true
		}
		b.WriteString("    detected:\n")
		for _, occ := range ep.Detected {
			mark := badStyle.Render("✗")
			if declared[occ.Class] {
				mark = okStyle.Render("✓")
			}
			where := fmt.Sprintf("line %d", occ.Line)
			if occ.InFunction != "" {
				where = fmt.Sprintf("in %s, line %d", occ.InFunction, occ.Line)
			}
			b.WriteString(fmt.Sprintf("      %s %s %s\n", mark, occ.Class, dimStyle.Render("("+where+")")))
		}
	} else {
		b.WriteString("    " + dimStyle.Render("detected: (none)") + "\n")
	}

	return b.String()
}

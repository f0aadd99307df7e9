// pattern: Imperative Shell

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	markOn  = "*"
	markOff = " "
)

// View renders the TUI.
func (m Model) View() string {
	s := m.session
	highlighted, _ := s.Highlighted()
	selected, _ := s.Selected()
	// An empty list still takes one row for its placeholder.
	layout := ComputeLayout(m.height, max(1, len(s.RecentModified())), max(1, len(s.RecentOpened())))

	var lines []string
	lines = append(lines, m.styles.HeadingStyle().Render("Last updated projects:"))
	lines = append(lines, m.renderRecent(s.RecentModified(), highlighted)...)
	lines = append(lines, m.styles.HeadingStyle().Render("Last opened projects:"))
	lines = append(lines, m.renderRecent(s.RecentOpened(), highlighted)...)
	lines = append(lines, "")

	lines = append(lines, m.styles.PromptStyle().Render("Start typing to search for projects (esc to exit):"))
	lines = append(lines, m.styles.PromptStyle().Render("Query: ")+m.styles.QueryStyle().Render(s.Query()))
	lines = append(lines, "")

	lines = append(lines, m.renderMatches(s.Matches(), selected, layout.Matches)...)

	lines = append(lines, "")
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(m.truncate(lines), "\n")
}

// renderRecent renders a recency list, marking the cycle target.
func (m Model) renderRecent(projects []string, highlighted string) []string {
	if len(projects) == 0 {
		return []string{m.styles.PathStyle().Render("  (none)")}
	}
	rows := make([]string, 0, len(projects))
	for _, p := range projects {
		if p == highlighted {
			rows = append(rows, m.styles.HighlightStyle().Render(markOn+" "+filepath.Base(p)))
		} else {
			rows = append(rows, m.styles.ItemStyle().Render(markOff+" "+filepath.Base(p)))
		}
	}
	return rows
}

// renderMatches renders up to limit matches (negative: all), marking the
// selection and noting how many rows were left out.
func (m Model) renderMatches(matches []string, selected string, limit int) []string {
	if len(matches) == 0 {
		return nil
	}

	shown := matches
	if limit >= 0 && len(matches) > limit {
		// The selection is always the first match, so it stays visible. The
		// overflow note needs a row of its own.
		shown = matches[:max(1, limit-1)]
	}

	rows := make([]string, 0, len(shown)+1)
	for _, p := range shown {
		name := filepath.Base(p)
		parent := m.styles.PathStyle().Render(displayDir(p))
		if p == selected {
			rows = append(rows, m.styles.SelectedStyle().Render(markOn+" "+name)+"  "+parent)
		} else {
			rows = append(rows, m.styles.ItemStyle().Render(markOff+" "+name)+"  "+parent)
		}
	}
	if hidden := len(matches) - len(shown); hidden > 0 && (limit < 0 || len(shown) < limit) {
		rows = append(rows, m.styles.PathStyle().Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return rows
}

// truncate clips each line to the terminal width once it is known.
func (m Model) truncate(lines []string) []string {
	if m.width <= 0 {
		return lines
	}
	for i, l := range lines {
		if lipgloss.Width(l) > m.width {
			lines[i] = ansi.Truncate(l, m.width, "…")
		}
	}
	return lines
}

// displayDir returns the parent directory of a project path.
func displayDir(path string) string {
	return filepath.Dir(path)
}

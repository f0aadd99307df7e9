// pattern: Imperative Shell

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"projpick/internal/session"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey feeds the key's events to the session and quits once the
// session reaches a terminal state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	events := m.keys.Events(msg)
	if len(events) == 0 {
		return m, nil
	}

	before := m.session.State()
	m.session = m.session.ApplyAll(events...)
	after := m.session.State()

	switch after {
	case session.Confirmed:
		project, _ := m.session.Selected()
		m.logger.Info("project confirmed", "project", project, "query", m.session.Query())
		return m, tea.Quit
	case session.Cancelled:
		m.logger.Debug("session cancelled", "query", m.session.Query())
		return m, tea.Quit
	}

	if after != before {
		m.logger.Debug("session state changed", "from", before.String(), "to", after.String())
	}
	return m, nil
}

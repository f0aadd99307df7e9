// pattern: Imperative Shell

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"projpick/internal/logging"
	"projpick/internal/session"
)

// Model is the bubbletea front end for a search session. All search state
// lives in the session; the model only adds terminal size and styling.
type Model struct {
	width  int
	height int
	styles *Styles
	keys   KeyMap
	help   help.Model
	logger *logging.ScopedLogger

	session session.Session
}

// NewModel creates a TUI model around a fresh session.
func NewModel(s session.Session, themeName string, logger *logging.ScopedLogger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	styles := NewStyles(themeName)
	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle().Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle()
	h.Styles.ShortSeparator = styles.HelpStyle()

	return Model{
		styles:  styles,
		keys:    DefaultKeyMap(),
		help:    h,
		logger:  logger,
		session: s,
	}
}

// Init returns the initial command to run.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session returns the current search state.
func (m Model) Session() session.Session {
	return m.session
}

// Outcome is how a session ended.
type Outcome struct {
	State   session.State
	Project string // Set when State is Confirmed
}

// Confirmed reports whether a project was chosen.
func (o Outcome) Confirmed() bool {
	return o.State == session.Confirmed && o.Project != ""
}

// Outcome reports the session's final state and chosen project.
func (m Model) Outcome() Outcome {
	out := Outcome{State: m.session.State()}
	if out.State == session.Confirmed {
		out.Project, _ = m.session.Selected()
	}
	return out
}

// Run drives the model on the terminal until the session ends. The screen
// is drawn on output so stdout stays free for the chosen path.
func Run(m Model, input io.Reader, output io.Writer) (Outcome, error) {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(output)}
	if input != nil {
		opts = append(opts, tea.WithInput(input))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return Outcome{State: session.Cancelled}, fmt.Errorf("run picker: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Outcome{State: session.Cancelled}, fmt.Errorf("run picker: unexpected model %T", final)
	}
	return fm.Outcome(), nil
}

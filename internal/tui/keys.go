// pattern: Functional Core

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"projpick/internal/session"
)

// KeyMap binds terminal keys to logical session events.
type KeyMap struct {
	Cancel  key.Binding
	Confirm key.Binding
	Erase   key.Binding
	Cycle   key.Binding
	Clear   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace", "delete", "ctrl+h"),
			key.WithHelp("⌫", "erase"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle recent"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cycle, k.Erase, k.Clear, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Events translates a key press into session events. Typed or pasted text
// yields one Character event per rune; unbound keys yield nothing.
func (k KeyMap) Events(msg tea.KeyMsg) []session.Event {
	switch {
	case key.Matches(msg, k.Cancel):
		return []session.Event{{Kind: session.Cancel}}
	case key.Matches(msg, k.Confirm):
		return []session.Event{{Kind: session.Confirm}}
	case key.Matches(msg, k.Erase):
		return []session.Event{{Kind: session.Erase}}
	case key.Matches(msg, k.Cycle):
		return []session.Event{{Kind: session.Cycle}}
	case key.Matches(msg, k.Clear):
		return []session.Event{{Kind: session.Clear}}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []session.Event{session.CharEvent(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' || r == '\t' {
				continue
			}
			events = append(events, session.CharEvent(r))
		}
		return events
	}
	return nil
}

// pattern: Functional Core

// Package session holds the interactive search state machine. It performs
// no I/O: a caller feeds it one Event per key press and renders the result.
package session

import (
	"path/filepath"

	"projpick/internal/fuzzy"
)

// MinQueryLen is the shortest query that is matched against candidates.
// Shorter queries produce no matches.
const MinQueryLen = 2

// State is the phase of a session.
type State int

const (
	Editing   State = iota // Typing a query
	Cycling                // Stepping through recent projects
	Confirmed              // Terminal: launch the selection
	Cancelled              // Terminal: exit without launching
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Cycling:
		return "cycling"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Done reports whether the state is terminal.
func (s State) Done() bool {
	return s == Confirmed || s == Cancelled
}

// EventKind is a logical input event, independent of the key that produced it.
type EventKind int

const (
	Character EventKind = iota
	Erase
	Cycle
	Confirm
	Cancel
	Clear
)

// Event is one logical key press. Char is set only for Character.
type Event struct {
	Kind EventKind
	Char rune
}

// CharEvent returns a Character event for r.
func CharEvent(r rune) Event {
	return Event{Kind: Character, Char: r}
}

// Session is the search state. It is a value: Apply returns the next
// session and leaves the receiver untouched. The candidate and recent
// slices are shared between values and never modified.
type Session struct {
	candidates     []string
	recentOpened   []string
	recentModified []string
	recent         []string

	state       State
	query       string
	matches     []string
	selected    string
	highlighted string
	cycleIndex  int
}

// New starts a session over the full candidate set with the two recency
// seed lists. Cycling walks the opened list first, then the modified list.
func New(candidates, recentOpened, recentModified []string) Session {
	recent := make([]string, 0, len(recentOpened)+len(recentModified))
	recent = append(recent, recentOpened...)
	recent = append(recent, recentModified...)
	return Session{
		candidates:     candidates,
		recentOpened:   recentOpened,
		recentModified: recentModified,
		recent:         recent,
		state:          Editing,
	}
}

// Apply returns the session after ev. Terminal sessions ignore all events.
func (s Session) Apply(ev Event) Session {
	if s.state.Done() {
		return s
	}

	switch ev.Kind {
	case Cancel:
		s.state = Cancelled

	case Confirm:
		if s.selected != "" {
			s.state = Confirmed
		}

	case Erase:
		if r := []rune(s.query); len(r) > 0 {
			s.query = string(r[:len(r)-1])
		}
		s.highlighted = ""
		s.state = Editing
		s.rematch()

	case Cycle:
		if len(s.recent) == 0 {
			return s
		}
		s.cycleIndex = (s.cycleIndex + 1) % len(s.recent)
		s.highlighted = s.recent[s.cycleIndex]
		s.query = filepath.Base(s.highlighted)
		s.state = Cycling
		s.rematch()

	case Clear:
		s.query = ""
		s.highlighted = ""
		s.state = Editing
		s.rematch()

	case Character:
		s.query += string(ev.Char)
		s.cycleIndex = 0
		s.highlighted = ""
		s.state = Editing
		s.rematch()
	}

	return s
}

// ApplyAll applies events in order, stopping early once the session ends.
func (s Session) ApplyAll(events ...Event) Session {
	for _, ev := range events {
		if s.state.Done() {
			break
		}
		s = s.Apply(ev)
	}
	return s
}

// rematch recomputes matches from scratch and selects the first one.
func (s *Session) rematch() {
	if len([]rune(s.query)) >= MinQueryLen {
		s.matches = fuzzy.Search(s.candidates, s.query)
	} else {
		s.matches = nil
	}
	s.selected = ""
	if len(s.matches) > 0 {
		s.selected = s.matches[0]
	}
}

// State returns the current phase.
func (s Session) State() State { return s.state }

// Query returns the current query text.
func (s Session) Query() string { return s.query }

// Matches returns the current matches in candidate order.
func (s Session) Matches() []string { return s.matches }

// Selected returns the project Confirm would launch, if any.
func (s Session) Selected() (string, bool) { return s.selected, s.selected != "" }

// Highlighted returns the recent project marked by cycling, if any.
func (s Session) Highlighted() (string, bool) { return s.highlighted, s.highlighted != "" }

// CycleIndex returns the position in Recent reached by cycling.
func (s Session) CycleIndex() int { return s.cycleIndex }

// Recent returns the combined cycling list: opened, then modified.
func (s Session) Recent() []string { return s.recent }

// RecentOpened returns the history seed list.
func (s Session) RecentOpened() []string { return s.recentOpened }

// RecentModified returns the modification-time seed list.
func (s Session) RecentModified() []string { return s.recentModified }

// Candidates returns the full candidate set.
func (s Session) Candidates() []string { return s.candidates }

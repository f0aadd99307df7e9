// pattern: Functional Core

package tui

// Layout holds the number of terminal rows given to each part of the view.
type Layout struct {
	Recent  int // Both recency lists with their headings
	Prompt  int // Instructions and query line
	Matches int // Match rows; -1 means unbounded
	Help    int // Key help line
}

// Fixed heights for chrome elements
const (
	promptHeight = 3 // Instructions, query, blank separator
	helpHeight   = 2 // Blank separator + help line
)

// ComputeLayout splits height between the recency lists, the prompt and
// the match list. An unknown height (0) leaves the match list unbounded.
func ComputeLayout(height, modifiedRows, openedRows int) Layout {
	recent := 2 + modifiedRows + openedRows + 1 // headings + rows + blank line
	l := Layout{Recent: recent, Prompt: promptHeight, Help: helpHeight, Matches: -1}
	if height <= 0 {
		return l
	}

	l.Matches = height - recent - promptHeight - helpHeight
	if l.Matches < 1 {
		l.Matches = 1
	}
	return l
}

package session

import (
	"reflect"
	"testing"
)

var (
	proj1 = "/home/u/projects/proj1"
	xyz   = "/home/u/other/xyz"
	prod  = "/home/u/work/prod-api"
)

func typeString(s Session, text string) Session {
	for _, r := range text {
		s = s.Apply(CharEvent(r))
	}
	return s
}

func TestNew(t *testing.T) {
	s := New([]string{proj1, xyz}, []string{xyz}, []string{proj1, prod})

	if s.State() != Editing {
		t.Errorf("State() = %v, want editing", s.State())
	}
	if s.Query() != "" || len(s.Matches()) != 0 || s.CycleIndex() != 0 {
		t.Errorf("initial query=%q matches=%v cycle=%d", s.Query(), s.Matches(), s.CycleIndex())
	}
	if _, ok := s.Selected(); ok {
		t.Error("no project should be selected initially")
	}
	if _, ok := s.Highlighted(); ok {
		t.Error("no project should be highlighted initially")
	}
	want := []string{xyz, proj1, prod}
	if !reflect.DeepEqual(s.Recent(), want) {
		t.Errorf("Recent() = %v, want opened then modified %v", s.Recent(), want)
	}
}

func TestEditSequence(t *testing.T) {
	s := New([]string{proj1, xyz}, nil, nil)

	s = s.Apply(CharEvent('p'))
	if s.Query() != "p" || len(s.Matches()) != 0 {
		t.Errorf("after 'p': query=%q matches=%v, want no matches below two characters", s.Query(), s.Matches())
	}

	s = typeString(s, "ro")
	if s.Query() != "pro" {
		t.Fatalf("Query() = %q, want pro", s.Query())
	}
	if !reflect.DeepEqual(s.Matches(), []string{proj1}) {
		t.Errorf("Matches() = %v, want [%s]", s.Matches(), proj1)
	}
	if sel, ok := s.Selected(); !ok || sel != proj1 {
		t.Errorf("Selected() = %q, %v; want %s", sel, ok, proj1)
	}

	s = s.Apply(Event{Kind: Erase})
	if s.Query() != "pr" {
		t.Errorf("after erase Query() = %q, want pr", s.Query())
	}
	if !reflect.DeepEqual(s.Matches(), []string{proj1}) {
		t.Errorf("after erase Matches() = %v", s.Matches())
	}

	s = s.Apply(Event{Kind: Erase})
	if s.Query() != "p" || len(s.Matches()) != 0 {
		t.Errorf("after second erase query=%q matches=%v", s.Query(), s.Matches())
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should clear when matches are empty")
	}
}

func TestSelectionIsFirstMatch(t *testing.T) {
	s := New([]string{xyz, prod, proj1}, nil, nil)

	s = typeString(s, "pr")
	if !reflect.DeepEqual(s.Matches(), []string{prod, proj1}) {
		t.Fatalf("Matches() = %v", s.Matches())
	}
	if sel, _ := s.Selected(); sel != prod {
		t.Errorf("Selected() = %q, want first match %q", sel, prod)
	}
}

func TestSearchUsesFullPathWithSeparator(t *testing.T) {
	s := New([]string{proj1, xyz}, nil, nil)

	s = typeString(s, "other/")
	if !reflect.DeepEqual(s.Matches(), []string{xyz}) {
		t.Errorf("Matches() = %v, want full-path match on %s", s.Matches(), xyz)
	}
}

func TestEraseOnEmptyQuery(t *testing.T) {
	s := New([]string{proj1}, nil, nil)

	s = s.Apply(Event{Kind: Erase})
	if s.Query() != "" || s.State() != Editing {
		t.Errorf("erase on empty: query=%q state=%v", s.Query(), s.State())
	}
}

func TestEraseMultibyte(t *testing.T) {
	s := New([]string{"/p/café"}, nil, nil)

	s = typeString(s, "café")
	s = s.Apply(Event{Kind: Erase})
	if s.Query() != "caf" {
		t.Errorf("Query() = %q, want caf", s.Query())
	}
}

func TestCycle(t *testing.T) {
	opened := []string{xyz}
	modified := []string{proj1}
	s := New([]string{proj1, xyz}, opened, modified)

	s = s.Apply(Event{Kind: Cycle})
	if s.State() != Cycling {
		t.Errorf("State() = %v, want cycling", s.State())
	}
	if s.CycleIndex() != 1 {
		t.Errorf("CycleIndex() = %d, want 1", s.CycleIndex())
	}
	if h, ok := s.Highlighted(); !ok || h != proj1 {
		t.Errorf("Highlighted() = %q, want %q", h, proj1)
	}
	if s.Query() != "proj1" {
		t.Errorf("Query() = %q, want basename proj1", s.Query())
	}
	if sel, _ := s.Selected(); sel != proj1 {
		t.Errorf("Selected() = %q, want %q", sel, proj1)
	}

	s = s.Apply(Event{Kind: Cycle})
	if h, _ := s.Highlighted(); h != xyz || s.CycleIndex() != 0 || s.Query() != "xyz" {
		t.Errorf("second cycle: highlighted=%q index=%d query=%q", h, s.CycleIndex(), s.Query())
	}
	if sel, _ := s.Selected(); sel != xyz {
		t.Errorf("Selected() = %q, want %q", sel, xyz)
	}
}

func TestCycleWraparound(t *testing.T) {
	s := New([]string{proj1, xyz}, []string{xyz}, []string{proj1})

	s = s.Apply(Event{Kind: Cycle})
	startIndex := s.CycleIndex()
	startHighlight, _ := s.Highlighted()

	for range 4 {
		s = s.Apply(Event{Kind: Cycle})
	}
	if s.CycleIndex() != startIndex {
		t.Errorf("CycleIndex() = %d, want %d after four presses", s.CycleIndex(), startIndex)
	}
	if h, _ := s.Highlighted(); h != startHighlight {
		t.Errorf("Highlighted() = %q, want %q", h, startHighlight)
	}
}

func TestCycleWithoutRecentIsNoop(t *testing.T) {
	s := typeString(New([]string{proj1}, nil, nil), "pr")

	next := s.Apply(Event{Kind: Cycle})
	if next.State() != Editing || next.Query() != "pr" || next.CycleIndex() != 0 {
		t.Errorf("cycle with no recent changed state: %v %q %d", next.State(), next.Query(), next.CycleIndex())
	}
}

func TestCharacterAfterCycle(t *testing.T) {
	s := New([]string{proj1, xyz}, []string{xyz}, []string{proj1})

	s = s.Apply(Event{Kind: Cycle})
	s = s.Apply(CharEvent('x'))

	if s.State() != Editing {
		t.Errorf("State() = %v, want editing", s.State())
	}
	if s.CycleIndex() != 0 {
		t.Errorf("CycleIndex() = %d, want reset to 0", s.CycleIndex())
	}
	if _, ok := s.Highlighted(); ok {
		t.Error("highlight should clear on character input")
	}
	if s.Query() != "proj1x" {
		t.Errorf("Query() = %q, want proj1x", s.Query())
	}
	if len(s.Matches()) != 0 {
		t.Errorf("Matches() = %v, want none", s.Matches())
	}
}

func TestEraseAfterCycle(t *testing.T) {
	s := New([]string{proj1, xyz}, []string{xyz}, []string{proj1})

	s = s.Apply(Event{Kind: Cycle})
	s = s.Apply(Event{Kind: Erase})

	if s.State() != Editing {
		t.Errorf("State() = %v, want editing", s.State())
	}
	if _, ok := s.Highlighted(); ok {
		t.Error("highlight should clear on erase")
	}
	if s.CycleIndex() != 1 {
		t.Errorf("CycleIndex() = %d, want unchanged 1", s.CycleIndex())
	}
	if s.Query() != "proj" {
		t.Errorf("Query() = %q, want proj", s.Query())
	}
	if sel, _ := s.Selected(); sel != proj1 {
		t.Errorf("Selected() = %q, want %q", sel, proj1)
	}
}

func TestClear(t *testing.T) {
	s := New([]string{proj1, xyz}, []string{xyz}, nil)
	s = s.Apply(Event{Kind: Cycle})

	s = s.Apply(Event{Kind: Clear})
	if s.State() != Editing || s.Query() != "" || len(s.Matches()) != 0 {
		t.Errorf("after clear: state=%v query=%q matches=%v", s.State(), s.Query(), s.Matches())
	}
	if _, ok := s.Selected(); ok {
		t.Error("clear should drop the selection")
	}
	if _, ok := s.Highlighted(); ok {
		t.Error("clear should drop the highlight")
	}
}

func TestConfirm(t *testing.T) {
	s := typeString(New([]string{proj1, xyz}, nil, nil), "pro")

	s = s.Apply(Event{Kind: Confirm})
	if s.State() != Confirmed {
		t.Fatalf("State() = %v, want confirmed", s.State())
	}
	if sel, _ := s.Selected(); sel != proj1 {
		t.Errorf("Selected() = %q, want %q", sel, proj1)
	}
}

func TestConfirmWithoutSelectionIsNoop(t *testing.T) {
	s := typeString(New([]string{proj1, xyz}, nil, nil), "zz")
	if len(s.Matches()) != 0 {
		t.Fatalf("Matches() = %v, want none", s.Matches())
	}

	next := s.Apply(Event{Kind: Confirm})
	if next.State() != Editing {
		t.Errorf("State() = %v, want still editing", next.State())
	}
	if next.Query() != "zz" {
		t.Errorf("Query() = %q, want unchanged", next.Query())
	}
}

func TestConfirmWhileCycling(t *testing.T) {
	s := New([]string{proj1, xyz}, []string{xyz}, []string{proj1})
	s = s.Apply(Event{Kind: Cycle}).Apply(Event{Kind: Confirm})

	if s.State() != Confirmed {
		t.Fatalf("State() = %v, want confirmed", s.State())
	}
	if sel, _ := s.Selected(); sel != proj1 {
		t.Errorf("Selected() = %q, want %q", sel, proj1)
	}
}

func TestCancel(t *testing.T) {
	for _, start := range []Session{
		New([]string{proj1}, nil, nil),
		typeString(New([]string{proj1}, nil, nil), "pro"),
		New([]string{proj1}, []string{proj1}, nil).Apply(Event{Kind: Cycle}),
	} {
		s := start.Apply(Event{Kind: Cancel})
		if s.State() != Cancelled {
			t.Errorf("from %v: State() = %v, want cancelled", start.State(), s.State())
		}
	}
}

func TestTerminalStatesIgnoreEvents(t *testing.T) {
	confirmed := typeString(New([]string{proj1}, nil, nil), "pro").Apply(Event{Kind: Confirm})
	cancelled := New([]string{proj1}, nil, nil).Apply(Event{Kind: Cancel})

	for _, s := range []Session{confirmed, cancelled} {
		next := s.Apply(CharEvent('z')).Apply(Event{Kind: Clear}).Apply(Event{Kind: Cancel})
		if next.State() != s.State() || next.Query() != s.Query() {
			t.Errorf("terminal %v changed to %v query %q", s.State(), next.State(), next.Query())
		}
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s := typeString(New([]string{proj1, xyz}, nil, nil), "pro")

	_ = s.Apply(CharEvent('z'))
	if s.Query() != "pro" || !reflect.DeepEqual(s.Matches(), []string{proj1}) {
		t.Errorf("receiver mutated: query=%q matches=%v", s.Query(), s.Matches())
	}
}

func TestApplyAll(t *testing.T) {
	s := New([]string{proj1, xyz}, nil, nil).ApplyAll(
		CharEvent('p'), CharEvent('r'), Event{Kind: Confirm}, CharEvent('z'),
	)
	if s.State() != Confirmed || s.Query() != "pr" {
		t.Errorf("ApplyAll: state=%v query=%q, want stop at confirm", s.State(), s.Query())
	}
}

func TestMatchesRecomputedFromScratch(t *testing.T) {
	s := typeString(New([]string{proj1, xyz, prod}, nil, nil), "pr")
	if len(s.Matches()) != 2 {
		t.Fatalf("Matches() = %v", s.Matches())
	}

	// Narrowing then widening returns to the full match set.
	s = s.Apply(CharEvent('j'))
	if !reflect.DeepEqual(s.Matches(), []string{proj1}) {
		t.Errorf("Matches() = %v", s.Matches())
	}
	s = s.Apply(Event{Kind: Erase})
	if !reflect.DeepEqual(s.Matches(), []string{proj1, prod}) {
		t.Errorf("Matches() = %v, want both again", s.Matches())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Editing:   "editing",
		Cycling:   "cycling",
		Confirmed: "confirmed",
		Cancelled: "cancelled",
		State(99): "unknown",
	}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(st), st.String(), want)
		}
	}
}

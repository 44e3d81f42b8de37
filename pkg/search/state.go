package search

import "fmt"

// State is the search term, how many matches it has and which one is current.
// Current is -1 when there is no active match, otherwise 0 <= Current < Count.
type State struct {
	Term    string
	Count   int
	Current int
}

// NewState returns an inactive search state.
func NewState() State {
	return State{Current: -1}
}

// SetTerm starts a new search with count matches. The first match becomes
// current when there is one.
func (s *State) SetTerm(term string, count int) {
	s.Term = term
	if term == "" {
		count = 0
	}
	s.Count = count
	s.Current = -1
	if count > 0 {
		s.Current = 0
	}
}

// SetCount updates the match count after the matched text changed, keeping
// the current pointer where it was when it is still in range.
func (s *State) SetCount(count int) {
	if s.Term == "" {
		count = 0
	}
	s.Count = count
	switch {
	case count == 0:
		s.Current = -1
	case s.Current < 0:
		s.Current = 0
	case s.Current >= count:
		s.Current = count - 1
	}
}

// Clear drops the term and all match state.
func (s *State) Clear() {
	*s = NewState()
}

// Next moves to the following match, wrapping after the last. It is a no-op
// with zero matches.
func (s *State) Next() bool {
	if s.Count == 0 {
		return false
	}
	s.Current = (s.Current + 1) % s.Count
	return true
}

// Previous moves to the preceding match, wrapping before the first.
func (s *State) Previous() bool {
	if s.Count == 0 {
		return false
	}
	s.Current = (s.Current - 1 + s.Count) % s.Count
	return true
}

// Info is the status text for the search bar: empty without a term,
// "No results" when nothing matched, otherwise "i of n".
func (s State) Info() string {
	switch {
	case s.Term == "":
		return ""
	case s.Count == 0:
		return "No results"
	default:
		return fmt.Sprintf("%d of %d", s.Current+1, s.Count)
	}
}

package automaton

import "fmt"

// BuildError reports a malformed Builder call sequence: an arc or start
// state referencing a state id the builder never saw declared.
//
// Grounded on the teacher's nfa.BuildError: a struct error carrying the
// offending state id rather than a bare string, so callers can inspect
// StateID programmatically.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("automaton: build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("automaton: build error: %s", e.Message)
}

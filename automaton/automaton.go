// Package automaton is the in-memory graph an FST is loaded into: states,
// per-state outgoing arcs, the accepting-state set, and the start state.
// An Automaton is immutable after Build and may be shared by reference
// across concurrent readers.
package automaton

import (
	"fmt"

	"github.com/eddieantonio/fst-lookup/symbol"
)

// StateID uniquely identifies a state. It is a dense, zero-based index
// into Automaton's flat states vector.
type StateID uint32

// InvalidState is a sentinel StateID that names no state.
const InvalidState StateID = 0xFFFFFFFF

// Arc is a single labeled edge of the automaton. Two arcs are equal iff
// all four fields match; arc ordering within a state is insertion order
// and is preserved because path-search ordering depends on it.
type Arc struct {
	Source StateID
	Upper  symbol.ID
	Lower  symbol.ID
	Dest   StateID
}

// state holds the (offset, count) slice of Automaton.arcs belonging to
// one state, mirroring the teacher's flat-states-plus-flat-arcs layout
// (nfa.NFA keeps one State per id with inline transition data; this
// automaton keeps the arcs in one shared slice instead, since a state
// here may have an unbounded number of outgoing arcs rather than at
// most two).
type state struct {
	arcOffset int
	arcCount  int
}

// Automaton is the compiled in-memory graph produced by the format
// parser. It is built once via Builder and is read-only afterward.
type Automaton struct {
	states    []state
	arcs      []Arc
	start     StateID
	accepting map[StateID]bool
	Sigma     *symbol.Table
}

// Start returns the start state id.
func (a *Automaton) Start() StateID {
	return a.start
}

// NumStates returns the number of states in the automaton.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// IsAccepting reports whether id is an accepting state.
func (a *Automaton) IsAccepting(id StateID) bool {
	return a.accepting[id]
}

// Arcs returns the outgoing arcs of state id, in insertion order. It
// panics if id is out of range: every id reaching this call has already
// been validated either by the parser (construction time) or by
// path-search's own bounds checks, so an out-of-range id here is a
// programming error.
func (a *Automaton) Arcs(id StateID) []Arc {
	if int(id) >= len(a.states) {
		panic(fmt.Sprintf("automaton: state %d out of range (%d states)", id, len(a.states)))
	}
	s := a.states[id]
	return a.arcs[s.arcOffset : s.arcOffset+s.arcCount]
}

// Invert swaps Upper and Lower in every arc, returning a new Automaton.
// The original is left untouched. This realizes the facade's "invert"
// option (spec.md §4.4): applied once at construction, not per-search.
func (a *Automaton) Invert() *Automaton {
	inverted := &Automaton{
		states:    a.states,
		arcs:      make([]Arc, len(a.arcs)),
		start:     a.start,
		accepting: a.accepting,
		Sigma:     a.Sigma,
	}
	for i, arc := range a.arcs {
		inverted.arcs[i] = Arc{
			Source: arc.Source,
			Upper:  arc.Lower,
			Lower:  arc.Upper,
			Dest:   arc.Dest,
		}
	}
	return inverted
}

// String implements fmt.Stringer.
func (a *Automaton) String() string {
	return fmt.Sprintf("Automaton{states: %d, arcs: %d, start: %d, accepting: %d}",
		len(a.states), len(a.arcs), a.start, len(a.accepting))
}

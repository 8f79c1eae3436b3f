package automaton

import (
	"github.com/eddieantonio/fst-lookup/symbol"
)

// Builder constructs an Automaton incrementally. It is used by the
// format parser, which discovers state ids out of order and in the
// implicit-state shorthand the Foma text format allows (spec.md §4.1),
// so Builder grows its states vector lazily rather than requiring states
// to be declared up front — mirroring the teacher's nfa.Builder, whose
// AddX methods append monotonically while Patch/PatchSplit let later
// records fill in earlier states' targets.
type Builder struct {
	// perState holds each state's outgoing arcs in insertion order until
	// Build flattens them into one contiguous slice.
	perState  [][]Arc
	accepting map[StateID]bool
	start     StateID
	sigma     *symbol.Table
}

// NewBuilder creates a Builder over the given (already-populated or
// still-growing) symbol table.
func NewBuilder(sigma *symbol.Table) *Builder {
	return &Builder{
		perState:  make([][]Arc, 0, 64),
		accepting: make(map[StateID]bool),
		start:     0,
		sigma:     sigma,
	}
}

// EnsureState grows the builder's state vector, if necessary, so that id
// is valid, and returns id unchanged. The format parser calls this
// whenever it encounters a state id — as a source, a destination, or the
// implied state — before that id's own record (if any) has been seen.
func (b *Builder) EnsureState(id StateID) StateID {
	for int(id) >= len(b.perState) {
		b.perState = append(b.perState, nil)
	}
	return id
}

// NumStates returns the number of states declared so far.
func (b *Builder) NumStates() int {
	return len(b.perState)
}

// AddArc appends an arc from source to dest, growing the states vector
// to cover both endpoints if needed. Arcs on the same source accumulate
// in call order, which path-search later relies on for its arc-insertion
// traversal order (spec.md §4.4).
func (b *Builder) AddArc(source StateID, upper, lower symbol.ID, dest StateID) {
	b.EnsureState(source)
	b.EnsureState(dest)
	b.perState[source] = append(b.perState[source], Arc{
		Source: source,
		Upper:  upper,
		Lower:  lower,
		Dest:   dest,
	})
}

// MarkAccepting marks id as an accepting state, growing the states
// vector if needed.
func (b *Builder) MarkAccepting(id StateID) {
	b.EnsureState(id)
	b.accepting[id] = true
}

// SetStart sets the start state. Foma networks always start at state 0;
// this exists mainly so tests can build automata with a different start.
func (b *Builder) SetStart(id StateID) {
	b.EnsureState(id)
	b.start = id
}

// Validate checks that every arc's destination is a declared state (arcs
// are always added through AddArc, which grows the vector to cover the
// arc's own endpoints, so only hand-built inconsistencies — e.g. a
// MarkAccepting-only builder missing an otherwise-referenced state —
// would trip this).
func (b *Builder) Validate() error {
	if int(b.start) >= len(b.perState) {
		return &BuildError{Message: "start state out of range", StateID: b.start}
	}
	for _, arcs := range b.perState {
		for _, arc := range arcs {
			if int(arc.Dest) >= len(b.perState) {
				return &BuildError{Message: "arc targets out-of-range state", StateID: arc.Source}
			}
		}
	}
	return nil
}

// Build finalizes the automaton, flattening the per-state adjacency
// lists into one contiguous arcs slice.
func (b *Builder) Build() (*Automaton, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	states := make([]state, len(b.perState))
	var arcs []Arc
	for id, stateArcs := range b.perState {
		states[id] = state{arcOffset: len(arcs), arcCount: len(stateArcs)}
		arcs = append(arcs, stateArcs...)
	}

	return &Automaton{
		states:    states,
		arcs:      arcs,
		start:     b.start,
		accepting: b.accepting,
		Sigma:     b.sigma,
	}, nil
}

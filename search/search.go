// Package search implements the bidirectional, non-deterministic
// depth-first path-search engine over a compiled automaton (spec.md
// §4.4): given a token stream and a direction, it produces a lazy,
// resumable sequence of accepted output-symbol sequences, threading a
// flag-diacritic feature environment and guarding against cycles with a
// per-path (state, cursor, environment) visited set.
package search

import (
	"github.com/eddieantonio/fst-lookup/automaton"
	"github.com/eddieantonio/fst-lookup/symbol"
)

// Side selects which arc label is matched against input and which is
// produced as output (spec.md §4.4).
type Side int

const (
	// Down matches input against each arc's Lower label and appends its
	// Upper label to the output — the Analyze direction.
	Down Side = iota
	// Up matches input against each arc's Upper label and appends its
	// Lower label to the output — the Generate direction.
	Up
)

// String implements fmt.Stringer.
func (s Side) String() string {
	if s == Up {
		return "Up"
	}
	return "Down"
}

// Option configures a search run. There are no options yet (spec.md §4.4
// names none beyond direction and the automaton's own invert setting,
// which is applied once at load time rather than per search); the type
// exists so Run's signature does not need to change if one is added,
// mirroring the teacher's BuildOption pattern used even where a single
// package currently has zero or one real knob (nfa/builder.go's
// BuildOption, meta.Config).
type Option func(*settings)

type settings struct{}

func applyOptions(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Run starts a search over auto in the given direction against tokens,
// returning a lazy Sequence. Run itself does no traversal; the first
// step happens on the first call to Sequence.Next.
func Run(auto *automaton.Automaton, tokens []symbol.Token, side Side, opts ...Option) *Sequence {
	_ = applyOptions(opts)
	return newSequence(auto, tokens, side)
}

package search

import (
	"fmt"

	"github.com/eddieantonio/fst-lookup/automaton"
	"github.com/eddieantonio/fst-lookup/flagdiacritic"
	"github.com/eddieantonio/fst-lookup/symbol"
)

// outputUnit is one entry appended to the shared output stack while
// descending a path. A unit is either the resolved text of a sigma
// symbol (sigma=true, id valid) or a verbatim passthrough rune carried
// over from the input token stream (sigma=false, text valid) — the two
// cases spec.md §4.4 step 2 distinguishes ("out_sym' is T[i] when
// out_sym is Identity ... else out_sym").
type outputUnit struct {
	sigma bool
	id    symbol.ID
	text  string
}

// resolve returns the unit's display text and whether it is a flag
// diacritic (which must be stripped from results per spec.md §4.3).
func (u outputUnit) resolve(table *symbol.Table) (text string, isFlag bool) {
	if !u.sigma {
		return u.text, false
	}
	sym := table.Symbol(u.id)
	switch sym.Kind {
	case symbol.KindFlag:
		return "", true
	case symbol.KindEpsilon:
		return "", false
	default:
		return sym.Text, false
	}
}

// frame is one stack entry of the explicit, non-recursive depth-first
// traversal: the state search currently occupies, how far into the
// input it has consumed, the feature environment along this branch, the
// output stack's length at entry (so popping this frame can discard
// everything it and its descendants contributed), and a cursor into
// arcs(state) recording which outgoing arc to try next. arcIndex == -1
// means this frame has not yet been checked for an accepting match.
//
// This is a manual recursion-to-iteration transform of the algorithm in
// spec.md §4.4, grounded on the teacher's dfa/lazy package: both
// construct graph state on demand and hold search progress across calls
// rather than completing a traversal in one shot — here so that Sequence
// can pause after every result and resume exactly where it left off,
// without depending on goroutines (the teacher favors explicit state
// machines over goroutine pipelines anywhere latency matters).
type frame struct {
	state    automaton.StateID
	cursor   int
	env      flagdiacritic.Environment
	outLen   int
	arcIndex int
	key      string
}

// Sequence is a lazy, resumable, finite sequence of accepted paths
// through an automaton. It is not safe for concurrent use: advancing it
// from multiple goroutines is undefined, per spec.md §5.
type Sequence struct {
	auto    *automaton.Automaton
	tokens  []symbol.Token
	side    Side
	stack   []frame
	output  []outputUnit
	visited map[string]bool
	started bool
	done    bool
}

func newSequence(auto *automaton.Automaton, tokens []symbol.Token, side Side) *Sequence {
	return &Sequence{
		auto:    auto,
		tokens:  tokens,
		side:    side,
		visited: make(map[string]bool),
	}
}

// Next advances the search and returns the next accepted result as an
// ordered sequence of output symbol texts with flag diacritics already
// stripped, or (nil, false) once the search is exhausted.
func (s *Sequence) Next() ([]string, bool) {
	if s.done {
		return nil, false
	}
	if !s.started {
		s.started = true
		start := s.auto.Start()
		key := fingerprintKey(start, 0, nil)
		s.visited[key] = true
		s.stack = append(s.stack, frame{state: start, cursor: 0, outLen: 0, arcIndex: -1, key: key})
	}

	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]

		if top.arcIndex == -1 {
			top.arcIndex = 0
			if top.cursor == len(s.tokens) && s.auto.IsAccepting(top.state) {
				return s.materialize(), true
			}
			continue
		}

		arcs := s.auto.Arcs(top.state)
		pushed := false
		for top.arcIndex < len(arcs) {
			arc := arcs[top.arcIndex]
			top.arcIndex++

			unit, nextEnv, nextCursor, ok := s.tryArc(arc, top.cursor, top.env)
			if !ok {
				continue
			}

			key := fingerprintKey(arc.Dest, nextCursor, nextEnv)
			if s.visited[key] {
				continue
			}

			baseline := len(s.output)
			s.output = append(s.output, unit)
			s.visited[key] = true
			s.stack = append(s.stack, frame{
				state:    arc.Dest,
				cursor:   nextCursor,
				env:      nextEnv,
				outLen:   baseline,
				arcIndex: -1,
				key:      key,
			})
			pushed = true
			break
		}
		if pushed {
			continue
		}

		delete(s.visited, top.key)
		s.output = s.output[:top.outLen]
		s.stack = s.stack[:len(s.stack)-1]
	}

	s.done = true
	return nil, false
}

// tryArc evaluates one outgoing arc against the current (cursor, env),
// implementing spec.md §4.4 step 2. ok is false when the arc's
// constraint fails or it cannot consume the current token, in which case
// the caller tries the next arc without pushing a frame.
func (s *Sequence) tryArc(arc automaton.Arc, cursor int, env flagdiacritic.Environment) (unit outputUnit, nextEnv flagdiacritic.Environment, nextCursor int, ok bool) {
	sigma := s.auto.Sigma
	inID, outID := arc.Lower, arc.Upper
	if s.side == Up {
		inID, outID = arc.Upper, arc.Lower
	}
	inSym := sigma.Symbol(inID)

	if inSym.Kind == symbol.KindFlag {
		succeeded, newEnv := flagdiacritic.Eval(inSym, env)
		if !succeeded {
			return outputUnit{}, nil, 0, false
		}
		return outputUnit{sigma: true, id: inID}, newEnv, cursor, true
	}

	if inSym.Kind == symbol.KindEpsilon {
		return s.outputFor(outID, cursor), env, cursor, true
	}

	if cursor >= len(s.tokens) {
		return outputUnit{}, nil, 0, false
	}
	tok := s.tokens[cursor]

	var matched bool
	switch inSym.Kind {
	case symbol.KindIdentity, symbol.KindUnknown:
		matched = tok.ID == symbol.Unmatched
	default:
		matched = tok.ID == inID
	}
	if !matched {
		return outputUnit{}, nil, 0, false
	}

	return s.outputForToken(outID, tok), env, cursor + 1, true
}

// outputFor resolves an output unit for an epsilon-input arc: out_sym is
// appended verbatim, with no passthrough substitution (there is no
// consumed token to substitute from on an epsilon transition).
func (s *Sequence) outputFor(outID symbol.ID, cursor int) outputUnit {
	return outputUnit{sigma: true, id: outID}
}

// outputForToken resolves an output unit for a consuming arc, applying
// Identity's wildcard passthrough rule (spec.md §4.4 step 2).
func (s *Sequence) outputForToken(outID symbol.ID, tok symbol.Token) outputUnit {
	if s.auto.Sigma.Symbol(outID).Kind == symbol.KindIdentity {
		return outputUnit{sigma: false, text: tok.Text}
	}
	return outputUnit{sigma: true, id: outID}
}

func (s *Sequence) materialize() []string {
	result := make([]string, 0, len(s.output))
	for _, u := range s.output {
		text, isFlag := u.resolve(s.auto.Sigma)
		if isFlag || text == "" {
			continue
		}
		result = append(result, text)
	}
	return result
}

func fingerprintKey(state automaton.StateID, cursor int, env flagdiacritic.Environment) string {
	return fmt.Sprintf("%d:%d:%s", state, cursor, flagdiacritic.Fingerprint(env))
}

// Package fstlookup loads a Foma-format finite-state transducer and
// performs bidirectional morphological lookup over it.
//
// Basic usage:
//
//	fst, err := fstlookup.LoadFile("eng.fomabin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, analysis := range fst.Analyze("eats") {
//	    fmt.Println(analysis) // "eat +V +3P +Sg"
//	}
//
//	for _, surface := range fst.Generate("eat+V+Past") {
//	    fmt.Println(surface) // "ate"
//	}
//
// An FST pairs a surface word form with a lemma plus a linguistic tag
// sequence: Analyze maps surface forms to analyses, Generate maps
// analyses back to surface forms. Both directions may yield zero, one,
// or several results, since natural-language morphology is frequently
// ambiguous (syncretism) or productive (multiple valid surface forms).
//
// Limitations:
//   - No FST compilation from source grammars; load a network Foma has
//     already compiled.
//   - No determinization, minimization, or other automaton transforms.
//   - No persistent on-disk index; Load parses the whole network into
//     memory.
package fstlookup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eddieantonio/fst-lookup/automaton"
	"github.com/eddieantonio/fst-lookup/fomaformat"
	"github.com/eddieantonio/fst-lookup/search"
	"github.com/eddieantonio/fst-lookup/symbol"
)

// Analysis is one accepted analysis of a surface form: an ordered
// sequence of symbol texts (a lemma followed by its tags, e.g.
// ["eat", "+V", "+3P", "+Sg"]), with flag diacritics already stripped.
type Analysis []string

// String joins the analysis's symbol texts with a single space, e.g.
// "eat +V +3P +Sg".
func (a Analysis) String() string {
	return strings.Join([]string(a), " ")
}

// FST is a loaded, queryable transducer. An FST is immutable after Load
// and safe to share by reference across goroutines; each call to
// Analyze/Generate produces its own independent search, so concurrent
// queries against one FST need no synchronization (spec.md §5). A
// query's intermediate lazy sequence (search.Sequence) is not itself
// shared here — Analyze/Generate always drain it fully before
// returning — so callers never observe that restriction directly.
type FST struct {
	auto      *automaton.Automaton
	tokenizer *symbol.Tokenizer
	props     *fomaformat.Properties
}

// Option configures Load/LoadFile/MustLoad. There is exactly one today
// (WithInvert), following the teacher's preference for functional
// options over a bare Config struct when a package has a small, fixed
// set of construction-time knobs (regex.go's CompileWithConfig takes a
// meta.Config because meta.Config has many fields with their own
// defaults and validation; fst-lookup's single boolean does not
// warrant that machinery).
type Option func(*options)

type options struct {
	invert bool
}

// WithInvert swaps the roles of Upper and Lower in every arc once, at
// construction time, for FSTs whose label convention is reversed from
// the default (spec.md §4.4, "Side labels and inversion").
func WithInvert(invert bool) Option {
	return func(o *options) { o.invert = invert }
}

// ErrInvalidOption is returned when an Option leaves an FST in an
// inconsistent state. No current Option can fail, so the error exists
// for forward compatibility with future options that might (the
// teacher's CompileWithConfig returns an error for the same reason,
// even though DefaultConfig always validates).
var ErrInvalidOption = fmt.Errorf("fstlookup: invalid option")

// Load parses a gzip-compressed Foma network from r and returns a
// queryable FST.
func Load(r io.Reader, opts ...Option) (*FST, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	table, auto, props, err := fomaformat.Parse(r)
	if err != nil {
		return nil, err
	}
	if o.invert {
		auto = auto.Invert()
	}

	return &FST{
		auto:      auto,
		tokenizer: symbol.NewTokenizer(table),
		props:     props,
	}, nil
}

// LoadFile opens path and parses it as a gzip-compressed Foma network.
func LoadFile(path string, opts ...Option) (*FST, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, opts...)
}

// MustLoad is like Load but panics if parsing fails. It is intended for
// package-level FST variables initialized from an embedded network
// known to be well-formed.
func MustLoad(r io.Reader, opts ...Option) *FST {
	fst, err := Load(r, opts...)
	if err != nil {
		panic("fstlookup: Load: " + err.Error())
	}
	return fst
}

// Analyze maps a surface word form to every analysis accepted by the
// automaton's lower side, in the order the underlying search produces
// them (stable across calls for a fixed FST). An input character absent
// from the FST's alphabet fails that branch silently rather than
// erroring — morphological lookup treats unanalyzable input as "no
// analysis," not as a caller mistake.
func (f *FST) Analyze(surface string) []Analysis {
	tokens := f.tokenizer.Tokenize(surface)
	seq := search.Run(f.auto, tokens, search.Down)

	var results []Analysis
	for {
		r, ok := seq.Next()
		if !ok {
			break
		}
		results = append(results, Analysis(r))
	}
	return results
}

// Generate maps an analysis (a lemma followed by its tags, e.g.
// "eat+V+Past") to every surface form accepted by the automaton's upper
// side.
func (f *FST) Generate(analysis string) []string {
	tokens := f.tokenizer.Tokenize(analysis)
	seq := search.Run(f.auto, tokens, search.Up)

	var results []string
	for {
		r, ok := seq.Next()
		if !ok {
			break
		}
		results = append(results, strings.Join(r, ""))
	}
	return results
}

package symbol

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// Unmatched is the sentinel id yielded by Tokenizer when the input at the
// current cursor matches no symbol in the table. Searching may still
// succeed through this position via an Identity or Unknown arc.
const Unmatched ID = 0xFFFFFFFF

// Token is one tokenized position of an input string: either a symbol
// already interned in the table (ID holds its id) or a verbatim rune not
// present in sigma (ID is Unmatched, Text holds the rune's own text so a
// search can still pass it through an Identity arc).
type Token struct {
	ID   ID
	Text string
}

// Tokenizer converts a surface or analysis string into a sequence of
// symbol ids by greedy longest-match scanning over the table's
// Grapheme/MultiChar vocabulary, falling back to single characters.
// Tokenization is deterministic and independent of search direction.
type Tokenizer struct {
	table *Table

	// prefilter is an Aho-Corasick automaton over every interned
	// Grapheme/MultiChar text, built once from the table. A matching
	// engine that has already indexed the whole vocabulary into a single
	// automaton can tell in one O(1)-per-byte pass whether *anything* in
	// the vocabulary occurs anywhere in the rest of the input; when
	// nothing does, no symbol can start at the cursor either, so
	// Tokenizer uses that as a cheap early-out before the precise
	// longest-match scan
	// below; it never trusts the automaton's notion of "the" match,
	// since this module does not depend on a particular configured
	// match-kind (leftmost-first vs leftmost-longest) for correctness.
	prefilter *ahocorasick.Automaton
}

// NewTokenizer builds a Tokenizer over table's current vocabulary.
// Table must not gain further Grapheme/MultiChar symbols afterward;
// callers build the Tokenizer only after the format parser has finished
// populating the table.
func NewTokenizer(table *Table) *Tokenizer {
	tok := &Tokenizer{table: table}

	texts := table.Texts()
	if len(texts) == 0 {
		return tok
	}

	builder := ahocorasick.NewBuilder()
	for _, text := range texts {
		builder.AddPattern([]byte(text))
	}
	if auto, err := builder.Build(); err == nil {
		tok.prefilter = auto
	}
	return tok
}

// Next consumes the longest matching symbol at the start of s and
// returns its id, the number of bytes consumed, and true. If no symbol
// in the vocabulary matches at the start of s, it returns (Unmatched,
// width-of-first-rune, false); callers advance by the returned width
// regardless of the ok flag so that scanning always makes progress.
func (t *Tokenizer) Next(s string) (id ID, width int, ok bool) {
	if s == "" {
		return Unmatched, 0, false
	}

	if t.prefilter != nil && !t.prefilter.IsMatch([]byte(s)) {
		return t.fallbackRune(s)
	}

	maxRunes := t.table.MaxTokenRunes()
	if maxRunes == 0 {
		return t.fallbackRune(s)
	}

	// Try the longest candidate first, shrinking by one rune each time,
	// down to a single rune. This is the trie-free "hash map of all
	// prefixes" scan spec.md's design notes call out as acceptable for
	// the sigma sizes Foma networks exhibit in practice.
	ends := runeBoundaries(s, maxRunes)
	for i := len(ends) - 1; i >= 0; i-- {
		candidate := s[:ends[i]]
		if symID, found := t.table.Lookup(candidate); found {
			return symID, ends[i], true
		}
	}

	return t.fallbackRune(s)
}

// Tokenize scans all of s into a sequence of Tokens by repeated calls to
// Next, the form the search engine and the facade consume (spec.md §4.4's
// input token stream T).
func (t *Tokenizer) Tokenize(s string) []Token {
	tokens := make([]Token, 0, len(s))
	for s != "" {
		id, width, _ := t.Next(s)
		tokens = append(tokens, Token{ID: id, Text: s[:width]})
		s = s[width:]
	}
	return tokens
}

// fallbackRune reports an unmatched token spanning exactly one rune (one
// byte on the ASCII fast path, avoiding a UTF-8 decode).
func (t *Tokenizer) fallbackRune(s string) (ID, int, bool) {
	if isASCII(s[:min(len(s), 1)]) {
		return Unmatched, 1, false
	}
	_, width := utf8.DecodeRuneInString(s)
	return Unmatched, width, false
}

// runeBoundaries returns the byte offsets of the ends of the first 1..n
// runes of s (stopping early if s is shorter than n runes).
func runeBoundaries(s string, n int) []int {
	bounds := make([]int, 0, n)
	if isASCII(s[:min(len(s), n)]) {
		limit := min(len(s), n)
		for i := 1; i <= limit; i++ {
			bounds = append(bounds, i)
		}
		return bounds
	}

	offset := 0
	for i := 0; i < n && offset < len(s); i++ {
		_, width := utf8.DecodeRuneInString(s[offset:])
		offset += width
		bounds = append(bounds, offset)
	}
	return bounds
}

package symbol

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Table interns the alphabet (sigma) of an automaton: a dense id-to-symbol
// mapping plus an auxiliary text index used by Tokenizer.
//
// A Table is built once by the format parser and is immutable thereafter;
// it may be shared by reference across automata that use it.
type Table struct {
	// bySymbol is indexed directly by ID, mirroring the teacher's flat
	// states-vector layout (nfa.NFA.states) rather than a map, since ids
	// are dense and assigned in sigma order.
	bySymbol []Symbol

	// multiByText maps the verbatim text of every Grapheme/MultiChar
	// symbol to its id, used by Tokenizer for longest-match scanning.
	multiByText map[string]ID

	// maxTokenRunes is the rune length of the longest Grapheme/MultiChar
	// text, bounding how far Tokenizer must look ahead at each cursor.
	maxTokenRunes int
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		bySymbol:    make([]Symbol, 0, 64),
		multiByText: make(map[string]ID),
	}
}

// Add interns sym at the next sequential id and returns that id. Callers
// (the format parser) are responsible for calling Add in ascending sigma
// order so that ids stay dense; Add does not itself enforce ordering
// beyond always assigning len(bySymbol).
func (t *Table) Add(sym Symbol) ID {
	id := nextID(len(t.bySymbol))
	t.bySymbol = append(t.bySymbol, sym)
	if sym.Kind == KindGrapheme || sym.Kind == KindMultiChar {
		t.multiByText[sym.Text] = id
		if n := utf8.RuneCountInString(sym.Text); n > t.maxTokenRunes {
			t.maxTokenRunes = n
		}
	}
	return id
}

// MaxTokenRunes returns the rune length of the longest Grapheme/MultiChar
// symbol text interned so far.
func (t *Table) MaxTokenRunes() int {
	return t.maxTokenRunes
}

// Len returns the number of interned symbols, i.e. |sigma|.
func (t *Table) Len() int {
	return len(t.bySymbol)
}

// Symbol returns the symbol for id. It panics if id is out of range,
// since the automaton is validated at load time and an out-of-range id
// occurring during search is a programming error, not a user error.
func (t *Table) Symbol(id ID) Symbol {
	if int(id) >= len(t.bySymbol) {
		panic(fmt.Sprintf("symbol: id %d out of range (sigma size %d)", id, len(t.bySymbol)))
	}
	return t.bySymbol[id]
}

// Lookup returns the id of the Grapheme or MultiChar symbol with the
// given verbatim text, and whether it was found.
func (t *Table) Lookup(text string) (ID, bool) {
	id, ok := t.multiByText[text]
	return id, ok
}

// Text returns the verbatim text for the symbol at id.
func (t *Table) Text(id ID) string {
	return t.Symbol(id).Text
}

// Texts returns every Grapheme/MultiChar symbol text in the table, in no
// particular order. Used to seed Tokenizer's matcher.
func (t *Table) Texts() []string {
	texts := make([]string, 0, len(t.multiByText))
	for text := range t.multiByText {
		texts = append(texts, text)
	}
	return texts
}

// nextID narrows a symbol count to the ID it identifies. A sigma this
// large would already have exhausted memory building bySymbol, so the
// bounds check exists only to fail loudly rather than silently wrap if
// that invariant is ever violated.
func nextID(n int) ID {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic(fmt.Sprintf("symbol: sigma size %d exceeds a uint32 ID", n))
	}
	return ID(n)
}

package fomaformat

import (
	"strconv"
	"strings"

	"github.com/eddieantonio/fst-lookup/automaton"
	"github.com/eddieantonio/fst-lookup/symbol"
)

// stateSectionParser reads "##states##" body lines into a Builder. It
// tracks the "implied state": the state of the last emitted arc, which
// 2- and 3-int records reuse instead of naming a source explicitly
// (spec.md §4.1) — the same deferred-reference idea
// `automaton.Builder.EnsureState` exists to support, just resolved here
// at parse time instead of at graph-build time.
type stateSectionParser struct {
	builder      *automaton.Builder
	sigma        *symbol.Table
	impliedState automaton.StateID
	haveImplicit bool
}

func newStateSectionParser(builder *automaton.Builder, sigma *symbol.Table) *stateSectionParser {
	return &stateSectionParser{builder: builder, sigma: sigma}
}

// parseLine consumes one "##states##" body line, one of the four shapes
// spec.md §4.1 defines:
//
//	2 ints  i d      arc from the implied state, symbol i on both sides, to d
//	3 ints  i o d    arc from the implied state, upper i / lower o, to d
//	4 ints  s i d f  arc from s, symbol i on both sides, to d;
//	                 f > 0 means no arc — instead marks s accepting (i, d are -1)
//	5 ints  s i o d f  arc from s, upper i / lower o, to d; f > 0 additionally
//	                   marks s accepting
//
// A record whose fields are all "-1" is the section's trailing sentinel
// and is skipped. Whenever d < 0, no arc is created.
func (p *stateSectionParser) parseLine(line string, lineNo int) error {
	fields := strings.Fields(line)
	if isAllNegativeOneSentinel(fields) {
		return nil
	}

	ints := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return newParseError(lineNo, ErrMalformedInt, "states record field %q is not an integer", f)
		}
		ints[i] = n
	}

	switch len(ints) {
	case 2:
		if !p.haveImplicit {
			return newParseError(lineNo, ErrDanglingState, "2-field states record before any explicit source state")
		}
		return p.addArc(lineNo, p.impliedState, ints[0], ints[0], ints[1])

	case 3:
		if !p.haveImplicit {
			return newParseError(lineNo, ErrDanglingState, "3-field states record before any explicit source state")
		}
		return p.addArc(lineNo, p.impliedState, ints[0], ints[1], ints[2])

	case 4:
		src := automaton.StateID(ints[0])
		i, d, f := ints[1], ints[2], ints[3]
		p.impliedState = src
		p.haveImplicit = true
		if f > 0 {
			p.builder.MarkAccepting(src)
			return nil
		}
		return p.addArc(lineNo, src, i, i, d)

	case 5:
		src := automaton.StateID(ints[0])
		i, o, d, f := ints[1], ints[2], ints[3], ints[4]
		p.impliedState = src
		p.haveImplicit = true
		if err := p.addArc(lineNo, src, i, o, d); err != nil {
			return err
		}
		if f > 0 {
			p.builder.MarkAccepting(src)
		}
		return nil

	default:
		return newParseError(lineNo, ErrMalformedInt, "states record has %d fields, want 2, 3, 4, or 5", len(ints))
	}
}

// addArc validates the symbol ids and adds the arc, unless dst is
// negative, in which case the record describes no arc at all (spec.md
// §4.1: "whenever d < 0, no arc is created").
func (p *stateSectionParser) addArc(lineNo int, src automaton.StateID, in, out, dst int) error {
	if dst < 0 {
		return nil
	}
	if err := p.checkSymbol(in, lineNo); err != nil {
		return err
	}
	if err := p.checkSymbol(out, lineNo); err != nil {
		return err
	}
	p.builder.AddArc(src, symbol.ID(in), symbol.ID(out), automaton.StateID(dst))
	return nil
}

func (p *stateSectionParser) checkSymbol(id int, lineNo int) error {
	if id < 0 || id >= p.sigma.Len() {
		return newParseError(lineNo, ErrSymbolOutOfRange, "symbol id %d is outside sigma (size %d)", id, p.sigma.Len())
	}
	return nil
}

func isAllNegativeOneSentinel(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if f != "-1" {
			return false
		}
	}
	return true
}

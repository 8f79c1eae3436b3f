package fomaformat

import (
	"strconv"
	"strings"

	"github.com/eddieantonio/fst-lookup/symbol"
)

// Foma's reserved textual names for the three wildcard symbols. These
// always occupy ids 0, 1, 2 in a well-formed sigma section, but classify
// keys off the text rather than the position, since the text is what
// unambiguously identifies them (spec.md §4.1).
const (
	epsilonText  = "@_EPSILON_SYMBOL_@"
	unknownText  = "@_UNKNOWN_SYMBOL_@"
	identityText = "@_IDENTITY_SYMBOL_@"
)

// parseSigmaLine splits a "##sigma##" body line into its declared id and
// verbatim symbol text. The format is "<id> <text>", a single space
// separating a decimal id from the remainder of the line; the remainder
// is taken verbatim (including any embedded spaces) since symbol text is
// never escaped.
func parseSigmaLine(line string) (id int, text string, err error) {
	sep := strings.IndexByte(line, ' ')
	if sep < 0 {
		return 0, "", ErrMalformedInt
	}
	id, convErr := strconv.Atoi(line[:sep])
	if convErr != nil {
		return 0, "", ErrMalformedInt
	}
	return id, line[sep+1:], nil
}

// classify turns verbatim sigma text into a symbol.Symbol, recognizing
// the three reserved wildcard names, the flag-diacritic shape
// "@OP.FEATURE@" / "@OP.FEATURE.VALUE@", and otherwise falling back to
// Grapheme (a single code point) or MultiChar (anything longer), per
// spec.md §4.1's sigma classification rules.
func classify(text string) (symbol.Symbol, error) {
	switch text {
	case epsilonText:
		return symbol.Symbol{Kind: symbol.KindEpsilon, Text: text}, nil
	case unknownText:
		return symbol.Symbol{Kind: symbol.KindUnknown, Text: text}, nil
	case identityText:
		return symbol.Symbol{Kind: symbol.KindIdentity, Text: text}, nil
	}

	if sym, matched, err := tryParseFlag(text); matched {
		if err != nil {
			return symbol.Symbol{}, err
		}
		return sym, nil
	}

	if runeCount(text) == 1 {
		return symbol.Symbol{Kind: symbol.KindGrapheme, Text: text}, nil
	}
	return symbol.Symbol{Kind: symbol.KindMultiChar, Text: text}, nil
}

// tryParseFlag recognizes the flag-diacritic text shape
// "@<op-letter>.<feature>@" or "@<op-letter>.<feature>.<value>@",
// equivalent to the pattern @[PRDCUN]\.[^.@]+(\.[^@]+)?@ from spec.md §9.
// matched is true whenever the text has that shape at all, even if the
// operator letter is not one of the six recognized ones — in which case
// err is ErrInvalidFlag, letting the caller distinguish "not a flag" from
// "a malformed flag" (spec.md §9's resolved open question: an
// unrecognized flag operator is a ParseError, not a silently-ignored
// pass-through symbol).
func tryParseFlag(text string) (sym symbol.Symbol, matched bool, err error) {
	if len(text) < 4 || text[0] != '@' || text[len(text)-1] != '@' {
		return symbol.Symbol{}, false, nil
	}
	inner := text[1 : len(text)-1]
	if len(inner) < 3 || inner[1] != '.' {
		return symbol.Symbol{}, false, nil
	}

	opByte := inner[0]
	rest := inner[2:]
	if rest == "" {
		return symbol.Symbol{}, false, nil
	}

	feature, value := rest, ""
	if idx := strings.IndexByte(rest, '.'); idx >= 0 {
		feature, value = rest[:idx], rest[idx+1:]
	}
	if feature == "" {
		return symbol.Symbol{}, false, nil
	}

	op := symbol.FlagOp(opByte)
	switch op {
	case symbol.FlagP, symbol.FlagN, symbol.FlagR, symbol.FlagD, symbol.FlagC, symbol.FlagU:
		return symbol.Symbol{Kind: symbol.KindFlag, Text: text, Op: op, Feature: feature, Value: value}, true, nil
	}

	return symbol.Symbol{}, true, ErrInvalidFlag
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

package fomaformat

import (
	"bytes"
	"compress/gzip"
	"errors"
	"strings"
	"testing"

	"github.com/eddieantonio/fst-lookup/symbol"
)

func gzipText(t *testing.T, text string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		t.Fatalf("gzip.Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip.Close: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

const eatNet = `##foma-net##
eat 2
##sigma##
0 @_EPSILON_SYMBOL_@
1 @_UNKNOWN_SYMBOL_@
2 @_IDENTITY_SYMBOL_@
3 a
4 b
##states##
0 3 4 1 0
1 -1 -1 1
-1 -1 -1 -1 -1
##end##
`

func TestParseBasicNetwork(t *testing.T) {
	table, auto, props, err := Parse(gzipText(t, eatNet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if props.Name != "eat" {
		t.Errorf("props.Name = %q, want %q", props.Name, "eat")
	}
	if table.Len() != 5 {
		t.Fatalf("table.Len() = %d, want 5", table.Len())
	}
	if auto.NumStates() != 2 {
		t.Fatalf("auto.NumStates() = %d, want 2", auto.NumStates())
	}
	if auto.Start() != 0 {
		t.Errorf("auto.Start() = %d, want 0", auto.Start())
	}
	if !auto.IsAccepting(1) {
		t.Error("state 1 should be accepting")
	}
	arcs := auto.Arcs(0)
	if len(arcs) != 1 {
		t.Fatalf("Arcs(0) = %+v, want one arc", arcs)
	}
	if table.Text(arcs[0].Upper) != "a" || table.Text(arcs[0].Lower) != "b" {
		t.Errorf("arc = %+v, want a:b", arcs[0])
	}
}

func TestParseRejectsNonGzipInput(t *testing.T) {
	_, _, _, err := Parse(strings.NewReader("not gzip"))
	if !errors.Is(err, ErrGzip) {
		t.Fatalf("err = %v, want ErrGzip", err)
	}
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	truncated := strings.Replace(eatNet, "##end##\n", "", 1)
	_, _, _, err := Parse(gzipText(t, truncated))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestParseRejectsSigmaOutOfSequence(t *testing.T) {
	bad := strings.Replace(eatNet, "4 b\n", "9 b\n", 1)
	_, _, _, err := Parse(gzipText(t, bad))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestParseRejectsSymbolOutOfRangeInStates(t *testing.T) {
	bad := strings.Replace(eatNet, "0 3 4 1 0\n", "0 3 99 1 0\n", 1)
	_, _, _, err := Parse(gzipText(t, bad))
	if !errors.Is(err, ErrSymbolOutOfRange) {
		t.Fatalf("err = %v, want ErrSymbolOutOfRange", err)
	}
}

func TestParseImplicitStateShorthand(t *testing.T) {
	text := `##foma-net##
multi 2
##sigma##
0 @_EPSILON_SYMBOL_@
1 @_UNKNOWN_SYMBOL_@
2 @_IDENTITY_SYMBOL_@
3 a
4 b
##states##
0 3 4 1 0
4 2
-1 -1 -1 -1 -1
##end##
`
	_, auto, _, err := Parse(gzipText(t, text))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	arcs := auto.Arcs(0)
	if len(arcs) != 2 {
		t.Fatalf("Arcs(0) = %+v, want two arcs (second via 2-field shorthand)", arcs)
	}
	if arcs[1].Dest != 2 {
		t.Errorf("second arc dest = %d, want 2", arcs[1].Dest)
	}
}

func TestParseDanglingImplicitStateIsAnError(t *testing.T) {
	text := `##foma-net##
bad 2
##sigma##
0 @_EPSILON_SYMBOL_@
1 @_UNKNOWN_SYMBOL_@
2 @_IDENTITY_SYMBOL_@
3 a
##states##
3 1
##end##
`
	_, _, _, err := Parse(gzipText(t, text))
	if !errors.Is(err, ErrDanglingState) {
		t.Fatalf("err = %v, want ErrDanglingState", err)
	}
}

func TestParseThreeFieldIdentityShorthand(t *testing.T) {
	text := `##foma-net##
ident 2
##sigma##
0 @_EPSILON_SYMBOL_@
1 @_UNKNOWN_SYMBOL_@
2 @_IDENTITY_SYMBOL_@
3 a
##states##
0 3 3 1 0
3 3 2
-1 -1 -1 -1 -1
##end##
`
	table, auto, _, err := Parse(gzipText(t, text))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	arcs := auto.Arcs(0)
	if len(arcs) != 2 {
		t.Fatalf("Arcs(0) = %+v, want two arcs (second via 3-field shorthand)", arcs)
	}
	shorthand := arcs[1]
	if shorthand.Upper != shorthand.Lower || shorthand.Dest != 2 {
		t.Fatalf("shorthand arc = %+v, want identity arc to state 2", shorthand)
	}
	if table.Text(shorthand.Upper) != "a" {
		t.Errorf("arc symbol = %q, want a", table.Text(shorthand.Upper))
	}
}

func TestClassifySpecialSymbols(t *testing.T) {
	cases := []struct {
		text string
		kind symbol.Kind
	}{
		{epsilonText, symbol.KindEpsilon},
		{unknownText, symbol.KindUnknown},
		{identityText, symbol.KindIdentity},
		{"a", symbol.KindGrapheme},
		{"+Sg", symbol.KindMultiChar},
	}
	for _, c := range cases {
		sym, err := classify(c.text)
		if err != nil {
			t.Errorf("classify(%q) error = %v", c.text, err)
			continue
		}
		if sym.Kind != c.kind {
			t.Errorf("classify(%q).Kind = %v, want %v", c.text, sym.Kind, c.kind)
		}
	}
}

func TestClassifyFlagDiacriticWithValue(t *testing.T) {
	sym, err := classify("@P.CASE.NOM@")
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if sym.Kind != symbol.KindFlag || sym.Op != symbol.FlagP || sym.Feature != "CASE" || sym.Value != "NOM" {
		t.Errorf("classify() = %+v, want P flag on CASE=NOM", sym)
	}
}

func TestClassifyFlagDiacriticWithoutValue(t *testing.T) {
	sym, err := classify("@D.CASE@")
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if sym.Kind != symbol.KindFlag || sym.Op != symbol.FlagD || sym.Feature != "CASE" || sym.Value != "" {
		t.Errorf("classify() = %+v, want D flag on CASE with no value", sym)
	}
}

func TestClassifyRejectsUnknownFlagOperator(t *testing.T) {
	_, err := classify("@X.CASE.NOM@")
	if !errors.Is(err, ErrInvalidFlag) {
		t.Fatalf("err = %v, want ErrInvalidFlag", err)
	}
}

func TestClassifyRejectsLowercaseAndDigitFlagOperators(t *testing.T) {
	for _, text := range []string{"@p.CASE@", "@1.CASE@"} {
		_, err := classify(text)
		if !errors.Is(err, ErrInvalidFlag) {
			t.Errorf("classify(%q) error = %v, want ErrInvalidFlag", text, err)
		}
	}
}

func TestClassifyMultiCharNotMistakenForFlag(t *testing.T) {
	// Shape doesn't match "@OP.feature@" (no leading "@", or no trailing "@").
	sym, err := classify("+PastTense")
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if sym.Kind != symbol.KindMultiChar {
		t.Errorf("classify() = %+v, want MultiChar", sym)
	}
}

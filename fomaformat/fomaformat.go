package fomaformat

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/eddieantonio/fst-lookup/automaton"
	"github.com/eddieantonio/fst-lookup/symbol"
)

// section names the "##...##" headers this parser dispatches on.
type section int

const (
	sectionNone section = iota
	sectionHeader
	sectionSigma
	sectionStates
	sectionOther
)

// Properties holds the few header fields callers might care about from
// the "##foma-net##" block; the block's remaining contents are read and
// discarded, per spec.md §4.1 ("properties — read, mostly ignored but
// used to pick up the network name and arity").
type Properties struct {
	Name  string
	Arity int
}

// Parse reads a single Foma network from a gzip-compressed text stream
// and returns its symbol table and compiled automaton. A file containing
// multiple networks (concatenated "##foma-net##...##end##" blocks) is
// read only up to the first "##end##"; any networks after it are never
// examined, mirroring the teacher's Parse entry point that builds one
// NFA per call (regex.go's Compile).
func Parse(r io.Reader) (*symbol.Table, *automaton.Automaton, *Properties, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, nil, &ParseError{Reason: err.Error(), Err: ErrGzip}
	}
	defer gz.Close()

	table := symbol.NewTable()
	builder := automaton.NewBuilder(table)
	states := newStateSectionParser(builder, table)
	props := &Properties{}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	current := sectionNone
	lineNo := 0
	reachedEnd := false
	headerLines := 0

scan:
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if name, ok := sectionHeaderName(line); ok {
			switch name {
			case "foma-net":
				current = sectionHeader
				headerLines = 0
			case "sigma":
				current = sectionSigma
			case "states":
				current = sectionStates
			case "end":
				reachedEnd = true
				break scan
			default:
				current = sectionOther
			}
			continue
		}

		switch current {
		case sectionHeader:
			parseHeaderLine(line, headerLines, props)
			headerLines++
		case sectionSigma:
			if err := parseSigmaInto(table, line, lineNo); err != nil {
				return nil, nil, nil, err
			}
		case sectionStates:
			if err := states.parseLine(line, lineNo); err != nil {
				return nil, nil, nil, err
			}
		case sectionOther, sectionNone:
			// Properties blocks and anything preceding the first
			// recognized section are read and discarded.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, &ParseError{Line: lineNo, Reason: err.Error(), Err: ErrGzip}
	}
	if !reachedEnd {
		return nil, nil, nil, newParseError(lineNo, ErrTruncated, "input ended before ##end##")
	}

	builder.SetStart(0)
	auto, err := builder.Build()
	if err != nil {
		return nil, nil, nil, newParseError(0, err, "%v", err)
	}
	return table, auto, props, nil
}

func sectionHeaderName(line string) (string, bool) {
	if !strings.HasPrefix(line, "##") || !strings.HasSuffix(line, "##") || len(line) < 5 {
		return "", false
	}
	return strings.Trim(line, "#"), true
}

// parseHeaderLine extracts the name and arity fields a caller might want
// from the first line of the "##foma-net##" block and ignores the rest;
// the exact positional layout of this block varies across Foma versions
// and is not load-bearing for lookup, so this is deliberately lenient.
func parseHeaderLine(line string, index int, props *Properties) {
	if index != 0 {
		return
	}
	fields := strings.Fields(line)
	if len(fields) > 0 {
		props.Name = fields[0]
	}
	if len(fields) > 1 {
		fmt.Sscanf(fields[1], "%d", &props.Arity)
	}
}

func parseSigmaInto(table *symbol.Table, line string, lineNo int) error {
	id, text, err := parseSigmaLine(line)
	if err != nil {
		return newParseError(lineNo, err, "malformed sigma line %q", line)
	}
	if id != table.Len() {
		return newParseError(lineNo, ErrSymbolOutOfRange, "sigma id %d out of sequence (expected %d)", id, table.Len())
	}
	sym, err := classify(text)
	if err != nil {
		return newParseError(lineNo, err, "%v: %q", err, text)
	}
	table.Add(sym)
	return nil
}

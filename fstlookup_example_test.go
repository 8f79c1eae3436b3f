package fstlookup_test

import (
	"bytes"
	"compress/gzip"
	"fmt"

	"github.com/eddieantonio/fst-lookup"
)

// gzipNetwork compresses a Foma text-format network for MustLoad. Real
// networks arrive from Foma itself already gzipped; Example tests build
// their own small ones inline to stay self-contained.
func gzipNetwork(text string) *bytes.Reader {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return bytes.NewReader(buf.Bytes())
}

// eatNetwork is a small transducer pairing surface forms of "eat" with a
// lemma and tag sequence: "eats" is ambiguous between a regular verb
// reading and a mass-noun reading, and "ate" is the irregular past tense.
const eatNetwork = `##foma-net##
eat 2
##sigma##
0 @_EPSILON_SYMBOL_@
1 @_UNKNOWN_SYMBOL_@
2 @_IDENTITY_SYMBOL_@
3 eats
4 ate
5 eat
6 +V
7 +N
8 +3P
9 +Sg
10 +Mass
11 +Past
##states##
0 5 3 1 0
1 6 0 2 0
2 8 0 3 0
3 9 0 4 0
1 7 0 5 0
5 10 0 6 0
0 5 4 7 0
7 6 0 8 0
8 11 0 9 0
4 -1 -1 1
6 -1 -1 1
9 -1 -1 1
-1 -1 -1 -1 -1
##end##
`

// sheepNetwork pairs the single surface form "sheep" with two distinct
// noun readings (singular and plural), modeling the classic
// zero-derivation ambiguity of English plurale-tantum-adjacent nouns.
const sheepNetwork = `##foma-net##
sheep 2
##sigma##
0 @_EPSILON_SYMBOL_@
1 @_UNKNOWN_SYMBOL_@
2 @_IDENTITY_SYMBOL_@
3 sheep
4 +N
5 +Sg
6 +Pl
##states##
0 3 3 1 0
1 4 0 2 0
2 5 0 3 0
2 6 0 4 0
3 -1 -1 1
4 -1 -1 1
-1 -1 -1 -1 -1
##end##
`

// ExampleFST_Analyze demonstrates that a single surface form can map to
// more than one analysis.
func ExampleFST_Analyze() {
	fst := fstlookup.MustLoad(gzipNetwork(eatNetwork))
	for _, a := range fst.Analyze("eats") {
		fmt.Println(a)
	}
	// Output:
	// eat +V +3P +Sg
	// eat +N +Mass
}

// ExampleFST_Analyze_irregular demonstrates an irregular past-tense form
// resolving to a single analysis.
func ExampleFST_Analyze_irregular() {
	fst := fstlookup.MustLoad(gzipNetwork(eatNetwork))
	for _, a := range fst.Analyze("ate") {
		fmt.Println(a)
	}
	// Output:
	// eat +V +Past
}

// ExampleFST_Generate demonstrates mapping an analysis back to its
// surface form.
func ExampleFST_Generate() {
	fst := fstlookup.MustLoad(gzipNetwork(eatNetwork))
	for _, surface := range fst.Generate("eat+V+Past") {
		fmt.Println(surface)
	}
	// Output:
	// ate
}

// ExampleFST_Analyze_ambiguousLemma demonstrates a surface form with two
// distinct accepted analyses sharing the same lemma and part of speech.
func ExampleFST_Analyze_ambiguousLemma() {
	fst := fstlookup.MustLoad(gzipNetwork(sheepNetwork))
	for _, a := range fst.Analyze("sheep") {
		fmt.Println(a)
	}
	// Output:
	// sheep +N +Sg
	// sheep +N +Pl
}

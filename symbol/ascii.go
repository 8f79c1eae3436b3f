package symbol

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// hasAVX2 records whether the host CPU advertises AVX2, detected once at
// package init. Tokenization itself is plain Go (no assembly is carried
// by this module), but wide-register hardware is also fast at the
// coarser SWAR chunking below, so the flag still selects the 8-bytes-at-a-time
// path over the byte-by-byte one; on CPUs without AVX2 the byte loop is
// already fast enough that chunking buys nothing.
var hasAVX2 = cpu.X86.HasAVX2

// isASCII reports whether s contains only bytes < 0x80. Tokenizer uses
// this to skip rune decoding and index the token text byte-for-byte
// rather than rune-for-rune.
func isASCII(s string) bool {
	if len(s) == 0 {
		return true
	}
	if hasAVX2 && len(s) >= 8 {
		return isASCIISWAR(s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// isASCIISWAR checks 8 bytes at a time using the SIMD-within-a-register
// trick: AND with 0x8080808080808080 isolates the high bit of every byte
// in the word at once.
func isASCIISWAR(s string) bool {
	const hi8 = uint64(0x8080808080808080)
	i := 0
	for i+8 <= len(s) {
		chunk := binary.LittleEndian.Uint64([]byte(s[i : i+8]))
		if chunk&hi8 != 0 {
			return false
		}
		i += 8
	}
	for ; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

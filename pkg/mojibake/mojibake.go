// Package mojibake repairs text that a platform's export pipeline
// double-encoded by interpreting UTF-8 bytes as Latin-1 codepoints.
// The artifact corrupts all non-ASCII names and emoji: "José" is
// exported as "JosÃ©".
package mojibake

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Repair reverses the Latin-1/UTF-8 double-encoding artifact.
//
// Each rune of the input is re-read as the Latin-1 byte it came from;
// if the resulting byte sequence is valid UTF-8, that decoding is the
// original text. Text that cannot have been double-encoded (runes
// outside Latin-1, or byte sequences that are not valid UTF-8) is
// returned unchanged, which makes the repair idempotent:
// Repair(Repair(s)) == Repair(s).
func Repair(s string) string {
	if isASCII(s) {
		return s
	}

	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// A rune above U+00FF cannot be the image of a Latin-1 byte,
		// so the text was not double-encoded.
		return s
	}
	if !utf8.Valid(raw) {
		return s
	}
	return string(raw)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Package lex implements the lexical machinery shared by the TOON encoder
// and decoder: string quoting/escaping, number canonicalization and
// grammar recognition, the indentation scanner, and the array-header
// parser. None of it knows about the toon.Value tree; it operates on raw
// strings and bytes so the encoder and decoder can both depend on a single
// implementation of each rule, as spec.md's design notes require.
package lex

import (
	"fmt"
	"strings"
)

// reserved literals that must always be quoted when they appear as a
// string value (spec.md §3 "Reserved literals").
var reservedLiterals = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// structural bytes that force quoting wherever they appear in a string
// (spec.md §4.2 rule 5).
const structuralBytes = "\"\\:[]{}\n\r\t"

// NeedsQuoting decides whether s must be wrapped in quotes when emitted as
// a TOON string, given the document delimiter and the active delimiter of
// the array it appears in (equal outside of array context). Implements
// spec.md §4.2 needs_quoting.
func NeedsQuoting(s string, activeDelim, docDelim byte) bool {
	if s == "" {
		return true
	}

	if hasLeadingOrTrailingSpace(s) || hasControlByte(s) {
		return true
	}

	if reservedLiterals[s] {
		return true
	}

	if IsNumber(s) {
		return true
	}

	if strings.ContainsAny(s, structuralBytes) {
		return true
	}

	if containsDelimiter(s, docDelim) || containsDelimiter(s, activeDelim) {
		return true
	}

	if strings.HasPrefix(s, "-") {
		return true
	}

	return false
}

func containsDelimiter(s string, delim byte) bool {
	switch delim {
	case ',', '|':
		return strings.IndexByte(s, delim) >= 0
	default:
		// Tab is already covered by hasControlByte; every other delimiter
		// value is unreachable (Delimiter is a closed enum) but treated
		// as "no additional bytes to check" rather than panicking.
		return false
	}
}

func hasLeadingOrTrailingSpace(s string) bool {
	return s[0] == ' ' || s[len(s)-1] == ' '
}

func hasControlByte(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b <= 0x1f || b == 0x7f {
			return true
		}
	}

	return false
}

// escape table for Quote/Unquote, in both directions (spec.md §3 "Escape
// set").
var escapeOut = map[byte]string{
	'\\': `\\`,
	'"':  `\"`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

var escapeIn = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Quote returns s wrapped in double quotes with the five permitted escape
// sequences applied; every other byte, including all non-ASCII UTF-8, is
// emitted literally.
func Quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := escapeOut[c]; ok {
			b.WriteString(esc)

			continue
		}

		b.WriteByte(c)
	}

	b.WriteByte('"')

	return b.String()
}

// Unquote reverses Quote on body, the bytes strictly between the
// surrounding quotes. Returns an error if body contains a backslash
// sequence other than the five permitted ones, or a trailing lone
// backslash.
func Unquote(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder

	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)

			continue
		}

		if i+1 >= len(body) {
			return "", fmt.Errorf("trailing backslash with no following character")
		}

		next := body[i+1]

		mapped, ok := escapeIn[next]
		if !ok {
			return "", fmt.Errorf("invalid escape sequence %q", body[i:i+2])
		}

		b.WriteByte(mapped)
		i++
	}

	return b.String(), nil
}

// FindFirstUnquoted scans haystack left to right for the first top-level
// occurrence of ch, skipping over any region between a '"' and its
// matching closing '"' (respecting \" as a literal quote and \\ as a
// literal backslash that does not start an escape of the following
// character). Returns the byte index and true if found.
//
// Shared by header parsing, row splitting, and key/colon location
// (spec.md's design notes call this out explicitly as one helper all three
// must use). Byte-oriented scanning is safe here because none of the bytes
// it looks for (", \, the delimiter) can appear as a continuation byte of
// a multi-byte UTF-8 sequence, so slicing at the returned index always
// lands on a rune boundary.
func FindFirstUnquoted(haystack string, ch byte) (int, bool) {
	inQuotes := false

	for i := 0; i < len(haystack); i++ {
		c := haystack[i]

		switch {
		case inQuotes && c == '\\':
			i++ // skip the escaped character, whatever it is
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && c == ch:
			return i, true
		}
	}

	return 0, false
}

// FindAllUnquoted returns the byte indices of every top-level occurrence of
// ch in haystack, in order, using the same quote-skipping rules as
// FindFirstUnquoted.
func FindAllUnquoted(haystack string, ch byte) []int {
	var out []int

	inQuotes := false

	for i := 0; i < len(haystack); i++ {
		c := haystack[i]

		switch {
		case inQuotes && c == '\\':
			i++
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && c == ch:
			out = append(out, i)
		}
	}

	return out
}

// ErrUnterminatedString is returned by ScanQuotedScalar when a quoted
// region runs to the end of the input without a closing quote.
var ErrUnterminatedString = fmt.Errorf("unterminated quoted string")

// ScanQuotedScalar scans s, which must start with '"', for the matching
// closing quote, honoring backslash escapes. It returns the raw body
// (without surrounding quotes, not yet unescaped) and whatever text
// follows the closing quote.
func ScanQuotedScalar(s string) (body, rest string, err error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[1:i], s[i+1:], nil
		}
	}

	return "", "", ErrUnterminatedString
}

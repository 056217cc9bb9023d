package lex

import (
	"fmt"
	"strings"
)

// Header is a parsed array header: key_opt '[' N delim_symbol? ']'
// ('{' field_list '}')? ':' tail? (spec.md §4.5).
type Header struct {
	HasKey    bool
	Key       string
	KeyQuoted bool
	Count     int
	Delim     byte // the active delimiter for this array; ',' if absent
	HasFields bool
	Fields    []string
	HasTail   bool // true if an inline row follows ": " on the header line
	Tail      string
}

// TryParseHeader attempts to parse content as an array header. matched is
// false when content contains no top-level '[' at all, meaning the caller
// should try ordinary "key: value" parsing instead. Once a top-level '['
// is found, matched is true and any subsequent grammar violation is
// reported as an error (an unquoted '[' can only legitimately begin a
// header, since any string value containing '[' must be quoted).
func TryParseHeader(content string) (hdr *Header, matched bool, err error) {
	bracketIdx, found := FindFirstUnquoted(content, '[')
	if !found {
		return nil, false, nil
	}

	h := &Header{}

	keyPart := content[:bracketIdx]
	if keyPart != "" {
		key, quoted, kerr := parseKeyToken(keyPart)
		if kerr != nil {
			return nil, true, fmt.Errorf("invalid header key: %w", kerr)
		}

		h.HasKey = true
		h.Key = key
		h.KeyQuoted = quoted
	}

	rest := content[bracketIdx:]

	closeIdx, found := FindFirstUnquoted(rest, ']')
	if !found {
		return nil, true, fmt.Errorf("unclosed '[' in array header")
	}

	bracketBody := rest[1:closeIdx]

	count, delim, perr := parseBracketBody(bracketBody)
	if perr != nil {
		return nil, true, perr
	}

	h.Count = count
	h.Delim = delim

	pos := closeIdx + 1
	if pos < len(rest) && rest[pos] == '{' {
		fieldsEnd, found := FindFirstUnquoted(rest[pos:], '}')
		if !found {
			return nil, true, fmt.Errorf("unclosed '{' in array header field list")
		}

		fieldsEnd += pos

		fieldList := rest[pos+1 : fieldsEnd]

		fields, serr := SplitRow(fieldList, delim)
		if serr != nil {
			return nil, true, fmt.Errorf("invalid field list: %w", serr)
		}

		if len(fields) == 0 || (len(fields) == 1 && fields[0] == "") {
			return nil, true, fmt.Errorf("empty field list")
		}

		resolvedFields := make([]string, len(fields))

		for i, f := range fields {
			name, _, kerr := parseKeyToken(f)
			if kerr != nil {
				return nil, true, fmt.Errorf("invalid field name %q: %w", f, kerr)
			}

			resolvedFields[i] = name
		}

		h.HasFields = true
		h.Fields = resolvedFields
		pos = fieldsEnd + 1
	}

	if pos >= len(rest) || rest[pos] != ':' {
		return nil, true, fmt.Errorf("missing ':' after array header")
	}

	pos++

	if pos < len(rest) {
		if rest[pos] != ' ' {
			return nil, true, fmt.Errorf("expected single space before inline array body")
		}

		h.HasTail = true
		h.Tail = rest[pos+1:]
	}

	return h, true, nil
}

// parseBracketBody parses the "N delim_symbol?" contents of "[...]".
func parseBracketBody(body string) (count int, delim byte, err error) {
	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++
	}

	if i == 0 {
		return 0, 0, fmt.Errorf("missing element count in array header")
	}

	// Reject leading zeros other than the single digit "0", mirroring the
	// canonical-number rule so "[01]:" is rejected rather than silently
	// accepted as 1.
	if body[0] == '0' && i > 1 {
		return 0, 0, fmt.Errorf("array count %q has a leading zero", body[:i])
	}

	n := 0
	for j := 0; j < i; j++ {
		n = n*10 + int(body[j]-'0')
	}

	symbol := body[i:]

	switch symbol {
	case "":
		return n, ',', nil
	case "\t":
		return n, '\t', nil
	case "|":
		return n, '|', nil
	default:
		return 0, 0, fmt.Errorf("unknown delimiter symbol %q in array header", symbol)
	}
}

// ParseKeyToken exports parseKeyToken for callers outside this package that
// need to resolve a bare object key the same way the header parser does
// (the decoder, for "key: value" lines outside of an array header).
func ParseKeyToken(s string) (key string, quoted bool, err error) {
	return parseKeyToken(s)
}

// parseKeyToken parses a single key/field-name token: either a quoted
// string (unquoted via the escape rules) or a bare token returned as-is.
func parseKeyToken(s string) (key string, quoted bool, err error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		body, uerr := Unquote(s[1 : len(s)-1])
		if uerr != nil {
			return "", false, uerr
		}

		return body, true, nil
	}

	if strings.ContainsAny(s, `"`) {
		return "", false, fmt.Errorf("unterminated quoted key %q", s)
	}

	return s, false, nil
}

// SplitRow splits content on delim at the top level, respecting quoted
// regions, returning exactly k+1 tokens for k unescaped top-level
// delimiters. Empty tokens (adjacent delimiters, or at either end) are
// preserved as empty strings (spec.md §4.5 split_row).
func SplitRow(content string, delim byte) ([]string, error) {
	idxs := FindAllUnquoted(content, delim)

	tokens := make([]string, 0, len(idxs)+1)

	start := 0

	for _, idx := range idxs {
		tokens = append(tokens, content[start:idx])
		start = idx + 1
	}

	tokens = append(tokens, content[start:])

	// Validate that every token is either unquoted plain text or a single
	// well-formed quoted string, so malformed quoting surfaces as an error
	// here rather than producing a bogus split silently.
	for _, tok := range tokens {
		if err := validateScalarToken(tok); err != nil {
			return nil, err
		}
	}

	return tokens, nil
}

// validateScalarToken checks that a row/inline token is either entirely
// unquoted, or a single quoted string spanning the whole token.
func validateScalarToken(tok string) error {
	trimmed := strings.TrimSpace(tok)
	if trimmed == "" || trimmed[0] != '"' {
		return nil
	}

	if len(trimmed) < 2 || trimmed[len(trimmed)-1] != '"' {
		return fmt.Errorf("unterminated string in token %q", tok)
	}

	return nil
}

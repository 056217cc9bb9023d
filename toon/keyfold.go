package toon

import (
	"regexp"
	"strings"

	"go.toonfmt.dev/toon/internal/lex"
)

// identifierRE is the foldable-segment grammar from spec.md §4.6 / GLOSSARY:
// [A-Za-z_][A-Za-z0-9_]*.
var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isFoldableSegment reports whether s can participate in a folded key
// chain: it must match the identifier grammar and never require quoting.
func isFoldableSegment(s string, docDelim byte) bool {
	return identifierRE.MatchString(s) && !lex.NeedsQuoting(s, docDelim, docDelim)
}

// foldChain implements spec.md §4.6 key folding: starting from (key, val),
// follow a chain of single-entry objects with foldable keys, stopping at
// the first non-foldable segment, non-single-entry object, non-object
// value, or the flattenDepth bound. It returns the accumulated segment
// path and the value found at the end of the chain.
func (e *encoder) foldChain(key string, val Value) (segments []string, final Value) {
	segments = []string{key}
	final = val

	if !e.opts.foldingEnabled() {
		return segments, final
	}

	docDelim := e.opts.Delimiter.Byte()
	if !isFoldableSegment(key, docDelim) {
		return segments, final
	}

	for {
		if e.opts.FlattenDepth >= 0 && len(segments) >= e.opts.FlattenDepth {
			return segments, final
		}

		if final.Kind() != KindObject || final.Object().Len() != 1 {
			return segments, final
		}

		obj := final.Object()
		nextKey := obj.Keys()[0]

		if !isFoldableSegment(nextKey, docDelim) {
			return segments, final
		}

		nextVal, _ := obj.Get(nextKey)
		segments = append(segments, nextKey)
		final = nextVal
	}
}

// buildPathString joins segments with '.', quoting only the final segment
// if it requires quoting (every earlier segment is guaranteed foldable,
// hence never in need of quoting; spec.md §4.6: "if [the final segment
// needs quoting], no folding applies to that segment and the path
// terminates at that point").
func (e *encoder) buildPathString(segments []string) string {
	if len(segments) == 1 {
		return e.quoteKeyIfNeeded(segments[0])
	}

	parts := make([]string, len(segments))
	copy(parts, segments[:len(segments)-1])
	parts[len(parts)-1] = e.quoteKeyIfNeeded(segments[len(segments)-1])

	return strings.Join(parts, ".")
}

func (e *encoder) quoteKeyIfNeeded(s string) string {
	docDelim := e.opts.Delimiter.Byte()
	if lex.NeedsQuoting(s, docDelim, docDelim) {
		return lex.Quote(s)
	}

	return s
}

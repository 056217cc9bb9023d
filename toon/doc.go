// Package toon implements TOON (Token-Oriented Object Notation), a
// line-oriented, indentation-based textual encoding of the JSON data model
// designed to reduce token count when feeding structured data to large
// language models.
//
// # Design principles
//
// TOON trades JSON's brace-and-bracket delimiters for indentation and
// declared array lengths, the same way YAML trades them for indentation
// alone. Three things set it apart from a generic "whitespace-sensitive
// JSON":
//
//  1. Declared counts: every array header carries its element count
//     ([3]:, [2]{id,name}:), so a decoder can validate structural
//     integrity without building the whole tree first, and a reader can
//     tell at a glance how much is coming.
//  2. Columnar arrays: a homogeneous array of flat objects is written as
//     a header row plus one line per element ([2]{id,name}:\n  1,Alice\n
//     2,Bob), which is far cheaper in tokens than repeating every key on
//     every element the way JSON does.
//  3. Canonical form: there is exactly one way to encode any given value.
//     Numbers have one textual form, strings are quoted only when
//     necessary, and re-encoding a decoded document is byte-identical to
//     encoding the original value.
//
// # Usage
//
//	v := toon.NewObject().
//		Set("id", toon.Int(1)).
//		Set("name", toon.String("Alice"))
//	text, err := toon.Encode(v, toon.DefaultEncodeOptions())
//
//	decoded, err := toon.Decode(text, toon.DefaultDecodeOptions())
//
// [Encode] and [Decode] are pure functions: no I/O, no shared state, safe
// to call concurrently from separate goroutines as long as the input is not
// mutated mid-call.
package toon

package toon

import (
	"math"
	"strconv"
	"strings"

	"go.toonfmt.dev/toon/internal/lex"
)

// Encode renders v as TOON text under opts. The result never has a
// trailing newline; callers that write it to a file typically append one.
func Encode(v Value, opts EncodeOptions) (string, error) {
	if opts.Indent < 1 {
		opts.Indent = 1
	}

	e := &encoder{opts: opts}

	var err error

	switch v.Kind() {
	case KindObject:
		err = e.emitObjectBody(v.Object(), 0)
	case KindArray:
		err = e.emitArrayHeaderAndBody("", false, v, 0, 1, "")
	default:
		var s string

		s, err = e.scalar(v)
		if err == nil {
			e.lines = append(e.lines, s)
		}
	}

	if err != nil {
		return "", err
	}

	return strings.Join(e.lines, "\n"), nil
}

type encoder struct {
	opts  EncodeOptions
	lines []string
}

func (e *encoder) emit(depth int, s string) {
	if depth == 0 {
		e.lines = append(e.lines, s)
		return
	}

	e.lines = append(e.lines, strings.Repeat(" ", e.opts.Indent*depth)+s)
}

// emitObjectBody emits every entry of obj as a "key: value" (or nested
// block) line at depth, applying key folding to each entry in turn
// (spec.md §4.6).
func (e *encoder) emitObjectBody(obj *Object, depth int) error {
	var outerErr error

	obj.Range(func(key string, val Value) bool {
		if err := e.emitEntry(key, val, depth); err != nil {
			outerErr = err
			return false
		}

		return true
	})

	return outerErr
}

// emitEntry folds (key, val) and emits the resulting path/value pair at
// depth.
func (e *encoder) emitEntry(key string, val Value, depth int) error {
	segments, final := e.foldChain(key, val)
	path := e.buildPathString(segments)

	switch {
	case final.IsPrimitive():
		s, err := e.scalar(final)
		if err != nil {
			return err
		}

		e.emit(depth, path+": "+s)

		return nil

	case final.Kind() == KindObject:
		if final.Object().Len() == 0 {
			e.emit(depth, path+":")
			return nil
		}

		e.emit(depth, path+":")

		return e.emitObjectBody(final.Object(), depth+1)

	default: // KindArray
		return e.emitArrayHeaderAndBody(path, true, final, depth, 1, "")
	}
}

// emitArrayHeaderAndBody emits an array's header line and, for tabular and
// list forms, its body lines. baseDepth is the depth of the header line
// itself; childOffset is added to baseDepth for the body (1 in every
// context except a list item whose first entry or whose own value is an
// array/object, where spec.md §4.6 calls for the extra level of nesting
// described at the object-as-list-item rule, via childOffset 2).
// linePrefix is "- " for list items, "" otherwise.
func (e *encoder) emitArrayHeaderAndBody(key string, hasKey bool, v Value, baseDepth, childOffset int, linePrefix string) error {
	items := v.Items()
	n := len(items)

	if n == 0 {
		e.emit(baseDepth, linePrefix+e.headerStr(key, hasKey, 0, ',', nil)+":")
		return nil
	}

	if allPrimitive(items) {
		delim := e.opts.Delimiter.Byte()

		parts := make([]string, n)

		for i, it := range items {
			s, err := e.scalarForArray(it, delim)
			if err != nil {
				return err
			}

			parts[i] = s
		}

		header := e.headerStr(key, hasKey, n, delim, nil)
		e.emit(baseDepth, linePrefix+header+": "+strings.Join(parts, string(delim)))

		return nil
	}

	if fields, ok := tabularFields(items); ok {
		delim := e.opts.Delimiter.Byte()
		header := e.headerStr(key, hasKey, n, delim, fields)
		e.emit(baseDepth, linePrefix+header+":")

		rowDepth := baseDepth + childOffset

		for _, it := range items {
			obj := it.Object()

			vals := make([]string, len(fields))

			for i, f := range fields {
				fv, _ := obj.Get(f)

				s, err := e.scalarForArray(fv, delim)
				if err != nil {
					return err
				}

				vals[i] = s
			}

			e.emit(rowDepth, strings.Join(vals, string(delim)))
		}

		return nil
	}

	header := e.headerStr(key, hasKey, n, ',', nil)
	e.emit(baseDepth, linePrefix+header+":")

	itemDepth := baseDepth + childOffset

	for _, it := range items {
		if err := e.emitListItem(it, itemDepth); err != nil {
			return err
		}
	}

	return nil
}

// emitListItem emits one element of a list-form array at depth.
func (e *encoder) emitListItem(item Value, depth int) error {
	switch item.Kind() {
	case KindObject:
		return e.emitObjectListItem(item.Object(), depth)
	case KindArray:
		return e.emitArrayHeaderAndBody("", false, item, depth, 2, "- ")
	default:
		s, err := e.scalar(item)
		if err != nil {
			return err
		}

		e.emit(depth, "- "+s)

		return nil
	}
}

// emitObjectListItem implements spec.md §4.6's object-as-list-item rules:
// an empty object is a bare "-"; otherwise the first entry shares the
// hyphen line (folded like any other key) and the remaining entries
// follow as ordinary object entries one level deeper.
func (e *encoder) emitObjectListItem(obj *Object, depth int) error {
	if obj.Len() == 0 {
		e.emit(depth, "-")
		return nil
	}

	keys := obj.Keys()
	firstKey := keys[0]
	firstVal, _ := obj.Get(firstKey)

	segments, final := e.foldChain(firstKey, firstVal)
	path := e.buildPathString(segments)

	switch {
	case final.IsPrimitive():
		s, err := e.scalar(final)
		if err != nil {
			return err
		}

		e.emit(depth, "- "+path+": "+s)

	case final.Kind() == KindObject:
		if final.Object().Len() == 0 {
			e.emit(depth, "- "+path+":")
		} else {
			e.emit(depth, "- "+path+":")

			if err := e.emitObjectBody(final.Object(), depth+2); err != nil {
				return err
			}
		}

	default: // KindArray
		if err := e.emitArrayHeaderAndBody(path, true, final, depth, 2, "- "); err != nil {
			return err
		}
	}

	for _, k := range keys[1:] {
		v, _ := obj.Get(k)
		if err := e.emitEntry(k, v, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// headerStr builds "key[Ndelim]" or "key[Ndelim]{fields}" without the
// trailing ':'. key is assumed already folded/quoted by the caller.
func (e *encoder) headerStr(key string, hasKey bool, n int, delim byte, fields []string) string {
	var b strings.Builder

	if hasKey {
		b.WriteString(key)
	}

	b.WriteByte('[')
	b.WriteString(strconv.Itoa(n))
	b.WriteString(delimiterSymbol(delim))
	b.WriteByte(']')

	if fields != nil {
		b.WriteByte('{')

		for i, f := range fields {
			if i > 0 {
				b.WriteByte(delim)
			}

			b.WriteString(e.quoteFieldIfNeeded(f, delim))
		}

		b.WriteByte('}')
	}

	return b.String()
}

func (e *encoder) quoteFieldIfNeeded(s string, activeDelim byte) string {
	if lex.NeedsQuoting(s, activeDelim, e.opts.Delimiter.Byte()) {
		return lex.Quote(s)
	}

	return s
}

func delimiterSymbol(delim byte) string {
	switch delim {
	case '\t':
		return "\t"
	case '|':
		return "|"
	default:
		return ""
	}
}

// scalar renders v (a primitive Value) using the document delimiter as the
// active delimiter, for contexts outside of an array row.
func (e *encoder) scalar(v Value) (string, error) {
	return e.scalarWithDelim(v, e.opts.Delimiter.Byte())
}

// scalarForArray renders v using activeDelim, the delimiter of the
// enclosing array, which may differ from the document delimiter.
func (e *encoder) scalarForArray(v Value, activeDelim byte) (string, error) {
	return e.scalarWithDelim(v, activeDelim)
}

func (e *encoder) scalarWithDelim(v Value, activeDelim byte) (string, error) {
	switch v.Kind() {
	case KindNull:
		return "null", nil
	case KindBool:
		if v.Bool() {
			return "true", nil
		}

		return "false", nil
	case KindInt:
		return lex.FormatInt(v.Int()), nil
	case KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", newError(ErrKindUnsupportedValue, "cannot encode NaN or infinite float")
		}

		return lex.FormatFloat(f), nil
	case KindString:
		s := v.Text()
		if lex.NeedsQuoting(s, activeDelim, e.opts.Delimiter.Byte()) {
			return lex.Quote(s), nil
		}

		return s, nil
	default:
		return "", newError(ErrKindUnsupportedValue, "value of kind %s is not a scalar", v.Kind())
	}
}

func allPrimitive(items []Value) bool {
	for _, it := range items {
		if !it.IsPrimitive() {
			return false
		}
	}

	return true
}

// tabularFields reports whether items qualifies for the tabular array form:
// every item is a non-empty object, all objects share the exact same key
// set in the same order, and every value is primitive.
func tabularFields(items []Value) ([]string, bool) {
	if len(items) == 0 || items[0].Kind() != KindObject {
		return nil, false
	}

	first := items[0].Object()
	if first.Len() == 0 {
		return nil, false
	}

	fields := append([]string(nil), first.Keys()...)

	for _, it := range items {
		if it.Kind() != KindObject {
			return nil, false
		}

		obj := it.Object()

		keys := obj.Keys()
		if len(keys) != len(fields) {
			return nil, false
		}

		for i, k := range keys {
			if k != fields[i] {
				return nil, false
			}
		}

		allPrim := true

		obj.Range(func(_ string, v Value) bool {
			if !v.IsPrimitive() {
				allPrim = false
				return false
			}

			return true
		})

		if !allPrim {
			return nil, false
		}
	}

	return fields, true
}

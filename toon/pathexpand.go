package toon

import "strings"

// splittablePath reports whether key is an unquoted dotted key eligible for
// path expansion under expandPaths=safe: at least two segments, every one
// matching the identifier grammar (spec.md §4.7).
func splittablePath(key string) ([]string, bool) {
	segs := strings.Split(key, ".")
	if len(segs) < 2 {
		return nil, false
	}

	for _, s := range segs {
		if !identifierRE.MatchString(s) {
			return nil, false
		}
	}

	return segs, true
}

// expandInto walks segs from root, creating or reusing nested Objects for
// every segment but the last, then binds val under the last segment.
// Implements the merge rules of spec.md §4.7: a non-Object bound to an
// intermediate segment is a PathConflict in strict mode, or is replaced
// with a fresh Object in lenient mode; a final segment that already exists
// is a PathConflict in strict mode, or is overwritten in lenient mode.
func expandInto(root *Object, segs []string, val Value, strict bool, lineNo int) error {
	cur := root

	for _, seg := range segs[:len(segs)-1] {
		existing, ok := cur.Get(seg)
		if !ok {
			fresh := newObject()
			cur.set(seg, Value{kind: KindObject, obj: fresh})
			cur = fresh

			continue
		}

		if existing.Kind() != KindObject {
			if strict {
				return newLineError(ErrKindPathConflict, lineNo,
					"path %q: segment %q is already bound to a non-object value", strings.Join(segs, "."), seg)
			}

			fresh := newObject()
			cur.set(seg, Value{kind: KindObject, obj: fresh})
			cur = fresh

			continue
		}

		cur = existing.Object()
	}

	last := segs[len(segs)-1]

	if _, exists := cur.Get(last); exists && strict {
		return newLineError(ErrKindPathConflict, lineNo,
			"path %q: key %q already exists", strings.Join(segs, "."), last)
	}

	cur.set(last, val)

	return nil
}

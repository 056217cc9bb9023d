package toon

import (
	"strings"

	"go.toonfmt.dev/toon/internal/lex"
)

// Decode parses a TOON document into a Value. Decode never mutates text;
// the returned Value is independent of it.
func Decode(text string, opts DecodeOptions) (Value, error) {
	if opts.Indent < 1 {
		opts.Indent = 1
	}

	scan, err := lex.Scan(text, opts.Indent, opts.Strict)
	if err != nil {
		lineNo, _ := lex.ScanErrorLine(err)
		return Value{}, newLineError(ErrKindInvalidIndentation, lineNo, "%s", err.Error())
	}

	d := &decoder{opts: opts, lines: scan.Lines, blanks: scan.Blanks}

	return d.decodeRoot()
}

type decoder struct {
	opts   DecodeOptions
	lines  []lex.Line
	blanks map[int]bool
	pos    int
}

func (d *decoder) decodeRoot() (Value, error) {
	if len(d.lines) == 0 {
		return Value{kind: KindObject, obj: newObject()}, nil
	}

	if len(d.lines) == 1 {
		line := d.lines[0]

		isScalar, err := d.looksLikeScalarRoot(line.Content)
		if err != nil {
			return Value{}, d.wrapHeaderErr(err, line.LineNo)
		}

		if isScalar {
			return d.resolveScalarToken(line.Content, line.LineNo)
		}
	}

	hdr, isRootArray, err := d.detectRootArray()
	if err != nil {
		return Value{}, err
	}

	if isRootArray {
		d.pos = 1

		return d.parseArrayBody(hdr, d.lines[0].LineNo, 1)
	}

	if err := d.checkMultipleRootPrimitives(); err != nil {
		return Value{}, err
	}

	d.pos = 0

	obj, err := d.parseObjectAt(0)
	if err != nil {
		return Value{}, err
	}

	return Value{kind: KindObject, obj: obj}, nil
}

// looksLikeScalarRoot reports whether content has no array header and no
// top-level unquoted colon, i.e. it can only be a bare scalar token.
func (d *decoder) looksLikeScalarRoot(content string) (bool, error) {
	_, matched, err := lex.TryParseHeader(content)
	if err != nil {
		return false, err
	}

	if matched {
		return false, nil
	}

	if _, found := lex.FindFirstUnquoted(content, ':'); found {
		return false, nil
	}

	return true, nil
}

// detectRootArray implements spec.md §4.7's root-array rule: the first
// line is an unkeyed array header at depth 0, and every remaining line
// lies at depth >= 1 beneath it.
func (d *decoder) detectRootArray() (*lex.Header, bool, error) {
	first := d.lines[0]
	if first.Depth != 0 {
		return nil, false, nil
	}

	hdr, matched, err := lex.TryParseHeader(first.Content)
	if err != nil {
		return nil, false, d.wrapHeaderErr(err, first.LineNo)
	}

	if !matched || hdr.HasKey {
		return nil, false, nil
	}

	for _, l := range d.lines[1:] {
		if l.Depth < 1 {
			return nil, false, nil
		}
	}

	return hdr, true, nil
}

// checkMultipleRootPrimitives flags, in strict mode, more than one depth-0
// line that looks like a bare scalar (no header, no colon) -- an ambiguous
// document that is not a single scalar, array, or well-formed object.
func (d *decoder) checkMultipleRootPrimitives() error {
	if !d.opts.Strict {
		return nil
	}

	bareCount := 0

	for _, l := range d.lines {
		if l.Depth != 0 {
			continue
		}

		isScalar, err := d.looksLikeScalarRoot(l.Content)
		if err != nil {
			continue // a genuine header error surfaces later from parseObjectAt
		}

		if !isScalar {
			continue
		}

		bareCount++

		if bareCount == 2 {
			return newLineError(ErrKindMultipleRootPrimitives, l.LineNo, "multiple top-level primitive lines")
		}
	}

	return nil
}

// parseObjectAt consumes every consecutive line at exactly depth, building
// an Object, until a shallower line or end of input.
func (d *decoder) parseObjectAt(depth int) (*Object, error) {
	obj := newObject()

	for d.pos < len(d.lines) {
		line := d.lines[d.pos]
		if line.Depth < depth {
			break
		}

		if line.Depth > depth {
			return nil, newLineError(ErrKindInvalidIndentation, line.LineNo, "unexpected indentation")
		}

		d.pos++

		if err := d.parseObjectLine(obj, line, depth); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

func (d *decoder) parseObjectLine(obj *Object, line lex.Line, depth int) error {
	content := line.Content

	hdr, matched, herr := lex.TryParseHeader(content)
	if herr != nil {
		return d.wrapHeaderErr(herr, line.LineNo)
	}

	if matched {
		if !hdr.HasKey {
			return newLineError(ErrKindInvalidHeader, line.LineNo, "array header at object scope requires a key")
		}

		val, err := d.parseArrayBody(hdr, line.LineNo, depth+1)
		if err != nil {
			return err
		}

		return d.insertKey(obj, hdr.Key, hdr.KeyQuoted, val, line.LineNo)
	}

	colonIdx, found := lex.FindFirstUnquoted(content, ':')
	if !found {
		if d.opts.Strict {
			return newLineError(ErrKindMissingColon, line.LineNo, "missing ':' in object entry")
		}

		return d.insertKey(obj, content, false, Null(), line.LineNo)
	}

	keyTok := content[:colonIdx]

	key, quoted, kerr := lex.ParseKeyToken(keyTok)
	if kerr != nil {
		return newLineError(ErrKindInvalidHeader, line.LineNo, "%s", kerr.Error())
	}

	rest := content[colonIdx+1:]

	if rest == "" {
		return d.parseNestedOrEmpty(obj, key, quoted, depth, line.LineNo)
	}

	if rest[0] != ' ' {
		return newLineError(ErrKindInvalidHeader, line.LineNo, "expected a single space after ':'")
	}

	val, err := d.resolveScalarToken(rest[1:], line.LineNo)
	if err != nil {
		return err
	}

	return d.insertKey(obj, key, quoted, val, line.LineNo)
}

// parseNestedOrEmpty handles a "key:" line with nothing after the colon:
// either a nested Object on deeper-indented continuation lines, or an
// empty Object if none follow.
func (d *decoder) parseNestedOrEmpty(obj *Object, key string, quoted bool, depth int, lineNo int) error {
	if d.pos < len(d.lines) && d.lines[d.pos].Depth > depth {
		child, err := d.parseObjectAt(depth + 1)
		if err != nil {
			return err
		}

		return d.insertKey(obj, key, quoted, Value{kind: KindObject, obj: child}, lineNo)
	}

	return d.insertKey(obj, key, quoted, Value{kind: KindObject, obj: newObject()}, lineNo)
}

// insertKey binds key/val into obj, applying path expansion when enabled
// and the key qualifies (spec.md §4.7).
func (d *decoder) insertKey(obj *Object, key string, quoted bool, val Value, lineNo int) error {
	if d.opts.ExpandPaths == ExpandPathsSafe && !quoted {
		if segs, ok := splittablePath(key); ok {
			return expandInto(obj, segs, val, d.opts.Strict, lineNo)
		}
	}

	obj.set(key, val)

	return nil
}

// parseArrayBody dispatches on the header's form (tabular, inline, or
// list) and consumes the corresponding body starting at bodyDepth.
func (d *decoder) parseArrayBody(hdr *lex.Header, headerLineNo, bodyDepth int) (Value, error) {
	if hdr.Count == 0 {
		return Array(nil), nil
	}

	if hdr.HasFields {
		return d.parseTabularBody(hdr, headerLineNo, bodyDepth)
	}

	if hdr.HasTail {
		return d.parseInlineBody(hdr, headerLineNo)
	}

	return d.parseListBody(hdr, headerLineNo, bodyDepth)
}

func (d *decoder) parseInlineBody(hdr *lex.Header, headerLineNo int) (Value, error) {
	tokens, err := lex.SplitRow(hdr.Tail, hdr.Delim)
	if err != nil {
		return Value{}, newLineError(ErrKindUnterminatedString, headerLineNo, "%s", err.Error())
	}

	if len(tokens) != hdr.Count && d.opts.Strict {
		return Value{}, newLineError(ErrKindCountMismatch, headerLineNo,
			"declared count %d does not match %d inline values", hdr.Count, len(tokens))
	}

	items := make([]Value, 0, len(tokens))

	for _, tok := range tokens {
		v, err := d.resolveScalarToken(tok, headerLineNo)
		if err != nil {
			return Value{}, err
		}

		items = append(items, v)
	}

	return Array(items), nil
}

func (d *decoder) parseTabularBody(hdr *lex.Header, headerLineNo, bodyDepth int) (Value, error) {
	fields := hdr.Fields

	rows := make([]Value, 0, hdr.Count)
	prevLineNo := headerLineNo

	for d.pos < len(d.lines) && d.lines[d.pos].Depth == bodyDepth {
		line := d.lines[d.pos]

		if err := d.checkNoBlankBetween(prevLineNo, line.LineNo); err != nil {
			return Value{}, err
		}

		d.pos++

		tokens, err := lex.SplitRow(line.Content, hdr.Delim)
		if err != nil {
			return Value{}, newLineError(ErrKindUnterminatedString, line.LineNo, "%s", err.Error())
		}

		if len(tokens) != len(fields) && d.opts.Strict {
			return Value{}, newLineError(ErrKindRowWidthMismatch, line.LineNo,
				"row has %d fields, header declares %d", len(tokens), len(fields))
		}

		row := newObject()

		for i, f := range fields {
			tok := "null"
			if i < len(tokens) {
				tok = tokens[i]
			}

			v, err := d.resolveScalarToken(tok, line.LineNo)
			if err != nil {
				return Value{}, err
			}

			row.set(f, v)
		}

		rows = append(rows, Value{kind: KindObject, obj: row})
		prevLineNo = line.LineNo
	}

	if len(rows) != hdr.Count && d.opts.Strict {
		return Value{}, newLineError(ErrKindCountMismatch, headerLineNo,
			"declared count %d does not match %d rows", hdr.Count, len(rows))
	}

	return Array(rows), nil
}

func (d *decoder) parseListBody(hdr *lex.Header, headerLineNo, bodyDepth int) (Value, error) {
	items := make([]Value, 0, hdr.Count)
	prevLineNo := headerLineNo

	for d.pos < len(d.lines) && d.lines[d.pos].Depth == bodyDepth {
		line := d.lines[d.pos]
		if !strings.HasPrefix(line.Content, "-") {
			break
		}

		if err := d.checkNoBlankBetween(prevLineNo, line.LineNo); err != nil {
			return Value{}, err
		}

		d.pos++

		item, err := d.parseListItem(line, bodyDepth)
		if err != nil {
			return Value{}, err
		}

		items = append(items, item)
		prevLineNo = line.LineNo
	}

	if len(items) != hdr.Count && d.opts.Strict {
		return Value{}, newLineError(ErrKindCountMismatch, headerLineNo,
			"declared count %d does not match %d items", hdr.Count, len(items))
	}

	return Array(items), nil
}

// parseListItem parses one "- ..." line of a list-form array, at bodyDepth
// (the depth of the hyphen line itself), per spec.md §4.6/§4.7's
// object-as-list-item rules in reverse.
func (d *decoder) parseListItem(line lex.Line, bodyDepth int) (Value, error) {
	rest := strings.TrimPrefix(line.Content, "-")

	if rest == "" {
		return Value{kind: KindObject, obj: newObject()}, nil
	}

	if rest[0] != ' ' {
		return Value{}, newLineError(ErrKindInvalidHeader, line.LineNo, "list item must begin with '- '")
	}

	rest = rest[1:]

	hdr, matched, herr := lex.TryParseHeader(rest)
	if herr != nil {
		return Value{}, d.wrapHeaderErr(herr, line.LineNo)
	}

	if matched {
		if !hdr.HasKey {
			return d.parseArrayBody(hdr, line.LineNo, bodyDepth+2)
		}

		val, err := d.parseArrayBody(hdr, line.LineNo, bodyDepth+2)
		if err != nil {
			return Value{}, err
		}

		obj := newObject()
		if err := d.insertKey(obj, hdr.Key, hdr.KeyQuoted, val, line.LineNo); err != nil {
			return Value{}, err
		}

		return d.continueObjectListItem(obj, bodyDepth+1)
	}

	colonIdx, found := lex.FindFirstUnquoted(rest, ':')
	if !found {
		return d.resolveScalarToken(rest, line.LineNo)
	}

	keyTok := rest[:colonIdx]

	key, quoted, kerr := lex.ParseKeyToken(keyTok)
	if kerr != nil {
		return Value{}, newLineError(ErrKindInvalidHeader, line.LineNo, "%s", kerr.Error())
	}

	valPart := rest[colonIdx+1:]
	obj := newObject()

	if valPart == "" {
		if d.pos < len(d.lines) && d.lines[d.pos].Depth > bodyDepth+1 {
			child, err := d.parseObjectAt(bodyDepth + 2)
			if err != nil {
				return Value{}, err
			}

			if err := d.insertKey(obj, key, quoted, Value{kind: KindObject, obj: child}, line.LineNo); err != nil {
				return Value{}, err
			}
		} else if err := d.insertKey(obj, key, quoted, Value{kind: KindObject, obj: newObject()}, line.LineNo); err != nil {
			return Value{}, err
		}
	} else {
		if valPart[0] != ' ' {
			return Value{}, newLineError(ErrKindInvalidHeader, line.LineNo, "expected a single space after ':'")
		}

		v, err := d.resolveScalarToken(valPart[1:], line.LineNo)
		if err != nil {
			return Value{}, err
		}

		if err := d.insertKey(obj, key, quoted, v, line.LineNo); err != nil {
			return Value{}, err
		}
	}

	return d.continueObjectListItem(obj, bodyDepth+1)
}

// continueObjectListItem parses any remaining entries of an object-valued
// list item at restDepth and appends them, in order, after the first entry
// already stored in obj.
func (d *decoder) continueObjectListItem(obj *Object, restDepth int) (Value, error) {
	rest, err := d.parseObjectAt(restDepth)
	if err != nil {
		return Value{}, err
	}

	rest.Range(func(k string, v Value) bool {
		obj.set(k, v)
		return true
	})

	return Value{kind: KindObject, obj: obj}, nil
}

func (d *decoder) checkNoBlankBetween(prevLineNo, lineNo int) error {
	if !d.opts.Strict {
		return nil
	}

	for ln := prevLineNo + 1; ln < lineNo; ln++ {
		if d.blanks[ln] {
			return newLineError(ErrKindBlankLineInArray, lineNo, "blank line inside array body")
		}
	}

	return nil
}

func (d *decoder) wrapHeaderErr(err error, lineNo int) *Error {
	return newLineError(ErrKindInvalidHeader, lineNo, "%s", err.Error())
}

// resolveScalarToken implements spec.md §4.8: dispatch an unquoted token to
// null/bool/number/string, or a quoted token to a literal string.
func (d *decoder) resolveScalarToken(tok string, lineNo int) (Value, error) {
	if strings.HasPrefix(tok, "\"") {
		body, rest, err := lex.ScanQuotedScalar(tok)
		if err != nil {
			return Value{}, newLineError(ErrKindUnterminatedString, lineNo, "%s", err.Error())
		}

		if rest != "" {
			return Value{}, newLineError(ErrKindUnterminatedString, lineNo, "unexpected content after closing quote")
		}

		text, uerr := lex.Unquote(body)
		if uerr != nil {
			return Value{}, newLineError(ErrKindInvalidEscape, lineNo, "%s", uerr.Error())
		}

		return String(text), nil
	}

	switch tok {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}

	if lex.IsNumber(tok) {
		isInt, i, f, err := lex.ParseNumber(tok)
		if err != nil {
			return Value{}, newLineError(ErrKindInvalidHeader, lineNo, "invalid number %q: %s", tok, err.Error())
		}

		if isInt {
			return Int(i), nil
		}

		return Float(f), nil
	}

	return String(tok), nil
}

package toon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedJSON wraps every error returned by [FromJSON] (malformed
// JSON as well as a number the [Value] data model cannot represent) and the
// marshaling failures of [ToJSON].
var ErrUnsupportedJSON = errors.New("toon: unsupported json value")

// FromJSON parses a single JSON document into a [Value], the bridge used at
// the boundary between the codec's JSON-equivalent data model and the
// encoding/json package callers typically already have their data in.
//
// Decoding walks [json.Decoder] tokens directly, rather than unmarshaling
// into map[string]any, so that object key order -- significant to the
// [Value] data model (spec.md §3) -- survives the round trip; an
// intermediate map[string]any would discard it. Numbers are decoded via
// [json.Number] so an integer-valued JSON number that fits [int64] becomes
// [KindInt] rather than always widening to [KindFloat].
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return Null(), fmt.Errorf("%w: %w", ErrUnsupportedJSON, err)
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}

	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberFromJSON(t)
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeJSONArray(dec)
		case '{':
			return decodeJSONObject(dec)
		default:
			return Null(), fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Null(), fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	var items []Value

	for dec.More() {
		item, err := decodeJSONValue(dec)
		if err != nil {
			return Null(), err
		}

		items = append(items, item)
	}

	if _, err := dec.Token(); err != nil { // consume ']'
		return Null(), err
	}

	return Array(items), nil
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	obj := newObject()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Null(), err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Null(), fmt.Errorf("unexpected object key token %T", keyTok)
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return Null(), err
		}

		obj.set(key, val)
	}

	if _, err := dec.Token(); err != nil { // consume '}'
		return Null(), err
	}

	return Value{kind: KindObject, obj: obj}, nil
}

func numberFromJSON(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}

	f, err := n.Float64()
	if err != nil {
		return Null(), fmt.Errorf("%w: %w", ErrUnsupportedJSON, err)
	}

	return Float(f), nil
}

// ToJSON renders v as a single-line JSON document via [encoding/json],
// the inverse of [FromJSON]. Object key order is preserved by building an
// explicit ordered-map encoding rather than going through map[string]any.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt:
		buf.WriteString(fmt.Sprintf("%d", v.Int()))
	case KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: NaN/Inf has no JSON representation", ErrUnsupportedValue)
		}

		enc, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedJSON, err)
		}

		buf.Write(enc)
	case KindString:
		enc, err := json.Marshal(v.Text())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedJSON, err)
		}

		buf.Write(enc)
	case KindArray:
		return writeJSONArray(buf, v.Items())
	case KindObject:
		return writeJSONObject(buf, v.Object())
	}

	return nil
}

func writeJSONArray(buf *bytes.Buffer, items []Value) error {
	buf.WriteByte('[')

	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeJSON(buf, item); err != nil {
			return err
		}
	}

	buf.WriteByte(']')

	return nil
}

func writeJSONObject(buf *bytes.Buffer, obj *Object) error {
	buf.WriteByte('{')

	first := true

	var rangeErr error

	obj.Range(func(key string, val Value) bool {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		keyEnc, err := json.Marshal(key)
		if err != nil {
			rangeErr = fmt.Errorf("%w: %w", ErrUnsupportedJSON, err)

			return false
		}

		buf.Write(keyEnc)
		buf.WriteByte(':')

		if err := writeJSON(buf, val); err != nil {
			rangeErr = err

			return false
		}

		return true
	})

	if rangeErr != nil {
		return rangeErr
	}

	buf.WriteByte('}')

	return nil
}

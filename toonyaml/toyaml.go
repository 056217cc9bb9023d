package toonyaml

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"go.toonfmt.dev/toon"
)

// ToYAML renders v as a YAML document using [github.com/goccy/go-yaml],
// the inverse of [FromYAML]. Object key order is preserved via
// [yaml.MapSlice] since a TOON object's iteration order is meaningful.
func ToYAML(v toon.Value) ([]byte, error) {
	out, err := yaml.Marshal(toAny(v))
	if err != nil {
		return nil, fmt.Errorf("toonyaml: marshal: %w", err)
	}

	return out, nil
}

func toAny(v toon.Value) any {
	switch v.Kind() {
	case toon.KindNull:
		return nil
	case toon.KindBool:
		return v.Bool()
	case toon.KindInt:
		return v.Int()
	case toon.KindFloat:
		return v.Float()
	case toon.KindString:
		return v.Text()
	case toon.KindArray:
		items := v.Items()
		out := make([]any, len(items))

		for i, item := range items {
			out[i] = toAny(item)
		}

		return out
	case toon.KindObject:
		return toMapSlice(v.Object())
	default:
		return nil
	}
}

func toMapSlice(obj *toon.Object) yaml.MapSlice {
	slice := make(yaml.MapSlice, 0, obj.Len())

	obj.Range(func(key string, val toon.Value) bool {
		slice = append(slice, yaml.MapItem{Key: key, Value: toAny(val)})

		return true
	})

	return slice
}

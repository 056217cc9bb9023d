package toonyaml_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.toonfmt.dev/toon"
	"go.toonfmt.dev/toonyaml"
)

func TestToYAMLScalars(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input toon.Value
		want  any
	}{
		"null":   {input: toon.Null(), want: nil},
		"bool":   {input: toon.Bool(true), want: true},
		"int":    {input: toon.Int(7), want: 7},
		"float":  {input: toon.Float(1.5), want: 1.5},
		"string": {input: toon.String("hello"), want: "hello"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := toonyaml.ToYAML(tc.input)
			require.NoError(t, err)

			var got any

			require.NoError(t, yaml.Unmarshal(out, &got))
			assert.EqualValues(t, tc.want, got)
		})
	}
}

func TestToYAMLObjectPreservesKeyOrder(t *testing.T) {
	t.Parallel()

	v := toon.NewObject().
		Set("name", toon.String("Alice")).
		Set("age", toon.Int(30)).
		Set("active", toon.Bool(true))

	out, err := toonyaml.ToYAML(v)
	require.NoError(t, err)

	var slice yaml.MapSlice

	require.NoError(t, yaml.Unmarshal(out, &slice))
	require.Len(t, slice, 3)

	assert.Equal(t, "name", slice[0].Key)
	assert.Equal(t, "age", slice[1].Key)
	assert.Equal(t, "active", slice[2].Key)
}

// TestYAMLRoundTripThroughValue exercises FromYAML and ToYAML together: a
// YAML document decoded to a toon.Value and re-encoded must describe the
// same data, in the same key order, that the original document did.
func TestYAMLRoundTripThroughValue(t *testing.T) {
	t.Parallel()

	input := `
user:
  name: Alice
  age: 30
  tags:
    - admin
    - member
`

	v, err := toonyaml.FromYAML([]byte(input))
	require.NoError(t, err)

	out, err := toonyaml.ToYAML(v)
	require.NoError(t, err)

	roundTripped, err := toonyaml.FromYAML(out)
	require.NoError(t, err)

	assert.True(t, v.Equal(roundTripped), "round-tripped value %#v does not match original %#v", roundTripped, v)

	user, ok := roundTripped.Object().Get("user")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age", "tags"}, user.Object().Keys())
}

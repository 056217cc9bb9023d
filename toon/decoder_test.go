package toon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.toonfmt.dev/toon"
)

func TestDecodeEmptyDocument(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("", toon.DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, toon.KindObject, v.Kind())
	assert.Equal(t, 0, v.Object().Len())
}

func TestDecodeRootScalar(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("42", toon.DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, toon.KindInt, v.Kind())
	assert.Equal(t, int64(42), v.Int())
}

func TestDecodeRootArray(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("[3]: 1,2,3", toon.DefaultDecodeOptions())
	require.NoError(t, err)
	require.Equal(t, toon.KindArray, v.Kind())
	require.Len(t, v.Items(), 3)
	assert.Equal(t, int64(1), v.Items()[0].Int())
	assert.Equal(t, int64(3), v.Items()[2].Int())
}

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("name: Alice\nage: 30", toon.DefaultDecodeOptions())
	require.NoError(t, err)

	name, ok := v.Object().Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name.Text())

	age, ok := v.Object().Get("age")
	require.True(t, ok)
	assert.Equal(t, int64(30), age.Int())
}

func TestDecodeNestedObject(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("parent:\n  child: value", toon.DefaultDecodeOptions())
	require.NoError(t, err)

	parent, ok := v.Object().Get("parent")
	require.True(t, ok)
	require.Equal(t, toon.KindObject, parent.Kind())

	child, ok := parent.Object().Get("child")
	require.True(t, ok)
	assert.Equal(t, "value", child.Text())
}

func TestDecodeTabularArray(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("[2]{id,name}:\n  1,Alice\n  2,Bob", toon.DefaultDecodeOptions())
	require.NoError(t, err)
	require.Len(t, v.Items(), 2)

	id, _ := v.Items()[0].Object().Get("id")
	assert.Equal(t, int64(1), id.Int())

	name, _ := v.Items()[1].Object().Get("name")
	assert.Equal(t, "Bob", name.Text())
}

func TestDecodeListArray(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode("mixed[2]:\n  - 1\n  - a: 2\n    b: 3", toon.DefaultDecodeOptions())
	require.NoError(t, err)

	mixed, ok := v.Object().Get("mixed")
	require.True(t, ok)
	require.Len(t, mixed.Items(), 2)

	assert.Equal(t, int64(1), mixed.Items()[0].Int())

	second := mixed.Items()[1]
	a, _ := second.Object().Get("a")
	b, _ := second.Object().Get("b")
	assert.Equal(t, int64(2), a.Int())
	assert.Equal(t, int64(3), b.Int())
}

func TestDecodeReservedLiteralQuotedString(t *testing.T) {
	t.Parallel()

	v, err := toon.Decode(`"true"`, toon.DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, toon.KindString, v.Kind())
	assert.Equal(t, "true", v.Text())
}

func TestDecodeStrictCountMismatch(t *testing.T) {
	t.Parallel()

	_, err := toon.Decode("[5]: 1,2,3", toon.DefaultDecodeOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, toon.ErrCountMismatch)

	opts := toon.DefaultDecodeOptions()
	opts.Strict = false

	v, err := toon.Decode("[5]: 1,2,3", opts)
	require.NoError(t, err)
	require.Len(t, v.Items(), 3)
}

func TestDecodeInvalidEscape(t *testing.T) {
	t.Parallel()

	_, err := toon.Decode(`text: "a\x"`, toon.DefaultDecodeOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, toon.ErrInvalidEscape)

	opts := toon.DefaultDecodeOptions()
	opts.Strict = false

	_, err = toon.Decode(`text: "a\x"`, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, toon.ErrInvalidEscape)
}

func TestDecodePathExpansionMerge(t *testing.T) {
	t.Parallel()

	opts := toon.DefaultDecodeOptions()
	opts.ExpandPaths = toon.ExpandPathsSafe

	v, err := toon.Decode("user.name: Alice\nuser.age: 30", opts)
	require.NoError(t, err)

	user, ok := v.Object().Get("user")
	require.True(t, ok)

	name, _ := user.Object().Get("name")
	age, _ := user.Object().Get("age")
	assert.Equal(t, "Alice", name.Text())
	assert.Equal(t, int64(30), age.Int())
}

func TestDecodePathExpansionQuotedKeyIsLiteral(t *testing.T) {
	t.Parallel()

	opts := toon.DefaultDecodeOptions()
	opts.ExpandPaths = toon.ExpandPathsSafe

	v, err := toon.Decode(`"user.id": 1`, opts)
	require.NoError(t, err)

	_, expanded := v.Object().Get("user")
	assert.False(t, expanded)

	literal, ok := v.Object().Get("user.id")
	require.True(t, ok)
	assert.Equal(t, int64(1), literal.Int())
}

func TestKeyFoldingExpandPathsRoundTrip(t *testing.T) {
	t.Parallel()

	original := toon.NewObject().Set("user",
		toon.NewObject().Set("profile",
			toon.NewObject().Set("name", toon.String("Alice")).Set("age", toon.Int(30))))

	encOpts := toon.DefaultEncodeOptions()
	encOpts.KeyFolding = toon.KeyFoldingSafe

	text, err := toon.Encode(original, encOpts)
	require.NoError(t, err)

	decOpts := toon.DefaultDecodeOptions()
	decOpts.ExpandPaths = toon.ExpandPathsSafe

	got, err := toon.Decode(text, decOpts)
	require.NoError(t, err)

	assert.True(t, original.Equal(got))
}

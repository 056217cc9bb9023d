package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "in.json")
	toonPath := filepath.Join(dir, "out.toon")
	jsonOutPath := filepath.Join(dir, "out.json")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"id":1,"name":"Alice"}`), 0o644))

	encodeCmd := newEncodeCmd()
	encodeCmd.SetArgs([]string{"--output", toonPath, jsonPath})
	require.NoError(t, encodeCmd.Execute())

	got, err := os.ReadFile(toonPath)
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nname: Alice\n", string(got))

	decodeCmd := newDecodeCmd()
	decodeCmd.SetArgs([]string{"--output", jsonOutPath, toonPath})
	require.NoError(t, decodeCmd.Execute())

	gotJSON, err := os.ReadFile(jsonOutPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Alice"}`, string(gotJSON))
}

func TestFmtIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.toon")
	outPath := filepath.Join(dir, "out.toon")

	require.NoError(t, os.WriteFile(inPath, []byte("items[3]: 1,2,3"), 0o644))

	fmtCmd := newFmtCmd()
	fmtCmd.SetArgs([]string{"--output", outPath, inPath})
	require.NoError(t, fmtCmd.Execute())

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "items[3]: 1,2,3\n", string(got))
}

func TestConvertYAMLToToon(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "in.yaml")
	toonPath := filepath.Join(dir, "out.toon")

	require.NoError(t, os.WriteFile(yamlPath, []byte("id: 1\nname: Alice\n"), 0o644))

	convertCmd := newConvertCmd()
	convertCmd.SetArgs([]string{"--from", "yaml", "--to", "toon", "--output", toonPath, yamlPath})
	require.NoError(t, convertCmd.Execute())

	got, err := os.ReadFile(toonPath)
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nname: Alice\n", string(got))
}

func TestVersionCmdRuns(t *testing.T) {
	t.Parallel()

	versionCmd := newVersionCmd()
	require.NoError(t, versionCmd.Execute())
}

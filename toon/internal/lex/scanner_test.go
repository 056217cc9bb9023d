package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.toonfmt.dev/toon/internal/lex"
)

func TestScan(t *testing.T) {
	t.Parallel()

	result, err := lex.Scan("a: 1\n  b: 2\n\nc: 3", 2, true)
	require.NoError(t, err)

	require.Len(t, result.Lines, 3)
	assert.Equal(t, 0, result.Lines[0].Depth)
	assert.Equal(t, "a: 1", result.Lines[0].Content)
	assert.Equal(t, 1, result.Lines[1].Depth)
	assert.Equal(t, "b: 2", result.Lines[1].Content)
	assert.Equal(t, 0, result.Lines[2].Depth)
	assert.Equal(t, "c: 3", result.Lines[2].Content)

	assert.True(t, result.Blanks[3])
}

func TestScanStrictRejectsTabIndent(t *testing.T) {
	t.Parallel()

	_, err := lex.Scan("a:\n\tb: 1", 2, true)
	require.Error(t, err)

	line, ok := lex.ScanErrorLine(err)
	assert.True(t, ok)
	assert.Equal(t, 2, line)
}

func TestScanStrictRejectsUnalignedIndent(t *testing.T) {
	t.Parallel()

	_, err := lex.Scan("a:\n   b: 1", 2, true)
	require.Error(t, err)
}

func TestScanLenientAcceptsOddIndent(t *testing.T) {
	t.Parallel()

	result, err := lex.Scan("a:\n   b: 1", 2, false)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, 1, result.Lines[1].Depth)
}

func TestScanLenientStripsTabIndentFromContent(t *testing.T) {
	t.Parallel()

	result, err := lex.Scan("root:\n\tchild: 1", 2, false)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)

	assert.Equal(t, 1, result.Lines[1].Depth)
	assert.Equal(t, "child: 1", result.Lines[1].Content)
}

func TestScanLenientStripsMixedSpaceTabIndentFromContent(t *testing.T) {
	t.Parallel()

	result, err := lex.Scan("root:\n  \tchild: 1", 2, false)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)

	assert.Equal(t, "child: 1", result.Lines[1].Content)
}

func TestScanTrailingWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	result, err := lex.Scan("a: 1   ", 2, true)
	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "a: 1", result.Lines[0].Content)
}

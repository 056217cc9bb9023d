package lex

import (
	"fmt"
	"strings"
)

// Line is one non-blank source line after indentation has been measured
// and trimmed from the front (spec.md §4.4 ParsedLine). Trailing spaces,
// tabs and carriage returns are also trimmed from Content before the
// indentation is measured.
type Line struct {
	Depth   int
	Content string
	LineNo  int // 1-based
}

// ScanResult is the output of [Scan]: the non-blank content lines plus the
// set of source line numbers that were blank.
type ScanResult struct {
	Lines  []Line
	Blanks map[int]bool
}

// Scan splits source text into indentation-delimited lines. In strict mode
// a line whose leading-space run is not a multiple of indentSize, or which
// contains a tab in that leading run, fails immediately. In lenient mode
// every non-empty leading-space run is accepted and depth is rounded down.
func Scan(text string, indentSize int, strict bool) (ScanResult, error) {
	var result ScanResult

	result.Blanks = make(map[int]bool)

	raw := strings.Split(text, "\n")

	for i, line := range raw {
		lineNo := i + 1

		trimmed := strings.TrimRight(line, " \t\r")
		if trimmed == "" {
			result.Blanks[lineNo] = true

			continue
		}

		indent, rest, err := splitIndent(trimmed, indentSize, strict, lineNo)
		if err != nil {
			return ScanResult{}, err
		}

		depth := indent / indentSize

		result.Lines = append(result.Lines, Line{
			Depth:   depth,
			Content: rest,
			LineNo:  lineNo,
		})
	}

	return result, nil
}

// splitIndent measures the leading-space (and, in lenient mode, tab) run of
// line and returns its width along with the remaining content, with the
// indentation run itself stripped off.
func splitIndent(line string, indentSize int, strict bool, lineNo int) (int, string, error) {
	i := 0
	width := 0

loop:
	for i < len(line) {
		switch line[i] {
		case ' ':
			width++
			i++
		case '\t':
			if strict {
				return 0, "", &scanError{lineNo, "tab character in indentation"}
			}
			// Lenient mode: a tab advances one full indentation level so
			// the line's content is still correctly stripped of it, rather
			// than leaking the raw tab byte into Content.
			width += indentSize
			i++
		default:
			break loop
		}
	}

	if strict && width%indentSize != 0 {
		return 0, "", &scanError{lineNo, fmt.Sprintf("indentation %d is not a multiple of %d", width, indentSize)}
	}

	if i == 0 {
		return 0, line, nil
	}

	return width, line[i:], nil
}

// scanError is a position-carrying error; callers that want a
// [toon.ErrorKind] wrap this with the appropriate kind (always
// InvalidIndentation for this package).
type scanError struct {
	LineNo int
	Reason string
}

func (e *scanError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineNo, e.Reason)
}

// ScanErrorLine extracts the 1-based line number from an error produced by
// [Scan], if it was a scan error.
func ScanErrorLine(err error) (int, bool) {
	se, ok := err.(*scanError)
	if !ok {
		return 0, false
	}

	return se.LineNo, true
}

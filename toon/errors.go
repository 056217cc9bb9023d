package toon

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the taxonomy of codec errors from spec.md §7. Use
// [errors.Is] against the matching package-level sentinel (ErrInvalidEscape,
// etc.), or switch on ([*Error]).Kind for programmatic handling.
type ErrorKind int

// The error kinds enumerated in spec.md §7.
const (
	// ErrKindInvalidEscape: a backslash sequence other than the five
	// permitted ones appeared in a quoted string. Always fatal.
	ErrKindInvalidEscape ErrorKind = iota
	// ErrKindUnterminatedString: a quoted region ran to end-of-line or
	// end-of-input without a closing quote. Always fatal.
	ErrKindUnterminatedString
	// ErrKindMissingColon: a non-empty line at object scope lacks a
	// top-level unquoted colon.
	ErrKindMissingColon
	// ErrKindInvalidIndentation: strict mode only -- indent is not a
	// multiple of the configured indent size, or indentation contains a tab.
	ErrKindInvalidIndentation
	// ErrKindCountMismatch: a declared array length differs from the
	// actual token/row/item count.
	ErrKindCountMismatch
	// ErrKindRowWidthMismatch: a tabular row's field count differs from
	// the declared field-list length.
	ErrKindRowWidthMismatch
	// ErrKindBlankLineInArray: strict mode only -- a blank line appeared
	// between an array header and its last item or row.
	ErrKindBlankLineInArray
	// ErrKindInvalidHeader: a malformed [N]...: header.
	ErrKindInvalidHeader
	// ErrKindPathConflict: strict mode only -- path expansion would
	// overwrite an existing key or collapse through a non-object.
	ErrKindPathConflict
	// ErrKindMultipleRootPrimitives: strict mode only -- more than one
	// top-level scalar-looking line.
	ErrKindMultipleRootPrimitives
	// ErrKindUnsupportedValue: encoder only -- a NaN or infinite float was
	// encountered.
	ErrKindUnsupportedValue
)

// String returns the taxonomy name of k, matching the identifiers in
// spec.md §7 (e.g. "CountMismatch").
func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidEscape:
		return "InvalidEscape"
	case ErrKindUnterminatedString:
		return "UnterminatedString"
	case ErrKindMissingColon:
		return "MissingColon"
	case ErrKindInvalidIndentation:
		return "InvalidIndentation"
	case ErrKindCountMismatch:
		return "CountMismatch"
	case ErrKindRowWidthMismatch:
		return "RowWidthMismatch"
	case ErrKindBlankLineInArray:
		return "BlankLineInArray"
	case ErrKindInvalidHeader:
		return "InvalidHeader"
	case ErrKindPathConflict:
		return "PathConflict"
	case ErrKindMultipleRootPrimitives:
		return "MultipleRootPrimitives"
	case ErrKindUnsupportedValue:
		return "UnsupportedValue"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per [ErrorKind], for use with [errors.Is]. Every
// [*Error] returned by this package has one of these as its [Error.Is]
// target.
var (
	ErrInvalidEscape          = errors.New("toon: invalid escape sequence")
	ErrUnterminatedString     = errors.New("toon: unterminated string")
	ErrMissingColon           = errors.New("toon: missing colon")
	ErrInvalidIndentation     = errors.New("toon: invalid indentation")
	ErrCountMismatch          = errors.New("toon: declared count does not match actual count")
	ErrRowWidthMismatch       = errors.New("toon: row width does not match declared field list")
	ErrBlankLineInArray       = errors.New("toon: blank line inside array body")
	ErrInvalidHeader          = errors.New("toon: invalid array header")
	ErrPathConflict           = errors.New("toon: path expansion conflict")
	ErrMultipleRootPrimitives = errors.New("toon: multiple top-level primitives")
	ErrUnsupportedValue       = errors.New("toon: unsupported value")
)

var sentinels = map[ErrorKind]error{
	ErrKindInvalidEscape:          ErrInvalidEscape,
	ErrKindUnterminatedString:     ErrUnterminatedString,
	ErrKindMissingColon:           ErrMissingColon,
	ErrKindInvalidIndentation:     ErrInvalidIndentation,
	ErrKindCountMismatch:          ErrCountMismatch,
	ErrKindRowWidthMismatch:       ErrRowWidthMismatch,
	ErrKindBlankLineInArray:       ErrBlankLineInArray,
	ErrKindInvalidHeader:          ErrInvalidHeader,
	ErrKindPathConflict:           ErrPathConflict,
	ErrKindMultipleRootPrimitives: ErrMultipleRootPrimitives,
	ErrKindUnsupportedValue:       ErrUnsupportedValue,
}

// Error is the single typed failure returned at the boundary of [Encode]
// and [Decode]. It carries the offending source position when one is
// known; Line and Column are 1-based and zero when not applicable (e.g. an
// encoder-side error, which has no source line).
type Error struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Reason  string
	wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Reason)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap exposes an underlying error, if the failure wraps one (e.g. a
// strconv.NumError from number parsing).
func (e *Error) Unwrap() error { return e.wrapped }

// Is reports whether target is the sentinel error for e.Kind, so that
// errors.Is(err, toon.ErrCountMismatch) works against a returned *Error.
func (e *Error) Is(target error) bool {
	return target == sentinels[e.Kind]
}

// newError constructs an *Error with no position information (encoder-side
// or position-agnostic failures).
func newError(kind ErrorKind, reason string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(reason, args...)}
}

// newLineError constructs an *Error carrying a 1-based source line number.
// Column is left at 0 (unknown) unless set explicitly with newPosError.
func newLineError(kind ErrorKind, line int, reason string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Reason: fmt.Sprintf(reason, args...)}
}

// newPosError constructs an *Error carrying a 1-based source line and column.
func newPosError(kind ErrorKind, line, col int, reason string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Column: col, Reason: fmt.Sprintf(reason, args...)}
}

// wrap attaches an underlying error for [Error.Unwrap].
func (e *Error) wrap(err error) *Error {
	e.wrapped = err

	return e
}
